package core

import (
	"github.com/gagliardetto/solana-go"
)

const (
	// StakeAccountRecordRent is the rent-exempt balance, in lamports, of a
	// StakeAccountRecord. Reserves pay it before the fee-bearing transfer.
	StakeAccountRecordRent uint64 = 1_002_240

	LamportsPerSol uint64 = 1_000_000_000
)

// Programs
var (
	// ProgramID is the unstake program address.
	ProgramID = solana.MustPublicKeyFromBase58("unpXTU2Ndrc7WWNyEhQWe4udTzSibLPi25SXv2xbCHQ")

	SystemProgramID = solana.SystemProgramID
	TokenProgramID  = solana.TokenProgramID
	StakeProgramID  = solana.StakeProgramID
	SysvarClockID   = solana.SysVarClockPubkey
)

// Mainnet program accounts
var (
	// MainnetPool is the unstake pool. Every PDA below is derived from it.
	MainnetPool = solana.MustPublicKeyFromBase58("FypPtwbY3FUfzJUtXHSyVRokVKG2jKtH29FmK4ebxRSd")
	// MainnetFee holds the pool's fee curve.
	MainnetFee = solana.MustPublicKeyFromBase58("5Pcu8WeQa3VbBz2vdBT49Rj4gbS4hsnfzuL1LmuRaKFY")
	// MainnetProtocolFee holds the protocol/referrer split ratios.
	MainnetProtocolFee      = solana.MustPublicKeyFromBase58("2hN9UhvRFVfPYKL6rZJ5YiLEPCLTpN755pgwDJHWgFbU")
	MainnetProtocolFeeVault = solana.MustPublicKeyFromBase58("EeQmNqm1RcQnee8LTyx6ccVG9FnR8TezQuw2JXq2LC1T")
	// MainnetPoolSolReserves is the system account holding the pool's free SOL.
	MainnetPoolSolReserves = solana.MustPublicKeyFromBase58("3rBnnH9TTgd3xwu48rnzGsaQkSr1hR64nY71DrDt6VrQ")
	MainnetFlashAccount    = solana.MustPublicKeyFromBase58("BvCe729YxGXqgyVBW4r4R8S7ypkYm7KUyzVbTMai8kUc")
	MainnetFlashLoanFee    = solana.MustPublicKeyFromBase58("6pf1eJA1C97znNC1m12qFGTWoq4KCQXJKrvzksFWmd2D")
)

// PDA seeds
const (
	FeeSeed          = "fee"
	FlashAccountSeed = "flashaccount"
	FlashLoanFeeSeed = "flashloanfee"
	ProtocolFeeSeed  = "protocol-fee"
)

// Anchor account discriminators, sha256("account:<Name>")[:8].
var (
	PoolDiscriminator               = [8]byte{241, 154, 109, 4, 17, 177, 109, 188}
	FeeDiscriminator                = [8]byte{24, 55, 150, 250, 168, 27, 101, 178}
	ProtocolFeeDiscriminator        = [8]byte{121, 127, 98, 139, 72, 110, 44, 118}
	StakeAccountRecordDiscriminator = [8]byte{144, 205, 183, 241, 3, 250, 208, 215}
	FlashAccountDiscriminator       = [8]byte{20, 88, 157, 223, 92, 187, 5, 111}
	FlashLoanFeeDiscriminator       = [8]byte{211, 113, 211, 138, 191, 108, 64, 160}
)

// Instruction discriminators, sha256("global:<name>")[:8].
var (
	UnstakeDiscriminator     = [8]byte{90, 95, 107, 42, 205, 124, 50, 225}
	UnstakeWsolDiscriminator = [8]byte{125, 93, 190, 135, 89, 174, 142, 149}
)
