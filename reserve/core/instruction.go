package core

import (
	"github.com/gagliardetto/solana-go"
)

// UnstakeAccounts are the prefix accounts of the Unstake instruction, in
// instruction order.
type UnstakeAccounts struct {
	Unstaker           solana.PublicKey
	Stake              solana.PublicKey
	Destination        solana.PublicKey
	Pool               solana.PublicKey
	PoolSolReserves    solana.PublicKey
	Fee                solana.PublicKey
	StakeAccountRecord solana.PublicKey
	ProtocolFee        solana.PublicKey
	ProtocolFeeDest    solana.PublicKey
	SysvarClock        solana.PublicKey
	StakeProgram       solana.PublicKey
	SystemProgram      solana.PublicKey
}

// WithConsts fills the sysvar and program accounts.
func (a UnstakeAccounts) WithConsts() UnstakeAccounts {
	a.SysvarClock = SysvarClockID
	a.StakeProgram = StakeProgramID
	a.SystemProgram = SystemProgramID
	return a
}

// WithMainnetConstPdas fills the mainnet pool accounts.
func (a UnstakeAccounts) WithMainnetConstPdas() UnstakeAccounts {
	return a.WithPoolAccounts(MainnetPoolAccounts(), MainnetProtocolFeeVault)
}

// WithPoolAccounts fills the accounts of an arbitrary pool.
func (a UnstakeAccounts) WithPoolAccounts(pool PoolAccounts, protocolFeeDest solana.PublicKey) UnstakeAccounts {
	a.Pool = pool.Pool
	a.PoolSolReserves = pool.PoolSolReserves
	a.Fee = pool.Fee
	a.ProtocolFee = pool.ProtocolFee
	a.ProtocolFeeDest = protocolFeeDest
	return a
}

// Keys returns the accounts in instruction order.
func (a UnstakeAccounts) Keys() []solana.PublicKey {
	return []solana.PublicKey{
		a.Unstaker,
		a.Stake,
		a.Destination,
		a.Pool,
		a.PoolSolReserves,
		a.Fee,
		a.StakeAccountRecord,
		a.ProtocolFee,
		a.ProtocolFeeDest,
		a.SysvarClock,
		a.StakeProgram,
		a.SystemProgram,
	}
}

func (a UnstakeAccounts) Metas() solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(a.Unstaker, false, true),
		solana.NewAccountMeta(a.Stake, true, false),
		solana.NewAccountMeta(a.Destination, true, false),
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.PoolSolReserves, true, false),
		solana.NewAccountMeta(a.Fee, false, false),
		solana.NewAccountMeta(a.StakeAccountRecord, true, false),
		solana.NewAccountMeta(a.ProtocolFee, false, false),
		solana.NewAccountMeta(a.ProtocolFeeDest, true, false),
		solana.NewAccountMeta(a.SysvarClock, false, false),
		solana.NewAccountMeta(a.StakeProgram, false, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
	}
}

// UnstakeWsolAccounts are the prefix accounts of UnstakeWsol. Destination is
// a wSOL token account.
type UnstakeWsolAccounts struct {
	UnstakeAccounts
	TokenProgram solana.PublicKey
}

func (a UnstakeWsolAccounts) WithConsts() UnstakeWsolAccounts {
	a.UnstakeAccounts = a.UnstakeAccounts.WithConsts()
	a.TokenProgram = TokenProgramID
	return a
}

func (a UnstakeWsolAccounts) WithMainnetConstPdas() UnstakeWsolAccounts {
	a.UnstakeAccounts = a.UnstakeAccounts.WithMainnetConstPdas()
	return a
}

func (a UnstakeWsolAccounts) Keys() []solana.PublicKey {
	return append(a.UnstakeAccounts.Keys(), a.TokenProgram)
}

func (a UnstakeWsolAccounts) Metas() solana.AccountMetaSlice {
	return append(a.UnstakeAccounts.Metas(), solana.NewAccountMeta(a.TokenProgram, false, false))
}

func withReferrer(metas solana.AccountMetaSlice, referrer *solana.PublicKey) solana.AccountMetaSlice {
	if referrer == nil {
		return metas
	}
	return append(metas, solana.Meta(*referrer).WRITE())
}

// NewUnstakeInstruction builds Unstake. A non-nil referrer is appended as a
// writable account and receives the referrer's fee share.
func NewUnstakeInstruction(accounts UnstakeAccounts, referrer *solana.PublicKey) solana.Instruction {
	data := make([]byte, len(UnstakeDiscriminator))
	copy(data, UnstakeDiscriminator[:])
	return solana.NewInstruction(ProgramID, withReferrer(accounts.Metas(), referrer), data)
}

// NewUnstakeWsolInstruction builds UnstakeWsol, see NewUnstakeInstruction.
func NewUnstakeWsolInstruction(accounts UnstakeWsolAccounts, referrer *solana.PublicKey) solana.Instruction {
	data := make([]byte, len(UnstakeWsolDiscriminator))
	copy(data, UnstakeWsolDiscriminator[:])
	return solana.NewInstruction(ProgramID, withReferrer(accounts.Metas(), referrer), data)
}
