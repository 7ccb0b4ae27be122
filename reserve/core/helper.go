package core

import (
	"github.com/gagliardetto/solana-go"
)

func DeriveFeeAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{pool.Bytes(), []byte(FeeSeed)}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

func DeriveFlashAccountAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{pool.Bytes(), []byte(FlashAccountSeed)}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

func DeriveFlashLoanFeeAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{pool.Bytes(), []byte(FlashLoanFeeSeed)}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

// DeriveProtocolFeeAddress returns the program-wide protocol fee account.
func DeriveProtocolFeeAddress() (solana.PublicKey, error) {
	seeds := [][]byte{[]byte(ProtocolFeeSeed)}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

// DerivePoolSolReservesAddress returns the system account that holds the
// pool's free SOL.
func DerivePoolSolReservesAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{pool.Bytes()}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

// DeriveStakeAccountRecordAddress returns the record created when stakeAccount
// is unstaked into pool.
func DeriveStakeAccountRecordAddress(pool, stakeAccount solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{pool.Bytes(), stakeAccount.Bytes()}
	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	return pda, err
}

// PoolAccounts groups every PDA derived from a pool.
type PoolAccounts struct {
	Pool            solana.PublicKey
	Fee             solana.PublicKey
	ProtocolFee     solana.PublicKey
	PoolSolReserves solana.PublicKey
	FlashAccount    solana.PublicKey
	FlashLoanFee    solana.PublicKey
}

// DerivePoolAccounts derives all PDAs of pool.
func DerivePoolAccounts(pool solana.PublicKey) (PoolAccounts, error) {
	var (
		out = PoolAccounts{Pool: pool}
		err error
	)
	if out.Fee, err = DeriveFeeAddress(pool); err != nil {
		return PoolAccounts{}, err
	}
	if out.ProtocolFee, err = DeriveProtocolFeeAddress(); err != nil {
		return PoolAccounts{}, err
	}
	if out.PoolSolReserves, err = DerivePoolSolReservesAddress(pool); err != nil {
		return PoolAccounts{}, err
	}
	if out.FlashAccount, err = DeriveFlashAccountAddress(pool); err != nil {
		return PoolAccounts{}, err
	}
	if out.FlashLoanFee, err = DeriveFlashLoanFeeAddress(pool); err != nil {
		return PoolAccounts{}, err
	}
	return out, nil
}

// MainnetPoolAccounts returns the hardcoded mainnet addresses.
func MainnetPoolAccounts() PoolAccounts {
	return PoolAccounts{
		Pool:            MainnetPool,
		Fee:             MainnetFee,
		ProtocolFee:     MainnetProtocolFee,
		PoolSolReserves: MainnetPoolSolReserves,
		FlashAccount:    MainnetFlashAccount,
		FlashLoanFee:    MainnetFlashLoanFee,
	}
}
