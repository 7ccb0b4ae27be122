package decimal_math

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const SolDecimals = 9

var maxUint64 = NewFromUint64(math.MaxUint64)

// LamportsToSol converts lamports to SOL without loss.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return NewFromUint64(lamports).Shift(-SolDecimals)
}

// SolToLamports converts SOL to lamports, truncating sub-lamport digits.
func SolToLamports(sol decimal.Decimal) (uint64, error) {
	if sol.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", sol)
	}
	lamports := sol.Shift(SolDecimals).Truncate(0)
	if lamports.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("amount %s overflows u64 lamports", sol)
	}
	return lamports.BigInt().Uint64(), nil
}
