package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func NewFromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
