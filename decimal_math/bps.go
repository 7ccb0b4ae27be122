package decimal_math

import (
	"github.com/shopspring/decimal"
)

const BasisPointMax = 10_000

var basisPointMax = decimal.NewFromInt(BasisPointMax)

// RatioToBps expresses num/denom in basis points rounded to 4 decimal places.
// A zero denominator is 0 bps.
func RatioToBps(num, denom uint64) decimal.Decimal {
	if denom == 0 {
		return decimal.Zero
	}
	return NewFromUint64(num).Mul(basisPointMax).DivRound(NewFromUint64(denom), 4)
}

// ToBps converts a fraction to basis points.
func ToBps(x decimal.Decimal) decimal.Decimal {
	return x.Mul(basisPointMax)
}
