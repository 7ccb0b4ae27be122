package core

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/igneous-labs/sanctum-reserve-sdk/decimal_math"
	"github.com/igneous-labs/sanctum-reserve-sdk/precise"
	"github.com/shopspring/decimal"
)

// Rational is a fee ratio num/denom. A zero denominator means no fee.
type Rational struct {
	Num   uint64
	Denom uint64
}

// RationalZero is the canonical "no fee" ratio.
var RationalZero = Rational{}

// AftFee is the result of applying a ratio to an amount.
type AftFee struct {
	Fee uint64
	Rem uint64
}

// IsZero reports whether r never charges anything.
func (r Rational) IsZero() bool {
	return r.Denom == 0 || r.Num == 0
}

// IsValidFee reports whether r can be used as a fee rate, ie r <= 1.
func (r Rational) IsValidFee() bool {
	return r.Denom == 0 || r.Num <= r.Denom
}

// Apply charges ceil(amt * num / denom) and returns the charged and remaining
// amounts. It fails when the ratio is greater than 1.
func (r Rational) Apply(amt uint64) (AftFee, bool) {
	if r.Denom == 0 || amt == 0 {
		return AftFee{Fee: 0, Rem: amt}, true
	}
	if r.Num > r.Denom {
		return AftFee{}, false
	}

	var fee uint256.Int
	// amt * num < 2^128
	fee.Mul(uint256.NewInt(amt), uint256.NewInt(r.Num))
	fee.AddUint64(&fee, r.Denom-1)
	fee.Div(&fee, uint256.NewInt(r.Denom))
	if !fee.IsUint64() || fee.Uint64() > amt {
		return AftFee{}, false
	}
	f := fee.Uint64()
	return AftFee{Fee: f, Rem: amt - f}, true
}

// Precise converts r to a fixed-point number. A zero denominator is 0.
func (r Rational) Precise() (precise.Number, bool) {
	if r.Denom == 0 {
		return precise.Zero(), true
	}
	return precise.FromRatio(r.Num, r.Denom)
}

// Cmp compares the values of two ratios. Ratios with a zero denominator are
// equal to 0.
func (r Rational) Cmp(o Rational) int {
	rz, oz := r.IsZero(), o.IsZero()
	switch {
	case rz && oz:
		return 0
	case rz:
		return -1
	case oz:
		return 1
	}
	var lhs, rhs uint256.Int
	lhs.Mul(uint256.NewInt(r.Num), uint256.NewInt(o.Denom))
	rhs.Mul(uint256.NewInt(o.Num), uint256.NewInt(r.Denom))
	return lhs.Cmp(&rhs)
}

// Decimal returns the ratio as a decimal rounded to 12 places.
func (r Rational) Decimal() decimal.Decimal {
	if r.Denom == 0 {
		return decimal.Zero
	}
	return decimal_math.NewFromUint64(r.Num).DivRound(decimal_math.NewFromUint64(r.Denom), precise.Decimals)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Denom)
}
