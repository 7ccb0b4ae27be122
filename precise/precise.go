// Package precise is a checked fixed-point decimal with 12 decimal places
// backed by a 256-bit unsigned integer.
//
// Every arithmetic operation reports failure through its bool result instead
// of wrapping or panicking.
package precise

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// One is the raw representation of the integer 1.
	One uint64 = 1_000_000_000_000
	// Decimals is the number of fractional digits carried by a Number.
	Decimals = 12
)

var (
	one                = uint256.NewInt(One)
	roundingCorrection = uint256.NewInt(One / 2)
	ceilingCorrection  = uint256.NewInt(One - 1)
)

// Number is an unsigned fixed-point value. The zero value is 0.
type Number struct {
	value uint256.Int
}

// New scales an integer into a Number.
func New(v uint64) Number {
	var n Number
	// v * 10^12 < 2^104
	n.value.Mul(uint256.NewInt(v), one)
	return n
}

// Zero returns 0.
func Zero() Number {
	return Number{}
}

// FromRaw wraps an already scaled value.
func FromRaw(raw *uint256.Int) Number {
	var n Number
	n.value.Set(raw)
	return n
}

// FromRatio returns num/denom. It fails when denom is 0.
func FromRatio(num, denom uint64) (Number, bool) {
	return New(num).CheckedDiv(New(denom))
}

// Raw returns a copy of the scaled value.
func (n Number) Raw() *uint256.Int {
	return n.value.Clone()
}

func (n Number) IsZero() bool {
	return n.value.IsZero()
}

// Cmp returns -1, 0 or +1.
func (n Number) Cmp(rhs Number) int {
	return n.value.Cmp(&rhs.value)
}

func (n Number) Lt(rhs Number) bool {
	return n.value.Lt(&rhs.value)
}

func (n Number) Gt(rhs Number) bool {
	return n.value.Gt(&rhs.value)
}

// ToImprecise rounds half up to an integer. It fails when the result does not
// fit in a uint64.
func (n Number) ToImprecise() (uint64, bool) {
	var v uint256.Int
	if _, overflow := v.AddOverflow(&n.value, roundingCorrection); overflow {
		return 0, false
	}
	v.Div(&v, one)
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// Floor truncates the fractional part.
func (n Number) Floor() Number {
	var out Number
	out.value.Div(&n.value, one)
	out.value.Mul(&out.value, one)
	return out
}

// Ceiling rounds up to the next integral value.
func (n Number) Ceiling() (Number, bool) {
	var out Number
	if _, overflow := out.value.AddOverflow(&n.value, ceilingCorrection); overflow {
		return Number{}, false
	}
	out.value.Div(&out.value, one)
	out.value.Mul(&out.value, one)
	return out, true
}

func (n Number) CheckedAdd(rhs Number) (Number, bool) {
	var out Number
	if _, overflow := out.value.AddOverflow(&n.value, &rhs.value); overflow {
		return Number{}, false
	}
	return out, true
}

func (n Number) CheckedSub(rhs Number) (Number, bool) {
	var out Number
	if _, underflow := out.value.SubOverflow(&n.value, &rhs.value); underflow {
		return Number{}, false
	}
	return out, true
}

// CheckedMul multiplies with half-up rounding. When the intermediate product
// overflows it falls back to dividing the larger operand by One first, which
// loses the fractional part of that operand.
func (n Number) CheckedMul(rhs Number) (Number, bool) {
	var out Number
	if _, overflow := out.value.MulOverflow(&n.value, &rhs.value); !overflow {
		if _, overflow := out.value.AddOverflow(&out.value, roundingCorrection); overflow {
			return Number{}, false
		}
		out.value.Div(&out.value, one)
		return out, true
	}

	hi, lo := &n.value, &rhs.value
	if hi.Lt(lo) {
		hi, lo = lo, hi
	}
	out.value.Div(hi, one)
	if _, overflow := out.value.MulOverflow(&out.value, lo); overflow {
		return Number{}, false
	}
	return out, true
}

// CheckedDiv divides with half-up rounding. It fails on a zero divisor. When
// scaling the dividend overflows the quotient is computed on the unscaled
// dividend and then rescaled.
func (n Number) CheckedDiv(rhs Number) (Number, bool) {
	if rhs.value.IsZero() {
		return Number{}, false
	}
	var out Number
	if _, overflow := out.value.MulOverflow(&n.value, one); !overflow {
		if _, overflow := out.value.AddOverflow(&out.value, roundingCorrection); overflow {
			return Number{}, false
		}
		out.value.Div(&out.value, &rhs.value)
		return out, true
	}

	if _, overflow := out.value.AddOverflow(&n.value, roundingCorrection); overflow {
		return Number{}, false
	}
	out.value.Div(&out.value, &rhs.value)
	if _, overflow := out.value.MulOverflow(&out.value, one); overflow {
		return Number{}, false
	}
	return out, true
}

// Decimal converts to a shopspring decimal without loss.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(n.value.ToBig(), -Decimals)
}

func (n Number) String() string {
	return n.Decimal().String()
}
