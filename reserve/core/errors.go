package core

import "errors"

var (
	// ErrNotEnoughLiquidity is returned when the pool's free reserves cannot
	// cover the outflow of an unstake. It is an expected business outcome.
	ErrNotEnoughLiquidity = errors.New("not enough liquidity")

	// ErrInternal is returned when fee arithmetic cannot be represented or a
	// curve parameter violates its invariants. It indicates a defect.
	ErrInternal = errors.New("internal error")
)
