package core

import (
	"fmt"
	"math/bits"

	"github.com/igneous-labs/sanctum-reserve-sdk/precise"
)

// PoolLiquidity is the pool state a quote depends on.
type PoolLiquidity struct {
	// IncomingReserved is the pool's recorded incoming stake, lamports in
	// stake accounts that have not been reclaimed yet.
	IncomingReserved uint64
	// FreeReserves is the live lamport balance of the pool's SOL reserves.
	FreeReserves uint64
}

// Owned returns IncomingReserved + FreeReserves.
func (p PoolLiquidity) Owned() (precise.Number, bool) {
	return precise.New(p.IncomingReserved).CheckedAdd(precise.New(p.FreeReserves))
}

// FeeSplitRatios partitions the unstake fee. Protocol is applied to the fee,
// Referrer is applied to the protocol's part.
type FeeSplitRatios struct {
	Protocol Rational
	Referrer Rational
}

// QuoteFee is the fee breakdown of a quote in lamports.
type QuoteFee struct {
	PoolShare     uint64
	ProtocolShare uint64
	ReferrerShare uint64
}

func (f QuoteFee) Total() uint64 {
	return f.PoolShare + f.ProtocolShare + f.ReferrerShare
}

type Quote struct {
	GrossAmount   uint64
	NetToRedeemer uint64
	Fee           QuoteFee
}

// ReservesOutflow returns the lamports leaving the pool's reserves, ie
// everything except the pool's share plus the escrow rent.
func (q Quote) ReservesOutflow(escrowRent uint64) (uint64, bool) {
	var (
		sum   uint64
		carry uint64
	)
	for _, v := range []uint64{q.NetToRedeemer, q.Fee.ProtocolShare, q.Fee.ReferrerShare, escrowRent} {
		var c uint64
		sum, c = bits.Add64(sum, v, 0)
		carry |= c
	}
	return sum, carry == 0
}

// EffectiveRate returns total fee / gross amount.
func (q Quote) EffectiveRate() (precise.Number, bool) {
	return precise.New(q.Fee.Total()).CheckedDiv(precise.New(q.GrossAmount))
}

type QuoteOptions struct {
	IncludeReferrer bool
	// PrefundedEscrowLamports is the part of the escrow rent that is already
	// held by the record account and need not be paid from reserves.
	PrefundedEscrowLamports uint64
}

// Engine quotes unstakes. EscrowRent is the lamport cost of the per unstake
// record, paid from reserves.
type Engine struct {
	EscrowRent uint64
}

func NewEngine(escrowRent uint64) Engine {
	return Engine{EscrowRent: escrowRent}
}

// DefaultEngine uses the rent of a StakeAccountRecord.
var DefaultEngine = NewEngine(StakeAccountRecordRent)

// adjustPool deducts the unfunded part of the escrow rent from the free
// reserves.
func (e Engine) adjustPool(pool PoolLiquidity, opts QuoteOptions) (PoolLiquidity, error) {
	var shortfall uint64
	if e.EscrowRent > opts.PrefundedEscrowLamports {
		shortfall = e.EscrowRent - opts.PrefundedEscrowLamports
	}
	if pool.FreeReserves < shortfall {
		return PoolLiquidity{}, fmt.Errorf("%w: reserves %d cannot fund escrow rent %d", ErrNotEnoughLiquidity, pool.FreeReserves, shortfall)
	}
	pool.FreeReserves -= shortfall
	return pool, nil
}

// Quote computes the fee breakdown of unstaking grossAmount lamports.
func (e Engine) Quote(pool PoolLiquidity, curve FeeCurve, split FeeSplitRatios, grossAmount uint64, opts QuoteOptions) (Quote, error) {
	adjusted, err := e.adjustPool(pool, opts)
	if err != nil {
		return Quote{}, err
	}

	fee, ok := curve.Apply(adjusted, grossAmount)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s fee curve overflow", ErrInternal, curve.Kind)
	}
	if fee > grossAmount {
		return Quote{}, fmt.Errorf("%w: fee %d exceeds amount %d", ErrInternal, fee, grossAmount)
	}

	protocolSplit, ok := split.Protocol.Apply(fee)
	if !ok {
		return Quote{}, fmt.Errorf("%w: protocol fee ratio %s", ErrInternal, split.Protocol)
	}
	q := Quote{
		GrossAmount:   grossAmount,
		NetToRedeemer: grossAmount - fee,
		Fee: QuoteFee{
			PoolShare:     protocolSplit.Rem,
			ProtocolShare: protocolSplit.Fee,
		},
	}

	if opts.IncludeReferrer {
		referrerSplit, ok := split.Referrer.Apply(protocolSplit.Fee)
		if !ok {
			return Quote{}, fmt.Errorf("%w: referrer fee ratio %s", ErrInternal, split.Referrer)
		}
		q.Fee.ProtocolShare = referrerSplit.Rem
		q.Fee.ReferrerShare = referrerSplit.Fee
	}

	outflow, ok := q.ReservesOutflow(e.EscrowRent)
	if !ok || outflow > pool.FreeReserves {
		return Quote{}, fmt.Errorf("%w: outflow exceeds reserves %d", ErrNotEnoughLiquidity, pool.FreeReserves)
	}
	return q, nil
}

// QuoteForNet quotes the unstake that leaves net lamports to the redeemer
// after fees.
func (e Engine) QuoteForNet(pool PoolLiquidity, curve FeeCurve, split FeeSplitRatios, net uint64, opts QuoteOptions) (Quote, error) {
	adjusted, err := e.adjustPool(pool, opts)
	if err != nil {
		return Quote{}, err
	}
	gross, ok := curve.ReverseFromNet(adjusted, net)
	if !ok {
		return Quote{}, fmt.Errorf("%w: cannot reverse %s fee curve for %d", ErrInternal, curve.Kind, net)
	}
	return e.Quote(pool, curve, split, gross, opts)
}

// QuoteUnstake quotes with DefaultEngine.
func QuoteUnstake(pool PoolLiquidity, curve FeeCurve, split FeeSplitRatios, grossAmount uint64, opts QuoteOptions) (Quote, error) {
	return DefaultEngine.Quote(pool, curve, split, grossAmount, opts)
}
