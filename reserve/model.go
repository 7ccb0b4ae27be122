package reserve

import (
	"github.com/gagliardetto/solana-go"
	"github.com/igneous-labs/sanctum-reserve-sdk/decimal_math"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	"github.com/shopspring/decimal"
)

// PoolState is a consistent snapshot of the accounts a quote reads.
type PoolState struct {
	Accounts    core.PoolAccounts
	Pool        *core.Pool
	Fee         *core.Fee
	ProtocolFee *core.ProtocolFee
	// SolReserves is the lamport balance of the pool's SOL reserves.
	SolReserves uint64
	Slot        uint64
}

func (s *PoolState) Liquidity() core.PoolLiquidity {
	return s.Pool.Liquidity(s.SolReserves)
}

func (s *PoolState) SplitRatios() core.FeeSplitRatios {
	return s.ProtocolFee.SplitRatios()
}

// StakeAccount is a stake account about to be unstaked.
type StakeAccount struct {
	Address  solana.PublicKey
	Lamports uint64
	// Record is the stake account record PDA. RecordLamports is what it
	// already holds, zero when it does not exist.
	Record         solana.PublicKey
	RecordLamports uint64
}

// QuoteResult is a quote together with the state it was computed from.
type QuoteResult struct {
	Quote core.Quote
	Pool  *PoolState
}

func (r *QuoteResult) Summary() QuoteSummary {
	return Summarize(r.Quote)
}

// QuoteSummary is a display friendly view of a quote in SOL.
type QuoteSummary struct {
	GrossSol    decimal.Decimal `json:"grossSol"`
	NetSol      decimal.Decimal `json:"netSol"`
	FeeSol      decimal.Decimal `json:"feeSol"`
	PoolFee     decimal.Decimal `json:"poolFeeSol"`
	ProtocolFee decimal.Decimal `json:"protocolFeeSol"`
	ReferrerFee decimal.Decimal `json:"referrerFeeSol"`
	FeeBps      decimal.Decimal `json:"feeBps"`
}

func Summarize(q core.Quote) QuoteSummary {
	return QuoteSummary{
		GrossSol:    decimal_math.LamportsToSol(q.GrossAmount),
		NetSol:      decimal_math.LamportsToSol(q.NetToRedeemer),
		FeeSol:      decimal_math.LamportsToSol(q.Fee.Total()),
		PoolFee:     decimal_math.LamportsToSol(q.Fee.PoolShare),
		ProtocolFee: decimal_math.LamportsToSol(q.Fee.ProtocolShare),
		ReferrerFee: decimal_math.LamportsToSol(q.Fee.ReferrerShare),
		FeeBps:      decimal_math.RatioToBps(q.Fee.Total(), q.GrossAmount),
	}
}
