package reserve

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
)

var (
	ErrStakeAccountNotFound = errors.New("stake account not found")
	ErrNotStakeAccount      = errors.New("account is not owned by the stake program")
)

// UnstakeQuote quotes unstaking stakeAccount. The gross amount is the stake
// account's lamports and the record PDA's balance counts as prefunded escrow.
func (r *Reserve) UnstakeQuote(
	ctx context.Context,
	stakeAccount solana.PublicKey,
	withReferrer bool,
) (*QuoteResult, *StakeAccount, error) {
	result, stake, err := UnstakeQuote(ctx, r.rpcClient, r.engine, r.accounts, r.commitment, stakeAccount, withReferrer)
	r.logQuote("stake_account", result, err)
	return result, stake, err
}

func UnstakeQuote(
	ctx context.Context,
	rpcClient *rpc.Client,
	engine core.Engine,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	stakeAccount solana.PublicKey,
	withReferrer bool,
) (*QuoteResult, *StakeAccount, error) {
	record, err := core.DeriveStakeAccountRecordAddress(accounts.Pool, stakeAccount)
	if err != nil {
		return nil, nil, err
	}

	state, extra, err := fetchPoolState(ctx, rpcClient, accounts, commitment, stakeAccount, record)
	if err != nil {
		return nil, nil, err
	}

	stakeInfo, recordInfo := extra[0], extra[1]
	if stakeInfo == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrStakeAccountNotFound, stakeAccount)
	}
	if !stakeInfo.Owner.Equals(core.StakeProgramID) {
		return nil, nil, fmt.Errorf("%w: %s owned by %s", ErrNotStakeAccount, stakeAccount, stakeInfo.Owner)
	}

	stake := &StakeAccount{
		Address:  stakeAccount,
		Lamports: stakeInfo.Lamports,
		Record:   record,
	}
	if recordInfo != nil {
		stake.RecordLamports = recordInfo.Lamports
	}

	q, err := engine.Quote(state.Liquidity(), state.Fee.Fee, state.SplitRatios(), stake.Lamports, core.QuoteOptions{
		IncludeReferrer:         withReferrer,
		PrefundedEscrowLamports: stake.RecordLamports,
	})
	if err != nil {
		return nil, stake, err
	}
	return &QuoteResult{Quote: q, Pool: state}, stake, nil
}

// UnstakeQuoteForLamports quotes a stake account holding lamports whose record
// does not exist yet.
func (r *Reserve) UnstakeQuoteForLamports(ctx context.Context, lamports uint64, withReferrer bool) (*QuoteResult, error) {
	result, err := UnstakeQuoteForLamports(ctx, r.rpcClient, r.engine, r.accounts, r.commitment, lamports, withReferrer)
	r.logQuote("lamports", result, err)
	return result, err
}

func UnstakeQuoteForLamports(
	ctx context.Context,
	rpcClient *rpc.Client,
	engine core.Engine,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	lamports uint64,
	withReferrer bool,
) (*QuoteResult, error) {
	state, err := FetchPoolState(ctx, rpcClient, accounts, commitment)
	if err != nil {
		return nil, err
	}
	q, err := engine.Quote(state.Liquidity(), state.Fee.Fee, state.SplitRatios(), lamports, core.QuoteOptions{IncludeReferrer: withReferrer})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: q, Pool: state}, nil
}

// UnstakeQuoteForNet finds the stake account size that pays out net lamports.
func (r *Reserve) UnstakeQuoteForNet(ctx context.Context, net uint64, withReferrer bool) (*QuoteResult, error) {
	result, err := UnstakeQuoteForNet(ctx, r.rpcClient, r.engine, r.accounts, r.commitment, net, withReferrer)
	r.logQuote("net", result, err)
	return result, err
}

func UnstakeQuoteForNet(
	ctx context.Context,
	rpcClient *rpc.Client,
	engine core.Engine,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	net uint64,
	withReferrer bool,
) (*QuoteResult, error) {
	state, err := FetchPoolState(ctx, rpcClient, accounts, commitment)
	if err != nil {
		return nil, err
	}
	q, err := engine.QuoteForNet(state.Liquidity(), state.Fee.Fee, state.SplitRatios(), net, core.QuoteOptions{IncludeReferrer: withReferrer})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: q, Pool: state}, nil
}

func (r *Reserve) logQuote(kind string, result *QuoteResult, err error) {
	switch {
	case err == nil:
		r.logger.Debug().
			Str("kind", kind).
			Uint64("gross", result.Quote.GrossAmount).
			Uint64("net", result.Quote.NetToRedeemer).
			Uint64("fee", result.Quote.Fee.Total()).
			Uint64("slot", result.Pool.Slot).
			Msg("quote")
	case errors.Is(err, core.ErrNotEnoughLiquidity):
		r.logger.Warn().Str("kind", kind).Err(err).Msg("quote rejected")
	case errors.Is(err, core.ErrInternal):
		r.logger.Error().Str("kind", kind).Err(err).Msg("quote failed")
	default:
		r.logger.Warn().Str("kind", kind).Err(err).Msg("quote failed")
	}
}
