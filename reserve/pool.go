package reserve

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
)

func (r *Reserve) FetchPoolState(ctx context.Context) (*PoolState, error) {
	return FetchPoolState(ctx, r.rpcClient, r.accounts, r.commitment)
}

// FetchPoolState reads pool, fee, protocol fee and SOL reserves in one
// getMultipleAccounts call.
func FetchPoolState(
	ctx context.Context,
	rpcClient *rpc.Client,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
) (*PoolState, error) {
	state, _, err := fetchPoolState(ctx, rpcClient, accounts, commitment)
	return state, err
}

// fetchPoolState also returns the accounts requested through extra, in
// order, nil when missing.
func fetchPoolState(
	ctx context.Context,
	rpcClient *rpc.Client,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	extra ...solana.PublicKey,
) (*PoolState, []*rpc.Account, error) {
	keys := append([]solana.PublicKey{
		accounts.Pool,
		accounts.Fee,
		accounts.ProtocolFee,
		accounts.PoolSolReserves,
	}, extra...)

	outs, err := solanago.GetMultipleAccountInfo(ctx, rpcClient, keys, commitment)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch pool %s: %w", accounts.Pool, err)
	}

	for i, out := range outs.Value[:3] {
		if out == nil {
			return nil, nil, fmt.Errorf("account %s not found", keys[i])
		}
		if !out.Owner.Equals(core.ProgramID) {
			return nil, nil, fmt.Errorf("account %s owned by %s, want %s", keys[i], out.Owner, core.ProgramID)
		}
	}

	state := &PoolState{
		Accounts: accounts,
		Slot:     outs.Context.Slot,
	}
	if state.Pool, err = core.DecodePool(outs.Value[0].Data.GetBinary()); err != nil {
		return nil, nil, fmt.Errorf("decode pool %s: %w", keys[0], err)
	}
	if state.Fee, err = core.DecodeFee(outs.Value[1].Data.GetBinary()); err != nil {
		return nil, nil, fmt.Errorf("decode fee %s: %w", keys[1], err)
	}
	if state.ProtocolFee, err = core.DecodeProtocolFee(outs.Value[2].Data.GetBinary()); err != nil {
		return nil, nil, fmt.Errorf("decode protocol fee %s: %w", keys[2], err)
	}
	// reserves that were never funded read as empty
	if reserves := outs.Value[3]; reserves != nil {
		state.SolReserves = reserves.Lamports
	}
	return state, outs.Value[4:], nil
}

func (r *Reserve) FetchStakeAccountRecords(ctx context.Context) (map[solana.PublicKey]*core.StakeAccountRecord, error) {
	return FetchStakeAccountRecords(ctx, r.rpcClient, r.commitment)
}

// FetchStakeAccountRecords lists every stake account record of the program,
// keyed by record address.
func FetchStakeAccountRecords(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType) (map[solana.PublicKey]*core.StakeAccountRecord, error) {
	opt := solanago.GenProgramAccountFilter(core.StakeAccountRecordDiscriminator, solana.PublicKey{}, 0, commitment)
	outs, err := rpcClient.GetProgramAccountsWithOpts(ctx, core.ProgramID, opt)
	if err != nil {
		return nil, err
	}
	records := make(map[solana.PublicKey]*core.StakeAccountRecord, len(outs))
	for _, out := range outs {
		record, err := core.DecodeStakeAccountRecord(out.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode stake account record %s: %w", out.Pubkey, err)
		}
		records[out.Pubkey] = record
	}
	return records, nil
}
