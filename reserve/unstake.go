package reserve

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
)

// UnstakeInstruction quotes stakeAccount and builds the Unstake instruction
// paying SOL to destination. A nil referrer skips the referrer share.
func (r *Reserve) UnstakeInstruction(
	ctx context.Context,
	unstaker solana.PublicKey,
	stakeAccount solana.PublicKey,
	destination solana.PublicKey,
	referrer *solana.PublicKey,
) (solana.Instruction, *QuoteResult, error) {
	return UnstakeInstruction(ctx, r.rpcClient, r.engine, r.accounts, r.commitment, unstaker, stakeAccount, destination, referrer)
}

func UnstakeInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	engine core.Engine,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	unstaker solana.PublicKey,
	stakeAccount solana.PublicKey,
	destination solana.PublicKey,
	referrer *solana.PublicKey,
) (solana.Instruction, *QuoteResult, error) {
	result, stake, err := UnstakeQuote(ctx, rpcClient, engine, accounts, commitment, stakeAccount, referrer != nil)
	if err != nil {
		return nil, nil, err
	}

	ix := core.NewUnstakeInstruction(unstakeAccounts(result.Pool, stake, unstaker, destination), referrer)
	return ix, result, nil
}

// UnstakeWsolInstructions is UnstakeInstruction paying wrapped SOL into the
// unstaker's associated token account, created first when missing.
func (r *Reserve) UnstakeWsolInstructions(
	ctx context.Context,
	unstaker solana.PublicKey,
	stakeAccount solana.PublicKey,
	referrer *solana.PublicKey,
) ([]solana.Instruction, *QuoteResult, error) {
	return UnstakeWsolInstructions(ctx, r.rpcClient, r.engine, r.accounts, r.commitment, unstaker, stakeAccount, referrer)
}

func UnstakeWsolInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	engine core.Engine,
	accounts core.PoolAccounts,
	commitment rpc.CommitmentType,
	unstaker solana.PublicKey,
	stakeAccount solana.PublicKey,
	referrer *solana.PublicKey,
) ([]solana.Instruction, *QuoteResult, error) {
	result, stake, err := UnstakeQuote(ctx, rpcClient, engine, accounts, commitment, stakeAccount, referrer != nil)
	if err != nil {
		return nil, nil, err
	}

	var instructions []solana.Instruction

	wsolAccount, existing, err := solanago.PrepareTokenATA(ctx, rpcClient, unstaker, solana.WrappedSol, unstaker, commitment, &instructions)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil && (!existing.IsNative || existing.IsFrozen()) {
		return nil, nil, fmt.Errorf("wsol account %s cannot receive unstaked SOL", wsolAccount)
	}

	ix := core.NewUnstakeWsolInstruction(core.UnstakeWsolAccounts{
		UnstakeAccounts: unstakeAccounts(result.Pool, stake, unstaker, wsolAccount),
	}.WithConsts(), referrer)

	return append(instructions, ix), result, nil
}

func unstakeAccounts(state *PoolState, stake *StakeAccount, unstaker, destination solana.PublicKey) core.UnstakeAccounts {
	accounts := core.UnstakeAccounts{
		Unstaker:           unstaker,
		Stake:              stake.Address,
		Destination:        destination,
		StakeAccountRecord: stake.Record,
	}
	return accounts.WithPoolAccounts(state.Accounts, state.ProtocolFee.Destination).WithConsts()
}
