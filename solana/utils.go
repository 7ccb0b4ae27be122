package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultCommitment is used when a caller passes an empty commitment.
const DefaultCommitment = rpc.CommitmentConfirmed

func commitmentOrDefault(commitment rpc.CommitmentType) rpc.CommitmentType {
	if commitment == "" {
		return DefaultCommitment
	}
	return commitment
}

// ParseCommitment accepts the three commitment levels understood by the RPC.
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(s); c {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return c, nil
	case "":
		return DefaultCommitment, nil
	default:
		return "", fmt.Errorf("unknown commitment %q", s)
	}
}

// GetAccountInfo returns nil, nil when the account does not exist.
func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.Account, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitmentOrDefault(commitment),
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Value, nil
}

// GetMultipleAccountInfo fetches accounts in one round trip. Missing accounts
// are nil entries at their request index.
func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetMultipleAccountsResult, error) {
	out, err := rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{
		Commitment: commitmentOrDefault(commitment),
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Value) != len(accounts) {
		return nil, fmt.Errorf("requested %d accounts, got %d", len(accounts), len(out.Value))
	}
	return out, nil
}

// GenProgramAccountFilter matches accounts that start with discriminator and,
// when owner is set, carry owner at offset. The zero key, which is also the
// system program id, disables the owner filter.
func GenProgramAccountFilter(discriminator [8]byte, owner solana.PublicKey, offset uint64, commitment rpc.CommitmentType) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitmentOrDefault(commitment),
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  discriminator[:],
				},
			},
		},
	}
	if owner.IsZero() {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: offset,
			Bytes:  owner[:],
		},
	})
	return opt
}

// PrepareTokenATA returns owner's associated token account for tokenMint and
// appends its create instruction when the account is missing. An existing
// account is returned decoded.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	commitment rpc.CommitmentType,
	instructions *[]solana.Instruction,
) (solana.PublicKey, *Account, error) {
	tokenATA, _, err := solana.FindAssociatedTokenAddress(owner, tokenMint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	exists, err := GetAccountInfo(ctx, rpcClient, tokenATA, commitment)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	if exists == nil {
		*instructions = append(*instructions, NewCreateATAInstruction(payer, owner, tokenMint))
		return tokenATA, nil, nil
	}

	account, err := new(AccountLayout).Decode(exists.Data.GetBinary())
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("decode token account %s: %w", tokenATA, err)
	}
	account.Address = tokenATA
	return tokenATA, account, nil
}
