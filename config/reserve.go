package config

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
)

type ReserveConfig struct {
	RPCUrl     string
	Commitment rpc.CommitmentType
	Pool       solana.PublicKey
	// EscrowRent is the stake account record rent paid from reserves.
	EscrowRent uint64
}

func (r *ReserveConfig) Key() string {
	return RESERVE_CONFIG_KEY
}

func (r *ReserveConfig) Load() error {
	var err error
	r.RPCUrl = getEnvOrDefault("RPC_URL", rpc.MainNetBeta_RPC)

	if r.Commitment, err = solanago.ParseCommitment(getEnvOrDefault("RPC_COMMITMENT", string(solanago.DefaultCommitment))); err != nil {
		return fmt.Errorf("RPC_COMMITMENT: %w", err)
	}
	if r.Pool, err = solana.PublicKeyFromBase58(getEnvOrDefault("RESERVE_POOL", core.MainnetPool.String())); err != nil {
		return fmt.Errorf("RESERVE_POOL: %w", err)
	}
	if r.EscrowRent, err = strconv.ParseUint(getEnvOrDefault("ESCROW_RENT_LAMPORTS", strconv.FormatUint(core.StakeAccountRecordRent, 10)), 10, 64); err != nil {
		return fmt.Errorf("ESCROW_RENT_LAMPORTS: %w", err)
	}
	return r.Validate()
}

func (r *ReserveConfig) Validate() error {
	if r.RPCUrl == "" {
		return fmt.Errorf("invalid reserve config: empty rpc url")
	}
	if r.Pool.IsZero() {
		return fmt.Errorf("invalid reserve config: empty pool")
	}
	if _, err := solanago.ParseCommitment(string(r.Commitment)); err != nil {
		return fmt.Errorf("invalid reserve config: %w", err)
	}
	return nil
}

// PoolAccounts returns the mainnet constants for the mainnet pool and derives
// them otherwise.
func (r *ReserveConfig) PoolAccounts() (core.PoolAccounts, error) {
	if r.Pool.Equals(core.MainnetPool) {
		return core.MainnetPoolAccounts(), nil
	}
	return core.DerivePoolAccounts(r.Pool)
}
