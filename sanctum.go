package sanctum

import (
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve"
)

// NewReserveClient creates a new unstake reserve client, mainnet pool by
// default.
//
// Example:
//
// reserveClient := NewReserveClient(rpc.New(rpc.MainNetBeta_RPC))
//
// reserveClient.UnstakeQuote(ctx, stakeAccount, false)
//
// reserveClient.UnstakeWsolInstructions(ctx, unstaker, stakeAccount, nil)
var NewReserveClient = reserve.NewReserve
