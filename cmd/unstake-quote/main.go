package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igneous-labs/sanctum-reserve-sdk/config"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve"
)

type output struct {
	Pool         string               `json:"pool"`
	Slot         uint64               `json:"slot"`
	StakeAccount string               `json:"stakeAccount,omitempty"`
	GrossAmount  uint64               `json:"grossAmount"`
	NetAmount    uint64               `json:"netAmount"`
	PoolFee      uint64               `json:"poolFee"`
	ProtocolFee  uint64               `json:"protocolFee"`
	ReferrerFee  uint64               `json:"referrerFee"`
	Summary      reserve.QuoteSummary `json:"summary"`
}

func main() {
	var (
		stakeAccount = flag.String("stake", "", "stake account to quote")
		lamports     = flag.Uint64("lamports", 0, "quote a stake account holding this many lamports")
		net          = flag.Uint64("net", 0, "quote the stake needed to receive this many lamports")
		referrer     = flag.Bool("referrer", false, "include the referrer fee share")
		timeout      = flag.Duration("timeout", 30*time.Second, "rpc timeout")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(*stakeAccount, *lamports, *net, *referrer, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stakeAccount string, lamports, net uint64, referrer bool, timeout time.Duration) error {
	conf, err := config.Load()
	if err != nil {
		return err
	}
	accounts, err := conf.Reserve.PoolAccounts()
	if err != nil {
		return err
	}
	reserveClient := reserve.NewReserve(
		rpc.New(conf.Reserve.RPCUrl),
		reserve.WithPool(accounts),
		reserve.WithEscrowRent(conf.Reserve.EscrowRent),
		reserve.WithCommitment(conf.Reserve.Commitment),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		result *reserve.QuoteResult
		out    output
	)
	switch {
	case stakeAccount != "":
		pk, err := solana.PublicKeyFromBase58(stakeAccount)
		if err != nil {
			return fmt.Errorf("invalid stake account: %w", err)
		}
		var stake *reserve.StakeAccount
		if result, stake, err = reserveClient.UnstakeQuote(ctx, pk, referrer); err != nil {
			return err
		}
		out.StakeAccount = stake.Address.String()
	case lamports > 0:
		if result, err = reserveClient.UnstakeQuoteForLamports(ctx, lamports, referrer); err != nil {
			return err
		}
	case net > 0:
		if result, err = reserveClient.UnstakeQuoteForNet(ctx, net, referrer); err != nil {
			return err
		}
	default:
		return errors.New("one of -stake, -lamports or -net is required")
	}

	out.Pool = accounts.Pool.String()
	out.Slot = result.Pool.Slot
	out.GrossAmount = result.Quote.GrossAmount
	out.NetAmount = result.Quote.NetToRedeemer
	out.PoolFee = result.Quote.Fee.PoolShare
	out.ProtocolFee = result.Quote.Fee.ProtocolShare
	out.ReferrerFee = result.Quote.Fee.ReferrerShare
	out.Summary = result.Summary()

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

