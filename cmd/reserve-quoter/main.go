package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igneous-labs/sanctum-reserve-sdk/config"
	"github.com/igneous-labs/sanctum-reserve-sdk/internal/http"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(conf.General.LogLevel)
	if err != nil {
		log.Error().Err(err).Str("level", conf.General.LogLevel).Msg("invalid log level")
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(level)
	if conf.General.Env == config.DevEnv {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	accounts, err := conf.Reserve.PoolAccounts()
	if err != nil {
		log.Error().Err(err).Msg("failed to derive pool accounts")
		os.Exit(1)
	}

	reserveClient := reserve.NewReserve(
		rpc.New(conf.Reserve.RPCUrl),
		reserve.WithPool(accounts),
		reserve.WithEscrowRent(conf.Reserve.EscrowRent),
		reserve.WithCommitment(conf.Reserve.Commitment),
		reserve.WithLogger(log.Logger),
	)

	svc := http.NewHTTPService(&conf.General, reserveClient)

	errc := make(chan error, 1)
	go func() { errc <- svc.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			os.Exit(1)
		}
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		if err := svc.Stop(); err != nil {
			os.Exit(1)
		}
	}
}
