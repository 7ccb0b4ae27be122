package reserve

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reserve quotes and builds unstake instructions against one pool.
type Reserve struct {
	rpcClient  *rpc.Client
	accounts   core.PoolAccounts
	engine     core.Engine
	commitment rpc.CommitmentType
	baseLogger zerolog.Logger
	logger     *ServiceLogger
}

func NewReserve(
	rpcClient *rpc.Client,
	opts ...Option,
) *Reserve {
	o := &Reserve{
		rpcClient:  rpcClient,
		accounts:   core.MainnetPoolAccounts(),
		engine:     core.DefaultEngine,
		commitment: solanago.DefaultCommitment,
		baseLogger: log.Logger,
	}
	for _, fn := range opts {
		fn(o)
	}
	o.logger = NewServiceLoggerFrom(o.baseLogger, o)
	return o
}

func (r *Reserve) ID() string {
	return "reserve:" + r.accounts.Pool.String()
}

func (r *Reserve) PoolAccounts() core.PoolAccounts {
	return r.accounts
}

func (r *Reserve) Engine() core.Engine {
	return r.engine
}

type Option func(*Reserve)

// WithPool targets a pool other than mainnet. See core.DerivePoolAccounts.
func WithPool(accounts core.PoolAccounts) Option {
	return func(r *Reserve) {
		r.accounts = accounts
	}
}

func WithEscrowRent(lamports uint64) Option {
	return func(r *Reserve) {
		r.engine = core.NewEngine(lamports)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reserve) {
		r.baseLogger = logger
	}
}

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(r *Reserve) {
		r.commitment = commitment
	}
}
