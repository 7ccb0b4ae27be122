package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/igneous-labs/sanctum-reserve-sdk/internal/http/httputil"
	"github.com/igneous-labs/sanctum-reserve-sdk/internal/metrics"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
)

// Quoter is the part of reserve.Reserve the API serves.
type Quoter interface {
	UnstakeQuote(ctx context.Context, stakeAccount solana.PublicKey, withReferrer bool) (*reserve.QuoteResult, *reserve.StakeAccount, error)
	UnstakeQuoteForLamports(ctx context.Context, lamports uint64, withReferrer bool) (*reserve.QuoteResult, error)
	UnstakeQuoteForNet(ctx context.Context, net uint64, withReferrer bool) (*reserve.QuoteResult, error)
}

type QuoteHandler struct {
	quoter Quoter
}

func NewQuoteHandler(quoter Quoter) *QuoteHandler {
	return &QuoteHandler{quoter: quoter}
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup) {
	pub.GET("", h.getStakeAccountQuote)
	pub.GET("/lamports", h.getLamportsQuote)
	pub.GET("/net", h.getNetQuote)
}

func (h *QuoteHandler) Root() string {
	return "/quote"
}

type StakeAccountQuoteRequest struct {
	StakeAccount string `form:"stakeAccount" binding:"required"`
	Referrer     bool   `form:"referrer"`
}

type AmountQuoteRequest struct {
	// Amount in lamports
	Amount   string `form:"amount" binding:"required"`
	Referrer bool   `form:"referrer"`
}

type QuoteFeeResponse struct {
	Pool     string `json:"pool"`
	Protocol string `json:"protocol"`
	Referrer string `json:"referrer"`
	Total    string `json:"total"`
}

// QuoteResponse carries lamport amounts as decimal strings.
type QuoteResponse struct {
	GrossAmount  string               `json:"grossAmount"`
	NetAmount    string               `json:"netAmount"`
	Fee          QuoteFeeResponse     `json:"fee"`
	Summary      reserve.QuoteSummary `json:"summary"`
	Slot         uint64               `json:"slot"`
	StakeAccount string               `json:"stakeAccount,omitempty"`
	// RecordLamports is the escrow already held by the stake account record.
	RecordLamports string `json:"recordLamports,omitempty"`
}

func newQuoteResponse(result *reserve.QuoteResult) QuoteResponse {
	q := result.Quote
	return QuoteResponse{
		GrossAmount: strconv.FormatUint(q.GrossAmount, 10),
		NetAmount:   strconv.FormatUint(q.NetToRedeemer, 10),
		Fee: QuoteFeeResponse{
			Pool:     strconv.FormatUint(q.Fee.PoolShare, 10),
			Protocol: strconv.FormatUint(q.Fee.ProtocolShare, 10),
			Referrer: strconv.FormatUint(q.Fee.ReferrerShare, 10),
			Total:    strconv.FormatUint(q.Fee.Total(), 10),
		},
		Summary: result.Summary(),
		Slot:    result.Pool.Slot,
	}
}

func (h *QuoteHandler) getStakeAccountQuote(c *gin.Context) {
	const kind = "stake_account"
	start := time.Now()

	var req StakeAccountQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, kind, "invalid query parameters: "+err.Error())
		return
	}
	stakeAccount, err := solana.PublicKeyFromBase58(req.StakeAccount)
	if err != nil {
		h.badRequest(c, kind, "invalid stakeAccount address")
		return
	}

	result, stake, err := h.quoter.UnstakeQuote(c.Request.Context(), stakeAccount, req.Referrer)
	if err != nil {
		h.quoteError(c, kind, start, err)
		return
	}

	resp := newQuoteResponse(result)
	resp.StakeAccount = stake.Address.String()
	resp.RecordLamports = strconv.FormatUint(stake.RecordLamports, 10)
	h.success(c, kind, start, result, resp)
}

func (h *QuoteHandler) getLamportsQuote(c *gin.Context) {
	h.amountQuote(c, "lamports", h.quoter.UnstakeQuoteForLamports)
}

func (h *QuoteHandler) getNetQuote(c *gin.Context) {
	h.amountQuote(c, "net", h.quoter.UnstakeQuoteForNet)
}

func (h *QuoteHandler) amountQuote(
	c *gin.Context,
	kind string,
	quote func(context.Context, uint64, bool) (*reserve.QuoteResult, error),
) {
	start := time.Now()

	var req AmountQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, kind, "invalid query parameters: "+err.Error())
		return
	}
	amount, err := strconv.ParseUint(req.Amount, 10, 64)
	if err != nil || amount == 0 {
		h.badRequest(c, kind, "invalid amount: must be a positive integer")
		return
	}

	result, err := quote(c.Request.Context(), amount, req.Referrer)
	if err != nil {
		h.quoteError(c, kind, start, err)
		return
	}
	h.success(c, kind, start, result, newQuoteResponse(result))
}

func (h *QuoteHandler) success(c *gin.Context, kind string, start time.Time, result *reserve.QuoteResult, resp QuoteResponse) {
	metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusOK).Inc()
	metrics.QuoteDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.QuoteFeeBps.Observe(result.Summary().FeeBps.InexactFloat64())
	httputil.Success(c, resp)
}

func (h *QuoteHandler) badRequest(c *gin.Context, kind, msg string) {
	metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusBadRequest).Inc()
	httputil.BadRequest(c, msg)
}

func (h *QuoteHandler) quoteError(c *gin.Context, kind string, start time.Time, err error) {
	metrics.QuoteDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, core.ErrNotEnoughLiquidity):
		metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusNotEnoughLiquidity).Inc()
		httputil.UnprocessableEntity(c, err.Error())
	case errors.Is(err, reserve.ErrStakeAccountNotFound):
		metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusBadRequest).Inc()
		httputil.NotFound(c, err.Error())
	case errors.Is(err, reserve.ErrNotStakeAccount):
		metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusBadRequest).Inc()
		httputil.BadRequest(c, err.Error())
	default:
		metrics.QuoteRequests.WithLabelValues(kind, metrics.StatusError).Inc()
		httputil.InternalError(c, err.Error())
	}
}
