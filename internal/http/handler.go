package http

import (
	"context"
	"errors"
	gohttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igneous-labs/sanctum-reserve-sdk/config"
	"github.com/igneous-labs/sanctum-reserve-sdk/internal/http/httputil"
	"github.com/igneous-labs/sanctum-reserve-sdk/internal/http/middlewares"
)

const (
	API_VERSION  = "v1"
	HTTP_SERVICE = "http-service"
)

type HTTPService struct {
	server *gohttp.Server
	conf   *config.GeneralConfig
	logger zerolog.Logger

	handlers []httputil.IHttpHandler
}

func NewHTTPService(conf *config.GeneralConfig, quoter Quoter) *HTTPService {
	return &HTTPService{
		conf:   conf,
		logger: log.With().Str("service", HTTP_SERVICE).Logger(),
		handlers: []httputil.IHttpHandler{
			NewQuoteHandler(quoter),
		},
	}
}

func (svc *HTTPService) ID() string {
	return HTTP_SERVICE
}

// Router builds the gin engine serving the API.
func (svc *HTTPService) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(svc.logger))
	r.Use(middlewares.Metrics("/metrics"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(gohttp.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pub := r.Group("api").Group(API_VERSION)
	for _, h := range svc.handlers {
		h.SetRoutes(pub.Group(h.Root()))
	}
	return r
}

// Start blocks until the server is stopped.
func (svc *HTTPService) Start() error {
	svc.server = &gohttp.Server{
		Addr:              svc.conf.Addr(),
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	svc.logger.Info().Str("host", svc.conf.HTTPHost).Str("port", svc.conf.HTTPPort).Msg("http server started")

	if err := svc.server.ListenAndServe(); err != nil && !errors.Is(err, gohttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *HTTPService) Stop() error {
	if svc.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := svc.server.Shutdown(ctx); err != nil {
		svc.logger.Error().Err(err).Msg("failed to stop http server")
		return err
	}
	svc.logger.Info().Msg("http server stopped gracefully")
	return nil
}
