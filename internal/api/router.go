package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/walletmock/wallet-api/internal/api/handler"
	"github.com/walletmock/wallet-api/internal/api/middleware"
	"github.com/walletmock/wallet-api/internal/core/ports"

	_ "github.com/walletmock/wallet-api/docs"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService   ports.AuthService
	WalletService ports.WalletService
	// Readiness probes the backing stores; nil leaves /health/ready unregistered.
	Readiness   echo.HandlerFunc
	CORSOrigins []string
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// Prometheus default registry, where the domain metrics also live.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: deps.CORSOrigins}))
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "wallet",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	walletHandler := handler.NewWalletHandler(deps.WalletService)

	// --- Auth routes ---
	e.POST("/sign-up", authHandler.Register)
	e.POST("/sign-in", authHandler.Login)

	// --- Wallet routes (bearer token required) ---
	bearer := middleware.Bearer()
	e.POST("/addEntry", walletHandler.Deposit, bearer)
	e.POST("/SubtractEntry", walletHandler.Withdraw, bearer)
	e.GET("/MainPage", walletHandler.List, bearer)
	e.GET("/wallet", walletHandler.List, bearer)

	// --- Operations ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
