// @title           Wallet API
// @version         1.0
// @description     Wallet tracking API: sign-up, sign-in and a per-user ledger of deposits and withdrawals.
// @host            localhost:5000
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/walletmock/wallet-api/internal/api"
	"github.com/walletmock/wallet-api/internal/api/handler"
	"github.com/walletmock/wallet-api/internal/core/ports"
	"github.com/walletmock/wallet-api/internal/core/service"
	"github.com/walletmock/wallet-api/internal/infrastructure/config"
	mongodb "github.com/walletmock/wallet-api/internal/infrastructure/db/mongo"
	redisdb "github.com/walletmock/wallet-api/internal/infrastructure/db/redis"
	"github.com/walletmock/wallet-api/pkg/logger"
)

//go:generate swag init -g main.go -d ./,../../internal/api/handler,../../internal/core/domain -o ../../docs --outputTypes go

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "wallet-api",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongodb.NewUserRepository(db)
	sessions := mongodb.NewSessionRepository(db)
	entries := mongodb.NewEntryRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, sessions, entries); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	var (
		rdb   *goredis.Client
		cache ports.SessionCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		cache = redisdb.NewSessionCache(rdb, cfg.Redis.CacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session cache enabled")
	} else {
		log.Info().Msg("session cache disabled")
	}

	tokens, err := service.NewTokenIssuer(cfg.TokenSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token issuer")
	}

	authService := service.NewAuthService(users, sessions, tokens, cfg.BcryptCost, log)
	identity := service.NewIdentityResolver(sessions, cache, tokens, log)
	walletService := service.NewWalletService(entries, identity, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		WalletService: walletService,
		Readiness:     handler.NewHealthDependenciesHandler(db, rdb).Readiness,
		CORSOrigins:   cfg.CORSOrigins,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
}
