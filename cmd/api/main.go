// Package main
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/api"
	"github.com/kardiachain/cryptoverse-backend/cache"
	"github.com/kardiachain/cryptoverse-backend/cfg"
	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/dashboard"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	serviceCfg, err := cfg.New()
	if err != nil {
		panic(err.Error())
	}

	if err := setupSentry(serviceCfg); err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}
	logger.Info("Start API server...", zap.String("mode", serviceCfg.ServerMode))

	defer func() {
		if err := recover(); err != nil {
			logger.Error("cannot recover", zap.Any("panic", err))
		}
		_ = logger.Sync()
	}()

	cacheClient, err := cache.New(cache.Config{
		Adapter:            cache.Adapter(serviceCfg.CacheEngine),
		URL:                serviceCfg.CacheURL,
		DB:                 serviceCfg.CacheDB,
		Password:           serviceCfg.CachePassword,
		IsFlush:            serviceCfg.CacheIsFlush,
		DefaultExpiredTime: serviceCfg.RateExpiredTime,
		Logger:             logger,
	})
	if err != nil {
		logger.Panic("cannot create cache client", zap.Error(err))
	}

	client, err := coingecko.New(coingecko.Config{
		BaseURL: serviceCfg.CoinGeckoURL,
		APIKey:  serviceCfg.CoinGeckoAPIKey,
		Timeout: serviceCfg.DefaultAPITimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Panic("cannot create coingecko client", zap.Error(err))
	}

	rates := dashboard.NewRateSource(dashboard.RateSourceConfig{
		Cache:    cacheClient,
		Client:   client,
		Fallback: serviceCfg.FallbackBTCUSDRate,
		TTL:      serviceCfg.RateExpiredTime,
		Logger:   logger,
	})

	srv := api.NewServer().
		SetLogger(logger).
		SetClient(client).
		SetCache(cacheClient).
		SetRates(rates).
		SetSecret(serviceCfg.HttpRequestSecret).
		SetTimeout(serviceCfg.DefaultAPITimeout).
		SetSearchDelay(serviceCfg.SearchDebounce).
		SetUpstreamURL(serviceCfg.CoinGeckoURL)
	e := api.NewEcho(srv, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dashboard.WatchRate(ctx, rates, serviceCfg.RateRefreshInterval, logger)
	go api.Start(e, serviceCfg.Port, logger)

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("cannot shutdown echo server", zap.Error(err))
	}
	if r, ok := cacheClient.(interface{ Close() error }); ok {
		_ = r.Close()
	}
}

func setupSentry(cfg cfg.DashboardConfig) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	opts := sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.ServerMode,
	}
	return sentry.Init(opts)
}
