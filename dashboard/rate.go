// Package dashboard
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kardiachain/cryptoverse-backend/cache"
	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
)

const (
	PairBTCUSD = "btc-usd"

	DefaultFallbackBTCUSD = 50000
	DefaultRateTTL        = 10 * time.Minute

	rateFetchTimeout = 15 * time.Second
)

// RateProvider converts exchange volumes quoted in BTC into USD. The flag
// reports that the returned rate is the configured fallback, not a live one.
type RateProvider interface {
	BTCUSD(ctx context.Context) (rate decimal.Decimal, approximate bool)
}

type RateSourceConfig struct {
	Cache    cache.IDashboard
	Client   coingecko.Client
	Fallback decimal.Decimal
	TTL      time.Duration

	Logger *zap.Logger
}

// RateSource reads the BTC/USD rate from cache and refills it from upstream
// on a miss. Concurrent misses share one upstream call.
type RateSource struct {
	cache    cache.IDashboard
	client   coingecko.Client
	fallback decimal.Decimal
	ttl      time.Duration
	group    singleflight.Group

	logger *zap.Logger
}

func NewRateSource(cfg RateSourceConfig) *RateSource {
	if cfg.Fallback.IsZero() {
		cfg.Fallback = decimal.NewFromInt(DefaultFallbackBTCUSD)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultRateTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &RateSource{
		cache:    cfg.Cache,
		client:   cfg.Client,
		fallback: cfg.Fallback,
		ttl:      cfg.TTL,
		logger:   cfg.Logger.With(zap.String("component", "rate")),
	}
}

func (r *RateSource) BTCUSD(ctx context.Context) (decimal.Decimal, bool) {
	lgr := r.logger.With(zap.String("method", "BTCUSD"))
	if r.cache != nil {
		rate, err := r.cache.Rate(ctx, PairBTCUSD)
		if err == nil && rate.IsPositive() {
			return rate, false
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			lgr.Warn("cannot read cached rate", zap.Error(err))
		}
	}
	rate, err := r.Refresh(ctx)
	if err != nil {
		lgr.Warn("using fallback rate", zap.String("fallback", r.fallback.String()), zap.Error(err))
		return r.fallback, true
	}
	return rate, false
}

// Refresh fetches the live rate and stores it in cache. The shared upstream
// call outlives any single caller; ctx only bounds how long this caller waits.
func (r *RateSource) Refresh(ctx context.Context) (decimal.Decimal, error) {
	if r.client == nil {
		return decimal.Zero, types.ErrRateUnavailable
	}
	ch := r.group.DoChan(PairBTCUSD, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rateFetchTimeout)
		defer cancel()
		price, err := r.client.SimplePrice(fetchCtx, "bitcoin", "usd")
		if err != nil {
			return nil, err
		}
		rate := decimal.NewFromFloat(price)
		if !rate.IsPositive() {
			return nil, types.ErrRateUnavailable
		}
		if r.cache != nil {
			if err := r.cache.UpdateRate(fetchCtx, PairBTCUSD, rate, r.ttl); err != nil {
				r.logger.Warn("cannot cache rate", zap.Error(err))
			}
		}
		return rate, nil
	})
	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

// FixedRate always reports the same approximate rate.
type FixedRate decimal.Decimal

func (f FixedRate) BTCUSD(context.Context) (decimal.Decimal, bool) {
	return decimal.Decimal(f), true
}
