// Package cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

type Adapter string

const (
	RedisAdapter  Adapter = "redis"
	MemoryAdapter Adapter = "memory"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Config struct {
	Adapter  Adapter
	URL      string
	DB       int
	Password string

	IsFlush bool

	DefaultExpiredTime time.Duration
	ConnectTimeout     time.Duration

	Logger *zap.Logger
}

type Client interface {
	IDashboard

	ServerStatus(ctx context.Context) (*types.ServerStatus, error)
	UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error
}

// IDashboard holds the conversion rates the dashboard pages read.
type IDashboard interface {
	Rate(ctx context.Context, pair string) (decimal.Decimal, error)
	UpdateRate(ctx context.Context, pair string, rate decimal.Decimal, ttl time.Duration) error
}

func New(cfg Config) (Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	switch cfg.Adapter {
	case RedisAdapter:
		return newRedis(cfg)
	case MemoryAdapter, "":
		return newMemory(cfg), nil
	}
	return nil, errors.New("invalid cache config")
}

func newRedis(cfg Config) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 500 * time.Millisecond
	retry.MaxInterval = 5 * time.Second
	retry.MaxElapsedTime = connectTimeout
	ping := func() error {
		return redisClient.Ping(context.Background()).Err()
	}
	if err := backoff.RetryNotify(ping, retry, func(err error, d time.Duration) {
		cfg.Logger.Warn("cannot reach redis, retrying", zap.Error(err), zap.Duration("in", d))
	}); err != nil {
		_ = redisClient.Close()
		return nil, err
	}
	if cfg.IsFlush {
		if err := flushResult(redisClient.FlushDB(context.Background()).Result()); err != nil {
			_ = redisClient.Close()
			return nil, err
		}
	}

	logger := cfg.Logger.With(zap.String("cache", "redis"))
	client := &Redis{
		client: redisClient,
		logger: logger,
	}
	client.cfg = cfg
	return client, nil
}

// flushResult turns a FLUSHDB reply into an error unless redis answered OK.
func flushResult(msg string, err error) error {
	if err != nil {
		return fmt.Errorf("flush redis: %w", err)
	}
	if msg != "OK" {
		return fmt.Errorf("flush redis: unexpected reply %q", msg)
	}
	return nil
}
