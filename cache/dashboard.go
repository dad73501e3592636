// Package cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (c *Redis) UpdateRate(ctx context.Context, pair string, rate decimal.Decimal, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.cfg.DefaultExpiredTime
	}
	if err := c.client.Set(ctx, fmt.Sprintf(KeyRate, pair), rate.String(), ttl).Err(); err != nil {
		c.logger.Warn("cannot set rate", zap.String("pair", pair), zap.Error(err))
		return err
	}
	return nil
}

func (c *Redis) Rate(ctx context.Context, pair string) (decimal.Decimal, error) {
	result, err := c.client.Get(ctx, fmt.Sprintf(KeyRate, pair)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, ErrMiss
		}
		return decimal.Zero, err
	}
	rate, err := decimal.NewFromString(result)
	if err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}
