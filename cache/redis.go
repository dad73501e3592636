// Package cache
package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

const (
	KeyRate         = "#rate#%s"
	KeyServerStatus = "#server#status"
)

type Redis struct {
	cfg    Config
	client *redis.Client

	logger *zap.Logger
}

func (c *Redis) UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error {
	data, err := json.Marshal(serverStatus)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, KeyServerStatus, data, 0).Err(); err != nil {
		return err
	}
	return nil
}

func (c *Redis) ServerStatus(ctx context.Context) (*types.ServerStatus, error) {
	result, err := c.client.Get(ctx, KeyServerStatus).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var serverStatus *types.ServerStatus
	if err := json.Unmarshal([]byte(result), &serverStatus); err != nil {
		return nil, err
	}
	return serverStatus, nil
}

func (c *Redis) Close() error {
	return c.client.Close()
}
