// Package cache
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

type entry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// Memory is the single-process adapter used when no redis is configured.
type Memory struct {
	cfg Config
	now func() time.Time

	mu     sync.RWMutex
	rates  map[string]entry
	status *types.ServerStatus

	logger *zap.Logger
}

func newMemory(cfg Config) *Memory {
	return &Memory{
		cfg:    cfg,
		now:    time.Now,
		rates:  make(map[string]entry),
		logger: cfg.Logger.With(zap.String("cache", "memory")),
	}
}

func (m *Memory) UpdateRate(ctx context.Context, pair string, rate decimal.Decimal, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.cfg.DefaultExpiredTime
	}
	e := entry{rate: rate}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.rates[pair] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Rate(ctx context.Context, pair string) (decimal.Decimal, error) {
	m.mu.RLock()
	e, ok := m.rates[pair]
	m.mu.RUnlock()
	if !ok {
		return decimal.Zero, ErrMiss
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		return decimal.Zero, ErrMiss
	}
	return e.rate, nil
}

func (m *Memory) ServerStatus(ctx context.Context) (*types.ServerStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status == nil {
		return nil, ErrMiss
	}
	s := *m.status
	return &s, nil
}

func (m *Memory) UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error {
	s := *serverStatus
	m.mu.Lock()
	m.status = &s
	m.mu.Unlock()
	return nil
}
