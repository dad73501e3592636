package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/cache"
)

func newMemoryCache(t *testing.T) cache.Client {
	c, err := cache.New(cache.Config{Adapter: cache.MemoryAdapter, Logger: zap.NewNop()})
	require.NoError(t, err)
	return c
}

func TestRateSource_CacheHit(t *testing.T) {
	c := newMemoryCache(t)
	require.NoError(t, c.UpdateRate(context.Background(), PairBTCUSD, decimal.NewFromInt(61000), time.Minute))
	fc := &fakeClient{}

	r := NewRateSource(RateSourceConfig{Cache: c, Client: fc, Logger: zap.NewNop()})
	rate, approximate := r.BTCUSD(context.Background())
	assert.False(t, approximate)
	assert.True(t, rate.Equal(decimal.NewFromInt(61000)))
	assert.Equal(t, 0, fc.count("price"))
}

func TestRateSource_MissRefreshes(t *testing.T) {
	c := newMemoryCache(t)
	fc := &fakeClient{
		simplePrice: func(ctx context.Context, id, vs string) (float64, error) {
			assert.Equal(t, "bitcoin", id)
			assert.Equal(t, "usd", vs)
			return 64250.5, nil
		},
	}
	r := NewRateSource(RateSourceConfig{Cache: c, Client: fc, TTL: time.Minute})

	rate, approximate := r.BTCUSD(context.Background())
	assert.False(t, approximate)
	assert.Equal(t, "64250.5", rate.String())

	cached, err := c.Rate(context.Background(), PairBTCUSD)
	require.NoError(t, err)
	assert.True(t, cached.Equal(rate))

	_, _ = r.BTCUSD(context.Background())
	assert.Equal(t, 1, fc.count("price"))
}

func TestRateSource_Fallback(t *testing.T) {
	fc := &fakeClient{
		simplePrice: func(ctx context.Context, id, vs string) (float64, error) {
			return 0, errors.New("upstream down")
		},
	}
	r := NewRateSource(RateSourceConfig{Cache: newMemoryCache(t), Client: fc, Fallback: decimal.NewFromInt(42000)})

	rate, approximate := r.BTCUSD(context.Background())
	assert.True(t, approximate)
	assert.True(t, rate.Equal(decimal.NewFromInt(42000)))

	r = NewRateSource(RateSourceConfig{})
	rate, approximate = r.BTCUSD(context.Background())
	assert.True(t, approximate)
	assert.True(t, rate.Equal(decimal.NewFromInt(DefaultFallbackBTCUSD)))
}

func TestWatchRate(t *testing.T) {
	c := newMemoryCache(t)
	fc := &fakeClient{
		simplePrice: func(ctx context.Context, id, vs string) (float64, error) {
			return 65000, nil
		},
	}
	r := NewRateSource(RateSourceConfig{Cache: c, Client: fc})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		WatchRate(ctx, r, 10*time.Millisecond, zap.NewNop())
	}()

	require.Eventually(t, func() bool { return fc.count("price") >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	rate, err := c.Rate(context.Background(), PairBTCUSD)
	require.NoError(t, err)
	assert.Equal(t, "65000", rate.String())
}

func TestRateSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fc := &fakeClient{
		simplePrice: func(ctx context.Context, id, vs string) (float64, error) {
			once.Do(func() { close(started) })
			<-release
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			return 63000, nil
		},
	}
	r := NewRateSource(RateSourceConfig{Cache: newMemoryCache(t), Client: fc})

	ctxA, cancelA := context.WithCancel(context.Background())
	doneA := make(chan bool)
	go func() {
		_, approximate := r.BTCUSD(ctxA)
		doneA <- approximate
	}()
	<-started

	type result struct {
		rate        decimal.Decimal
		approximate bool
	}
	doneB := make(chan result)
	go func() {
		rate, approximate := r.BTCUSD(context.Background())
		doneB <- result{rate, approximate}
	}()

	cancelA()
	assert.True(t, <-doneA)
	close(release)

	b := <-doneB
	assert.False(t, b.approximate)
	assert.Equal(t, "63000", b.rate.String())
}
