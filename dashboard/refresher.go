// Package dashboard
package dashboard

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// WatchRate keeps the cached BTC/USD rate warm until ctx is done.
func WatchRate(ctx context.Context, source *RateSource, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	lgr := logger.With(zap.String("service", "rate_watcher"))
	refresh := func() {
		retry := backoff.NewExponentialBackOff()
		retry.InitialInterval = time.Second
		retry.MaxElapsedTime = interval / 2
		op := func() error {
			_, err := source.Refresh(ctx)
			return err
		}
		if err := backoff.RetryNotify(op, backoff.WithContext(retry, ctx), func(err error, d time.Duration) {
			lgr.Debug("rate refresh failed, retrying", zap.Error(err), zap.Duration("in", d))
		}); err != nil {
			lgr.Warn("cannot refresh rate", zap.Error(err))
		}
	}

	refresh()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			refresh()
		}
	}
}
