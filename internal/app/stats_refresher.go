package app

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/palpiteiro/prediction-league/internal/platform/logging"
	"github.com/palpiteiro/prediction-league/internal/usecase"
)

// statsRefresher periodically recomputes every league's cached totals.
// The single-slot nonblocking pool makes overlapping runs impossible:
// if a refresh is still going when the ticker fires, the tick is
// dropped instead of queued.
type statsRefresher struct {
	pool   *ants.Pool
	ticker *time.Ticker
	done   chan struct{}
}

func startStatsRefresher(statsSvc *usecase.StatsService, interval time.Duration, logger *logging.Logger) (*statsRefresher, error) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	r := &statsRefresher{
		pool:   pool,
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-r.done:
				return
			case <-r.ticker.C:
				err := r.pool.Submit(func() {
					ctx, cancel := context.WithTimeout(context.Background(), interval)
					defer cancel()

					refreshed, err := statsSvc.RefreshAll(ctx)
					if err != nil {
						logger.Warn("background stats refresh failed", "refreshed_leagues", refreshed, "error", err)
						return
					}
					logger.Debug("background stats refresh done", "refreshed_leagues", refreshed)
				})
				if err != nil && !errors.Is(err, ants.ErrPoolOverload) {
					logger.Warn("submit stats refresh task failed", "error", err)
				}
			}
		}
	}()

	return r, nil
}

func (r *statsRefresher) Stop() {
	close(r.done)
	r.ticker.Stop()
	r.pool.Release()
}
