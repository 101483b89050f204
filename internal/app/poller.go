package app

import (
	"context"
	"log"
	"time"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// healthFetcher is the one API operation the poller needs.
type healthFetcher interface {
	FetchHealth(ctx context.Context) (*api.Health, error)
}

// StartPoller launches a background goroutine that refreshes the health
// store at a fixed cadence. Consecutive failures stretch the interval
// so an unreachable or sleeping server is not hammered; the production
// host cold-starts and can take tens of seconds to answer. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client healthFetcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if refresh(ctx, store, client) {
				failures = 0
			} else {
				failures++
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(interval, failures)):
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff. Zero failures yields the base interval.
func calculateBackoff(base time.Duration, failures int) time.Duration {
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, client healthFetcher) bool {
	health, err := client.FetchHealth(ctx)
	if err != nil {
		store.Update(nil, err)
		if ctx.Err() == nil {
			log.Printf("health poll failed: %v", err)
		}
		return false
	}
	store.Update(health, nil)
	return true
}
