package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	HEALTHCHECK_TIMER   = 15
	HEALTHCHECK_TIMEOUT = 3 * time.Second
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// MonitorHealth runs check every HEALTHCHECK_TIMER seconds and stores the
// outcome in healthy until ctx is cancelled. The first probe runs at once.
func MonitorHealth(ctx context.Context, name string, check Check, healthy *atomic.Bool) {
	monitorHealth(ctx, name, check, healthy, time.Second*HEALTHCHECK_TIMER)
}

func monitorHealth(ctx context.Context, name string, check Check, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe(ctx, name, check, healthy)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe(ctx, name, check, healthy)
		}
	}
}

func probe(ctx context.Context, name string, check Check, healthy *atomic.Bool) {
	probeCtx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	err := check(probeCtx)
	wasHealthy := healthy.Swap(err == nil)
	if err != nil && wasHealthy {
		slog.Warn("[HealthCheck] Dependency is unhealthy",
			slog.String("dependency", name),
			slog.String("error", err.Error()))
	}
	if err == nil && !wasHealthy {
		slog.Info("[HealthCheck] Dependency recovered",
			slog.String("dependency", name))
	}
}
