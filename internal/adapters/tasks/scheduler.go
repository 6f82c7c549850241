package tasks

import (
	"context"
	"log/slog"
	"time"
)

// RunPeriodic calls job once immediately and then every interval until ctx is cancelled.
// Failures are logged and do not stop the schedule.
func RunPeriodic(ctx context.Context, name string, interval time.Duration, logger *slog.Logger, job func(context.Context) error) error {
	log := logger.With("component", "Scheduler", "job", name)
	run := func() {
		if err := job(ctx); err != nil && ctx.Err() == nil {
			log.Error("scheduled job failed", "err", err)
		}
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			run()
		}
	}
}
