// Package tasks runs deferred work in-process: a bounded queue drained by a worker pool,
// and a ticker-driven scheduler for periodic jobs.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"
)

// ErrQueueFull is returned by Enqueue when the buffer has no room.
var ErrQueueFull = errors.New("task queue is full")

// Config sizes the dispatcher.
type Config struct {
	Workers     int
	QueueSize   int
	MaxAttempts uint
	// BackOff builds the delay policy for one task's retries. Defaults to exponential.
	BackOff func() backoff.BackOff
}

// Dispatcher delivers tasks at least once to the handler registered for their name,
// retrying failed runs with backoff up to MaxAttempts.
type Dispatcher struct {
	queue    chan domain.Task
	cfg      Config
	mu       sync.RWMutex
	handlers map[string]domain.TaskHandler
	metrics  domain.Metrics
	log      *slog.Logger
}

func NewDispatcher(cfg Config, metrics domain.Metrics, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BackOff == nil {
		cfg.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 30 * time.Second
			return b
		}
	}
	return &Dispatcher{
		queue:    make(chan domain.Task, cfg.QueueSize),
		cfg:      cfg,
		handlers: make(map[string]domain.TaskHandler),
		metrics:  metrics,
		log:      logger.With("component", "TaskDispatcher"),
	}
}

// Register binds h to tasks named name, replacing any previous handler.
func (d *Dispatcher) Register(name string, h domain.TaskHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Enqueue never blocks; a full buffer drops the task and returns ErrQueueFull.
func (d *Dispatcher) Enqueue(ctx context.Context, t domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case d.queue <- t:
		return nil
	default:
		d.log.Error("dropping task", "task", t.Name, "queue_size", d.cfg.QueueSize)
		return fmt.Errorf("%w: %s", ErrQueueFull, t.Name)
	}
}

// Run starts the workers and blocks until ctx is cancelled. Tasks still queued at that point are dropped.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.cfg.Workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case t := <-d.queue:
					d.handle(ctx, t)
				}
			}
		})
	}
	err := g.Wait()
	if n := len(d.queue); n > 0 {
		d.log.Warn("dispatcher stopped with pending tasks", "pending", n)
	}
	return err
}

func (d *Dispatcher) handle(ctx context.Context, t domain.Task) {
	d.mu.RLock()
	h, ok := d.handlers[t.Name]
	d.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("no handler registered for task %q", t.Name)
		d.log.Error("task dropped", "task", t.Name, "err", err)
		d.metrics.TaskCompleted(t.Name, err)
		return
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := runSafely(ctx, h, t)
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(d.cfg.BackOff()),
		backoff.WithMaxTries(d.cfg.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			d.log.Warn("task failed, retrying", "task", t.Name, "attempt", attempt, "retry_in", next, "err", err)
		}),
	)
	d.metrics.TaskCompleted(t.Name, err)
	if err != nil {
		d.log.Error("task failed", "task", t.Name, "attempts", attempt, "err", err)
		return
	}
	d.log.Debug("task completed", "task", t.Name, "attempts", attempt)
}

func runSafely(ctx context.Context, h domain.TaskHandler, t domain.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task handler panic: %v", r)
		}
	}()
	return h(ctx, t)
}
