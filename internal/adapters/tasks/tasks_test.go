package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu        sync.Mutex
	completed map[string][]error
}

func (m *recordingMetrics) RegistrationAttempt(string)                        {}
func (m *recordingMetrics) CacheRefreshed(string, bool)                       {}
func (m *recordingMetrics) ObserveRequest(string, string, int, time.Duration) {}
func (m *recordingMetrics) TaskCompleted(task string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed == nil {
		m.completed = map[string][]error{}
	}
	m.completed[task] = append(m.completed[task], err)
}

func (m *recordingMetrics) results(task string) []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.completed[task]...)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestDispatcher(cfg Config) (*Dispatcher, *recordingMetrics) {
	cfg.BackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	m := &recordingMetrics{}
	return NewDispatcher(cfg, m, discardLogger()), m
}

// start runs d until the test ends.
func start(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func TestDispatcher_DeliversTasks(t *testing.T) {
	d, m := newTestDispatcher(Config{Workers: 3, QueueSize: 10, MaxAttempts: 3})
	var got sync.Map
	d.Register(domain.TaskStoreFeaturedSpeaker, func(_ context.Context, task domain.Task) error {
		got.Store(task.Params[domain.TaskParamSpeakerKey], true)
		return nil
	})
	start(t, d)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, d.Enqueue(context.Background(), domain.Task{
			Name:   domain.TaskStoreFeaturedSpeaker,
			Params: map[string]string{domain.TaskParamSpeakerKey: k},
		}))
	}
	assert.Eventually(t, func() bool { return len(m.results(domain.TaskStoreFeaturedSpeaker)) == 3 }, time.Second, 5*time.Millisecond)
	for _, k := range []string{"a", "b", "c"} {
		_, ok := got.Load(k)
		assert.True(t, ok, k)
	}
}

func TestDispatcher_RetriesTransientFailures(t *testing.T) {
	d, m := newTestDispatcher(Config{Workers: 1, QueueSize: 1, MaxAttempts: 3})
	var calls atomic.Int32
	d.Register(domain.TaskSendConfirmationEmail, func(context.Context, domain.Task) error {
		if calls.Add(1) < 3 {
			return errors.New("smtp unavailable")
		}
		return nil
	})
	start(t, d)

	require.NoError(t, d.Enqueue(context.Background(), domain.Task{Name: domain.TaskSendConfirmationEmail}))
	assert.Eventually(t, func() bool { return len(m.results(domain.TaskSendConfirmationEmail)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
	assert.NoError(t, m.results(domain.TaskSendConfirmationEmail)[0])
}

func TestDispatcher_GivesUp(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCalls int32
	}{
		{name: "after max attempts", err: errors.New("boom"), wantCalls: 2},
		{name: "immediately on not found", err: domain.ErrNotFound, wantCalls: 1},
		{name: "immediately on invalid input", err: domain.ErrInvalidInput, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, m := newTestDispatcher(Config{Workers: 1, QueueSize: 1, MaxAttempts: 2})
			var calls atomic.Int32
			d.Register("job", func(context.Context, domain.Task) error {
				calls.Add(1)
				return tt.err
			})
			start(t, d)

			require.NoError(t, d.Enqueue(context.Background(), domain.Task{Name: "job"}))
			assert.Eventually(t, func() bool { return len(m.results("job")) == 1 }, time.Second, 5*time.Millisecond)
			assert.Equal(t, tt.wantCalls, calls.Load())
			assert.True(t, errors.Is(m.results("job")[0], tt.err))
		})
	}
}

func TestDispatcher_RecoversFromPanics(t *testing.T) {
	d, m := newTestDispatcher(Config{Workers: 1, QueueSize: 1, MaxAttempts: 1})
	d.Register("job", func(context.Context, domain.Task) error { panic("nil map") })
	start(t, d)

	require.NoError(t, d.Enqueue(context.Background(), domain.Task{Name: "job"}))
	assert.Eventually(t, func() bool { return len(m.results("job")) == 1 }, time.Second, 5*time.Millisecond)
	assert.ErrorContains(t, m.results("job")[0], "panic")
}

func TestDispatcher_UnknownTask(t *testing.T) {
	d, m := newTestDispatcher(Config{Workers: 1, QueueSize: 1})
	start(t, d)

	require.NoError(t, d.Enqueue(context.Background(), domain.Task{Name: "nobody"}))
	assert.Eventually(t, func() bool { return len(m.results("nobody")) == 1 }, time.Second, 5*time.Millisecond)
	assert.Error(t, m.results("nobody")[0])
}

func TestDispatcher_EnqueueWhenFull(t *testing.T) {
	d, _ := newTestDispatcher(Config{Workers: 1, QueueSize: 1})
	require.NoError(t, d.Enqueue(context.Background(), domain.Task{Name: "a"}))
	err := d.Enqueue(context.Background(), domain.Task{Name: "b"})
	assert.True(t, errors.Is(err, ErrQueueFull))
}

func TestRunPeriodic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- RunPeriodic(ctx, "announcement", 5*time.Millisecond, discardLogger(), func(context.Context) error {
			calls.Add(1)
			return errors.New("ignored")
		})
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
