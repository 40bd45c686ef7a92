package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
)

// Resetter applies the period reset to every known profile
type Resetter interface {
	ResetAll(ctx context.Context) (int, error)
}

// PeriodResetWorker reopens DAILY/WEEKLY/MONTHLY quests on a fixed schedule,
// so idle profiles are current before anyone opens them
type PeriodResetWorker struct {
	resetter  Resetter
	every     time.Duration
	timeout   time.Duration
	pool      *Pool
	scheduler *gocron.Scheduler
}

// NewPeriodResetWorker creates a worker that sweeps every interval
func NewPeriodResetWorker(resetter Resetter, every time.Duration) *PeriodResetWorker {
	return &PeriodResetWorker{
		resetter:  resetter,
		every:     every,
		timeout:   DefaultResetTimeout,
		pool:      NewPool(1, 1),
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the sweep. The first one runs immediately.
func (w *PeriodResetWorker) Start() error {
	if w.every <= 0 {
		return fmt.Errorf("period reset interval must be positive, got %s", w.every)
	}

	w.pool.Start()
	if _, err := w.scheduler.Every(w.every).Do(w.tick); err != nil {
		w.pool.Stop()
		return fmt.Errorf("failed to schedule period reset: %w", err)
	}
	w.scheduler.StartAsync()

	logger.Info(LogMsgPeriodResetScheduled, "every", w.every.String())
	return nil
}

// tick hands the sweep to the pool. A sweep already waiting in the queue
// covers this tick too.
func (w *PeriodResetWorker) tick() {
	if !w.pool.TryEnqueue(JobFunc(w.run)) {
		logger.Debug(LogMsgPeriodResetSkipped)
	}
}

// Trigger runs one sweep synchronously
func (w *PeriodResetWorker) Trigger(ctx context.Context) (int, error) {
	return w.sweep(ctx)
}

func (w *PeriodResetWorker) run(ctx context.Context) error {
	_, err := w.sweep(ctx)
	return err
}

func (w *PeriodResetWorker) sweep(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgPeriodResetStarting)

	count, err := w.resetter.ResetAll(ctx)
	if err != nil {
		metrics.PeriodResetRuns.WithLabelValues(metrics.ResultError).Inc()
		log.Error(LogMsgPeriodResetFailed, "error", err)
		return count, err
	}

	metrics.PeriodResetRuns.WithLabelValues(metrics.ResultSuccess).Inc()
	if count > 0 {
		log.Info(LogMsgPeriodResetCompleted, "profiles_reset", count)
	}
	return count, nil
}

// Shutdown stops the schedule and waits for an in-flight sweep
func (w *PeriodResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPeriodResetStopping)

	w.scheduler.Stop()

	done := make(chan struct{})
	go func() {
		w.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgPeriodResetStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgPeriodResetTimeout)
		return ctx.Err()
	}
}
