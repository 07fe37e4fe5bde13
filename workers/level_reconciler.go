// workers/level_reconciler.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Releveler recomputes stored derived levels; *services.PlayerService satisfies it.
type Releveler interface {
	Relevel(ctx context.Context) (int, error)
}

// LevelReconciler periodically repairs players whose level or untilNextLevel
// drifted from their experience, e.g. after rows were edited outside the API.
type LevelReconciler struct {
	releveler Releveler
	interval  time.Duration
	logger    *slog.Logger
	scheduler gocron.Scheduler
	stopOnce  sync.Once
}

func NewLevelReconciler(r Releveler, interval time.Duration, logger *slog.Logger) *LevelReconciler {
	return &LevelReconciler{releveler: r, interval: interval, logger: logger}
}

// Start schedules the job and returns immediately. The job stops when ctx is
// cancelled or Stop is called.
func (w *LevelReconciler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.RunOnce(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("relevel-players"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule relevel job: %w", err)
	}

	w.scheduler = sched
	sched.Start()
	w.logger.Info("level reconciler started", slog.Duration("interval", w.interval))

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// RunOnce performs a single reconcile pass and logs the outcome.
func (w *LevelReconciler) RunOnce(ctx context.Context) {
	fixed, err := w.releveler.Relevel(ctx)
	if err != nil {
		w.logger.Error("relevel failed", slog.String("error", err.Error()), slog.Int("fixed", fixed))
		return
	}
	w.logger.Debug("relevel finished", slog.Int("fixed", fixed))
}

func (w *LevelReconciler) Stop() {
	if w.scheduler == nil {
		return
	}
	w.stopOnce.Do(func() {
		if err := w.scheduler.Shutdown(); err != nil {
			w.logger.Warn("scheduler shutdown", slog.String("error", err.Error()))
		}
		w.logger.Info("level reconciler stopped")
	})
}
