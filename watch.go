package spacex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Watcher re-fetches both resources of a view-model on a cron schedule.
type Watcher struct {
	vm       *ViewModel
	schedule cron.Schedule
	logger   *slog.Logger
	now      func() time.Time
}

// NewWatcher parses spec with the standard cron parser, which also accepts
// descriptors such as "@hourly" and "@every 5m".
func NewWatcher(vm *ViewModel, spec string, logger *slog.Logger) (*Watcher, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q : %w", spec, err)
	}
	return NewWatcherWithSchedule(vm, schedule, logger)
}

// NewWatcherWithSchedule is NewWatcher with an already built schedule.
func NewWatcherWithSchedule(vm *ViewModel, schedule cron.Schedule, logger *slog.Logger) (*Watcher, error) {
	if vm == nil {
		return nil, errors.New("view-model is required")
	}
	if schedule == nil {
		return nil, errors.New("schedule is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{vm: vm, schedule: schedule, logger: logger, now: time.Now}, nil
}

// Run fetches once immediately and then on every activation of the schedule until ctx is done.
// A round waits for both fetches to settle, so rounds never overlap; activations missed meanwhile are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	w.refresh(ctx)
	for {
		next := w.schedule.Next(w.now())
		if next.IsZero() {
			return errors.New("schedule has no further activations")
		}
		timer := time.NewTimer(next.Sub(w.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	started := w.now()
	launchesDone := w.vm.FetchLaunches(ctx)
	infoDone := w.vm.FetchInfo(ctx)
	for _, done := range []<-chan struct{}{launchesDone, infoDone} {
		select {
		case <-done:
		case <-ctx.Done():
			return
		}
	}
	w.logger.Debug("refreshed", "duration", w.now().Sub(started),
		"launches", w.vm.LaunchesState().Status(), "company", w.vm.InfoState().Status())
}
