package spacex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brunojasgv/spacex/core"
	"github.com/brunojasgv/spacex/domain"
	"github.com/brunojasgv/spacex/metrics"
)

// Journal persists state transitions as log entries.
type Journal interface {
	WriteLog(level, message string, options ...core.LogOption) error
}

// ViewModel owns the fetch state of both resources and the active launch filter.
//
// Every state write runs on a single owner goroutine, so subscribers observe the
// writes in the order they were made. Reads take a read lock and may happen from
// any goroutine. Fetches are never cancelled: when two fetches of the same
// resource overlap, both complete and the later completion wins.
type ViewModel struct {
	service Service
	logger  *slog.Logger
	metrics metrics.Sink
	journal Journal
	now     func() time.Time

	mu            sync.RWMutex
	launchesState FetchState[[]domain.Launch]
	infoState     FetchState[domain.Company]
	activeFilter  FilterMode

	launches *Observable[FetchState[[]domain.Launch]]
	info     *Observable[FetchState[domain.Company]]
	filters  *Observable[FilterMode]

	updates   chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewViewModel returns a view-model in the Idle state with the DefaultFilter active.
// Close must be called to release the owner goroutine.
func NewViewModel(service Service, options ...ViewModelOption) (*ViewModel, error) {
	if service == nil {
		return nil, errors.New("service is required")
	}
	vm := &ViewModel{
		service:      service,
		logger:       slog.Default(),
		metrics:      metrics.NewNoopSink(),
		now:          time.Now,
		activeFilter: DefaultFilter,
		updates:      make(chan func()),
		quit:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	if err := vm.WithOptions(options...); err != nil {
		return nil, err
	}
	vm.launches = NewObservable(vm.launchesState)
	vm.info = NewObservable(vm.infoState)
	vm.filters = NewObservable(vm.activeFilter)

	go vm.loop()
	return vm, nil
}

// WithOptions applies a series of configuration functions to the view-model.
func (vm *ViewModel) WithOptions(options ...ViewModelOption) error {
	for _, option := range options {
		if err := option(vm); err != nil {
			return fmt.Errorf("applying option on view-model : %w", err)
		}
	}
	return nil
}

func (vm *ViewModel) loop() {
	defer close(vm.stopped)
	for {
		select {
		case update := <-vm.updates:
			update()
		case <-vm.quit:
			return
		}
	}
}

// dispatch hands update to the owner goroutine.
// It reports false when the view-model is closed and update will not run.
func (vm *ViewModel) dispatch(update func()) bool {
	select {
	case vm.updates <- update:
		return true
	case <-vm.quit:
		return false
	}
}

// runAndWait is dispatch followed by a wait for update to finish.
func (vm *ViewModel) runAndWait(update func()) bool {
	done := make(chan struct{})
	if !vm.dispatch(func() {
		defer close(done)
		update()
	}) {
		return false
	}
	<-done
	return true
}

// FetchLaunches moves the launches state to Loading before returning, then fetches on a new goroutine
// and writes Loaded or Failed. The returned channel is closed once the final state has been written.
func (vm *ViewModel) FetchLaunches(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if !vm.runAndWait(func() { vm.setLaunches(Loading[[]domain.Launch]()) }) {
		close(done)
		return done
	}

	results := Go(ctx, vm.service.FetchLaunches)
	go func() {
		defer close(done)
		result := <-results
		vm.runAndWait(func() {
			if result.Err != nil {
				vm.setLaunches(Failed[[]domain.Launch](result.Err))
				return
			}
			vm.setLaunches(Loaded(result.Value))
		})
	}()
	return done
}

// FetchInfo is FetchLaunches for the company record.
func (vm *ViewModel) FetchInfo(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if !vm.runAndWait(func() { vm.setInfo(Loading[domain.Company]()) }) {
		close(done)
		return done
	}

	results := Go(ctx, vm.service.FetchInfo)
	go func() {
		defer close(done)
		result := <-results
		vm.runAndWait(func() {
			if result.Err != nil {
				vm.setInfo(Failed[domain.Company](result.Err))
				return
			}
			vm.setInfo(Loaded(result.Value))
		})
	}()
	return done
}

// SetFilter changes the active filter. It does not fetch. Setting the active mode again publishes it again.
// After Close it returns ErrClosed and the filter is left unchanged.
func (vm *ViewModel) SetFilter(mode FilterMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, mode)
	}
	applied := vm.runAndWait(func() {
		vm.mu.Lock()
		vm.activeFilter = mode
		vm.mu.Unlock()
		vm.filters.Publish(mode)
		vm.logger.Debug("filter changed", "filter", string(mode))
	})
	if !applied {
		return ErrClosed
	}
	return nil
}

// LaunchesState returns the current launches state. The loaded slice must not be modified.
func (vm *ViewModel) LaunchesState() FetchState[[]domain.Launch] {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.launchesState
}

// InfoState returns the current company state.
func (vm *ViewModel) InfoState() FetchState[domain.Company] {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.infoState
}

// ActiveFilter returns the current filter mode.
func (vm *ViewModel) ActiveFilter() FilterMode {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.activeFilter
}

// FilteredLaunches projects the loaded launches through the active filter.
// It is recomputed on every call and is empty unless the launches are loaded.
func (vm *ViewModel) FilteredLaunches() []domain.Launch {
	vm.mu.RLock()
	state, mode := vm.launchesState, vm.activeFilter
	vm.mu.RUnlock()

	launches, ok := state.Value()
	if !ok {
		return []domain.Launch{}
	}
	return Filter(launches, mode, vm.now())
}

// SubscribeLaunches streams the launches state, starting with the current one.
func (vm *ViewModel) SubscribeLaunches() (<-chan FetchState[[]domain.Launch], func()) {
	return vm.launches.Subscribe()
}

// SubscribeInfo streams the company state, starting with the current one.
func (vm *ViewModel) SubscribeInfo() (<-chan FetchState[domain.Company], func()) {
	return vm.info.Subscribe()
}

// SubscribeFilter streams the active filter, starting with the current one.
func (vm *ViewModel) SubscribeFilter() (<-chan FilterMode, func()) {
	return vm.filters.Subscribe()
}

// Close stops the owner goroutine and closes every stream. Fetches that complete afterwards are discarded.
func (vm *ViewModel) Close() {
	vm.closeOnce.Do(func() {
		close(vm.quit)
		<-vm.stopped
		vm.launches.Close()
		vm.info.Close()
		vm.filters.Close()
	})
}

func (vm *ViewModel) setLaunches(state FetchState[[]domain.Launch]) {
	vm.mu.Lock()
	from := vm.launchesState.Status()
	vm.launchesState = state
	vm.mu.Unlock()

	vm.launches.Publish(state)
	vm.transition(ResourceLaunches, from, state.Status(), state.Err())
}

func (vm *ViewModel) setInfo(state FetchState[domain.Company]) {
	vm.mu.Lock()
	from := vm.infoState.Status()
	vm.infoState = state
	vm.mu.Unlock()

	vm.info.Publish(state)
	vm.transition(ResourceCompany, from, state.Status(), state.Err())
}

// transition reports a state write. It runs on the owner goroutine.
func (vm *ViewModel) transition(resource string, from, to FetchStatus, err error) {
	vm.metrics.StateTransition(resource, string(to))

	if !CanTransition(from, to) {
		// An overlapping fetch completed after another one already settled the state.
		vm.logger.Debug("overlapping fetch completed", "resource", resource, "from", string(from), "to", string(to))
	}

	level := slog.LevelInfo
	if to == StatusFailed {
		level = slog.LevelWarn
	}
	attrs := []any{"resource", resource, "from", string(from), "to", string(to)}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	vm.logger.Log(context.Background(), level, "fetch state changed", attrs...)

	if vm.journal == nil {
		return
	}
	logContext := map[string]any{"resource": resource, "from": string(from), "to": string(to)}
	if err != nil {
		logContext["error"] = err.Error()
	}
	if jErr := vm.journal.WriteLog(level.String(), fmt.Sprintf("%s %s", resource, to), core.LogWithContext(logContext)); jErr != nil {
		vm.logger.Error("writing state transition", "resource", resource, "error", jErr)
	}
}
