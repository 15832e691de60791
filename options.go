package spacex

import (
	"errors"
	"log/slog"
	"time"

	"github.com/brunojasgv/spacex/metrics"
)

// SessionOption configures an HTTPSession.
type SessionOption func(*HTTPSession) error

// ViewModelOption configures a ViewModel.
type ViewModelOption func(*ViewModel) error

// WithLogger sets the session logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *HTTPSession) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics reports every attempt and outcome to sink.
func WithMetrics(sink metrics.Sink) SessionOption {
	return func(s *HTTPSession) error {
		if sink == nil {
			return errors.New("metrics sink is nil")
		}
		s.metrics = sink
		return nil
	}
}

// WithRecorder hands every attempt to recorder, typically a *Recorder backed by the fetch history.
func WithRecorder(recorder AttemptRecorder) SessionOption {
	return func(s *HTTPSession) error {
		if recorder == nil {
			return errors.New("attempt recorder is nil")
		}
		s.recorder = recorder
		return nil
	}
}

// WithSessionJournal persists the final outcome of every Execute call, tagged with its execution ID.
func WithSessionJournal(journal Journal) SessionOption {
	return func(s *HTTPSession) error {
		if journal == nil {
			return errors.New("journal is nil")
		}
		s.journal = journal
		return nil
	}
}

// WithResponseDump logs a prettified dump of every non-200 response at debug level.
func WithResponseDump(enabled bool) SessionOption {
	return func(s *HTTPSession) error {
		s.dump = enabled
		return nil
	}
}

// WithSessionClock replaces the clock used to time attempts.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *HTTPSession) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		s.now = now
		return nil
	}
}

// WithViewModelLogger sets the view-model logger. A nil logger keeps slog.Default().
func WithViewModelLogger(logger *slog.Logger) ViewModelOption {
	return func(vm *ViewModel) error {
		if logger == nil {
			logger = slog.Default()
		}
		vm.logger = logger
		return nil
	}
}

// WithViewModelMetrics reports every state write to sink.
func WithViewModelMetrics(sink metrics.Sink) ViewModelOption {
	return func(vm *ViewModel) error {
		if sink == nil {
			return errors.New("metrics sink is nil")
		}
		vm.metrics = sink
		return nil
	}
}

// WithJournal persists every state transition through journal.
func WithJournal(journal Journal) ViewModelOption {
	return func(vm *ViewModel) error {
		if journal == nil {
			return errors.New("journal is nil")
		}
		vm.journal = journal
		return nil
	}
}

// WithClock replaces the clock that stands in for missing launch dates when sorting.
func WithClock(now func() time.Time) ViewModelOption {
	return func(vm *ViewModel) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		vm.now = now
		return nil
	}
}

// WithInitialFilter starts the view-model with mode instead of DefaultFilter.
func WithInitialFilter(mode FilterMode) ViewModelOption {
	return func(vm *ViewModel) error {
		if !mode.Valid() {
			return ErrUnknownFilter
		}
		vm.activeFilter = mode
		return nil
	}
}
