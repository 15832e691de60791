package spacex

import "fmt"

// FetchStatus is the phase of a remote fetch.
type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusLoaded  FetchStatus = "loaded"
	StatusFailed  FetchStatus = "failed"
)

// CanTransition reports whether the fetch machine moves from one status to the other.
// Any status may re-enter loading; loaded and failed are only reached from loading.
func CanTransition(from, to FetchStatus) bool {
	switch to {
	case StatusLoading:
		return true
	case StatusLoaded, StatusFailed:
		return from == StatusLoading
	default:
		return false
	}
}

// FetchState is the state of a single remote resource.
// The zero value is Idle. Values are built with Idle, Loading, Loaded and Failed only,
// so a state never carries a value and an error at the same time.
type FetchState[T any] struct {
	status FetchStatus
	value  T
	err    error
}

func Idle[T any]() FetchState[T] {
	return FetchState[T]{status: StatusIdle}
}

func Loading[T any]() FetchState[T] {
	return FetchState[T]{status: StatusLoading}
}

func Loaded[T any](value T) FetchState[T] {
	return FetchState[T]{status: StatusLoaded, value: value}
}

// Failed returns a failed state. A nil err is replaced by ErrUnknown.
func Failed[T any](err error) FetchState[T] {
	if err == nil {
		err = ErrUnknown
	}
	return FetchState[T]{status: StatusFailed, err: err}
}

func (s FetchState[T]) Status() FetchStatus {
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

// Value returns the loaded value. ok is false in every other status.
func (s FetchState[T]) Value() (value T, ok bool) {
	if s.status != StatusLoaded {
		return value, false
	}
	return s.value, true
}

// Err returns the failure, or nil unless the state is failed.
func (s FetchState[T]) Err() error {
	return s.err
}

func (s FetchState[T]) String() string {
	if s.status == StatusFailed {
		return fmt.Sprintf("%s(%v)", StatusFailed, s.err)
	}
	return string(s.Status())
}
