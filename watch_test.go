package spacex_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brunojasgv/spacex"
	"github.com/brunojasgv/spacex/domain"
)

type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

func TestWatcher(t *testing.T) {
	t.Run("fetches immediately and on every activation", func(t *testing.T) {
		var launches, infos atomic.Int64
		service := &funcService{
			launches: func(ctx context.Context) ([]domain.Launch, error) {
				launches.Add(1)
				return []domain.Launch{}, nil
			},
			info: func(ctx context.Context) (domain.Company, error) {
				infos.Add(1)
				return domain.Company{}, nil
			},
		}
		vm := newViewModelFor(t, service)
		watcher, err := spacex.NewWatcherWithSchedule(vm, everySchedule(10*time.Millisecond), nil)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan error, 1)
		go func() { stopped <- watcher.Run(ctx) }()

		deadline := time.After(5 * time.Second)
		for launches.Load() < 3 || infos.Load() < 3 {
			select {
			case <-deadline:
				t.Fatalf("\nwanted:\nat least 3 rounds\ngot:\n%d launches, %d infos", launches.Load(), infos.Load())
			case <-time.After(5 * time.Millisecond):
			}
		}
		cancel()

		select {
		case err := <-stopped:
			if err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("\nwanted:\nwatcher to stop\ngot:\ntimeout")
		}
	})

	t.Run("invalid schedules are rejected", func(t *testing.T) {
		vm := newViewModelFor(t, &funcService{})
		if _, err := spacex.NewWatcher(vm, "every so often", nil); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
		if _, err := spacex.NewWatcher(vm, "@every 1m", nil); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if _, err := spacex.NewWatcher(nil, "*/5 * * * *", nil); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
	})
}
