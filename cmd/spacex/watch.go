package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brunojasgv/spacex"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-fetch on a schedule",
	Long:  "Fetch launches and company information on a cron schedule, print every settled state and optionally serve Prometheus metrics.",
	RunE:  runWatch,
}

var watchArgs struct {
	schedule    string
	metricsAddr string
}

func init() {
	flags := watchCmd.Flags()
	flags.StringVar(
		&watchArgs.schedule,
		"schedule",
		"",
		"Cron schedule, e.g. \"*/10 * * * *\" or \"@every 5m\" (defaults to schedule)",
	)
	flags.StringVar(
		&watchArgs.metricsAddr,
		"metrics-addr",
		"",
		"Serve /metrics on this address (defaults to metrics_addr)",
	)
}

func runWatch(cmd *cobra.Command, argv []string) error {
	schedule := current.cfg.Schedule
	if watchArgs.schedule != "" {
		schedule = watchArgs.schedule
	}
	addr := current.cfg.MetricsAddr
	if watchArgs.metricsAddr != "" {
		addr = watchArgs.metricsAddr
	}

	ctx := cmd.Context()
	if addr != "" {
		server := &http.Server{
			Addr:              addr,
			Handler:           metricsHandler(current),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				current.logger.Error("serving metrics", "addr", addr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
		current.logger.Info("serving metrics", "addr", addr)
	}

	watcher, err := spacex.NewWatcher(current.vm, schedule, current.logger)
	if err != nil {
		return err
	}

	follow(ctx, current.vm, renderer{out: cmd.OutOrStdout()})
	return watcher.Run(ctx)
}

func metricsHandler(a *app) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))
	return mux
}

// follow prints every settled state of both resources until ctx is done.
func follow(ctx context.Context, vm *spacex.ViewModel, r renderer) {
	launches, cancelLaunches := vm.SubscribeLaunches()
	info, cancelInfo := vm.SubscribeInfo()
	go func() {
		defer cancelLaunches()
		defer cancelInfo()
		for {
			select {
			case <-ctx.Done():
				return
			case state, ok := <-launches:
				if !ok {
					return
				}
				switch state.Status() {
				case spacex.StatusLoaded:
					fmt.Fprintf(r.out, "\n[%s] launches (%s)\n", time.Now().Format(time.DateTime), vm.ActiveFilter())
					r.launches(vm.FilteredLaunches())
				case spacex.StatusFailed:
					fmt.Fprintf(r.out, "[%s] launches failed: %v\n", time.Now().Format(time.DateTime), state.Err())
				}
			case state, ok := <-info:
				if !ok {
					return
				}
				switch state.Status() {
				case spacex.StatusLoaded:
					company, _ := state.Value()
					fmt.Fprintf(r.out, "\n[%s] company\n", time.Now().Format(time.DateTime))
					r.company(company)
				case spacex.StatusFailed:
					fmt.Fprintf(r.out, "[%s] company failed: %v\n", time.Now().Format(time.DateTime), state.Err())
				}
			}
		}
	}()
}
