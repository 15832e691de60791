package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/brunojasgv/spacex"
	"github.com/brunojasgv/spacex/db"
	"github.com/brunojasgv/spacex/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// app holds everything a command needs. It is built once by setup.
type app struct {
	cfg      *spacex.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	sink     metrics.Sink
	repo     *db.Repository
	recorder *spacex.Recorder
	vm       *spacex.ViewModel
	closers  []func() error
}

var current *app

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"base-url":   "base_url",
	"retries":    "retries",
	"log-file":   "log_file",
	"log-level":  "log_level",
	"log-format": "log_format",
	"chrome":     "chrome_fingerprint",
}

func setup(cmd *cobra.Command, argv []string) error {
	dir := args.configDir
	if dir == "" {
		var err error
		if dir, err = spacex.DefaultConfigDir(); err != nil {
			return err
		}
	}
	cfg, err := spacex.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("loading config : %w", err)
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := cfg.Viper().BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s : %w", flag, err)
			}
		}
	}
	if err := cfg.Reload(); err != nil {
		return fmt.Errorf("invalid configuration : %w", err)
	}

	a, err := newApp(cfg, !args.noHistory)
	if err != nil {
		return err
	}
	current = a
	return nil
}

func newApp(cfg *spacex.Config, withHistory bool) (*app, error) {
	a := &app{cfg: cfg}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.sink = metrics.NewPrometheusSink(a.registry, logger)

	sessionOptions := []spacex.SessionOption{
		spacex.WithLogger(logger),
		spacex.WithMetrics(a.sink),
		spacex.WithResponseDump(cfg.DumpResponses),
	}
	vmOptions := []spacex.ViewModelOption{
		spacex.WithViewModelLogger(logger),
		spacex.WithViewModelMetrics(a.sink),
	}

	if path := cfg.HistoryPath(); withHistory && path != "" {
		repo, err := db.Open(path)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("opening history %s : %w", path, err)
		}
		a.repo = repo
		a.closers = append(a.closers, repo.Close)

		recorder, err := spacex.NewRecorder(repo, logger, 32)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.recorder = recorder
		// the recorder has to drain before the repository closes
		a.closers = append(a.closers, recorder.Close)
		sessionOptions = append(sessionOptions, spacex.WithRecorder(recorder), spacex.WithSessionJournal(recorder))
		vmOptions = append(vmOptions, spacex.WithJournal(recorder))
	}

	client := spacex.NewHTTPClient(spacex.TransportOptions{
		Timeout:           cfg.Timeout,
		ChromeFingerprint: cfg.ChromeFingerprint,
	})
	session, err := spacex.NewHTTPSession(client, sessionOptions...)
	if err != nil {
		a.Close()
		return nil, err
	}
	service, err := spacex.NewService(session, spacex.WithBaseURL(cfg.BaseURL), spacex.WithServiceRetries(cfg.Retries))
	if err != nil {
		a.Close()
		return nil, err
	}

	mode, err := spacex.ParseFilterMode(cfg.DefaultFilter)
	if err != nil {
		a.Close()
		return nil, err
	}
	vmOptions = append(vmOptions, spacex.WithInitialFilter(mode))
	vm, err := spacex.NewViewModel(service, vmOptions...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.vm = vm
	a.closers = append(a.closers, func() error { vm.Close(); return nil })
	return a, nil
}

// Close releases resources in reverse order of acquisition. It is safe on a nil app and safe to repeat.
func (a *app) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
