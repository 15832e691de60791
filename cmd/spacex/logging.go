package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/brunojasgv/spacex"
	"github.com/natefinch/lumberjack"
)

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return l, fmt.Errorf("invalid log level %q : %w", level, err)
	}
	return l, nil
}

// newLogger builds the process logger. Logs go to stderr unless a log file is configured,
// in which case the file is rotated by lumberjack.
func newLogger(cfg *spacex.Config) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	closer := func() error { return nil }
	if path := cfg.LogFilePath(); path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		out = file
		closer = file.Close
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer, nil
}
