package spacex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config is the on-disk configuration, stored as config.yaml in ConfigDir.
// Every key can be overridden by an environment variable prefixed with SPACEX_, e.g. SPACEX_RETRIES.
type Config struct {
	viper *viper.Viper // flags, environment, file and defaults
	file  *viper.Viper // config.yaml and defaults only

	ConfigDir         string        `mapstructure:"-"`                  // Directory holding config.yaml
	BaseURL           string        `mapstructure:"base_url"`           // API origin
	Timeout           time.Duration `mapstructure:"timeout"`            // Client timeout, 0 for none
	Retries           int           `mapstructure:"retries"`            // Additional attempts per request
	ChromeFingerprint bool          `mapstructure:"chrome_fingerprint"` // Dial TLS with a Chrome ClientHello
	HistoryDB         string        `mapstructure:"history_db"`         // sqlite file for the fetch history, empty to disable
	DefaultFilter     string        `mapstructure:"default_filter"`     // Filter applied by the launches command
	LogLevel          string        `mapstructure:"log_level"`          // debug, info, warn or error
	LogFormat         string        `mapstructure:"log_format"`         // text or json
	LogFile           string        `mapstructure:"log_file"`           // Rotated log file, empty for stderr
	MetricsAddr       string        `mapstructure:"metrics_addr"`       // Address serving /metrics, empty to disable
	Schedule          string        `mapstructure:"schedule"`           // Cron schedule of the watch command
	DumpResponses     bool          `mapstructure:"dump_responses"`     // Log non-200 responses in full
}

// DefaultConfigDir returns the spacex folder under the user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir : %w", err)
	}
	return filepath.Join(dir, "spacex"), nil
}

// LoadConfig reads config.yaml from dir, creating the directory and a file holding the defaults on first run.
func LoadConfig(dir string) (*Config, error) {
	if _, err := os.ReadDir(dir); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking if directory exists %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
		}
	}

	// file only ever holds defaults and config.yaml, so writing it back never
	// persists environment overrides or command line flags.
	file := newFileViper(dir)
	if err := file.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
		if err := file.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file : %w", err)
		}
	}

	v := newFileViper(dir)
	v.SetEnvPrefix("SPACEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file : %w", err)
	}

	cfg := &Config{viper: v, file: file, ConfigDir: dir}
	if err := cfg.Reload(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFileViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", "0s")
	v.SetDefault("retries", 0)
	v.SetDefault("chrome_fingerprint", false)
	v.SetDefault("history_db", "history.db")
	v.SetDefault("default_filter", string(DefaultFilter))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("schedule", "@every 5m")
	v.SetDefault("dump_responses", false)
	return v
}

// Viper exposes the effective instance so command line flags can be bound to it.
func (cfg *Config) Viper() *viper.Viper {
	return cfg.viper
}

// Reload unmarshals the current viper values into cfg and validates them.
func (cfg *Config) Reload() error {
	if err := cfg.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return cfg.Validate()
}

// Set stores a value in config.yaml. The file is only rewritten when the resulting
// configuration is valid; flags and environment overrides are never written.
func (cfg *Config) Set(key string, value any) error {
	previous, existed := cfg.file.Get(key), cfg.file.IsSet(key)
	cfg.file.Set(key, value)

	candidate := Config{ConfigDir: cfg.ConfigDir}
	err := cfg.file.Unmarshal(&candidate)
	if err == nil {
		err = candidate.Validate()
	}
	if err != nil {
		if existed {
			cfg.file.Set(key, previous)
		}
		return fmt.Errorf("rejecting %s : %w", key, err)
	}

	if err := cfg.file.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file : %w", err)
	}
	return cfg.Reload()
}

// Validate checks the values that would otherwise fail much later.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", cfg.Retries))
	}
	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout))
	}
	if _, err := ParseFilterMode(cfg.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter : %w", err))
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("schedule %q : %w", cfg.Schedule, err))
		}
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format should be either text or json, got %q", cfg.LogFormat))
	}
	return errors.Join(errs...)
}

// HistoryPath resolves HistoryDB against ConfigDir. It returns "" when the history is disabled.
func (cfg *Config) HistoryPath() string {
	if cfg.HistoryDB == "" || filepath.IsAbs(cfg.HistoryDB) {
		return cfg.HistoryDB
	}
	return filepath.Join(cfg.ConfigDir, cfg.HistoryDB)
}

// LogFilePath resolves LogFile against ConfigDir. It returns "" when logs go to stderr.
func (cfg *Config) LogFilePath() string {
	if cfg.LogFile == "" || filepath.IsAbs(cfg.LogFile) {
		return cfg.LogFile
	}
	return filepath.Join(cfg.ConfigDir, cfg.LogFile)
}
