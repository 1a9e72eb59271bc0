// Package config loads exportreadme settings from an optional YAML file, .env files and
// EXPORTREADME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
	"git.home.luguber.info/inful/exportreadme/internal/markdown"
)

const (
	// DefaultPath is the configuration file looked up when none is given explicitly.
	DefaultPath = "exportreadme.yaml"

	// CurrentVersion is the only accepted value of the version key.
	CurrentVersion = "1.0"

	defaultDebounce = 500 * time.Millisecond
)

// Config represents the exportreadme configuration file.
type Config struct {
	Version      string        `yaml:"version"`
	TargetPrefix string        `yaml:"target_prefix"`
	Logging      LoggingConfig `yaml:"logging"`
	Output       OutputConfig  `yaml:"output"`
	Metrics      MetricsConfig `yaml:"metrics,omitempty"`
	Watch        WatchConfig   `yaml:"watch,omitempty"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// OutputConfig controls how the rewritten document is written.
type OutputConfig struct {
	// Atomic writes go to a temp file next to the destination and are renamed over it.
	// Defaults to true when unset.
	Atomic *bool `yaml:"atomic,omitempty"`
}

// AtomicWrites reports whether atomic replacement is enabled.
func (o OutputConfig) AtomicWrites() bool {
	return o.Atomic == nil || *o.Atomic
}

// MetricsConfig controls the optional Prometheus textfile written after an export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"` // Go duration, e.g. "500ms"
}

// DebounceDuration parses Debounce, returning the default when unset.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	if w.Debounce == "" {
		return defaultDebounce, nil
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce %q: %w", w.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch.debounce %q: must not be negative", w.Debounce)
	}
	return d, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:      CurrentVersion,
		TargetPrefix: markdown.DefaultTargetPrefix,
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load reads the configuration file at path. A missing file is an error.
func Load(path string) (*Config, error) {
	// .env must be loaded before ${VAR} expansion in load.
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, foundationerrors.ConfigError("configuration file not found").
			AtPath(path).
			Build()
	}
	return load(path)
}

// LoadOptional behaves like Load but falls back to defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return finish(Default())
	}
	return load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			Fatal().
			AtPath(path).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to parse config file").
			Fatal().
			AtPath(path).
			Build()
	}

	return finish(cfg)
}

// finish applies environment overrides, normalization and validation.
func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)

	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return nil, validationError("logging.level", err.Error())
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return nil, validationError("logging.format", err.Error())
	}
	cfg.Logging.Format = format

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks a normalized configuration.
func Validate(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return validationError("version", fmt.Sprintf("unsupported configuration version %q (expected %s)", cfg.Version, CurrentVersion))
	}
	if cfg.TargetPrefix == "" {
		return validationError("target_prefix", "must not be empty")
	}
	if _, err := cfg.Watch.DebounceDuration(); err != nil {
		return validationError("watch.debounce", err.Error())
	}
	return nil
}

func validationError(field, reason string) error {
	return foundationerrors.ValidationError("configuration validation failed").
		ForField(field).
		WithContext("reason", reason).
		Build()
}
