// Package config loads tracelog settings from YAML and TRACELOG_*
// environment variables and applies them to a Logger.
package config

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/formatter"
	"github.com/philipp01105/tracelog/logger"
	"github.com/philipp01105/tracelog/sink"
)

// Mirror targets
const (
	MirrorNone   = ""
	MirrorStderr = "stderr"
	MirrorZap    = "zap"
)

// Config holds the complete tracelog configuration.
type Config struct {
	Destination     string         `koanf:"destination"`      // Log file path; empty disables logging
	Level           string         `koanf:"level"`            // 0-2 or basic/detailed/verbose (default: basic)
	Format          string         `koanf:"format"`           // text or json (default: text)
	Indent          string         `koanf:"indent"`           // Marker repeated per depth (default: two spaces)
	TimestampFormat string         `koanf:"timestamp_format"` // Go time layout (default: RFC3339 with ms)
	UTC             bool           `koanf:"utc"`              // Format timestamps in UTC
	Mirror          string         `koanf:"mirror"`           // Also write lines to stderr or zap
	ProcFS          string         `koanf:"proc_fs"`          // procfs mount point (default: /proc)
	Rotation        RotationConfig `koanf:"rotation"`
}

// RotationConfig holds size-based rotation settings for the log file.
type RotationConfig struct {
	MaxSizeMB  int  `koanf:"max_size_mb"`  // Rotate after this many MB (0 = never)
	MaxBackups int  `koanf:"max_backups"`  // Rotated files to keep (0 = all)
	MaxAgeDays int  `koanf:"max_age_days"` // Days to keep rotated files (0 = forever)
	Compress   bool `koanf:"compress"`     // gzip rotated files
}

func applyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = "basic"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
}

// LogLevel parses Level.
func (c *Config) LogLevel() (core.Level, error) {
	return core.ParseLevel(c.Level)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("level: %w", err))
	}
	if _, ok := formatter.New(c.Format, formatter.Config{}); !ok {
		errs = append(errs, fmt.Errorf("format: unknown format %q (want text or json)", c.Format))
	}
	switch c.Mirror {
	case MirrorNone, MirrorStderr, MirrorZap:
	default:
		errs = append(errs, fmt.Errorf("mirror: unknown target %q (want stderr or zap)", c.Mirror))
	}
	if c.Rotation.MaxSizeMB < 0 || c.Rotation.MaxBackups < 0 || c.Rotation.MaxAgeDays < 0 {
		errs = append(errs, errors.New("rotation: values must not be negative"))
	}

	return errors.Join(errs...)
}

// Formatter builds the configured line formatter.
func (c *Config) Formatter() (formatter.Formatter, error) {
	f, ok := formatter.New(c.Format, formatter.Config{
		TimestampFormat: c.TimestampFormat,
		IndentMarker:    c.Indent,
		UTC:             c.UTC,
	})
	if !ok {
		return nil, fmt.Errorf("unknown format %q", c.Format)
	}
	return f, nil
}

// Factory builds the sink factory for file destinations. With a mirror
// configured, every writer it creates also copies lines to stderr or to
// zl.
func (c *Config) Factory(zl *zap.Logger) (sink.Factory, error) {
	f, err := c.Formatter()
	if err != nil {
		return nil, err
	}

	files := sink.NewFileFactory(sink.FileConfig{
		Formatter: f,
		Rotation: sink.Rotation{
			MaxSizeMB:  c.Rotation.MaxSizeMB,
			MaxBackups: c.Rotation.MaxBackups,
			MaxAgeDays: c.Rotation.MaxAgeDays,
			Compress:   c.Rotation.Compress,
		},
	})

	var mirror func() sink.Writer
	switch c.Mirror {
	case MirrorNone:
		return files, nil
	case MirrorStderr:
		mirror = func() sink.Writer {
			return sink.NewConsoleWriter(sink.ConsoleConfig{Formatter: f})
		}
	case MirrorZap:
		if zl == nil {
			return nil, errors.New("mirror zap requires a zap logger")
		}
		mirror = func() sink.Writer { return sink.NewZapWriter(zl) }
	default:
		return nil, fmt.Errorf("unknown mirror %q", c.Mirror)
	}

	return sink.FactoryFunc(func(path string) (sink.Writer, error) {
		w, err := files.Create(path)
		if err != nil {
			return nil, err
		}
		return sink.NewMultiWriter(w, mirror()), nil
	}), nil
}

// Option customises the Builder used by NewLogger
type Option func(*logger.Builder)

// WithVersion sets the version reported in the environment block
func WithVersion(version string) Option {
	return func(b *logger.Builder) { b.WithVersion(version) }
}

// NewLogger builds a Logger from cfg and applies it. zl is only used
// for the zap mirror; reg may be nil. If applying fails the logger is
// closed and the error returned.
func NewLogger(cfg *Config, zl *zap.Logger, reg prometheus.Registerer, opts ...Option) (*logger.Logger, error) {
	factory, err := cfg.Factory(zl)
	if err != nil {
		return nil, err
	}

	b := logger.NewBuilder().
		WithFactory(factory).
		WithProcFS(cfg.ProcFS).
		WithRegisterer(reg)
	for _, opt := range opts {
		opt(b)
	}
	l, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := Apply(l, cfg); err != nil {
		return nil, multierr.Append(err, l.Close())
	}
	return l, nil
}

// Apply sets the level, then the destination, so that the environment
// block and counter discovery already see the new level.
func Apply(l *logger.Logger, cfg *Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if err := l.SetLevel(level); err != nil {
		return err
	}
	return l.SetDestination(cfg.Destination)
}
