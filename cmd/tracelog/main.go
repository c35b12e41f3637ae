// Package main implements the tracelog CLI, which writes diagnostic
// snapshots of the host and keeps a trace log configured from a file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipp01105/tracelog/config"
	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/logger"
)

var (
	// configPath is the YAML config file; missing files fall back to env and defaults
	configPath string
	// destination overrides the configured log file
	destination string
	// level overrides the configured log level
	level string
	// snapshotWait is the time between CPU baseline and sample
	snapshotWait time.Duration
	// watchInterval is the period between metrics snapshots
	watchInterval time.Duration
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tracelog",
	Short: "Indented diagnostic trace logs with host snapshots",
	Long: `tracelog writes indented diagnostic logs together with an environment
block, performance counters and the process table of the host.

Configuration is read from a YAML file and TRACELOG_* environment
variables; --destination and --level override both.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tracelog.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&destination, "destination", "", "log file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&level, "level", "", "log level 0-2 or basic/detailed/verbose (overrides config)")

	snapshotCmd.Flags().DurationVar(&snapshotWait, "interval", time.Second, "time between CPU baseline and sample")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "time between metrics snapshots")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// snapshotCmd writes one diagnostic snapshot and exits
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write environment, counters and process table once",
	Long: `Open the destination at level detailed or higher, wait --interval so
CPU utilisation has a baseline, then close it. Closing writes the
metrics snapshot and the process table.

Examples:
  tracelog snapshot --destination /tmp/host.log
  tracelog snapshot --level verbose --interval 5s`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

// watchCmd keeps the log open and re-applies config changes
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep a trace log open and sample counters periodically",
	Long: `Apply the configuration, reload it whenever the config file changes and
write a metrics snapshot every --interval until interrupted.

Examples:
  tracelog watch --config /etc/tracelog.yaml
  tracelog watch --level detailed --interval 30s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tracelog version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tracelog %s\n", version)
	},
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("destination") {
		cfg.Destination = destination
	}
	if cmd.Flags().Changed("level") {
		cfg.Level = level
	}
	return cfg, cfg.Validate()
}

func newZapLogger() (*zap.Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create zap logger: %w", err)
	}
	return zl, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Destination == "" {
		return errors.New("snapshot needs a destination (--destination or config)")
	}
	if lvl, _ := cfg.LogLevel(); lvl < core.DetailedLevel {
		cfg.Level = core.DetailedLevel.String()
	}

	zl, err := newZapLogger()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	l, err := config.NewLogger(cfg, zl, nil, config.WithVersion(version))
	if err != nil {
		return err
	}

	select {
	case <-cmd.Context().Done():
	case <-time.After(snapshotWait):
	}

	if err := l.Close(); err != nil {
		return err
	}
	zl.Info("snapshot written", zap.String("destination", cfg.Destination))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zl, err := newZapLogger()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	l, err := config.NewLogger(cfg, zl, nil, config.WithVersion(version))
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Close(); err != nil {
			zl.Warn("close log destination", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, statErr := os.Stat(configPath); statErr == nil {
		w, err := config.NewWatcher(configPath, l, zl)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		go w.Run(ctx)
		zl.Info("watching config", zap.String("path", configPath))
	}

	return sampleLoop(ctx, l, zl, watchInterval)
}

// sampleLoop writes a metrics snapshot every period until ctx is done.
func sampleLoop(ctx context.Context, l *logger.Logger, zl *zap.Logger, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("interval must be positive, got %s", period)
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zl.Info("stopping", zap.String("reason", context.Cause(ctx).Error()))
			return nil
		case <-ticker.C:
			if err := l.WriteMetricsSnapshot(); err != nil {
				zl.Warn("metrics snapshot failed", zap.Error(err))
			}
		}
	}
}
