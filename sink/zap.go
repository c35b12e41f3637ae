package sink

import (
	"errors"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"
)

// ZapWriter forwards lines into a zap logger at Info level with a
// "depth" field, so tracelog output can join an existing zap pipeline.
type ZapWriter struct {
	logger *zap.Logger
	closed atomic.Bool
}

// NewZapWriter creates a writer backed by l
func NewZapWriter(l *zap.Logger) *ZapWriter {
	return &ZapWriter{logger: l}
}

// WriteLine logs message with its depth
func (w *ZapWriter) WriteLine(depth int, message string) error {
	if w.closed.Load() {
		return ErrClosed
	}
	w.logger.Info(message, zap.Int("depth", depth))
	return nil
}

// IsEnabled reports whether the writer still accepts lines
func (w *ZapWriter) IsEnabled() bool {
	return !w.closed.Load()
}

// Close syncs the zap logger. The logger itself stays usable by its owner.
func (w *ZapWriter) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	if err := w.logger.Sync(); err != nil && !isStdoutSyncError(err) {
		return err
	}
	return nil
}

// isStdoutSyncError checks if error is harmless stdout/stderr sync error.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
