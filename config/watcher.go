package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/philipp01105/tracelog/logger"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize
var ErrWatcherFailed = errors.New("failed to initialize config watcher")

// Watcher reloads a config file whenever it changes and applies the
// result to a Logger. Reload failures are written to the logger itself
// through WriteException and the previous settings stay in effect.
//
// Only level and destination are re-applied; format, mirror and
// rotation are fixed when the Logger is built. Replace the file
// atomically (write a temporary file, then rename) so a reload never
// sees a half-written file.
type Watcher struct {
	path     string
	logger   *logger.Logger
	zl       *zap.Logger
	watcher  *fsnotify.Watcher
	reloaded chan error
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory containing path so that editors
// which replace the file by rename are still picked up. zl is optional
// and receives reload diagnostics.
func NewWatcher(path string, l *logger.Logger, zl *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if zl == nil {
		zl = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		logger:   l,
		zl:       zl,
		watcher:  fw,
		reloaded: make(chan error, 16),
		stop:     make(chan struct{}),
	}, nil
}

// Reloaded receives the result of every reload attempt. Sends never
// block; results are dropped when nobody reads.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Run processes filesystem events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.zl.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	err := w.apply()
	if err != nil {
		err = w.logger.WriteException(fmt.Errorf("reload config %s: %w", w.path, err))
		w.zl.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
	} else {
		w.zl.Info("config reloaded",
			zap.String("path", w.path),
			zap.String("destination", w.logger.Destination()),
			zap.Stringer("level", w.logger.Level()))
	}

	select {
	case w.reloaded <- err:
	default:
	}
}

func (w *Watcher) apply() error {
	cfg, err := Load(w.path)
	if err != nil {
		return err
	}
	return Apply(w.logger, cfg)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.watcher.Close()
	})
	return err
}
