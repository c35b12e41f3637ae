package logger

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/sampler"
	"github.com/philipp01105/tracelog/sink"
)

// maxStackFrames bounds the call-site trace written by WriteException
const maxStackFrames = 64

// Logger is a level-filtered diagnostic logger with per-goroutine
// indentation. It is safe for concurrent use.
type Logger struct {
	// mu is the write critical section: destination changes, writes,
	// indentation and dumps all happen under it
	mu sync.Mutex
	// scopeMu is the advisory lock held by CreateScopeWithLock scopes
	scopeMu sync.Mutex
	// scopeHolder is the goroutine holding scopeMu, 0 when free
	scopeHolder atomic.Int64

	level  atomic.Int32
	active atomic.Bool

	factory   sink.Factory
	writer    sink.Writer
	dest      string
	indents   indentTracker
	sampler   *sampler.Sampler
	procMount string
	version   string
	metrics   *metrics
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	factory   sink.Factory
	level     core.Level
	procMount string
	version   string
	registry  prometheus.Registerer
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level: core.BasicLevel, // Default level
	}
}

// WithFactory sets the factory used to open destinations
func (b *Builder) WithFactory(f sink.Factory) *Builder {
	b.factory = f
	return b
}

// WithLevel sets the initial log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithProcFS sets the proc filesystem mount point used for counters
// and process tables (default /proc)
func (b *Builder) WithProcFS(mountPoint string) *Builder {
	b.procMount = mountPoint
	return b
}

// WithVersion overrides the version reported in the environment block
func (b *Builder) WithVersion(version string) *Builder {
	b.version = version
	return b
}

// WithRegisterer registers the logger's self-metrics on reg
func (b *Builder) WithRegisterer(reg prometheus.Registerer) *Builder {
	b.registry = reg
	return b
}

// Build creates the Logger instance. The logger starts inactive; call
// SetDestination to open a destination.
func (b *Builder) Build() (*Logger, error) {
	if err := b.level.Validate(); err != nil {
		return nil, err
	}
	factory := b.factory
	if factory == nil {
		factory = sink.NewFileFactory(sink.FileConfig{})
	}

	l := &Logger{
		factory:   factory,
		procMount: b.procMount,
		version:   b.version,
		metrics:   newMetrics(b.registry),
	}
	l.level.Store(int32(b.level))
	return l, nil
}

// Level returns the configured level
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel changes the level. An out-of-range level is written as an
// exception and returned as a *core.LevelRangeError; the level is left
// unchanged.
func (l *Logger) SetLevel(level core.Level) error {
	if err := level.Validate(); err != nil {
		return l.WriteException(err)
	}
	l.level.Store(int32(level))
	return nil
}

// Destination returns the current destination path, empty when inactive
func (l *Logger) Destination() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dest
}

// IsActive reports whether a destination is open
func (l *Logger) IsActive() bool {
	return l.active.Load()
}

// SetDestination switches logging to path. The open writer, if any,
// receives a final counter snapshot and process table (level >= 1) and
// is closed. A non-empty path is then opened through the factory and
// receives the environment block. An open failure is returned and
// leaves logging disabled. Setting the current path again does nothing.
func (l *Logger) SetDestination(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if path == l.dest {
		return nil
	}

	var err error
	if l.writer != nil {
		err = l.teardownLocked()
	}

	if path == "" {
		return err
	}

	w, openErr := l.factory.Create(path)
	if openErr != nil {
		return multierr.Append(err, fmt.Errorf("open log destination %q: %w", path, openErr))
	}

	l.writer = w
	l.dest = path
	l.active.Store(true)
	l.metrics.writersOpened.Inc()

	err = multierr.Append(err, l.writeEnvironmentLocked())
	if l.Level() >= core.DetailedLevel {
		err = multierr.Append(err, l.initSamplerLocked())
	}
	return err
}

// teardownLocked flushes the final dumps, then releases the writer and
// the sampler. The logger is inactive afterwards even if closing failed.
func (l *Logger) teardownLocked() error {
	var err error
	if l.Level() >= core.DetailedLevel {
		err = multierr.Append(err, l.writeMetricsLocked())
		err = multierr.Append(err, l.writeProcessTableLocked())
	}

	if l.sampler != nil {
		err = multierr.Append(err, l.sampler.Close())
		l.sampler = nil
	}

	if closeErr := l.writer.Close(); closeErr != nil {
		err = multierr.Append(err, fmt.Errorf("close log destination %q: %w", l.dest, closeErr))
	}
	l.metrics.writersClosed.Inc()

	l.writer = nil
	l.dest = ""
	l.active.Store(false)
	return err
}

// Close releases the destination. It is equivalent to SetDestination("").
func (l *Logger) Close() error {
	return l.SetDestination("")
}

// writeLocked writes message at the calling goroutine's depth. A writer
// that reports itself disabled is treated like no destination: the line
// is dropped.
func (l *Logger) writeLocked(message string) error {
	if !l.writer.IsEnabled() {
		return nil
	}
	depth := l.indents.get(core.GoroutineID())
	if err := l.writer.WriteLine(depth, message); err != nil {
		l.metrics.writeErrors.Inc()
		return err
	}
	l.metrics.linesWritten.Inc()
	return nil
}

// WriteLine writes line at the calling goroutine's indentation. It does
// nothing when no destination is open. Writer failures are returned.
func (l *Logger) WriteLine(line string) error {
	// Exit early before taking the lock
	if !l.active.Load() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}
	return l.writeLocked(line)
}

// WriteLinef formats according to a format specifier and writes the
// result. Without args the format is written verbatim.
func (l *Logger) WriteLinef(format string, args ...interface{}) error {
	if !l.active.Load() {
		return nil
	}
	if len(args) == 0 {
		return l.WriteLine(format)
	}
	return l.WriteLine(fmt.Sprintf(format, args...))
}

// WriteLineAtLevel is WriteLinef gated on the configured level being at
// least level
func (l *Logger) WriteLineAtLevel(level core.Level, format string, args ...interface{}) error {
	if l.Level() < level {
		return nil
	}
	return l.WriteLinef(format, args...)
}

// Indent increases the calling goroutine's depth by one
func (l *Logger) Indent() {
	id := core.GoroutineID()
	l.mu.Lock()
	l.indents.increment(id)
	l.mu.Unlock()
}

// Unindent decreases the calling goroutine's depth by one. The depth is
// not clamped and may become negative.
func (l *Logger) Unindent() {
	id := core.GoroutineID()
	l.mu.Lock()
	l.indents.decrement(id)
	l.mu.Unlock()
}

// IndentDepth returns the calling goroutine's depth
func (l *Logger) IndentDepth() int {
	id := core.GoroutineID()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indents.get(id)
}

// WriteException writes "Exception: <err>" and, at level >= 1, the
// stack of the calling code. It returns err unchanged so callers can
// write
//
//	return log.WriteException(err)
//
// Failures to write are dropped in favour of returning err.
func (l *Logger) WriteException(err error) error {
	if err == nil || !l.active.Load() {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return err
	}

	l.metrics.exceptions.Inc()
	_ = l.writeLocked("Exception: " + err.Error())
	if l.Level() >= core.DetailedLevel {
		_ = l.writeLocked(callSiteTrace(1))
	}
	return err
}

// callSiteTrace renders the stack as one multi-line message. skip 0
// starts at the caller of callSiteTrace.
func callSiteTrace(skip int) string {
	pcs := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	caller := core.GetCaller(skip + 1)
	var b strings.Builder
	if caller.Defined {
		fmt.Fprintf(&b, "Stack trace (logged at %s:%d):", caller.ShortFile, caller.Line)
	} else {
		b.WriteString("Stack trace:")
	}
	for n > 0 {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "\n   at %s (%s:%d)", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// WriteMetricsSnapshot writes one line per performance counter. It does
// nothing unless a destination is open and the level is at least 1.
// Counter read failures are written as lines; only writer failures are
// returned.
func (l *Logger) WriteMetricsSnapshot() error {
	if !l.active.Load() || l.Level() < core.DetailedLevel {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}
	return l.writeMetricsLocked()
}

// WriteProcessTable writes one line per running process. It has the
// same gating and failure handling as WriteMetricsSnapshot.
func (l *Logger) WriteProcessTable() error {
	if !l.active.Load() || l.Level() < core.DetailedLevel {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}
	return l.writeProcessTableLocked()
}
