package sink

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/formatter"
)

// ConsoleWriter writes formatted lines to an io.Writer such as stderr.
// Close stops further writes but leaves the underlying writer open.
type ConsoleWriter struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	mu              sync.Mutex
	closed          bool
}

// ConsoleConfig holds configuration for console writers
type ConsoleConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
}

// NewConsoleWriter creates a new console writer
func NewConsoleWriter(cfg ConsoleConfig) *ConsoleWriter {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	w := &ConsoleWriter{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
	}
	w.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	return w
}

// WriteLine formats and writes one line
func (w *ConsoleWriter) WriteLine(depth int, message string) error {
	entry := core.GetEntry()
	entry.Depth = depth
	entry.Message = message
	defer core.PutEntry(entry)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	if w.writerFormatter != nil {
		return w.writerFormatter.FormatTo(entry, w.writer)
	}

	data, err := w.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = w.writer.Write(data)
	return err
}

// IsEnabled reports whether the writer still accepts lines
func (w *ConsoleWriter) IsEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

// Close marks the writer closed
func (w *ConsoleWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}
