package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/formatter"
)

// Rotation configures size-based rotation of a log file
type Rotation struct {
	// MaxSizeMB is the size in megabytes before rotation (0 = no rotation)
	MaxSizeMB int
	// MaxBackups is the maximum number of old files to retain (0 = keep all)
	MaxBackups int
	// MaxAgeDays is the maximum age of old files in days (0 = no age limit)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
}

// Enabled reports whether rotation is configured
func (r Rotation) Enabled() bool {
	return r.MaxSizeMB > 0
}

// FileConfig holds configuration for file writers
type FileConfig struct {
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Rotation is applied when Rotation.MaxSizeMB > 0
	Rotation Rotation
}

// FileWriter writes formatted lines to a file, optionally rotated
type FileWriter struct {
	path            string
	out             io.WriteCloser
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	mu              sync.Mutex
	closed          bool
}

// NewFileWriter opens path for appending, creating parent directories
func NewFileWriter(path string, cfg FileConfig) (*FileWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	w := &FileWriter{
		path:      path,
		formatter: cfg.Formatter,
	}

	if cfg.Rotation.Enabled() {
		// lumberjack opens lazily; the probe above surfaces open errors here
		if err := file.Close(); err != nil {
			return nil, err
		}
		w.out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.Rotation.MaxSizeMB,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAgeDays,
			Compress:   cfg.Rotation.Compress,
			LocalTime:  true,
		}
	} else {
		w.file = file
		w.out = file
	}

	// Cache WriterFormatter for zero-alloc path
	w.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	return w, nil
}

// Path returns the destination path
func (w *FileWriter) Path() string {
	return w.path
}

// WriteLine formats and writes one line
func (w *FileWriter) WriteLine(depth int, message string) error {
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
		return w.writerFormatter.FormatTo(entry, w.out)
	}

	data, err := w.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = w.out.Write(data)
	return err
}

// IsEnabled reports whether the file is still open
func (w *FileWriter) IsEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

// Close syncs and closes the file. Closing twice is a no-op.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var err error
	if w.file != nil {
		err = w.file.Sync()
	}
	return multierr.Append(err, w.out.Close())
}

// FileFactory creates FileWriters that share one configuration
type FileFactory struct {
	cfg FileConfig
}

// NewFileFactory creates a factory for file writers
func NewFileFactory(cfg FileConfig) *FileFactory {
	return &FileFactory{cfg: cfg}
}

// Create opens a FileWriter for path
func (f *FileFactory) Create(path string) (Writer, error) {
	return NewFileWriter(path, f.cfg)
}
