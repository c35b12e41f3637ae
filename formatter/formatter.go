package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/tracelog/core"
)

// DefaultTimestampFormat is RFC3339 with millisecond precision
const DefaultTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// DefaultIndentMarker is written once per indentation level
const DefaultIndentMarker = "  "

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for DefaultTimestampFormat)
	TimestampFormat string
	// IndentMarker is repeated Depth times before the message (empty for DefaultIndentMarker)
	IndentMarker string
	// UTC converts timestamps to UTC before formatting
	UTC bool
}

func (c Config) withDefaults() Config {
	if c.TimestampFormat == "" {
		c.TimestampFormat = DefaultTimestampFormat
	}
	if c.IndentMarker == "" {
		c.IndentMarker = DefaultIndentMarker
	}
	return c
}

// New returns the formatter registered under name ("text" or "json").
// An empty name selects text.
func New(name string, cfg Config) (Formatter, bool) {
	switch name {
	case "", "text":
		return NewTextFormatter(cfg), true
	case "json":
		return NewJSONFormatter(cfg), true
	default:
		return nil, false
	}
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
