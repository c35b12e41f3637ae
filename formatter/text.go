package formatter

import (
	"bytes"
	"io"

	"github.com/philipp01105/tracelog/core"
)

// TextFormatter formats entries as "<timestamp> <indent><message>\n"
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	return &TextFormatter{Config: cfg.withDefaults()}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.FormatEntry(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry writes the formatted entry into the given buffer
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	t := entry.Time
	if f.UTC {
		t = t.UTC()
	}
	// AppendFormat avoids a string allocation
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte(' ')

	// Negative depth prints no marker
	for i := 0; i < entry.Depth; i++ {
		buf.WriteString(f.IndentMarker)
	}

	buf.WriteString(entry.Message)
	buf.WriteByte('\n')
}
