package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/philipp01105/tracelog/core"
)

// JSONFormatter formats entries as one JSON object per line
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	return &JSONFormatter{Config: cfg.withDefaults()}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.FormatEntry(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry builds JSON manually into the buffer without allocations
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	t := entry.Time
	if f.UTC {
		t = t.UTC()
	}

	buf.WriteString(`{"time":"`)
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteString(`","depth":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Depth), 10))

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, entry.Message)

	buf.WriteString("\"}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
