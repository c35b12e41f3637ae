// Package formatter defines how indented lines are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Sinks
// check for WriterFormatter at construction time and prefer it when
// available, eliminating the intermediate byte slice allocation on
// the write path.
//
// TextFormatter writes a timestamp, then the indent marker repeated
// once per depth level, then the message. A negative depth produces
// no marker. Messages are written verbatim, so a multi-line stack trace
// stays a single entry spanning several physical lines.
//
// JSONFormatter writes {"time","depth","message"} objects, one per line,
// with embedded newlines escaped.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large stack trace from permanently inflating memory usage.
package formatter
