package sink

import "errors"

// ErrClosed is returned when writing to a sink that has been closed
var ErrClosed = errors.New("sink: writer closed")

// Writer appends indented text lines to a destination
type Writer interface {
	// WriteLine writes message prefixed for the given indentation depth
	WriteLine(depth int, message string) error

	// IsEnabled reports whether the writer still accepts lines. The
	// logger drops lines while it returns false.
	IsEnabled() bool

	// Close flushes and releases the destination
	Close() error
}

// Factory constructs a Writer for a destination path
type Factory interface {
	// Create opens the destination. It fails with an I/O error when the
	// destination cannot be opened.
	Create(path string) (Writer, error)
}

// FactoryFunc adapts an ordinary function to the Factory interface
type FactoryFunc func(path string) (Writer, error)

// Create calls f(path)
func (f FactoryFunc) Create(path string) (Writer, error) {
	return f(path)
}
