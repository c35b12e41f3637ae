package sink

import "go.uber.org/multierr"

// MultiWriter fans each line out to several writers
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a new multi-writer. Nil writers are skipped.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	m := &MultiWriter{writers: make([]Writer, 0, len(writers))}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// WriteLine writes to every child; all failures are combined
func (m *MultiWriter) WriteLine(depth int, message string) error {
	var err error
	for _, w := range m.writers {
		err = multierr.Append(err, w.WriteLine(depth, message))
	}
	return err
}

// IsEnabled reports whether any child is enabled
func (m *MultiWriter) IsEnabled() bool {
	for _, w := range m.writers {
		if w.IsEnabled() {
			return true
		}
	}
	return false
}

// Close closes all children
func (m *MultiWriter) Close() error {
	var err error
	for _, w := range m.writers {
		err = multierr.Append(err, w.Close())
	}
	return err
}

// NopWriter discards every line
type NopWriter struct{}

// WriteLine does nothing
func (NopWriter) WriteLine(int, string) error { return nil }

// IsEnabled always returns false
func (NopWriter) IsEnabled() bool { return false }

// Close does nothing
func (NopWriter) Close() error { return nil }
