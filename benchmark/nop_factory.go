package benchmark

import (
	"github.com/philipp01105/tracelog/sink"
)

// nopWriter accepts every line and drops it, isolating logger overhead
// from formatting and I/O
type nopWriter struct{}

func (nopWriter) WriteLine(_ int, message string) error {
	_ = len(message)
	return nil
}

func (nopWriter) IsEnabled() bool { return true }

func (nopWriter) Close() error { return nil }

func newNopFactory() sink.Factory {
	return sink.FactoryFunc(func(string) (sink.Writer, error) {
		return nopWriter{}, nil
	})
}
