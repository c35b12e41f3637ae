package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the logger's self-observability counters. They live on the
// Logger, not in package globals, so several loggers can coexist; with a
// nil Registerer they are created but never exported.
type metrics struct {
	// linesWritten counts lines handed to the writer successfully
	linesWritten prometheus.Counter
	// writeErrors counts failed writer calls
	writeErrors prometheus.Counter
	// writersOpened counts successful destination opens
	writersOpened prometheus.Counter
	// writersClosed counts writer teardowns
	writersClosed prometheus.Counter
	// exceptions counts WriteException calls that reached a writer
	exceptions prometheus.Counter
	// samplingFailures counts failed counter or process reads by source
	samplingFailures *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		linesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "lines_written_total",
			Help:      "Total lines written to the active destination",
		}),
		writeErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "write_errors_total",
			Help:      "Total failed writes to the active destination",
		}),
		writersOpened: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "writers_opened_total",
			Help:      "Total destinations opened",
		}),
		writersClosed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "writers_closed_total",
			Help:      "Total destinations closed",
		}),
		exceptions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "exceptions_total",
			Help:      "Total errors logged through WriteException",
		}),
		samplingFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracelog",
			Name:      "sampling_failures_total",
			Help:      "Total failed performance counter or process table reads by source",
		}, []string{"source"}),
	}
}
