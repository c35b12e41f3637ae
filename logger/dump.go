package logger

import (
	"fmt"

	"github.com/prometheus/procfs"
	"go.uber.org/multierr"

	"github.com/philipp01105/tracelog/sampler"
)

func (l *Logger) openProcFS() (procfs.FS, error) {
	return sampler.OpenProcFS(l.procMount)
}

// initSamplerLocked discovers the performance counters. Discovery
// failures are written as a line; only writer failures are returned.
func (l *Logger) initSamplerLocked() error {
	if l.sampler != nil {
		return nil
	}

	fs, err := l.openProcFS()
	if err == nil {
		l.sampler, err = sampler.New(fs)
	}
	if err != nil {
		l.metrics.samplingFailures.WithLabelValues("discover").Inc()
		return l.writeLocked(fmt.Sprintf("Performance counters unavailable: %v", err))
	}
	return nil
}

// writeMetricsLocked writes a fresh counter snapshot, discovering the
// counters first if the level was raised after the destination opened
func (l *Logger) writeMetricsLocked() error {
	if err := l.initSamplerLocked(); err != nil || l.sampler == nil {
		return err
	}

	snap := l.sampler.Sample()

	var err error
	for _, s := range snap.Samples {
		err = multierr.Append(err, l.writeLocked(fmt.Sprintf("Counter %s = %.2f", s.Counter, s.Value)))
	}
	for _, f := range snap.Failures {
		l.metrics.samplingFailures.WithLabelValues("counter").Inc()
		err = multierr.Append(err, l.writeLocked(fmt.Sprintf("Counter read failed: %v", f)))
	}
	return err
}

// writeProcessTableLocked writes one line per process. An enumeration
// failure is written as a line after whatever could be read.
func (l *Logger) writeProcessTableLocked() error {
	fs, err := l.openProcFS()
	if err != nil {
		l.metrics.samplingFailures.WithLabelValues("process").Inc()
		return l.writeLocked(fmt.Sprintf("Process table unavailable: %v", err))
	}

	table, readErr := sampler.ReadProcessTable(fs)

	var werr error
	for _, p := range table {
		werr = multierr.Append(werr, l.writeLocked(fmt.Sprintf(
			"Process %d %s ppid=%d state=%s threads=%d rss=%d cpu=%.2fs",
			p.PID, p.Name, p.PPID, p.State, p.Threads, p.ResidentBytes, p.CPUSeconds)))
	}
	if readErr != nil {
		l.metrics.samplingFailures.WithLabelValues("process").Inc()
		werr = multierr.Append(werr, l.writeLocked(fmt.Sprintf("Process table incomplete: %v", readErr)))
	}
	return werr
}
