package sampler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/procfs"
	"go.uber.org/multierr"
)

// Counter categories and names reported by Sampler
const (
	ProcessorCategory = "Processor"
	ProcessorTime     = "% Processor Time"
	MemoryCategory    = "Memory"
	AvailableMBytes   = "Available MBytes"
	MemoryInUse       = "% Memory In Use"

	// TotalInstance aggregates every CPU
	TotalInstance = "_Total"
)

// ErrClosed is reported by Sample after Close
var ErrClosed = errors.New("sampler: closed")

// ErrNoCounters is returned by New when no counter could be discovered
var ErrNoCounters = errors.New("sampler: no performance counters available")

// Counter identifies one performance counter, optionally per instance
type Counter struct {
	Category string
	Name     string
	Instance string
}

// String renders the counter as Category(Instance)\Name
func (c Counter) String() string {
	if c.Instance == "" {
		return c.Category + `\` + c.Name
	}
	return c.Category + "(" + c.Instance + `)\` + c.Name
}

// Sample is one counter reading
type Sample struct {
	Counter
	Value float64
}

// Snapshot is a point-in-time reading of every counter. Failures holds
// one error per source that could not be read; Samples holds whatever
// could be read anyway.
type Snapshot struct {
	Time     time.Time
	Samples  []Sample
	Failures []error
}

// Err combines all failures into one error, or nil
func (s Snapshot) Err() error {
	return multierr.Combine(s.Failures...)
}

type cpuTimes struct {
	busy  float64
	total float64
}

func cpuTimesOf(s procfs.CPUStat) cpuTimes {
	idle := s.Idle + s.Iowait
	total := s.User + s.Nice + s.System + s.Idle + s.Iowait + s.IRQ + s.SoftIRQ + s.Steal
	return cpuTimes{busy: total - idle, total: total}
}

// Sampler reads CPU utilisation and memory counters from procfs.
// CPU utilisation is a rate, so each reading is relative to the
// previous one; the reading taken by New only establishes the baseline.
type Sampler struct {
	fs procfs.FS

	mu       sync.Mutex
	counters []Counter
	cpu      bool
	memory   bool
	baseline map[string]cpuTimes
	closed   bool
}

// New discovers the available counters and primes the CPU baseline.
// A source that cannot be read at construction is left out; New fails
// only when no source is available at all.
func New(fs procfs.FS) (*Sampler, error) {
	s := &Sampler{
		fs:       fs,
		baseline: make(map[string]cpuTimes),
	}

	var errs error

	stat, err := fs.Stat()
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("discover cpu counters: %w", err))
	} else {
		s.cpu = true
		ids := make([]int64, 0, len(stat.CPU))
		for id := range stat.CPU {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			inst := strconv.FormatInt(id, 10)
			s.counters = append(s.counters, Counter{ProcessorCategory, ProcessorTime, inst})
			s.baseline[inst] = cpuTimesOf(stat.CPU[id])
		}
		s.counters = append(s.counters, Counter{ProcessorCategory, ProcessorTime, TotalInstance})
		s.baseline[TotalInstance] = cpuTimesOf(stat.CPUTotal)
	}

	mem, err := fs.Meminfo()
	switch {
	case err != nil:
		errs = multierr.Append(errs, fmt.Errorf("discover memory counters: %w", err))
	case mem.MemAvailable == nil:
		errs = multierr.Append(errs, errors.New("discover memory counters: MemAvailable not reported"))
	default:
		s.memory = true
		s.counters = append(s.counters, Counter{Category: MemoryCategory, Name: AvailableMBytes})
		if mem.MemTotal != nil {
			s.counters = append(s.counters, Counter{Category: MemoryCategory, Name: MemoryInUse})
		}
	}

	if len(s.counters) == 0 {
		return nil, multierr.Append(ErrNoCounters, errs)
	}
	return s, nil
}

// Counters returns the discovered counters in reporting order
func (s *Sampler) Counters() []Counter {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Counter, len(s.counters))
	copy(out, s.counters)
	return out
}

// Sample reads every counter. A failing source is recorded in
// Snapshot.Failures and the remaining sources are still read.
func (s *Sampler) Sample() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Time: time.Now()}
	if s.closed {
		snap.Failures = append(snap.Failures, ErrClosed)
		return snap
	}

	if s.cpu {
		s.sampleCPU(&snap)
	}
	if s.memory {
		s.sampleMemory(&snap)
	}
	return snap
}

func (s *Sampler) sampleCPU(snap *Snapshot) {
	stat, err := s.fs.Stat()
	if err != nil {
		snap.Failures = append(snap.Failures, fmt.Errorf("read cpu counters: %w", err))
		return
	}

	for _, c := range s.counters {
		if c.Category != ProcessorCategory {
			continue
		}

		var cur procfs.CPUStat
		if c.Instance == TotalInstance {
			cur = stat.CPUTotal
		} else {
			id, _ := strconv.ParseInt(c.Instance, 10, 64)
			var ok bool
			if cur, ok = stat.CPU[id]; !ok {
				snap.Failures = append(snap.Failures, fmt.Errorf("read counter %s: instance no longer reported", c))
				continue
			}
		}

		now := cpuTimesOf(cur)
		prev := s.baseline[c.Instance]
		s.baseline[c.Instance] = now

		var pct float64
		if dt := now.total - prev.total; dt > 0 {
			pct = (now.busy - prev.busy) / dt * 100
		}
		snap.Samples = append(snap.Samples, Sample{Counter: c, Value: clampPercent(pct)})
	}
}

func (s *Sampler) sampleMemory(snap *Snapshot) {
	mem, err := s.fs.Meminfo()
	if err != nil {
		snap.Failures = append(snap.Failures, fmt.Errorf("read memory counters: %w", err))
		return
	}
	if mem.MemAvailable == nil {
		snap.Failures = append(snap.Failures, errors.New("read memory counters: MemAvailable not reported"))
		return
	}

	availKB := float64(*mem.MemAvailable)
	for _, c := range s.counters {
		if c.Category != MemoryCategory {
			continue
		}
		switch c.Name {
		case AvailableMBytes:
			snap.Samples = append(snap.Samples, Sample{Counter: c, Value: availKB / 1024})
		case MemoryInUse:
			if mem.MemTotal == nil || *mem.MemTotal == 0 {
				snap.Failures = append(snap.Failures, fmt.Errorf("read counter %s: MemTotal not reported", c))
				continue
			}
			total := float64(*mem.MemTotal)
			snap.Samples = append(snap.Samples, Sample{Counter: c, Value: clampPercent((total - availKB) / total * 100)})
		}
	}
}

// Close releases the baselines. Later calls to Sample report ErrClosed.
func (s *Sampler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.baseline = nil
	s.counters = nil
	return nil
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
