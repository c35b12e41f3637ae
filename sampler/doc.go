// Package sampler reads host performance counters and the process table
// from procfs for post-mortem diagnostics.
//
// A Sampler discovers per-CPU utilisation counters (one per CPU plus an
// aggregate "_Total" instance) and the available-memory counters when
// it is created. Reads are best-effort: Sample always returns a
// Snapshot, and any source that fails is listed in Snapshot.Failures
// instead of aborting the whole reading.
package sampler
