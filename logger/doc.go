// Package logger is the public API of tracelog. Most users only need to
// import this package.
//
// A Logger writes indented diagnostic lines to one destination at a
// time. It starts inactive; SetDestination opens a destination through
// a sink.Factory and writes an environment block describing the
// process, and SetDestination("") (or Close) tears it down again. While
// inactive every write is a no-op that costs a single atomic load.
//
//	log, err := logger.NewBuilder().
//	    WithLevel(logger.DetailedLevel).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	if err := log.SetDestination("/var/log/client/trace.log"); err != nil {
//	    return err
//	}
//	defer log.Close()
//
// Each goroutine has its own indentation depth. CreateScope indents the
// calling goroutine until the returned Scope is released, so nested
// operations read as a tree even when goroutines interleave:
//
//	defer log.CreateScope("FindElement").Release()
//
// Levels run from BasicLevel (0) to VerboseLevel (2). At DetailedLevel
// and above, WriteException adds the stack of the logging call site,
// and WriteMetricsSnapshot and WriteProcessTable dump procfs counters
// and the process table. The same dumps are written automatically just
// before a destination is closed. Counter and process read failures are
// written as lines and never returned; writer failures are returned.
//
// All state changes and writes share one mutex. CreateScopeWithLock
// additionally takes a separate advisory lock so that multi-line
// sequences from different goroutines do not interleave.
package logger
