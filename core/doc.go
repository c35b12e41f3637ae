// Package core defines the shared types used across tracelog.
//
// It provides the Level type for verbosity filtering, the Entry type
// that carries one indented line to a sink, caller lookup, and the
// goroutine identity used to key per-goroutine indentation.
//
// Level values outside [MinLevel, MaxLevel] are rejected with a
// *LevelRangeError, which matches ErrLevelOutOfRange under errors.Is.
//
// Entry objects are pooled via sync.Pool to keep the write path
// allocation-free. Callers get an Entry with GetEntry and must
// return it with PutEntry once the sink has consumed it.
package core
