package logger

import "github.com/philipp01105/tracelog/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	BasicLevel    = core.BasicLevel
	DetailedLevel = core.DetailedLevel
	VerboseLevel  = core.VerboseLevel
)

// ParseLevel converts a level name or number to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
