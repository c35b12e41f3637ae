package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Level is the diagnostic verbosity of a logger. Higher values enable
// more output; a message requested at level L is written only when the
// configured level is at least L.
type Level int32

const (
	// BasicLevel writes plain lines and exception messages
	BasicLevel Level = iota
	// DetailedLevel adds stack traces, counter snapshots and process tables
	DetailedLevel
	// VerboseLevel enables everything, including high-volume diagnostics
	VerboseLevel
)

// MinLevel and MaxLevel bound the valid range of Level values.
const (
	MinLevel = BasicLevel
	MaxLevel = VerboseLevel
)

// ErrLevelOutOfRange is matched by every LevelRangeError.
var ErrLevelOutOfRange = errors.New("log level out of range")

// LevelRangeError reports an attempt to use a level outside [MinLevel, MaxLevel].
type LevelRangeError struct {
	Level Level
}

func (e *LevelRangeError) Error() string {
	return fmt.Sprintf("log level %d out of range [%d,%d]", int(e.Level), int(MinLevel), int(MaxLevel))
}

// Is makes errors.Is(err, ErrLevelOutOfRange) hold for any LevelRangeError.
func (e *LevelRangeError) Is(target error) bool {
	return target == ErrLevelOutOfRange
}

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case BasicLevel:
		return "BASIC"
	case DetailedLevel:
		return "DETAILED"
	case VerboseLevel:
		return "VERBOSE"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// Valid reports whether l lies within [MinLevel, MaxLevel].
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Validate returns a *LevelRangeError when l is out of range.
func (l Level) Validate() error {
	if !l.Valid() {
		return &LevelRangeError{Level: l}
	}
	return nil
}

// ParseLevel converts a name ("basic", "detailed", "verbose") or a
// number ("0".."2") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BASIC":
		return BasicLevel, nil
	case "DETAILED":
		return DetailedLevel, nil
	case "VERBOSE":
		return VerboseLevel, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return BasicLevel, fmt.Errorf("parse log level %q: %w", s, ErrLevelOutOfRange)
	case err != nil:
		return BasicLevel, fmt.Errorf("parse log level %q: %w", s, err)
	case n < int64(MinLevel) || n > int64(MaxLevel):
		if n < math.MinInt32 || n > math.MaxInt32 {
			return BasicLevel, fmt.Errorf("parse log level %q: %w", s, ErrLevelOutOfRange)
		}
		return BasicLevel, &LevelRangeError{Level: Level(n)}
	}
	return Level(n), nil
}
