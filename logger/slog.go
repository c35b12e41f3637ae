package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/philipp01105/tracelog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Logger, so code written against log/slog lands in the same indented
// output. Records become single lines with attributes appended as
// key=value.
type SlogHandler struct {
	logger *Logger
	attrs  string
	group  string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping l.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the logger is active and its level admits
// records at the given slog level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.IsActive() && s.logger.Level() >= slogLevelToCore(level)
}

// Handle writes the record as one line.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.attrs)

	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, s.group, a)
		return true
	})

	return s.logger.WriteLineAtLevel(slogLevelToCore(record.Level), b.String())
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(s.attrs)
	for _, a := range attrs {
		appendAttr(&b, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  b.String(),
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to the level a record needs.
// Errors, warnings and info are always written; debug needs level 1.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelInfo:
		return core.BasicLevel
	case level >= slog.LevelDebug:
		return core.DetailedLevel
	default:
		return core.VerboseLevel
	}
}

// appendAttr writes " key=value", prefixing keys with the group and
// flattening nested groups.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	fmt.Fprint(b, a.Value.Any())
}
