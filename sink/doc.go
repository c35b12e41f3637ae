// Package sink provides the Writer and Factory interfaces and the
// built-in destinations for indented log lines.
//
// A Writer appends one line at a time for a given indentation depth and
// is closed exactly once by its owner. A Factory turns a destination
// path into a Writer and fails with an I/O error when the path cannot
// be opened, which lets the logger surface open failures to its caller.
//
// All writers are synchronous: WriteLine returns only after the line has
// been handed to the destination, and write errors are returned rather
// than dropped.
//
// Built-in writers:
//
//   - FileWriter appends to a file, creating parent directories. With
//     Rotation.MaxSizeMB set it rotates through lumberjack.
//   - ConsoleWriter writes to any io.Writer (default: stderr).
//   - ZapWriter forwards into a *zap.Logger.
//   - MultiWriter fans a line out to several writers, combining errors.
//   - NopWriter discards everything.
package sink
