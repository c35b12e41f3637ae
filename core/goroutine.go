package core

import "github.com/petermattis/goid"

// GoroutineID returns the runtime identifier of the calling goroutine.
// It is stable for the goroutine's lifetime and may be reused after exit.
func GoroutineID() int64 {
	return goid.Get()
}
