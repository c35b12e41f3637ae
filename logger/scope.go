package logger

import (
	"sync"

	"github.com/philipp01105/tracelog/core"
)

// Scope brackets a logical operation: it indents the creating goroutine
// on creation and unindents it on Release. Scopes must be released on
// the goroutine that created them, innermost first.
//
//	defer log.CreateScope("Connect").Release()
type Scope struct {
	logger *Logger
	token  string
	locked bool
	once   sync.Once
}

// CreateScope indents the calling goroutine until Release is called
func (l *Logger) CreateScope(token string) *Scope {
	l.Indent()
	return &Scope{logger: l, token: token}
}

// CreateScopeWithLock is CreateScope that also holds the logger's
// advisory scope lock until Release, serializing multi-line operations
// across goroutines. The lock is not the write lock; plain WriteLine
// calls from other goroutines still proceed.
//
// Locked scopes do not nest: opening one while the calling goroutine
// already holds the lock panics instead of deadlocking.
func (l *Logger) CreateScopeWithLock(token string) *Scope {
	id := core.GoroutineID()
	if l.scopeHolder.Load() == id {
		panic("tracelog: CreateScopeWithLock(" + token + ") nested inside a locked scope on the same goroutine")
	}
	l.scopeMu.Lock()
	l.scopeHolder.Store(id)
	l.Indent()
	return &Scope{logger: l, token: token, locked: true}
}

// Token returns the label the scope was created with
func (s *Scope) Token() string {
	return s.token
}

// Release unindents and, for locked scopes, releases the scope lock.
// Only the first call has an effect.
func (s *Scope) Release() {
	s.once.Do(func() {
		s.logger.Unindent()
		if s.locked {
			s.logger.scopeHolder.Store(0)
			s.logger.scopeMu.Unlock()
		}
	})
}
