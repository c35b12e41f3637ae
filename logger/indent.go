package logger

// indentTracker maps a goroutine id to its nesting depth. It is not
// synchronized; every call happens under Logger.mu.
type indentTracker struct {
	depths map[int64]int
}

func (t *indentTracker) get(id int64) int {
	return t.depths[id]
}

func (t *indentTracker) increment(id int64) int {
	if t.depths == nil {
		t.depths = make(map[int64]int)
	}
	t.depths[id]++
	return t.depths[id]
}

// decrement does not stop at zero; callers that unindent more than they
// indented get a negative depth, which formatters print as no indent.
func (t *indentTracker) decrement(id int64) int {
	if t.depths == nil {
		t.depths = make(map[int64]int)
	}
	t.depths[id]--
	return t.depths[id]
}
