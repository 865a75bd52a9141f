// internal/common/scheduler/scope.go
package scheduler

import (
	"sync"
	"time"
)

// Scope groups the callbacks of one owner, typically a conversation session.
type Scope struct {
	sched  *Scheduler
	mu     sync.Mutex
	tokens map[*Token]struct{}
	closed bool
}

// Schedule runs fn after delay. On a closed scope the returned token is
// already cancelled and fn never runs.
func (sc *Scope) Schedule(delay time.Duration, fn Func) *Token {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return &Token{scope: sc, cancelled: true, index: -1}
	}
	sc.mu.Unlock()

	t := sc.sched.schedule(sc, delay, fn)

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.closed {
		t.Cancel()
		return t
	}
	if t.Pending() {
		sc.tokens[t] = struct{}{}
	}
	return t
}

// Post is Schedule with no delay.
func (sc *Scope) Post(fn Func) *Token {
	return sc.Schedule(0, fn)
}

// Now returns the owning scheduler's clock.
func (sc *Scope) Now() time.Time {
	return sc.sched.Now()
}

// Pending returns the number of callbacks the scope still holds.
func (sc *Scope) Pending() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	n := 0
	for t := range sc.tokens {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Close cancels every callback still held and rejects new ones.
func (sc *Scope) Close() {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return
	}
	sc.closed = true
	tokens := sc.tokens
	sc.tokens = nil
	sc.mu.Unlock()

	for t := range tokens {
		t.Cancel()
	}
}

// Closed reports whether Close has been called.
func (sc *Scope) Closed() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.closed
}

func (sc *Scope) forget(t *Token) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.tokens != nil {
		delete(sc.tokens, t)
	}
}
