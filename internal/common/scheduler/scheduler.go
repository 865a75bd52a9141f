// Package scheduler runs deferred callbacks on one logical thread.
//
// Every callback executes serially, ordered by due time and then by the order
// in which it was scheduled, so a later-scheduled callback never runs ahead of
// an earlier one due at the same instant. Callbacks are registered through a
// Scope; closing the Scope cancels everything it still holds, and a cancelled
// callback is a no-op when its time comes.
//
// Two clocks are supported. A manual scheduler only moves when Advance or
// RunUntilIdle is called, which makes conversation tests deterministic. A
// real-time scheduler is driven by Run, which sleeps until the next deadline.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Func is a deferred callback. It runs on the scheduler's thread.
type Func func()

// Token identifies one scheduled callback.
type Token struct {
	seq       uint64
	due       time.Time
	fn        Func
	cancelled bool
	fired     bool
	scope     *Scope
	index     int
}

// Cancel prevents the callback from running. It is safe to call more than once
// and after the callback fired.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.scope.sched.mu.Lock()
	t.cancelled = true
	t.scope.sched.mu.Unlock()
}

// Pending reports whether the callback is still waiting to run.
func (t *Token) Pending() bool {
	if t == nil {
		return false
	}
	t.scope.sched.mu.Lock()
	defer t.scope.sched.mu.Unlock()
	return !t.cancelled && !t.fired
}

type queue []*Token

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *queue) Push(x any) {
	t := x.(*Token)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler owns the callback queue and the clock.
type Scheduler struct {
	mu     sync.Mutex
	queue  queue
	seq    uint64
	now    time.Time
	manual bool
	wake   chan struct{}

	root *Scope

	// running guards against re-entrant draining from inside a callback.
	running bool
}

// NewManual returns a scheduler whose clock starts at start and only moves on
// Advance or RunUntilIdle.
func NewManual(start time.Time) *Scheduler {
	return &Scheduler{now: start, manual: true, wake: make(chan struct{}, 1)}
}

// NewRealtime returns a scheduler that follows the wall clock. Callbacks only
// run while Run is active.
func NewRealtime() *Scheduler {
	return &Scheduler{now: time.Now(), wake: make(chan struct{}, 1)}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nowLocked()
}

func (s *Scheduler) nowLocked() time.Time {
	if s.manual {
		return s.now
	}
	return time.Now()
}

// NewScope opens a scope that owns the callbacks scheduled through it.
func (s *Scheduler) NewScope() *Scope {
	return &Scope{sched: s, tokens: make(map[*Token]struct{})}
}

func (s *Scheduler) schedule(sc *Scope, delay time.Duration, fn Func) *Token {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	s.seq++
	t := &Token{seq: s.seq, due: s.nowLocked().Add(delay), fn: fn, scope: sc}
	heap.Push(&s.queue, t)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return t
}

// popDue removes the earliest callback due at or before at. Cancelled entries
// are discarded on the way.
func (s *Scheduler) popDue(at time.Time) *Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queue.Len() > 0 {
		head := s.queue[0]
		if head.cancelled {
			heap.Pop(&s.queue)
			continue
		}
		if head.due.After(at) {
			return nil
		}
		heap.Pop(&s.queue)
		head.fired = true
		if s.manual && head.due.After(s.now) {
			s.now = head.due
		}
		return head
	}
	return nil
}

func (s *Scheduler) fire(t *Token) {
	t.scope.forget(t)
	t.fn()
}

// Post schedules fn to run as soon as the scheduler gets to it. It is the way
// for other goroutines to hand work to the scheduler thread.
func (s *Scheduler) Post(fn Func) *Token {
	s.mu.Lock()
	if s.root == nil {
		s.root = &Scope{sched: s, tokens: make(map[*Token]struct{})}
	}
	root := s.root
	s.mu.Unlock()
	return root.Schedule(0, fn)
}

// Len returns the number of callbacks still queued, cancelled ones excluded.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// NextDue returns the deadline of the earliest pending callback.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *Token
	for _, t := range s.queue {
		if t.cancelled {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return best.due, true
}

// Advance moves a manual clock forward by d, running every callback that
// becomes due, including ones scheduled by callbacks inside the window.
// It returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	if !s.manual {
		s.mu.Unlock()
		panic("scheduler: Advance on a realtime scheduler")
	}
	if s.running {
		s.mu.Unlock()
		panic("scheduler: Advance called from inside a callback")
	}
	s.running = true
	target := s.now.Add(d)
	s.mu.Unlock()

	ran := 0
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		s.fire(t)
		ran++
	}

	s.mu.Lock()
	s.now = target
	s.running = false
	s.mu.Unlock()
	return ran
}

// RunUntilIdle advances a manual clock until no callback remains, or until
// limit callbacks have run. It returns the number run.
func (s *Scheduler) RunUntilIdle(limit int) int {
	ran := 0
	for ran < limit {
		due, ok := s.NextDue()
		if !ok {
			break
		}
		step := due.Sub(s.Now())
		n := s.Advance(step)
		if n == 0 {
			break
		}
		ran += n
	}
	return ran
}

// Run drives a realtime scheduler until ctx is done. Callbacks run on the
// calling goroutine.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.manual {
		panic("scheduler: Run on a manual scheduler")
	}
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		for {
			t := s.popDue(time.Now())
			if t == nil {
				break
			}
			s.fire(t)
		}

		wait := time.Hour
		if due, ok := s.NextDue(); ok {
			wait = time.Until(due)
			if wait < 0 {
				wait = 0
			}
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		case <-timer.C:
		}
	}
}
