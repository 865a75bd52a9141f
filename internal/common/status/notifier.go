// internal/common/status/notifier.go
package status

import (
	"time"

	"github.com/google/uuid"

	"loan-assistant/internal/common/scheduler"
)

// DefaultAutoDismiss is how long a complete event stays visible.
const DefaultAutoDismiss = 2 * time.Second

// Notifier sequences staged status events for one session. It is not safe for
// concurrent use; every method runs on the scheduler thread.
type Notifier struct {
	scope       *scheduler.Scope
	autoDismiss time.Duration
	listeners   []Listener
	observer    Observer

	current   *Event
	live      *Operation
	dismissal *scheduler.Token
	closed    bool
}

// Observer is told when an operation reaches a terminal phase.
type Observer interface {
	OperationFinished(op *Operation, phase Phase, elapsed time.Duration)
}

type Option func(*Notifier)

// WithAutoDismiss overrides DefaultAutoDismiss. Non-positive values are ignored.
func WithAutoDismiss(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.autoDismiss = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(n *Notifier) { n.observer = o }
}

func NewNotifier(scope *scheduler.Scope, opts ...Option) *Notifier {
	n := &Notifier{scope: scope, autoDismiss: DefaultAutoDismiss}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers l for every subsequent change.
func (n *Notifier) Subscribe(l Listener) {
	n.listeners = append(n.listeners, l)
}

// AutoDismiss returns the configured delay for complete events.
func (n *Notifier) AutoDismiss() time.Duration { return n.autoDismiss }

// Current returns a copy of the live event, or nil.
func (n *Notifier) Current() *Event {
	if n.current == nil {
		return nil
	}
	ev := *n.current
	return &ev
}

// InFlight reports whether an operation has begun and not yet finished.
func (n *Notifier) InFlight() bool {
	return n.live != nil && !n.live.finished
}

// Live returns the operation that currently owns the notifier, if any.
func (n *Notifier) Live() *Operation {
	return n.live
}

// Begin starts a new operation, superseding whatever was live, and emits its
// pending event immediately.
func (n *Notifier) Begin(stage Stage) *Operation {
	if n.live != nil {
		n.live.superseded = true
	}
	op := &Operation{
		id:        uuid.NewString(),
		stage:     stage,
		notifier:  n,
		startedAt: n.scope.Now(),
		lastPct:   0,
	}
	if n.closed {
		op.superseded = true
		return op
	}
	n.live = op
	n.emit(op, PhasePending, 0, "")
	return op
}

// Dismiss clears a terminal event. Events of a running operation cannot be
// dismissed. It reports whether anything was cleared.
func (n *Notifier) Dismiss() bool {
	if n.current == nil || !n.current.Phase.Terminal() {
		return false
	}
	n.clear()
	return true
}

// Close stops all delivery. Operations begun earlier become no-ops.
func (n *Notifier) Close() {
	if n.closed {
		return
	}
	n.closed = true
	if n.live != nil {
		n.live.superseded = true
	}
	n.dismissal.Cancel()
	n.dismissal = nil
	n.current = nil
}

func (n *Notifier) clear() {
	n.dismissal.Cancel()
	n.dismissal = nil
	n.current = nil
	n.notify()
}

func (n *Notifier) emit(op *Operation, phase Phase, percent int, msg string) {
	n.dismissal.Cancel()
	n.dismissal = nil

	task := op.stage.Task
	if phase == PhaseComplete && op.stage.CompleteTask != "" {
		task = op.stage.CompleteTask
	}
	n.current = &Event{
		ID:          uuid.NewString(),
		OperationID: op.id,
		TaskType:    op.stage.TaskType,
		Agent:       op.stage.Agent,
		Task:        task,
		Phase:       phase,
		Percent:     percent,
		Message:     msg,
		Reroute:     op.stage.Reroute,
		EmittedAt:   n.scope.Now(),
	}

	if phase == PhaseComplete {
		eventID := n.current.ID
		n.dismissal = n.scope.Schedule(n.autoDismiss, func() {
			if n.current != nil && n.current.ID == eventID {
				n.clear()
			}
		})
	}
	n.notify()
}

func (n *Notifier) notify() {
	if n.closed {
		return
	}
	ev := n.Current()
	for _, l := range n.listeners {
		l(ev)
	}
}
