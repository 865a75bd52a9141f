// internal/common/status/operation.go
package status

import "time"

// Operation is one staged backend call. Methods on a superseded or finished
// operation are no-ops that return false.
type Operation struct {
	id         string
	stage      Stage
	notifier   *Notifier
	startedAt  time.Time
	lastPct    int
	failCode   string
	finished   bool
	superseded bool
}

func (op *Operation) ID() string   { return op.id }
func (op *Operation) Stage() Stage { return op.stage }

// FailCode is the error code of a failed call, empty otherwise.
func (op *Operation) FailCode() string { return op.failCode }

// Live reports whether the operation may still emit events.
func (op *Operation) Live() bool {
	return !op.superseded && !op.finished
}

// Progress emits a progress event. percent must exceed the previous one and
// stay below 100.
func (op *Operation) Progress(percent int, msg string) bool {
	if !op.Live() || percent <= op.lastPct || percent >= 100 {
		return false
	}
	op.lastPct = percent
	op.notifier.emit(op, PhaseProgress, percent, msg)
	return true
}

// Complete emits the terminal complete event, which auto-dismisses.
func (op *Operation) Complete(msg string) bool {
	return op.finish(PhaseComplete, 100, msg)
}

// Fail emits the terminal error event, which stays until dismissed.
func (op *Operation) Fail(msg string) bool {
	return op.finish(PhaseError, op.lastPct, msg)
}

func (op *Operation) finish(phase Phase, percent int, msg string) bool {
	if !op.Live() {
		return false
	}
	op.finished = true
	op.notifier.emit(op, phase, percent, msg)
	if obs := op.notifier.observer; obs != nil {
		obs.OperationFinished(op, phase, op.notifier.scope.Now().Sub(op.startedAt))
	}
	return true
}
