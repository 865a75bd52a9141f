// internal/common/status/run.go
package status

import (
	"context"
	"errors"
	"time"

	apperrors "loan-assistant/internal/common/errors"
)

// Step is one scheduled progress update, relative to the start of the
// operation.
type Step struct {
	After   time.Duration `json:"afterMs"`
	Percent int           `json:"percent"`
	Message string        `json:"message,omitempty"`
}

// Plan describes a staged call. Work runs once, after Latency, on the
// scheduler thread. Done runs after the terminal event has been emitted.
type Plan[T any] struct {
	Stage   Stage
	Latency time.Duration
	Steps   []Step

	Work func(ctx context.Context) (T, error)

	// Describe returns the terminal message for a successful result. A true
	// failed value renders a business outcome as an error event.
	Describe func(result T) (msg string, failed bool)

	// DescribeError defaults to the error's message.
	DescribeError func(err error) string

	Done func(result T, err error)
}

// Run begins a staged operation on n. The returned operation is already
// superseded when the notifier is closed.
func Run[T any](ctx context.Context, n *Notifier, p Plan[T]) *Operation {
	op := n.Begin(p.Stage)
	if !op.Live() {
		return op
	}

	for _, step := range p.Steps {
		step := step
		if step.After >= p.Latency {
			continue
		}
		n.scope.Schedule(step.After, func() {
			op.Progress(step.Percent, step.Message)
		})
	}

	n.scope.Schedule(p.Latency, func() {
		if !op.Live() {
			return
		}
		result, err := p.Work(ctx)
		if err != nil {
			op.failCode = string(apperrors.CodeOf(err))
			op.Fail(describeError(p.DescribeError, err))
		} else {
			msg, failed := "", false
			if p.Describe != nil {
				msg, failed = p.Describe(result)
			}
			if failed {
				op.Fail(msg)
			} else {
				op.Complete(msg)
			}
		}
		if p.Done != nil && !n.closed {
			p.Done(result, err)
		}
	})
	return op
}

func describeError(fn func(error) string, err error) string {
	if fn != nil {
		return fn(err)
	}
	var se *apperrors.StandardError
	if errors.As(err, &se) {
		return "❌ " + se.Message
	}
	return "❌ " + err.Error()
}
