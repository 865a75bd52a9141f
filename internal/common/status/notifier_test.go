// internal/common/status/notifier_test.go
package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/scheduler"
)

var epoch = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

var ticketStage = Stage{
	TaskType:     "create-ticket",
	Agent:        "System",
	Task:         "Creating ticket",
	CompleteTask: "Ticket Created",
}

func newTestNotifier(t *testing.T, opts ...Option) (*scheduler.Scheduler, *Notifier, *[]*Event) {
	t.Helper()
	s := scheduler.NewManual(epoch)
	n := NewNotifier(s.NewScope(), opts...)
	var seen []*Event
	n.Subscribe(func(ev *Event) { seen = append(seen, ev) })
	return s, n, &seen
}

func phases(events []*Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			out = append(out, "dismissed")
			continue
		}
		out = append(out, string(ev.Phase))
	}
	return out
}

// ==========================
// Notifier
// ==========================

func TestNotifier_Lifecycle(t *testing.T) {
	s, n, seen := newTestNotifier(t)

	op := n.Begin(ticketStage)
	require.NotNil(t, n.Current())
	assert.Equal(t, PhasePending, n.Current().Phase)
	assert.True(t, n.InFlight())

	assert.True(t, op.Progress(50, "Ticket #OFFER-1234 raised"))
	assert.False(t, op.Progress(50, "again"), "percent must increase")
	assert.False(t, op.Progress(100, "too far"))
	assert.True(t, op.Complete("done"))
	assert.False(t, op.Complete("twice"))
	assert.False(t, n.InFlight())

	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, PhaseComplete, cur.Phase)
	assert.Equal(t, 100, cur.Percent)
	assert.Equal(t, "Ticket Created", cur.Task)
	assert.Equal(t, op.ID(), cur.OperationID)

	s.Advance(DefaultAutoDismiss - time.Millisecond)
	assert.NotNil(t, n.Current())
	s.Advance(time.Millisecond)
	assert.Nil(t, n.Current())

	assert.Equal(t, []string{"pending", "progress", "complete", "dismissed"}, phases(*seen))
}

func TestNotifier_ErrorEventsStayUntilDismissed(t *testing.T) {
	s, n, _ := newTestNotifier(t)

	op := n.Begin(ticketStage)
	op.Progress(30, "")
	assert.False(t, n.Dismiss(), "running operations cannot be dismissed")
	op.Fail("❌ backend unavailable")

	s.Advance(time.Hour)
	require.NotNil(t, n.Current())
	assert.Equal(t, PhaseError, n.Current().Phase)
	assert.Equal(t, 30, n.Current().Percent)

	assert.True(t, n.Dismiss())
	assert.Nil(t, n.Current())
	assert.False(t, n.Dismiss())
}

func TestNotifier_ConfigurableAutoDismiss(t *testing.T) {
	s, n, _ := newTestNotifier(t, WithAutoDismiss(500*time.Millisecond), WithAutoDismiss(0))
	assert.Equal(t, 500*time.Millisecond, n.AutoDismiss())

	n.Begin(ticketStage).Complete("")
	s.Advance(500 * time.Millisecond)
	assert.Nil(t, n.Current())
}

func TestNotifier_BeginSupersedesPrior(t *testing.T) {
	s, n, _ := newTestNotifier(t)

	first := n.Begin(ticketStage)
	first.Complete("")
	second := n.Begin(Stage{TaskType: "fetch-offers", Agent: "Sales Agent", Task: "Fetching offers from Offer-Mart"})

	// The first event's auto-dismiss must not clear the second one.
	s.Advance(DefaultAutoDismiss)
	require.NotNil(t, n.Current())
	assert.Equal(t, second.ID(), n.Current().OperationID)

	third := n.Begin(ticketStage)
	assert.False(t, second.Live())
	assert.False(t, second.Progress(10, ""))
	assert.False(t, second.Complete(""))
	assert.Equal(t, third.ID(), n.Current().OperationID)
}

func TestNotifier_CloseSilencesEverything(t *testing.T) {
	s, n, seen := newTestNotifier(t)

	op := n.Begin(ticketStage)
	n.Close()
	n.Close()
	before := len(*seen)

	assert.False(t, op.Complete(""))
	late := n.Begin(ticketStage)
	assert.False(t, late.Live())
	s.Advance(time.Minute)

	assert.Nil(t, n.Current())
	assert.Len(t, *seen, before)
}

// ==========================
// Run
// ==========================

type recordingObserver struct {
	phases  []Phase
	elapsed []time.Duration
	codes   []string
}

func (r *recordingObserver) OperationFinished(op *Operation, phase Phase, elapsed time.Duration) {
	r.phases = append(r.phases, phase)
	r.elapsed = append(r.elapsed, elapsed)
	r.codes = append(r.codes, op.FailCode())
}

func TestRun_StagesThenCompletes(t *testing.T) {
	obs := &recordingObserver{}
	s, n, seen := newTestNotifier(t, WithObserver(obs))

	var order []string
	n.Subscribe(func(ev *Event) {
		if ev != nil {
			order = append(order, "event:"+string(ev.Phase))
		}
	})

	Run(context.Background(), n, Plan[string]{
		Stage:   ticketStage,
		Latency: 1500 * time.Millisecond,
		Steps: []Step{
			{After: 750 * time.Millisecond, Percent: 50, Message: "halfway"},
			{After: 2 * time.Second, Percent: 90, Message: "never, beyond latency"},
		},
		Work: func(ctx context.Context) (string, error) {
			order = append(order, "work")
			return "OFFER-1234", nil
		},
		Describe: func(id string) (string, bool) { return "Ticket #" + id + " raised", false },
		Done: func(id string, err error) {
			assert.NoError(t, err)
			order = append(order, "done:"+id)
		},
	})

	s.Advance(1499 * time.Millisecond)
	assert.Equal(t, []string{"pending", "progress"}, phases(*seen))

	s.Advance(time.Millisecond)
	assert.Equal(t, []string{"event:pending", "event:progress", "work", "event:complete", "done:OFFER-1234"}, order)
	assert.Equal(t, "Ticket #OFFER-1234 raised", n.Current().Message)
	assert.Equal(t, []Phase{PhaseComplete}, obs.phases)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, obs.elapsed)
}

func TestRun_FaultProducesErrorEvent(t *testing.T) {
	obs := &recordingObserver{}
	s, n, _ := newTestNotifier(t, WithObserver(obs))

	var gotErr error
	Run(context.Background(), n, Plan[int]{
		Stage:   ticketStage,
		Latency: time.Second,
		Work: func(ctx context.Context) (int, error) {
			return 0, apperrors.NewSimulationFault("create-ticket", errors.New("timeout"))
		},
		Done: func(_ int, err error) { gotErr = err },
	})
	s.Advance(time.Second)

	assert.True(t, apperrors.HasCode(gotErr, apperrors.ErrCodeSimulationFault))
	require.NotNil(t, n.Current())
	assert.Equal(t, PhaseError, n.Current().Phase)
	assert.Contains(t, n.Current().Message, "❌")
	assert.Equal(t, []string{string(apperrors.ErrCodeSimulationFault)}, obs.codes)
}

func TestRun_BusinessFailureRendersAsError(t *testing.T) {
	s, n, _ := newTestNotifier(t)

	doneCalled := false
	Run(context.Background(), n, Plan[bool]{
		Stage:    Stage{TaskType: "underwriting-decision", Agent: "Underwriting Agent", Task: "Final Decision"},
		Latency:  time.Second,
		Work:     func(ctx context.Context) (bool, error) { return false, nil },
		Describe: func(ok bool) (string, bool) { return "❌ Rejected - Credit score below threshold", !ok },
		Done: func(ok bool, err error) {
			doneCalled = true
			assert.NoError(t, err)
			assert.False(t, ok)
		},
	})
	s.Advance(time.Second)

	assert.True(t, doneCalled)
	assert.Equal(t, PhaseError, n.Current().Phase)
	assert.Equal(t, "❌ Rejected - Credit score below threshold", n.Current().Message)
}

func TestRun_TeardownMakesPendingCallbacksNoOps(t *testing.T) {
	s := scheduler.NewManual(epoch)
	scope := s.NewScope()
	n := NewNotifier(scope)

	worked, done := false, false
	Run(context.Background(), n, Plan[int]{
		Stage:   ticketStage,
		Latency: time.Second,
		Steps:   []Step{{After: 500 * time.Millisecond, Percent: 40}},
		Work:    func(ctx context.Context) (int, error) { worked = true; return 1, nil },
		Done:    func(int, error) { done = true },
	})

	n.Close()
	scope.Close()
	s.Advance(time.Minute)

	assert.False(t, worked)
	assert.False(t, done)
}

func TestRun_SupersededOperationNeverResolves(t *testing.T) {
	s, n, _ := newTestNotifier(t)

	resolved := false
	Run(context.Background(), n, Plan[int]{
		Stage:   ticketStage,
		Latency: time.Second,
		Work:    func(ctx context.Context) (int, error) { resolved = true; return 0, nil },
	})
	n.Begin(Stage{TaskType: "other"})
	s.Advance(time.Second)

	assert.False(t, resolved)
}

func TestMetricsObserver_RecordsWithoutPanicking(t *testing.T) {
	s, n, _ := newTestNotifier(t, WithObserver(NewMetricsObserver(nil, logger.NewTestLogger(t), "s-1")))

	n.Begin(ticketStage).Complete("")
	n.Begin(ticketStage).Fail("boom")
	s.Advance(time.Second)
}
