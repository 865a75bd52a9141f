// internal/conversation/engine.go
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"loan-assistant/internal/catalog"
	"loan-assistant/internal/common/auth"
	"loan-assistant/internal/common/config"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/metrics"
	"loan-assistant/internal/common/observability"
	"loan-assistant/internal/common/scheduler"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
	createticket "loan-assistant/internal/workers/system/create-ticket"
)

// Deps are the collaborators of one session. Identity, Scheduler and the
// three lookups are required; the rest have working defaults.
type Deps struct {
	Identity      auth.Provider
	Navigator     Navigator
	Offers        catalog.OfferCatalog
	Customers     catalog.CustomerDirectory
	Scores        catalog.CreditScoreTable
	Scheduler     *scheduler.Scheduler
	Logger        logger.Logger
	Config        *config.Config
	Observability *observability.Observability
}

// WithCatalog fills all three lookups from c.
func (d Deps) WithCatalog(c catalog.Catalog) Deps {
	d.Offers, d.Customers, d.Scores = c, c, c
	return d
}

type Option func(*Engine)

func WithSessionID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// WithTicketNumbers makes ticket ids deterministic.
func WithTicketNumbers(fn func() int) Option {
	return func(e *Engine) { e.ticketNumbers = fn }
}

// Engine drives one loan conversation. It is not safe for concurrent use:
// every method must be called on the scheduler's thread, for example through
// Scheduler.Post.
type Engine struct {
	id            string
	ctx           context.Context
	cancel        context.CancelFunc
	cfg           *config.Config
	logger        logger.Logger
	scope         *scheduler.Scope
	notifier      *status.Notifier
	navigator     Navigator
	agents        *agents
	ticketNumbers func() int

	user         models.User
	state        State
	path         lending.Outcome
	app          *models.LoanApplication
	customer     *models.Customer
	consent      bool
	score        *models.CreditScoreRecord
	letter       *models.SanctionLetter
	disbursement *models.Disbursement
	messages     []models.Message

	// retry re-runs the agent call that last faulted.
	retry func()

	version   int
	listeners []SnapshotListener
	closed    bool
}

// New opens a session for the user the identity provider reports. The
// session starts in Greeting.
func New(ctx context.Context, deps Deps, opts ...Option) (*Engine, error) {
	if deps.Scheduler == nil {
		return nil, apperrors.NewPreconditionFailedError("scheduler is required")
	}
	if deps.Identity == nil {
		return nil, apperrors.NewUnauthenticatedError("no identity provider")
	}
	if deps.Offers == nil || deps.Customers == nil || deps.Scores == nil {
		return nil, apperrors.NewPreconditionFailedError("offer catalog, customer directory and credit-score table are required")
	}
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.Navigator == nil {
		deps.Navigator = nopNavigator{}
	}

	user, err := deps.Identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		id:        uuid.NewString(),
		cfg:       deps.Config,
		navigator: deps.Navigator,
		user:      *user,
		state:     Greeting{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.logger = deps.Logger.WithFields(map[string]interface{}{
		"sessionId": e.id,
		"userId":    e.user.ID,
	})
	e.scope = deps.Scheduler.NewScope()
	e.notifier = status.NewNotifier(e.scope,
		status.WithAutoDismiss(config.GetDuration(e.cfg.Status.AutoDismiss)),
		status.WithObserver(status.NewMetricsObserver(deps.Observability, e.logger, e.id)),
	)
	e.notifier.Subscribe(func(*status.Event) { e.publish() })

	var ticketOpts []createticket.Option
	if e.ticketNumbers != nil {
		ticketOpts = append(ticketOpts, createticket.WithNumberSource(e.ticketNumbers))
	}
	e.agents = newAgents(e.cfg, deps, e.scope.Now, e.logger, ticketOpts...)

	metrics.SessionsActive.Inc()
	e.logger.Info("Session opened", nil)

	e.say(models.RoleAssistant, msgGreeting)
	e.say(models.RoleAssistant, msgGreetingPrompt)
	e.publish()
	return e, nil
}

func (e *Engine) ID() string        { return e.id }
func (e *Engine) User() models.User { return e.user }
func (e *Engine) State() State      { return e.state }
func (e *Engine) Step() Step        { return e.state.Step() }
func (e *Engine) Closed() bool      { return e.closed }

// Pending returns a copy of the visible status event, if any.
func (e *Engine) Pending() *status.Event { return e.notifier.Current() }

// Busy reports whether a simulated agent is running.
func (e *Engine) Busy() bool { return e.notifier.InFlight() }

// OnSnapshot registers l for every snapshot published from now on.
func (e *Engine) OnSnapshot(l SnapshotListener) {
	e.listeners = append(e.listeners, l)
}

// QuickReplies lists the chips that map to intents of the current state.
func (e *Engine) QuickReplies() []string {
	return append([]string(nil), quickRepliesFor(e.state)...)
}

// SanctionLetter returns the generated letter for download.
func (e *Engine) SanctionLetter() (*models.SanctionLetter, bool) {
	return cloneLetter(e.letter), e.letter != nil
}

// Result is available once the application reached Complete or Rejected.
func (e *Engine) Result() (Result, bool) {
	if e.app == nil || !Terminal(e.state) {
		return Result{}, false
	}
	return e.result(), true
}

func (e *Engine) result() Result {
	r := Result{Application: *cloneApplication(e.app), Sanction: cloneLetter(e.letter)}
	if e.disbursement != nil {
		d := *e.disbursement
		r.Disbursement = &d
	}
	return r
}

// Snapshot returns the current view without publishing.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Version:      e.version,
		SessionID:    e.id,
		State:        e.state,
		Step:         e.state.Step(),
		Application:  cloneApplication(e.app),
		Messages:     append([]models.Message(nil), e.messages...),
		Pending:      e.notifier.Current(),
		ConsentGiven: e.consent,
		QuickReplies: e.QuickReplies(),
	}
	if e.score != nil {
		rec := *e.score
		s.CreditScore = &rec
	}
	return s
}

// Submit feeds one line of user input to the current state. A returned error
// means the input was rejected; the state is unchanged and the assistant has
// re-prompted where that makes sense.
func (e *Engine) Submit(text string) error {
	if e.closed {
		return apperrors.NewSessionClosedError(e.id)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return e.rejectInput(apperrors.NewValidationError("empty input"))
	}
	if e.notifier.InFlight() {
		return e.rejectInput(apperrors.NewOperationInFlightError(e.notifier.Live().Stage().TaskType))
	}

	e.say(models.RoleUser, text)
	if e.retryPending() {
		e.publish()
		return nil
	}

	err := e.dispatch(text)
	e.publish()
	if err != nil {
		return e.rejectInput(err)
	}
	return nil
}

// Upload hands a document to DocumentCapture. Any other state rejects it.
func (e *Engine) Upload(name string) error {
	if e.closed {
		return apperrors.NewSessionClosedError(e.id)
	}
	if e.notifier.InFlight() {
		return e.rejectInput(apperrors.NewOperationInFlightError(e.notifier.Live().Stage().TaskType))
	}
	st, ok := e.state.(DocumentCapture)
	if !ok {
		return e.rejectInput(apperrors.NewValidationError(
			fmt.Sprintf("no document requested in %s", e.state.Step())))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultDocumentName
	}

	e.say(models.RoleUser, "📎 "+name)
	// The upload supersedes a faulted verification of an earlier document.
	if e.retry != nil {
		e.retry = nil
		e.notifier.Dismiss()
	}
	err := e.verifyDocument(st.EMI, name)
	e.publish()
	if err != nil {
		return e.rejectInput(err)
	}
	return nil
}

// Dismiss clears a finished status event, typically an error.
func (e *Engine) Dismiss() bool {
	if e.closed {
		return false
	}
	return e.notifier.Dismiss()
}

// Restart discards the application and returns to Greeting. A credit score
// already fetched in this session is kept so the bureau is not called twice.
func (e *Engine) Restart() error {
	if e.closed {
		return apperrors.NewSessionClosedError(e.id)
	}
	if e.notifier.InFlight() {
		return e.rejectInput(apperrors.NewOperationInFlightError(e.notifier.Live().Stage().TaskType))
	}

	e.notifier.Dismiss()
	e.app, e.customer, e.letter, e.disbursement = nil, nil, nil, nil
	e.consent = false
	e.path = ""
	e.retry = nil

	e.say(models.RoleAssistant, msgRestarted)
	e.transition(Greeting{})
	e.say(models.RoleAssistant, msgGreetingPrompt)
	e.publish()
	return nil
}

// Close tears the session down. Pending agent calls, progress updates and
// dismissals never fire afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
	e.notifier.Close()
	e.scope.Close()
	metrics.SessionsActive.Dec()
	e.logger.Info("Session closed", map[string]interface{}{
		"step":     e.state.Step(),
		"messages": len(e.messages),
	})
}

func (e *Engine) dispatch(text string) error {
	switch st := e.state.(type) {
	case Greeting:
		return e.onGreeting(text)
	case LoanTypeSelection:
		return e.onLoanType(text)
	case AmountCapture:
		return e.onAmount(st, text)
	case TenureCapture:
		return e.onTenure(text)
	case ConsentGate:
		return e.onConsent(st, text)
	case OfferSelection:
		return e.onOfferSelection(st, text)
	case DocumentCapture:
		return e.onDocument(st, text)
	case Rejected:
		return e.onRejected(text)
	case Complete:
		e.say(models.RoleAssistant, msgCompleteReply)
		return nil
	}
	e.say(models.RoleAssistant, msgWait)
	return apperrors.NewUnrecognizedInputError(string(e.state.Step()), text)
}

// retryPending re-runs a faulted agent call. Any input counts as the retry.
func (e *Engine) retryPending() bool {
	if e.retry == nil {
		return false
	}
	fn := e.retry
	e.retry = nil
	e.notifier.Dismiss()
	e.logger.Info("Retrying faulted step", map[string]interface{}{"step": e.state.Step()})
	fn()
	return true
}

func (e *Engine) rejectInput(err error) error {
	code := apperrors.CodeOf(err)
	metrics.InputRejections.WithLabelValues(string(e.state.Step()), string(code)).Inc()
	e.logger.Debug("Input rejected", map[string]interface{}{
		"step": e.state.Step(),
		"code": code,
	})
	return err
}

func (e *Engine) transition(next State) {
	from := e.state.Step()
	e.state = next
	// A retry belongs to the state it faulted in.
	e.retry = nil
	metrics.ConversationTransitions.WithLabelValues(string(from), string(next.Step())).Inc()
	e.logger.Debug("Transition", map[string]interface{}{
		"from": from,
		"to":   next.Step(),
	})
}

func (e *Engine) now() time.Time { return e.scope.Now() }

func (e *Engine) say(role models.Role, text string) {
	e.messages = append(e.messages, models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: e.now(),
	})
}

func (e *Engine) publish() {
	if e.closed {
		return
	}
	e.version++
	snap := e.Snapshot()
	for _, l := range e.listeners {
		l(snap)
	}
}

func (e *Engine) navigate(to Destination) {
	if err := e.navigator.Navigate(e.ctx, to); err != nil {
		e.logger.WithError(err).Warn("Navigation failed", map[string]interface{}{
			"destination": to,
		})
	}
}
