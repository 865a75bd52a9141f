// internal/conversation/steps.go
package conversation

import (
	"github.com/google/uuid"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
	fetchoffers "loan-assistant/internal/workers/sales/fetch-offers"
	createticket "loan-assistant/internal/workers/system/create-ticket"
)

const defaultDocumentName = "income_proof.pdf"

// ==========================
// Input states
// ==========================

func (e *Engine) onGreeting(text string) error {
	switch matchIntent(text, greetingRules) {
	case IntentApply:
		app := models.NewLoanApplication(uuid.NewString(), e.user.ID, e.now())
		e.app = &app
		e.transition(LoanTypeSelection{})
		e.say(models.RoleAssistant, msgAskLoanType)
	case IntentCheck:
		e.navigate(DestinationCreditScore)
		e.say(models.RoleAssistant, msgOpeningCreditScore)
	case IntentImprove:
		for _, tip := range improveTips {
			e.say(models.RoleAssistant, tip)
		}
	case IntentStatement:
		e.navigate(DestinationStatement)
		e.say(models.RoleAssistant, msgOpeningStatement)
	default:
		e.say(models.RoleAssistant, msgGreetingRetry)
		return apperrors.NewUnrecognizedInputError(string(StepGreeting), text)
	}
	return nil
}

// onLoanType always succeeds: unknown text selects Personal. An amount in the
// same text is kept for AmountCapture when it is in range.
func (e *Engine) onLoanType(text string) error {
	loanType, ok := parseLoanType(text)
	if !ok {
		loanType = models.LoanTypePersonal
	}
	var captured int64
	if amount, ok := parseAmount(text); ok && lending.ValidateAmount(amount) == nil {
		captured = amount
	}
	e.raiseOfferTicket(loanType, captured)
	return nil
}

func (e *Engine) onAmount(st AmountCapture, text string) error {
	if matchIntent(text, amountRules) == IntentSearch {
		if st.Captured == 0 {
			e.say(models.RoleAssistant, msgSearchNoAmount)
			return apperrors.NewValidationError("search needs a captured amount")
		}
		months := e.cfg.Conversation.DefaultTenureMonths
		app := e.app.WithAmount(st.Captured, e.now()).WithTenure(months, e.now())
		e.app = &app
		e.say(models.RoleAssistant, msgSearchDefaults(st.Captured, months))
		e.transition(PreEligibility{})
		e.checkPreEligibility()
		return nil
	}

	amount, ok := parseAmount(text)
	if !ok {
		e.say(models.RoleAssistant, msgAmountUnreadable)
		return apperrors.NewUnrecognizedInputError(string(StepAmountCapture), text)
	}
	if err := lending.ValidateAmount(amount); err != nil {
		e.say(models.RoleAssistant, msgAmountInvalid)
		return err
	}

	app := e.app.WithAmount(amount, e.now())
	e.app = &app
	e.transition(TenureCapture{})
	e.say(models.RoleAssistant, msgAmountAccepted(amount))
	e.say(models.RoleAssistant, msgAskTenure)
	return nil
}

func (e *Engine) onTenure(text string) error {
	months, ok := parseFirstInt(text)
	if !ok {
		e.say(models.RoleAssistant, msgTenureInvalid)
		return apperrors.NewUnrecognizedInputError(string(StepTenureCapture), text)
	}
	if err := lending.ValidateTenure(months); err != nil {
		e.say(models.RoleAssistant, msgTenureInvalid)
		return err
	}

	app := e.app.WithTenure(months, e.now())
	e.app = &app
	e.say(models.RoleAssistant, msgTenureAccepted(months))
	e.transition(PreEligibility{})
	e.checkPreEligibility()
	return nil
}

// onConsent never advances without an explicit yes.
func (e *Engine) onConsent(st ConsentGate, text string) error {
	if matchConsent(text) != IntentAgree {
		e.say(models.RoleAssistant, msgConsentDeclined)
		return apperrors.NewConsentRequiredError(e.user.ID)
	}
	e.consent = true
	e.say(models.RoleAssistant, msgConsentThanks)
	e.transition(CreditCheck{Eligibility: st.Eligibility})
	e.pullCredit()
	return nil
}

func (e *Engine) onOfferSelection(st OfferSelection, text string) error {
	position, ok := parseFirstInt(text)
	if !ok {
		e.say(models.RoleAssistant, msgOfferInvalid(len(st.Offers)))
		return apperrors.NewUnrecognizedInputError(string(StepOfferSelection), text)
	}

	listed := &fetchoffers.Output{Offers: st.Offers}
	offer, err := lending.SelectOffer(listed.Plain(), position)
	if err != nil {
		e.say(models.RoleAssistant, msgOfferInvalid(len(st.Offers)))
		return err
	}
	priced := st.Offers[position-1]

	app := e.app.WithOffer(offer, e.now())
	e.app = &app
	e.say(models.RoleAssistant, msgOfferChosen)
	e.transition(Verification{Offer: priced})
	e.confirmKYC(priced)
	return nil
}

// onDocument treats any text as the upload signal. A file name in the text is
// used when present.
func (e *Engine) onDocument(st DocumentCapture, text string) error {
	name, ok := parseDocumentName(text)
	if !ok {
		name = defaultDocumentName
	}
	return e.verifyDocument(st.EMI, name)
}

func (e *Engine) onRejected(text string) error {
	intent := matchIntent(text, rejectedRules)
	reply, ok := rejectedReplies[intent]
	if !ok {
		e.say(models.RoleAssistant, msgUnrecognized(StepRejected))
		return apperrors.NewUnrecognizedInputError(string(StepRejected), text)
	}
	e.say(models.RoleAssistant, reply)
	return nil
}

// ==========================
// Agent calls
// ==========================

// fault leaves the state in place and arms a retry for the next input.
func (e *Engine) fault(err error, retry func()) {
	e.logger.WithError(err).Warn("Agent call failed", map[string]interface{}{
		"step": e.state.Step(),
		"code": apperrors.CodeOf(err),
	})
	e.retry = retry
	e.say(models.RoleAssistant, msgRetry)
	e.publish()
}

func (e *Engine) raiseOfferTicket(loanType models.LoanType, captured int64) {
	in := &createticket.Input{
		ApplicationID: e.app.ID,
		CustomerID:    e.user.ID,
		Kind:          createticket.KindOffer,
		LoanType:      loanType,
	}
	status.Run(e.ctx, e.notifier, e.agents.ticket.Plan(in, func(_ *createticket.Output, err error) {
		if err != nil {
			e.fault(err, func() { e.raiseOfferTicket(loanType, captured) })
			return
		}
		app := e.app.WithType(loanType, e.now())
		if captured > 0 {
			app = app.WithAmount(captured, e.now())
		}
		e.app = &app
		e.transition(AmountCapture{Captured: captured})
		e.say(models.RoleAssistant, msgLoanTypeChosen(loanType))
		if captured > 0 {
			e.say(models.RoleAssistant, msgAmountPreCaptured(captured))
		} else {
			e.say(models.RoleAssistant, msgAmountRange)
		}
		e.publish()
	}))
}

// reject moves to Rejected. The application may already carry the decision
// when it came from underwriting.
func (e *Engine) reject(reason, message string) {
	if e.app.Status == models.StatusDraft {
		app, err := e.app.Reject(reason, e.now())
		if err != nil {
			e.logger.WithError(err).Error("Reject transition failed", nil)
		} else {
			e.app = &app
		}
	}
	e.say(models.RoleAssistant, message)
	e.say(models.RoleAssistant, msgRejectedOptionsHint)
	e.transition(Rejected{
		Path:    e.path,
		Reason:  reason,
		Options: append([]string(nil), lending.ManualReviewOptions...),
	})
	e.recordOutcome(models.StatusRejected)
}
