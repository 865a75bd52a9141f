// internal/conversation/flow.go
package conversation

import (
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/metrics"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
	disbursefunds "loan-assistant/internal/workers/disbursement/disburse-funds"
	verifyincome "loan-assistant/internal/workers/documents/verify-income"
	fetchoffers "loan-assistant/internal/workers/sales/fetch-offers"
	generatesanction "loan-assistant/internal/workers/sanction/generate-sanction"
	createticket "loan-assistant/internal/workers/system/create-ticket"
	creditbureaucheck "loan-assistant/internal/workers/underwriting/credit-bureau-check"
	preeligibility "loan-assistant/internal/workers/underwriting/pre-eligibility"
	underwritingdecision "loan-assistant/internal/workers/underwriting/underwriting-decision"
	confirmkyc "loan-assistant/internal/workers/verification/confirm-kyc"
)

const (
	reasonNoOffers   = "no offers match the requested amount"
	reasonKYC        = "KYC could not be confirmed"
	reasonIncome     = "EMI exceeds 50% of monthly income"
	fallbackOfferID  = "PRE-APPROVED"
	fallbackFeatures = "Pre-approved terms"
)

// checkPreEligibility splits the request into the instant, consent and
// manual-review paths.
func (e *Engine) checkPreEligibility() {
	in := &preeligibility.Input{CustomerID: e.user.ID, Amount: e.app.Amount}
	status.Run(e.ctx, e.notifier, e.agents.eligibility.Plan(in, func(out *preeligibility.Output, err error) {
		if err != nil {
			e.fault(err, e.checkPreEligibility)
			return
		}
		customer := out.Customer
		e.customer = &customer
		e.path = out.Eligibility.Outcome

		switch out.Eligibility.Outcome {
		case lending.OutcomeInstant:
			e.say(models.RoleAssistant, msgWithinLimit(out.Eligibility))
			e.assignBestOffer()
		case lending.OutcomeConsentRequired:
			e.transition(ConsentGate{Eligibility: out.Eligibility})
			e.say(models.RoleAssistant, msgConsentRequest(out.Eligibility))
		default:
			e.raiseReviewTicket()
		}
		e.publish()
	}))
}

// assignBestOffer picks the lowest-rate offer for the instant path. With no
// catalog match the pre-approved fallback terms apply.
func (e *Engine) assignBestOffer() {
	in := &fetchoffers.Input{LoanType: e.app.Type, Amount: e.app.Amount, TenureMonths: e.app.TenureMonths}
	status.Run(e.ctx, e.notifier, e.agents.offers.Plan(in, func(out *fetchoffers.Output, err error) {
		if err != nil {
			e.fault(err, e.assignBestOffer)
			return
		}

		offer, ok := lending.BestOffer(out.Plain())
		var emi int64
		if ok {
			for _, p := range out.Offers {
				if p.Offer.ID == offer.ID {
					emi = p.EMI
					break
				}
			}
		} else {
			offer = e.fallbackOffer()
			emi, err = lending.EMI(e.app.Amount, offer.InterestRate, e.app.TenureMonths)
			if err != nil {
				e.fault(apperrors.NewSimulationFault(fetchoffers.TaskType, err), e.assignBestOffer)
				return
			}
		}

		app := e.app.WithOffer(offer, e.now())
		e.app = &app
		e.say(models.RoleAssistant, msgInstantOffer(offer, emi))
		e.transition(Decision{Path: lending.OutcomeInstant})
		e.decide(lending.OutcomeInstant)
		e.publish()
	}))
}

func (e *Engine) fallbackOffer() models.Offer {
	return models.Offer{
		ID:            fallbackOfferID,
		LoanType:      e.app.Type,
		MinAmount:     lending.MinAmount,
		MaxAmount:     lending.MaxAmount,
		InterestRate:  e.cfg.Conversation.FallbackInterestRate,
		ProcessingFee: e.cfg.Conversation.FallbackProcessingFee,
		TenureOptions: []int{e.app.TenureMonths},
		Features:      []string{fallbackFeatures},
	}
}

func (e *Engine) raiseReviewTicket() {
	in := &createticket.Input{
		ApplicationID: e.app.ID,
		CustomerID:    e.user.ID,
		Kind:          createticket.KindReview,
		LoanType:      e.app.Type,
		Reason:        lending.ReasonManualReview,
	}
	status.Run(e.ctx, e.notifier, e.agents.ticket.Plan(in, func(out *createticket.Output, err error) {
		if err != nil {
			e.fault(err, e.raiseReviewTicket)
			return
		}
		e.say(models.RoleAssistant, msgTicketRaised(out.TicketID))
		e.reject(lending.ReasonManualReview, msgRejectedManual)
		e.publish()
	}))
}

// pullCredit calls the bureau at most once per session.
func (e *Engine) pullCredit() {
	if e.score != nil {
		e.say(models.RoleAssistant, msgCreditScore(*e.score))
		e.fetchOffers()
		return
	}

	in := &creditbureaucheck.Input{CustomerID: e.user.ID, ConsentGiven: e.consent}
	status.Run(e.ctx, e.notifier, e.agents.bureau.Plan(in, func(out *creditbureaucheck.Output, err error) {
		if apperrors.HasCode(err, apperrors.ErrCodeConsentRequired) {
			e.consent = false
			if st, ok := e.state.(CreditCheck); ok {
				e.transition(ConsentGate{Eligibility: st.Eligibility})
			}
			e.say(models.RoleAssistant, repromptFor(StepConsentGate))
			e.publish()
			return
		}
		if err != nil {
			e.fault(err, e.pullCredit)
			return
		}
		record := out.Record
		e.score = &record
		e.say(models.RoleAssistant, msgCreditScore(record))
		e.fetchOffers()
		e.publish()
	}))
}

func (e *Engine) fetchOffers() {
	in := &fetchoffers.Input{LoanType: e.app.Type, Amount: e.app.Amount, TenureMonths: e.app.TenureMonths}
	status.Run(e.ctx, e.notifier, e.agents.offers.Plan(in, func(out *fetchoffers.Output, err error) {
		if err != nil {
			e.fault(err, e.fetchOffers)
			return
		}
		if len(out.Offers) == 0 {
			e.reject(reasonNoOffers, msgNoOffers)
			e.publish()
			return
		}

		e.say(models.RoleAssistant, msgOffersFound(len(out.Offers)))
		for i, p := range out.Offers {
			e.say(models.RoleAssistant, msgOffer(i+1, p))
		}
		e.say(models.RoleAssistant, msgAskOffer)
		e.transition(OfferSelection{Offers: out.Offers})
		e.publish()
	}))
}

func (e *Engine) confirmKYC(priced fetchoffers.PricedOffer) {
	in := &confirmkyc.Input{CustomerID: e.user.ID, UserKYCCompleted: e.user.KYCCompleted}
	status.Run(e.ctx, e.notifier, e.agents.kyc.Plan(in, func(out *confirmkyc.Output, err error) {
		if err != nil {
			e.fault(err, func() { e.confirmKYC(priced) })
			return
		}
		if !out.Verified {
			e.logger.Info("KYC not confirmed", map[string]interface{}{"failures": out.Failures})
			e.reject(reasonKYC, msgRejectedKYC)
			e.publish()
			return
		}
		customer := out.Customer
		e.customer = &customer
		e.say(models.RoleAssistant, msgAskDocument)
		e.transition(DocumentCapture{EMI: priced.EMI})
		e.publish()
	}))
}

// verifyDocument checks the document synchronously before starting the
// agent, so a bad file name is re-prompted rather than faulted.
func (e *Engine) verifyDocument(emi int64, name string) error {
	in := &verifyincome.Input{CustomerID: e.user.ID, DocumentName: name, EMI: emi}
	if err := e.agents.income.Precondition(in); err != nil {
		e.say(models.RoleAssistant, msgDocumentInvalid)
		return err
	}

	status.Run(e.ctx, e.notifier, e.agents.income.Plan(in, func(out *verifyincome.Output, err error) {
		if err != nil {
			e.fault(err, func() { _ = e.verifyDocument(emi, name) })
			return
		}
		if !out.Verified {
			e.reject(reasonIncome, msgRejectedIncome)
			e.publish()
			return
		}
		e.transition(Decision{Path: lending.OutcomeConsentRequired})
		e.decide(lending.OutcomeConsentRequired)
		e.publish()
	}))
	return nil
}

func (e *Engine) decide(path lending.Outcome) {
	in := &underwritingdecision.Input{Application: *e.app, Outcome: path}
	if e.score != nil {
		score := e.score.Score
		in.Score = &score
	}
	status.Run(e.ctx, e.notifier, e.agents.decision.Plan(in, func(out *underwritingdecision.Output, err error) {
		if err != nil {
			e.fault(err, func() { e.decide(path) })
			return
		}
		app := out.Application
		e.app = &app
		if !out.Decision.Approved {
			e.reject(out.Decision.Reason, msgRejectedScore)
			e.publish()
			return
		}
		e.say(models.RoleAssistant, msgApproved)
		e.transition(SanctionGeneration{})
		e.generateSanction()
		e.publish()
	}))
}

func (e *Engine) generateSanction() {
	name := e.user.Name
	if e.customer != nil && e.customer.Name != "" {
		name = e.customer.Name
	}
	in := &generatesanction.Input{Application: *e.app, CustomerName: name}
	status.Run(e.ctx, e.notifier, e.agents.sanction.Plan(in, func(out *generatesanction.Output, err error) {
		if err != nil {
			e.fault(err, e.generateSanction)
			return
		}
		letter := out.Letter
		e.letter = &letter
		e.say(models.RoleAssistant, msgSanctionReady)
		e.say(models.RoleAssistant, msgSanctionSummary(letter))
		e.transition(Disbursement{Letter: letter})
		e.disburse()
		e.publish()
	}))
}

func (e *Engine) disburse() {
	in := &disbursefunds.Input{Application: *e.app, Letter: cloneLetter(e.letter)}
	status.Run(e.ctx, e.notifier, e.agents.disburse.Plan(in, func(out *disbursefunds.Output, err error) {
		if err != nil {
			e.fault(err, e.disburse)
			return
		}
		app := out.Application
		e.app = &app
		d := out.Disbursement
		e.disbursement = &d

		e.say(models.RoleAssistant, msgDisbursed)
		e.say(models.RoleAssistant, msgDisbursementSummary(d))
		e.say(models.RoleAssistant, msgViewDashboard)
		e.transition(Complete{Result: e.result()})
		e.recordOutcome(models.StatusDisbursed)
		e.publish()
	}))
}

func (e *Engine) recordOutcome(outcome models.ApplicationStatus) {
	metrics.ApplicationOutcomes.WithLabelValues(string(outcome), string(e.path)).Inc()
	e.logger.Info("Application finished", map[string]interface{}{
		"applicationId": e.app.ID,
		"outcome":       outcome,
		"path":          e.path,
		"reason":        e.app.DecisionReason,
	})
}
