// internal/conversation/state.go
package conversation

import (
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
	fetchoffers "loan-assistant/internal/workers/sales/fetch-offers"
)

// Step names a conversation state. It is the label used in metrics, logs and
// error details.
type Step string

const (
	StepGreeting           Step = "Greeting"
	StepLoanTypeSelection  Step = "LoanTypeSelection"
	StepAmountCapture      Step = "AmountCapture"
	StepTenureCapture      Step = "TenureCapture"
	StepPreEligibility     Step = "PreEligibility"
	StepConsentGate        Step = "ConsentGate"
	StepCreditCheck        Step = "CreditCheck"
	StepOfferSelection     Step = "OfferSelection"
	StepVerification       Step = "Verification"
	StepDocumentCapture    Step = "DocumentCapture"
	StepDecision           Step = "Decision"
	StepSanctionGeneration Step = "SanctionGeneration"
	StepDisbursement       Step = "Disbursement"
	StepComplete           Step = "Complete"
	StepRejected           Step = "Rejected"
)

// State is the tagged union of conversation states. Each concrete type only
// carries the data that is valid while the conversation sits in it.
type State interface {
	Step() Step
	isState()
}

type Greeting struct{}

type LoanTypeSelection struct{}

// AmountCapture may hold an amount found in the loan-type answer; "search"
// proceeds with it.
type AmountCapture struct {
	Captured int64
}

type TenureCapture struct{}

type PreEligibility struct{}

type ConsentGate struct {
	Eligibility lending.PreEligibility
}

type CreditCheck struct {
	Eligibility lending.PreEligibility
}

type OfferSelection struct {
	Offers []fetchoffers.PricedOffer
}

type Verification struct {
	Offer fetchoffers.PricedOffer
}

type DocumentCapture struct {
	EMI int64
}

type Decision struct {
	Path lending.Outcome
}

type SanctionGeneration struct{}

type Disbursement struct {
	Letter models.SanctionLetter
}

type Complete struct {
	Result Result
}

type Rejected struct {
	Path    lending.Outcome
	Reason  string
	Options []string
}

func (Greeting) Step() Step           { return StepGreeting }
func (LoanTypeSelection) Step() Step  { return StepLoanTypeSelection }
func (AmountCapture) Step() Step      { return StepAmountCapture }
func (TenureCapture) Step() Step      { return StepTenureCapture }
func (PreEligibility) Step() Step     { return StepPreEligibility }
func (ConsentGate) Step() Step        { return StepConsentGate }
func (CreditCheck) Step() Step        { return StepCreditCheck }
func (OfferSelection) Step() Step     { return StepOfferSelection }
func (Verification) Step() Step       { return StepVerification }
func (DocumentCapture) Step() Step    { return StepDocumentCapture }
func (Decision) Step() Step           { return StepDecision }
func (SanctionGeneration) Step() Step { return StepSanctionGeneration }
func (Disbursement) Step() Step       { return StepDisbursement }
func (Complete) Step() Step           { return StepComplete }
func (Rejected) Step() Step           { return StepRejected }

func (Greeting) isState()           {}
func (LoanTypeSelection) isState()  {}
func (AmountCapture) isState()      {}
func (TenureCapture) isState()      {}
func (PreEligibility) isState()     {}
func (ConsentGate) isState()        {}
func (CreditCheck) isState()        {}
func (OfferSelection) isState()     {}
func (Verification) isState()       {}
func (DocumentCapture) isState()    {}
func (Decision) isState()           {}
func (SanctionGeneration) isState() {}
func (Disbursement) isState()       {}
func (Complete) isState()           {}
func (Rejected) isState()           {}

// Automatic reports whether the state advances on its own once the running
// agent finishes, rather than waiting for user input.
func Automatic(s State) bool {
	switch s.(type) {
	case PreEligibility, CreditCheck, Verification, Decision, SanctionGeneration, Disbursement:
		return true
	}
	return false
}

// Terminal reports whether the application is finished in this state.
func Terminal(s State) bool {
	switch s.(type) {
	case Complete, Rejected:
		return true
	}
	return false
}
