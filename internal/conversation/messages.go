// internal/conversation/messages.go
package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
	fetchoffers "loan-assistant/internal/workers/sales/fetch-offers"
)

const (
	msgGreeting       = "👋 Hi! I'm your AI loan assistant. Ready to explore loan options?"
	msgGreetingPrompt = "Say \"apply\" to start a loan application, \"check\" to see your credit score, \"improve\" for tips on raising it, or \"statement\" for your account statement."
	msgGreetingRetry  = "Sorry, I didn't catch that. You can apply for a loan, check your credit score, ask how to improve it, or get a statement."

	msgAskLoanType      = "What type of loan are you looking for?"
	msgAmountRange      = "You can enter an amount between ₹50,000 to ₹10,00,000"
	msgAmountInvalid    = "Please enter an amount between ₹50,000 and ₹10,00,000"
	msgAmountUnreadable = "I couldn't find an amount in that. How much would you like to borrow?"
	msgSearchNoAmount   = "I don't have an amount yet. How much would you like to borrow?"
	msgAskTenure        = "What tenure are you comfortable with? (in months, e.g., 12, 24, 36)"
	msgTenureInvalid    = "Please enter a tenure between 12 and 72 months"
	msgWait             = "⏳ Still working on it, one moment please."

	msgConsentDeclined = "I can only continue with your consent to fetch your credit score. Reply \"agree\" when you are ready."
	msgConsentThanks   = "Thank you for your consent. Fetching your credit score..."

	msgAskOffer        = "Which offer would you like to proceed with? (Reply 1, 2, etc.)"
	msgOfferChosen     = "Excellent choice! Let me verify your details..."
	msgAskDocument     = "Please upload your income proof document to continue."
	msgDocumentInvalid = "Please upload a PDF, PNG or JPG document."
	msgNoOffers        = "Sorry, none of our lenders have an offer for this amount and loan type right now."

	msgApproved            = "🎉 Congratulations! Your loan has been APPROVED!"
	msgRejectedScore       = "Unfortunately, your application couldn't be approved at this time due to credit score requirements."
	msgRejectedManual      = "Your request is more than twice your pre-approved limit, so it needs a manual review and can't be approved instantly."
	msgRejectedKYC         = "Unfortunately, we couldn't confirm your KYC details, so the application can't continue."
	msgRejectedIncome      = "Unfortunately, the EMI for this loan is more than half of your monthly income."
	msgSanctionReady       = "📄 Your sanction letter is ready!"
	msgDisbursed           = "✅ Funds have been credited to your account successfully!"
	msgViewDashboard       = "You can view your loan details in the dashboard."
	msgCompleteReply       = "Your loan is all set. You can view your loan details in the dashboard, or restart to begin a new application."
	msgRestarted           = "Let's start over."
	msgRetry               = "Something went wrong on our side. Send any message to try again."
	msgOpeningCreditScore  = "Opening your credit score on the dashboard."
	msgOpeningStatement    = "Opening your account statement on the dashboard."
	msgRejectedOptionsHint = "You can appeal, contact support, reapply later or add a co-applicant."
)

var improveTips = []string{
	"Here are a few ways to improve your credit score:",
	"1. Pay every EMI and credit card bill on time.",
	"2. Keep your credit card usage below 30% of the limit.",
	"3. Avoid applying for several loans in a short period.",
	"4. Check your credit report regularly and dispute any errors.",
}

var rejectedReplies = map[Intent]string{
	IntentAppeal:      "Your appeal has been noted. An underwriter will review the application and get back to you within 3 working days.",
	IntentSupport:     "You can reach our support team at 1800-000-1234, 9 AM to 6 PM, Monday to Saturday.",
	IntentReapply:     "You can reapply after 90 days. Improving your credit score in the meantime raises your chances.",
	IntentCoApplicant: "Adding a co-applicant with a steady income can raise your eligibility. Visit the nearest branch with their KYC documents to add one.",
}

func msgLoanTypeChosen(t models.LoanType) string {
	return fmt.Sprintf("Great! You've selected a %s loan. How much would you like to borrow?", t)
}

func msgAmountPreCaptured(amount int64) string {
	return fmt.Sprintf("I noted %s. Say \"search\" to check your eligibility now, or enter a different amount.",
		lending.FormatINR(amount))
}

func msgAmountAccepted(amount int64) string {
	return fmt.Sprintf("Perfect! %s it is.", lending.FormatINR(amount))
}

func msgTenureAccepted(months int) string {
	return fmt.Sprintf("Got it, %d months. Let me check your pre-approved limit...", months)
}

func msgSearchDefaults(amount int64, months int) string {
	return fmt.Sprintf("Checking %s over %d months...", lending.FormatINR(amount), months)
}

func msgWithinLimit(p lending.PreEligibility) string {
	return fmt.Sprintf("Good news! %s is within your pre-approved limit of %s.",
		lending.FormatINR(p.Requested), lending.FormatINR(p.Limit))
}

func msgConsentRequest(p lending.PreEligibility) string {
	return fmt.Sprintf("%s is above your pre-approved limit of %s. To continue, I need your consent to fetch your credit score from the bureau. Reply \"agree\" to continue.",
		lending.FormatINR(p.Requested), lending.FormatINR(p.Limit))
}

func msgInstantOffer(o models.Offer, emi int64) string {
	return fmt.Sprintf("I've picked the best offer for you: %s%% interest, %s%% processing fee, EMI %s/month.",
		formatRate(o.InterestRate), formatRate(o.ProcessingFee), lending.FormatINR(emi))
}

func msgCreditScore(r models.CreditScoreRecord) string {
	return fmt.Sprintf("Your credit score is %d/%d - %s! 🎉", r.Score, r.MaxScore, r.Rating)
}

func msgOffersFound(n int) string {
	if n == 1 {
		return "I found 1 offer for you:"
	}
	return fmt.Sprintf("I found %d offers for you:", n)
}

func msgOffer(position int, p fetchoffers.PricedOffer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n📊 Offer %d\n", position)
	if p.Offer.Lender != "" {
		fmt.Fprintf(&b, "Lender: %s\n", p.Offer.Lender)
	}
	fmt.Fprintf(&b, "Interest Rate: %s%%\n", formatRate(p.Offer.InterestRate))
	fmt.Fprintf(&b, "Processing Fee: %s%%\n", formatRate(p.Offer.ProcessingFee))
	fmt.Fprintf(&b, "EMI: %s/month\n", lending.FormatINR(p.EMI))
	fmt.Fprintf(&b, "Features: %s", strings.Join(p.Offer.Features, ", "))
	return b.String()
}

func msgOfferInvalid(available int) string {
	return fmt.Sprintf("Please select a valid offer number (1-%d)", available)
}

func msgSanctionSummary(l models.SanctionLetter) string {
	return fmt.Sprintf("Sanction ID: %s\nAmount: %s\nTenure: %d months\nInterest Rate: %s%% p.a.\nProcessing Fee: %s\nEMI: %s/month\nValid until: %s",
		l.ID, lending.FormatINR(l.Amount), l.TenureMonths, formatRate(l.InterestRate),
		lending.FormatINR(l.ProcessingFeeRs), lending.FormatINR(l.EMI), l.ValidUntil.Format("02 Jan 2006"))
}

func msgDisbursementSummary(d models.Disbursement) string {
	return fmt.Sprintf("Reference: %s\n%s credited to account %s",
		d.ReferenceID, lending.FormatINR(d.NetAmount), d.AccountMasked)
}

func msgTicketRaised(id string) string {
	return fmt.Sprintf("I've raised review ticket #%s for our underwriting team.", id)
}

func msgUnrecognized(step Step) string {
	return fmt.Sprintf("Sorry, I didn't understand that. %s", repromptFor(step))
}

func repromptFor(step Step) string {
	switch step {
	case StepLoanTypeSelection:
		return msgAskLoanType
	case StepAmountCapture:
		return "How much would you like to borrow?"
	case StepTenureCapture:
		return msgAskTenure
	case StepConsentGate:
		return "Reply \"agree\" to let me fetch your credit score."
	case StepOfferSelection:
		return msgAskOffer
	case StepDocumentCapture:
		return msgAskDocument
	case StepRejected:
		return msgRejectedOptionsHint
	}
	return ""
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
