// internal/conversation/quickreplies.go
package conversation

import (
	"strconv"

	"loan-assistant/internal/models"
)

var (
	greetingReplies = []string{"Apply for a loan", "Check credit score", "Improve my score", "Get statement"}
	amountReplies   = []string{"₹100,000", "₹200,000", "₹500,000"}
	tenureReplies   = []string{"12 months", "24 months", "36 months"}
	consentReplies  = []string{"I agree", "Not now"}
	documentReplies = []string{"Upload Document"}
	rejectReplies   = []string{"Appeal", "Contact support", "Reapply later", "Add co-applicant"}
)

// quickRepliesFor returns the chips for a state. Every chip maps to an intent
// the state accepts.
func quickRepliesFor(s State) []string {
	switch st := s.(type) {
	case Greeting:
		return greetingReplies
	case LoanTypeSelection:
		out := make([]string, len(models.LoanTypes))
		for i, lt := range models.LoanTypes {
			out[i] = string(lt) + " Loan"
		}
		return out
	case AmountCapture:
		if st.Captured > 0 {
			return append(append([]string(nil), amountReplies...), "search")
		}
		return amountReplies
	case TenureCapture:
		return tenureReplies
	case ConsentGate:
		return consentReplies
	case OfferSelection:
		out := make([]string, len(st.Offers))
		for i := range st.Offers {
			out[i] = strconv.Itoa(i + 1)
		}
		return out
	case DocumentCapture:
		return documentReplies
	case Rejected:
		return rejectReplies
	}
	return nil
}
