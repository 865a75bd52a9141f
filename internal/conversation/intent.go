// internal/conversation/intent.go
package conversation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"loan-assistant/internal/models"
)

// Intent is the semantic class a piece of free text maps to.
type Intent string

const (
	IntentNone Intent = ""

	IntentApply     Intent = "apply"
	IntentCheck     Intent = "check"
	IntentImprove   Intent = "improve"
	IntentStatement Intent = "statement"

	IntentSearch  Intent = "search"
	IntentAgree   Intent = "agree"
	IntentDecline Intent = "decline"

	IntentAppeal      Intent = "appeal"
	IntentSupport     Intent = "support"
	IntentReapply     Intent = "reapply"
	IntentCoApplicant Intent = "coapp"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// Rules are tried in order; the first keyword found anywhere in the
// normalized text wins.
var (
	greetingRules = []intentRule{
		{IntentApply, []string{"apply"}},
		{IntentCheck, []string{"check"}},
		{IntentImprove, []string{"improve"}},
		{IntentStatement, []string{"statement"}},
	}
	consentRules = []intentRule{
		{IntentAgree, []string{"agree", "yes"}},
	}
	amountRules = []intentRule{
		{IntentSearch, []string{"search"}},
	}
	rejectedRules = []intentRule{
		{IntentReapply, []string{"reapply"}},
		{IntentCoApplicant, []string{"coapp"}},
		{IntentAppeal, []string{"appeal"}},
		{IntentSupport, []string{"support"}},
	}
)

// declineWords override any agree keyword in the same message.
var declineWords = map[string]bool{
	"no": true, "not": true, "dont": true, "never": true, "nope": true,
	"disagree": true, "decline": true, "refuse": true, "cannot": true, "cant": true,
}

var (
	amountPattern   = regexp.MustCompile(`\d[\d,]*`)
	digitsPattern   = regexp.MustCompile(`\d+`)
	documentPattern = regexp.MustCompile(`(?i)[\w.\-]+\.(pdf|png|jpe?g)\b`)
)

// normalize lower-cases text and drops hyphens so "co-applicant" matches coapp.
func normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), "-", "")
}

func matchIntent(text string, rules []intentRule) Intent {
	t := normalize(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.intent
			}
		}
	}
	return IntentNone
}

// matchConsent is matchIntent over consentRules, except that any negation
// word makes the whole message a decline.
func matchConsent(text string) Intent {
	t := strings.NewReplacer("'", "", "’", "").Replace(normalize(text))
	words := strings.FieldsFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if declineWords[w] {
			return IntentDecline
		}
	}
	return matchIntent(t, consentRules)
}

// parseLoanType finds a loan type named anywhere in text.
func parseLoanType(text string) (models.LoanType, bool) {
	t := normalize(text)
	for _, lt := range models.LoanTypes {
		if strings.Contains(t, strings.ToLower(string(lt))) {
			return lt, true
		}
	}
	return "", false
}

// parseAmount reads the first number in text, allowing digit grouping such
// as "5,00,000" or "500,000".
func parseAmount(text string) (int64, bool) {
	m := amountPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Too many digits is still a number, just out of range.
		return math.MaxInt64, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFirstInt reads the first digit run in text.
func parseFirstInt(text string) (int, bool) {
	m := digitsPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDocumentName picks a file name out of text, e.g. "here is salary.pdf".
func parseDocumentName(text string) (string, bool) {
	m := documentPattern.FindString(text)
	return m, m != ""
}
