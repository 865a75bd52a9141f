// internal/conversation/intent_test.go
package conversation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-assistant/internal/models"
)

func TestMatchIntent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		rules []intentRule
		want  Intent
	}{
		{"apply chip", "Apply for a loan", greetingRules, IntentApply},
		{"upper case", "CHECK my score", greetingRules, IntentCheck},
		{"statement", "send me a statement", greetingRules, IntentStatement},
		{"nothing", "hello there", greetingRules, IntentNone},
		{"agree", "ok, I agree", consentRules, IntentAgree},
		{"yes", "Yes please", consentRules, IntentAgree},
		{"decline", "no thanks", consentRules, IntentNone},
		{"search", "just search", amountRules, IntentSearch},
		{"hyphenated co-applicant", "Add co-applicant", rejectedRules, IntentCoApplicant},
		{"reapply is not appeal", "I'll reapply later", rejectedRules, IntentReapply},
		{"support", "Contact support", rejectedRules, IntentSupport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchIntent(tt.text, tt.rules))
		})
	}
}

func TestParseLoanType(t *testing.T) {
	lt, ok := parseLoanType("I need a HOME loan")
	assert.True(t, ok)
	assert.Equal(t, models.LoanTypeHome, lt)

	lt, ok = parseLoanType("gold")
	assert.True(t, ok)
	assert.Equal(t, models.LoanTypeGold, lt)

	_, ok = parseLoanType("a boat")
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text string
		want int64
		ok   bool
	}{
		{"500000", 500000, true},
		{"₹5,00,000", 500000, true},
		{"about ₹200,000 over 24 months", 200000, true},
		{"no number", 0, false},
		{"99999999999999999999999", math.MaxInt64, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseAmount(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchConsent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"I agree", IntentAgree},
		{"yes, go ahead", IntentAgree},
		{"Not now", IntentDecline},
		{"I do not agree", IntentDecline},
		{"disagree", IntentDecline},
		{"no, I don't agree to this", IntentDecline},
		{"I don’t agree", IntentDecline},
		{"maybe later", IntentNone},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, matchConsent(tt.text))
		})
	}
}

func TestParseFirstInt(t *testing.T) {
	n, ok := parseFirstInt("24 months, maybe 36")
	assert.True(t, ok)
	assert.Equal(t, 24, n)

	_, ok = parseFirstInt("twelve")
	assert.False(t, ok)
}

func TestParseDocumentName(t *testing.T) {
	name, ok := parseDocumentName("here is my Salary_Slip-Oct.PDF thanks")
	assert.True(t, ok)
	assert.Equal(t, "Salary_Slip-Oct.PDF", name)

	_, ok = parseDocumentName("payslip.docx")
	assert.False(t, ok)
}

// Every chip must be accepted by the state it is shown in.
func TestQuickRepliesMatchIntents(t *testing.T) {
	for _, chip := range quickRepliesFor(Greeting{}) {
		assert.NotEqual(t, IntentNone, matchIntent(chip, greetingRules), chip)
	}
	for _, chip := range quickRepliesFor(Rejected{}) {
		_, ok := rejectedReplies[matchIntent(chip, rejectedRules)]
		assert.True(t, ok, chip)
	}
	for _, chip := range quickRepliesFor(LoanTypeSelection{}) {
		_, ok := parseLoanType(chip)
		assert.True(t, ok, chip)
	}
	for _, chip := range quickRepliesFor(AmountCapture{}) {
		_, ok := parseAmount(chip)
		assert.True(t, ok, chip)
	}
	for _, chip := range quickRepliesFor(TenureCapture{}) {
		_, ok := parseFirstInt(chip)
		assert.True(t, ok, chip)
	}
	assert.Equal(t, IntentAgree, matchConsent(quickRepliesFor(ConsentGate{})[0]))
	assert.Equal(t, IntentDecline, matchConsent(quickRepliesFor(ConsentGate{})[1]))
	assert.Empty(t, quickRepliesFor(PreEligibility{}))
	assert.Empty(t, quickRepliesFor(Complete{}))
}

func TestStateClassification(t *testing.T) {
	assert.True(t, Automatic(CreditCheck{}))
	assert.True(t, Automatic(Disbursement{}))
	assert.False(t, Automatic(ConsentGate{}))
	assert.True(t, Terminal(Rejected{}))
	assert.True(t, Terminal(Complete{}))
	assert.False(t, Terminal(DocumentCapture{}))
}
