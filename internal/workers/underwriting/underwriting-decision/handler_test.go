// internal/workers/underwriting/underwriting-decision/handler_test.go
package underwritingdecision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/common/config"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

var now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T, cfg *config.Config) *Handler {
	return NewHandler(LoadConfig(cfg), func() time.Time { return now }, logger.NewTestLogger(t))
}

func draft() models.LoanApplication {
	return models.NewLoanApplication("app-1", "CUST001", now.Add(-time.Hour)).WithAmount(400000, now)
}

func score(v int) *int { return &v }

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name       string
		input      *Input
		approved   bool
		status     models.ApplicationStatus
		message    string
		errorPhase bool
	}{
		{
			name:     "instant approval ignores score",
			input:    &Input{Application: draft(), Outcome: lending.OutcomeInstant},
			approved: true, status: models.StatusApproved, message: "✅ APPROVED",
		},
		{
			name:     "consent path at threshold",
			input:    &Input{Application: draft(), Outcome: lending.OutcomeConsentRequired, Score: score(700)},
			approved: true, status: models.StatusApproved, message: "✅ APPROVED",
		},
		{
			name:     "consent path below threshold",
			input:    &Input{Application: draft(), Outcome: lending.OutcomeConsentRequired, Score: score(699)},
			approved: false, status: models.StatusRejected,
			message: "❌ Rejected - Credit score below threshold", errorPhase: true,
		},
		{
			name:     "manual review",
			input:    &Input{Application: draft(), Outcome: lending.OutcomeManualReview, Score: score(900)},
			approved: false, status: models.StatusRejected, errorPhase: true,
			message: "❌ Rejected - Requested amount exceeds twice the pre-approved limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := createTestHandler(t, nil).Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.approved, out.Decision.Approved)
			assert.Equal(t, tt.status, out.Application.Status)
			assert.Equal(t, now, out.Application.UpdatedAt)
			assert.Equal(t, models.StatusDraft, tt.input.Application.Status, "input is not mutated")

			msg, failed := describe(out)
			assert.Equal(t, tt.message, msg)
			assert.Equal(t, tt.errorPhase, failed)
		})
	}
}

func TestHandler_ConfiguredThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Conversation.ScoreThreshold = 750

	out, err := createTestHandler(t, cfg).Execute(context.Background(),
		&Input{Application: draft(), Outcome: lending.OutcomeConsentRequired, Score: score(720)})
	require.NoError(t, err)
	assert.False(t, out.Decision.Approved)
}

func TestHandler_Preconditions(t *testing.T) {
	approved, err := draft().Approve(now)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input *Input
	}{
		{"already decided", &Input{Application: approved, Outcome: lending.OutcomeInstant}},
		{"consent path without score", &Input{Application: draft(), Outcome: lending.OutcomeConsentRequired}},
		{"unknown outcome", &Input{Application: draft(), Outcome: "coin-flip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t, nil).Execute(context.Background(), tt.input)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePreconditionFailed), "got %v", err)
		})
	}
}
