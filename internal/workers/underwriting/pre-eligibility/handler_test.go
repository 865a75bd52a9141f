// internal/workers/underwriting/pre-eligibility/handler_test.go
package preeligibility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	customers := catalog.NewStatic(nil, []models.Customer{
		{ID: "CUST001", Name: "John Smith", PreApprovedLimit: 300000},
	}, nil)
	return NewHandler(LoadConfig(nil), customers, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		outcome lending.Outcome
		message string
	}{
		{"at limit", 300000, lending.OutcomeInstant, "Within pre-approved limit of "},
		{"below limit", 50000, lending.OutcomeInstant, "Within pre-approved limit of "},
		{"just above limit", 300001, lending.OutcomeConsentRequired, "Credit check required"},
		{"at twice limit", 600000, lending.OutcomeConsentRequired, "Credit check required"},
		{"above twice limit", 600001, lending.OutcomeManualReview, "Manual review required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := createTestHandler(t).Execute(context.Background(), &Input{CustomerID: "CUST001", Amount: tt.amount})
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, out.Eligibility.Outcome)
			assert.Equal(t, int64(300000), out.Eligibility.Limit)
			assert.Equal(t, "John Smith", out.Customer.Name)

			msg, failed := describe(out)
			assert.Contains(t, msg, tt.message)
			assert.False(t, failed)
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{"no customer", &Input{Amount: 100000}, apperrors.ErrCodePreconditionFailed},
		{"amount out of range", &Input{CustomerID: "CUST001", Amount: 2000000}, apperrors.ErrCodeAmountOutOfRange},
		{"unknown customer", &Input{CustomerID: "CUST999", Amount: 100000}, apperrors.ErrCodeSimulationFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t).Execute(context.Background(), tt.input)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}
