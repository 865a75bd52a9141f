// internal/workers/disbursement/disburse-funds/handler_test.go
package disbursefunds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/models"
)

var now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T) *Handler {
	customers := catalog.NewStatic(nil, []models.Customer{
		{ID: "CUST001", AccountNumber: "50100234567891"},
	}, nil)
	return NewHandler(LoadConfig(nil), customers, func() time.Time { return now }, logger.NewTestLogger(t))
}

func sanctioned(t *testing.T, customerID string) (models.LoanApplication, *models.SanctionLetter) {
	t.Helper()
	app, err := models.NewLoanApplication("app-1", customerID, now).WithAmount(500000, now).Approve(now)
	require.NoError(t, err)
	return app, &models.SanctionLetter{ID: "SL-1", ApplicationID: "app-1", Amount: 500000, ProcessingFeeRs: 7500}
}

func TestHandler_Execute(t *testing.T) {
	app, letter := sanctioned(t, "CUST001")
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Application: app, Letter: letter})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDisbursed, out.Application.Status)
	assert.Equal(t, models.StatusApproved, app.Status)
	assert.True(t, strings.HasPrefix(out.Disbursement.ReferenceID, "DSB-"))
	assert.Equal(t, "SL-1", out.Disbursement.SanctionID)
	assert.Equal(t, int64(492500), out.Disbursement.NetAmount)
	assert.Equal(t, "XXXXXXXXXX7891", out.Disbursement.AccountMasked)
	assert.Equal(t, now, out.Disbursement.DisbursedAt)

	msg, failed := h.Plan(nil, nil).Describe(out)
	assert.True(t, strings.HasPrefix(msg, "💸 ₹"))
	assert.True(t, strings.HasSuffix(msg, " credited successfully"))
	assert.False(t, failed)
}

func TestHandler_Preconditions(t *testing.T) {
	app, letter := sanctioned(t, "CUST001")
	draft := models.NewLoanApplication("app-1", "CUST001", now)
	other := *letter
	other.ApplicationID = "app-2"

	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{"no letter", &Input{Application: app}, apperrors.ErrCodePreconditionFailed},
		{"not approved", &Input{Application: draft, Letter: letter}, apperrors.ErrCodePreconditionFailed},
		{"foreign letter", &Input{Application: app, Letter: &other}, apperrors.ErrCodePreconditionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t).Execute(context.Background(), tt.input)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	unknown, unknownLetter := sanctioned(t, "CUST404")
	_, err := createTestHandler(t).Execute(context.Background(), &Input{Application: unknown, Letter: unknownLetter})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSimulationFault))
}
