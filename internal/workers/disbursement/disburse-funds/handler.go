// internal/workers/disbursement/disburse-funds/handler.go
package disbursefunds

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

const (
	TaskType = "disburse-funds"
)

type Handler struct {
	config    *Config
	customers catalog.CustomerDirectory
	now       func() time.Time
	logger    logger.Logger
}

func NewHandler(config *Config, customers catalog.CustomerDirectory, now func() time.Time, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		customers: customers,
		now:       now,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Precondition requires a sanction letter issued for this approved application.
func (h *Handler) Precondition(input *Input) error {
	if input.Letter == nil {
		return apperrors.NewPreconditionFailedError("no sanction letter generated")
	}
	if input.Application.Status != models.StatusApproved {
		return apperrors.NewPreconditionFailedError("application is not approved")
	}
	if input.Letter.ApplicationID != input.Application.ID {
		return apperrors.NewPreconditionFailedError("sanction letter belongs to another application")
	}
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	customer, err := h.customers.Customer(ctx, input.Application.CustomerID)
	if err != nil {
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	at := h.now()
	app, err := input.Application.MarkDisbursed(at)
	if err != nil {
		return nil, apperrors.NewPreconditionFailedError(err.Error())
	}

	letter := input.Letter
	d := models.Disbursement{
		ReferenceID:   "DSB-" + strings.ToUpper(uuid.NewString()[:8]),
		SanctionID:    letter.ID,
		Amount:        letter.Amount,
		NetAmount:     letter.Amount - letter.ProcessingFeeRs,
		AccountMasked: customer.MaskedAccount(),
		DisbursedAt:   at,
	}

	h.logger.Info("funds disbursed", map[string]interface{}{
		"referenceId":   d.ReferenceID,
		"applicationId": app.ID,
		"amount":        d.Amount,
		"netAmount":     d.NetAmount,
		"account":       d.AccountMasked,
	})
	return &Output{Disbursement: d, Application: app}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input)
}

func (h *Handler) Plan(input *Input, done func(*Output, error)) status.Plan[*Output] {
	return status.Plan[*Output]{
		Stage:   h.config.Activity.Stage(),
		Latency: h.config.Activity.Latency(),
		Steps:   h.config.Activity.Steps(),
		Work: func(ctx context.Context) (*Output, error) {
			return h.Execute(ctx, input)
		},
		Describe: func(out *Output) (string, bool) {
			return "💸 " + lending.FormatINR(out.Disbursement.Amount) + " credited successfully", false
		},
		Done: done,
	}
}
