// internal/workers/sanction/generate-sanction/handler.go
package generatesanction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

const (
	TaskType = "generate-sanction"
)

var standardTerms = []string{
	"EMI is payable on the 5th of every month by auto-debit.",
	"Prepayment is permitted after 6 EMIs subject to lender policy.",
	"Late payment attracts a penalty of 2% per month on the overdue amount.",
	"This sanction is subject to satisfactory completion of documentation.",
}

type Handler struct {
	config *Config
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(config *Config, now func() time.Time, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		now:    now,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Precondition requires an approved application carrying an offer.
func (h *Handler) Precondition(input *Input) error {
	app := input.Application
	if app.Status != models.StatusApproved {
		return apperrors.NewPreconditionFailedError(
			fmt.Sprintf("sanction requires an approved application, got %s", app.Status))
	}
	if app.SelectedOffer == nil {
		return apperrors.NewPreconditionFailedError("no offer on the application")
	}
	if err := lending.ValidateAmount(app.Amount); err != nil {
		return err
	}
	return lending.ValidateTenure(app.TenureMonths)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	app := input.Application
	offer := app.SelectedOffer
	emi, err := lending.EMI(app.Amount, offer.InterestRate, app.TenureMonths)
	if err != nil {
		return nil, apperrors.NewPreconditionFailedError(err.Error())
	}

	generated := h.now()
	letter := models.SanctionLetter{
		ID:              "SL-" + strings.ToUpper(uuid.NewString()[:8]),
		ApplicationID:   app.ID,
		CustomerID:      app.CustomerID,
		CustomerName:    input.CustomerName,
		LoanType:        app.Type,
		Amount:          app.Amount,
		TenureMonths:    app.TenureMonths,
		InterestRate:    offer.InterestRate,
		ProcessingFee:   offer.ProcessingFee,
		ProcessingFeeRs: lending.ProcessingFeeAmount(app.Amount, offer.ProcessingFee),
		EMI:             emi,
		Terms:           append([]string(nil), standardTerms...),
		GeneratedAt:     generated,
		ValidUntil:      generated.Add(h.config.ValidFor),
	}

	h.logger.Info("sanction letter generated", map[string]interface{}{
		"sanctionId":    letter.ID,
		"applicationId": app.ID,
		"amount":        letter.Amount,
		"emi":           letter.EMI,
	})
	return &Output{Letter: letter}, nil
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
			return fmt.Sprintf("Sanction letter %s generated", out.Letter.ID), false
		},
		Done: done,
	}
}
