// internal/workers/documents/verify-income/handler.go
package verifyincome

import (
	"context"
	"path/filepath"
	"strings"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
)

const (
	TaskType = "verify-income"
)

var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type Handler struct {
	config    *Config
	customers catalog.CustomerDirectory
	logger    logger.Logger
}

func NewHandler(config *Config, customers catalog.CustomerDirectory, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		customers: customers,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Precondition accepts PDF and image uploads only.
func (h *Handler) Precondition(input *Input) error {
	if input.DocumentName == "" {
		return apperrors.NewValidationError("no document uploaded")
	}
	if !acceptedExtensions[strings.ToLower(filepath.Ext(input.DocumentName))] {
		return apperrors.NewValidationError("income proof must be a PDF or image")
	}
	if input.EMI <= 0 {
		return apperrors.NewPreconditionFailedError("no offer selected")
	}
	return nil
}

// execute stands in for OCR: the extracted income is the salary on the
// customer record.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	customer, err := h.customers.Customer(ctx, input.CustomerID)
	if err != nil {
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	out := &Output{
		DocumentName:  input.DocumentName,
		MonthlyIncome: customer.MonthlyIncome,
		EMI:           input.EMI,
		Verified:      lending.IncomeCovers(input.EMI, customer.MonthlyIncome),
	}
	h.logger.Info("income document parsed", map[string]interface{}{
		"customerId":    input.CustomerID,
		"document":      input.DocumentName,
		"monthlyIncome": out.MonthlyIncome,
		"emi":           out.EMI,
		"verified":      out.Verified,
	})
	return out, nil
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
			if out.Verified {
				return "Income verified: EMI < 50% of salary ✅", false
			}
			return "❌ EMI exceeds 50% of monthly income", true
		},
		Done: done,
	}
}
