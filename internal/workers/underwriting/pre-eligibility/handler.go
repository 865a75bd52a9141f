// internal/workers/underwriting/pre-eligibility/handler.go
package preeligibility

import (
	"context"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
)

const (
	TaskType = "pre-eligibility"
)

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

func (h *Handler) Precondition(input *Input) error {
	if input.CustomerID == "" {
		return apperrors.NewPreconditionFailedError("customer id is required")
	}
	return lending.ValidateAmount(input.Amount)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	customer, err := h.customers.Customer(ctx, input.CustomerID)
	if err != nil {
		h.logger.Warn("customer lookup failed", map[string]interface{}{
			"customerId": input.CustomerID,
			"error":      err.Error(),
		})
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	out := &Output{
		Eligibility: lending.EvaluatePreEligibility(input.Amount, customer.PreApprovedLimit),
		Customer:    customer,
	}
	h.logger.Info("pre-eligibility evaluated", map[string]interface{}{
		"customerId": input.CustomerID,
		"requested":  input.Amount,
		"limit":      customer.PreApprovedLimit,
		"outcome":    out.Eligibility.Outcome,
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
		Describe: describe,
		Done:     done,
	}
}

func describe(out *Output) (string, bool) {
	switch out.Eligibility.Outcome {
	case lending.OutcomeInstant:
		return "Within pre-approved limit of " + lending.FormatINR(out.Eligibility.Limit), false
	case lending.OutcomeConsentRequired:
		return "Credit check required", false
	default:
		return "Manual review required", false
	}
}
