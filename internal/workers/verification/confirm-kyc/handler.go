// internal/workers/verification/confirm-kyc/handler.go
package confirmkyc

import (
	"context"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
)

const (
	TaskType = "confirm-kyc"
)

const (
	FailureCRMRecord = "KYC not verified in CRM"
	FailureIdentity  = "identity KYC incomplete"
	FailureAccount   = "no disbursement account on file"
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.CustomerID == "" {
		return nil, apperrors.NewPreconditionFailedError("customer id is required")
	}

	customer, err := h.customers.Customer(ctx, input.CustomerID)
	if err != nil {
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	out := &Output{Customer: customer}
	if !customer.KYCVerified {
		out.Failures = append(out.Failures, FailureCRMRecord)
	}
	if !input.UserKYCCompleted {
		out.Failures = append(out.Failures, FailureIdentity)
	}
	if customer.AccountNumber == "" {
		out.Failures = append(out.Failures, FailureAccount)
	}
	out.Verified = len(out.Failures) == 0

	h.logger.Info("kyc checked", map[string]interface{}{
		"customerId": input.CustomerID,
		"verified":   out.Verified,
		"failures":   out.Failures,
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
				return "✅ All details verified", false
			}
			return "❌ KYC could not be confirmed", true
		},
		Done: done,
	}
}
