// internal/workers/underwriting/credit-bureau-check/handler.go
package creditbureaucheck

import (
	"context"
	"fmt"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
)

const (
	TaskType = "credit-bureau-check"
)

type Handler struct {
	config *Config
	scores catalog.CreditScoreTable
	logger logger.Logger
}

func NewHandler(config *Config, scores catalog.CreditScoreTable, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		scores: scores,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Precondition refuses any pull without recorded consent.
func (h *Handler) Precondition(input *Input) error {
	if !input.ConsentGiven {
		return apperrors.NewConsentRequiredError(input.CustomerID)
	}
	if input.CustomerID == "" {
		return apperrors.NewPreconditionFailedError("customer id is required")
	}
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		h.logger.Warn("credit pull refused", map[string]interface{}{
			"customerId": input.CustomerID,
			"error":      err.Error(),
		})
		return nil, err
	}

	rec, err := h.scores.CreditScore(ctx, input.CustomerID)
	if err != nil {
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	h.logger.Info("credit score retrieved", map[string]interface{}{
		"customerId": input.CustomerID,
		"score":      rec.Score,
	})
	return &Output{Record: rec}, nil
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
			return fmt.Sprintf("Score %d/%d", out.Record.Score, out.Record.MaxScore), false
		},
		Done: done,
	}
}
