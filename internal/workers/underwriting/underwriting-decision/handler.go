// internal/workers/underwriting/underwriting-decision/handler.go
package underwritingdecision

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

const (
	TaskType = "underwriting-decision"
)

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

func (h *Handler) Precondition(input *Input) error {
	if input.Application.Status != models.StatusDraft {
		return apperrors.NewPreconditionFailedError(
			fmt.Sprintf("application already %s", input.Application.Status))
	}
	if input.Outcome == lending.OutcomeConsentRequired && input.Score == nil {
		return apperrors.NewPreconditionFailedError("credit score required before decision")
	}
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	var d lending.Decision
	switch input.Outcome {
	case lending.OutcomeInstant:
		d = lending.Decision{Approved: true}
		if input.Score != nil {
			d.Score = *input.Score
		}
	case lending.OutcomeConsentRequired:
		d = lending.DecideWithThreshold(*input.Score, h.config.ScoreThreshold)
	case lending.OutcomeManualReview:
		d = lending.Decision{Approved: false, Reason: lending.ReasonManualReview}
	default:
		return nil, apperrors.NewPreconditionFailedError(fmt.Sprintf("unknown outcome %q", input.Outcome))
	}

	var (
		app models.LoanApplication
		err error
	)
	if d.Approved {
		app, err = input.Application.Approve(h.now())
	} else {
		app, err = input.Application.Reject(d.Reason, h.now())
	}
	if err != nil {
		return nil, apperrors.NewPreconditionFailedError(err.Error())
	}

	h.logger.Info("decision made", map[string]interface{}{
		"applicationId": app.ID,
		"outcome":       input.Outcome,
		"approved":      d.Approved,
		"score":         d.Score,
		"threshold":     h.config.ScoreThreshold,
	})
	return &Output{Decision: d, Application: app}, nil
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

// describe renders a rejection as an error-phase event.
func describe(out *Output) (string, bool) {
	if out.Decision.Approved {
		return "✅ APPROVED", false
	}
	reason := out.Decision.Reason
	if reason != "" {
		reason = strings.ToUpper(reason[:1]) + reason[1:]
	}
	return "❌ Rejected - " + reason, true
}
