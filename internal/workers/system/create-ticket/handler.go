// internal/workers/system/create-ticket/handler.go
package createticket

import (
	"context"
	"fmt"
	"math/rand/v2"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
)

const (
	TaskType = "create-ticket"
)

type Handler struct {
	config *Config
	logger logger.Logger
	number func() int
}

type Option func(*Handler)

// WithNumberSource replaces the random four-digit ticket number generator.
func WithNumberSource(fn func() int) Option {
	return func(h *Handler) { h.number = fn }
}

func NewHandler(config *Config, log logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
		number: func() int { return 1000 + rand.IntN(9000) },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	switch input.Kind {
	case KindOffer, KindReview:
	default:
		return nil, apperrors.NewPreconditionFailedError(fmt.Sprintf("unknown ticket kind %q", input.Kind))
	}

	out := &Output{
		TicketID: fmt.Sprintf("%s-%04d", input.Kind, h.number()),
		Kind:     input.Kind,
	}

	h.logger.Info("ticket raised", map[string]interface{}{
		"ticketId":      out.TicketID,
		"applicationId": input.ApplicationID,
		"customerId":    input.CustomerID,
		"loanType":      input.LoanType,
	})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input)
}

// Plan stages Execute through the status notifier.
func (h *Handler) Plan(input *Input, done func(*Output, error)) status.Plan[*Output] {
	return status.Plan[*Output]{
		Stage:   h.config.Activity.Stage(),
		Latency: h.config.Activity.Latency(),
		Steps:   h.config.Activity.Steps(),
		Work: func(ctx context.Context) (*Output, error) {
			return h.Execute(ctx, input)
		},
		Describe: func(out *Output) (string, bool) {
			return fmt.Sprintf("Ticket #%s raised", out.TicketID), false
		},
		Done: done,
	}
}
