// internal/workers/sales/fetch-offers/handler.go
package fetchoffers

import (
	"context"
	"fmt"

	"loan-assistant/internal/catalog"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/lending"
)

const (
	TaskType = "fetch-offers"
)

type Handler struct {
	config  *Config
	catalog catalog.OfferCatalog
	logger  logger.Logger
}

func NewHandler(config *Config, offers catalog.OfferCatalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: offers,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Precondition checks the request before any call is staged.
func (h *Handler) Precondition(input *Input) error {
	if !input.LoanType.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown loan type %q", input.LoanType))
	}
	if err := lending.ValidateAmount(input.Amount); err != nil {
		return err
	}
	return lending.ValidateTenure(input.TenureMonths)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	all, err := h.catalog.Offers(ctx)
	if err != nil {
		h.logger.Error("offer catalog unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewSimulationFault(TaskType, err)
	}

	matched := lending.FilterOffers(all, input.LoanType, input.Amount)
	out := &Output{Offers: make([]PricedOffer, 0, len(matched))}
	for _, o := range matched {
		emi, err := lending.EMI(input.Amount, o.InterestRate, input.TenureMonths)
		if err != nil {
			return nil, apperrors.NewSimulationFault(TaskType, fmt.Errorf("price %s: %w", o.ID, err))
		}
		out.Offers = append(out.Offers, PricedOffer{
			Offer:           o,
			EMI:             emi,
			ProcessingFeeRs: lending.ProcessingFeeAmount(input.Amount, o.ProcessingFee),
		})
	}

	h.logger.Info("offers matched", map[string]interface{}{
		"loanType": input.LoanType,
		"amount":   input.Amount,
		"tenure":   input.TenureMonths,
		"catalog":  len(all),
		"matched":  len(out.Offers),
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
			switch len(out.Offers) {
			case 0:
				return "No matching offers", false
			case 1:
				return "1 offer matched", false
			}
			return fmt.Sprintf("%d offers matched", len(out.Offers)), false
		},
		Done: done,
	}
}
