// internal/conversation/agents.go
package conversation

import (
	"time"

	"loan-assistant/internal/common/config"
	"loan-assistant/internal/common/logger"
	disbursefunds "loan-assistant/internal/workers/disbursement/disburse-funds"
	verifyincome "loan-assistant/internal/workers/documents/verify-income"
	fetchoffers "loan-assistant/internal/workers/sales/fetch-offers"
	generatesanction "loan-assistant/internal/workers/sanction/generate-sanction"
	createticket "loan-assistant/internal/workers/system/create-ticket"
	creditbureaucheck "loan-assistant/internal/workers/underwriting/credit-bureau-check"
	preeligibility "loan-assistant/internal/workers/underwriting/pre-eligibility"
	underwritingdecision "loan-assistant/internal/workers/underwriting/underwriting-decision"
	confirmkyc "loan-assistant/internal/workers/verification/confirm-kyc"
)

// agents holds one handler per simulated backend the conversation calls.
type agents struct {
	ticket      *createticket.Handler
	eligibility *preeligibility.Handler
	bureau      *creditbureaucheck.Handler
	offers      *fetchoffers.Handler
	kyc         *confirmkyc.Handler
	income      *verifyincome.Handler
	decision    *underwritingdecision.Handler
	sanction    *generatesanction.Handler
	disburse    *disbursefunds.Handler
}

func newAgents(cfg *config.Config, deps Deps, now func() time.Time, log logger.Logger, ticketOpts ...createticket.Option) *agents {
	return &agents{
		ticket:      createticket.NewHandler(createticket.LoadConfig(cfg), log, ticketOpts...),
		eligibility: preeligibility.NewHandler(preeligibility.LoadConfig(cfg), deps.Customers, log),
		bureau:      creditbureaucheck.NewHandler(creditbureaucheck.LoadConfig(cfg), deps.Scores, log),
		offers:      fetchoffers.NewHandler(fetchoffers.LoadConfig(cfg), deps.Offers, log),
		kyc:         confirmkyc.NewHandler(confirmkyc.LoadConfig(cfg), deps.Customers, log),
		income:      verifyincome.NewHandler(verifyincome.LoadConfig(cfg), deps.Customers, log),
		decision:    underwritingdecision.NewHandler(underwritingdecision.LoadConfig(cfg), now, log),
		sanction:    generatesanction.NewHandler(generatesanction.LoadConfig(cfg), now, log),
		disburse:    disbursefunds.NewHandler(disbursefunds.LoadConfig(cfg), deps.Customers, now, log),
	}
}
