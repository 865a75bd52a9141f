// internal/workers/sales/fetch-offers/models.go
package fetchoffers

import "loan-assistant/internal/models"

type Input struct {
	LoanType     models.LoanType `json:"loanType"`
	Amount       int64           `json:"amount"`
	TenureMonths int             `json:"tenureMonths"`
}

// PricedOffer is a catalog offer with the EMI for the requested amount and tenure.
type PricedOffer struct {
	Offer           models.Offer `json:"offer"`
	EMI             int64        `json:"emi"`
	ProcessingFeeRs int64        `json:"processingFeeRs"`
}

type Output struct {
	Offers []PricedOffer `json:"offers"`
}

// Plain returns the offers without pricing, in the same order.
func (o *Output) Plain() []models.Offer {
	out := make([]models.Offer, len(o.Offers))
	for i, p := range o.Offers {
		out[i] = p.Offer
	}
	return out
}
