// internal/models/offer.go
package models

// Offer is a financing product from the static catalog. Never mutated; use
// Clone before handing one out so callers cannot alias the catalog slices.
type Offer struct {
	ID            string   `json:"id"`
	LoanType      LoanType `json:"loanType"`
	Lender        string   `json:"lender,omitempty"`
	MinAmount     int64    `json:"minAmount"`
	MaxAmount     int64    `json:"maxAmount"`
	InterestRate  float64  `json:"interestRate"`
	ProcessingFee float64  `json:"processingFee"`
	TenureOptions []int    `json:"tenureOptions"`
	Features      []string `json:"features"`
}

// Covers reports whether amount lies inside the offer's band, inclusive.
func (o Offer) Covers(amount int64) bool {
	return o.MinAmount <= amount && amount <= o.MaxAmount
}

func (o Offer) Clone() Offer {
	cp := o
	cp.TenureOptions = append([]int(nil), o.TenureOptions...)
	cp.Features = append([]string(nil), o.Features...)
	return cp
}
