// internal/models/sanction.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// SanctionLetter is the formal approval issued after a positive decision.
type SanctionLetter struct {
	ID              string    `json:"id"`
	ApplicationID   string    `json:"applicationId"`
	CustomerID      string    `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	LoanType        LoanType  `json:"loanType"`
	Amount          int64     `json:"amount"`
	TenureMonths    int       `json:"tenureMonths"`
	InterestRate    float64   `json:"interestRate"`
	ProcessingFee   float64   `json:"processingFee"`
	ProcessingFeeRs int64     `json:"processingFeeAmount"`
	EMI             int64     `json:"emi"`
	Terms           []string  `json:"terms"`
	GeneratedAt     time.Time `json:"generatedAt"`
	ValidUntil      time.Time `json:"validUntil"`
}

// Render produces the downloadable plain-text letter.
func (s SanctionLetter) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SANCTION LETTER %s\n", s.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", s.GeneratedAt.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Dear %s (%s),\n\n", s.CustomerName, s.CustomerID)
	fmt.Fprintf(&b, "We are pleased to sanction your %s loan on the following terms:\n\n", s.LoanType)
	fmt.Fprintf(&b, "  Loan Amount:     Rs. %d\n", s.Amount)
	fmt.Fprintf(&b, "  Tenure:          %d months\n", s.TenureMonths)
	fmt.Fprintf(&b, "  Interest Rate:   %g%% p.a.\n", s.InterestRate)
	fmt.Fprintf(&b, "  Processing Fee:  %g%% (Rs. %d)\n", s.ProcessingFee, s.ProcessingFeeRs)
	fmt.Fprintf(&b, "  Monthly EMI:     Rs. %d\n\n", s.EMI)
	b.WriteString("Terms and conditions:\n")
	for i, term := range s.Terms {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, term)
	}
	fmt.Fprintf(&b, "\nThis sanction is valid until %s.\n", s.ValidUntil.Format("02 Jan 2006"))
	return b.String()
}

// Disbursement confirms the transfer of sanctioned funds.
type Disbursement struct {
	ReferenceID   string    `json:"referenceId"`
	SanctionID    string    `json:"sanctionId"`
	Amount        int64     `json:"amount"`
	NetAmount     int64     `json:"netAmount"`
	AccountMasked string    `json:"accountMasked"`
	DisbursedAt   time.Time `json:"disbursedAt"`
}
