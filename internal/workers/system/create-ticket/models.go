// internal/workers/system/create-ticket/models.go
package createticket

import "loan-assistant/internal/models"

type TicketKind string

const (
	KindOffer  TicketKind = "OFFER"
	KindReview TicketKind = "REVIEW"
)

type Input struct {
	ApplicationID string          `json:"applicationId"`
	CustomerID    string          `json:"customerId"`
	Kind          TicketKind      `json:"kind"`
	LoanType      models.LoanType `json:"loanType"`
	Reason        string          `json:"reason,omitempty"`
}

type Output struct {
	TicketID string     `json:"ticketId"`
	Kind     TicketKind `json:"kind"`
}
