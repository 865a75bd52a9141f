// internal/models/loan.go
package models

import (
	"errors"
	"fmt"
	"time"
)

type LoanType string

const (
	LoanTypePersonal  LoanType = "Personal"
	LoanTypeHome      LoanType = "Home"
	LoanTypeAuto      LoanType = "Auto"
	LoanTypeEducation LoanType = "Education"
	LoanTypeBusiness  LoanType = "Business"
	LoanTypeGold      LoanType = "Gold"
)

// LoanTypes lists every supported type in display order.
var LoanTypes = []LoanType{
	LoanTypePersonal, LoanTypeHome, LoanTypeAuto,
	LoanTypeEducation, LoanTypeBusiness, LoanTypeGold,
}

func (t LoanType) Valid() bool {
	for _, lt := range LoanTypes {
		if lt == t {
			return true
		}
	}
	return false
}

type ApplicationStatus string

const (
	StatusDraft     ApplicationStatus = "draft"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusDisbursed ApplicationStatus = "disbursed"
)

var ErrInvalidStatusTransition = errors.New("INVALID_STATUS_TRANSITION")

// allowedTransitions encodes the forward-only lifecycle.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:    {StatusApproved, StatusRejected},
	StatusApproved: {StatusDisbursed},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ApplicationStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// LoanApplication is the record assembled over one conversation. It is a value
// type: every With*/transition method returns a modified copy.
type LoanApplication struct {
	ID             string            `json:"id"`
	CustomerID     string            `json:"customerId"`
	Type           LoanType          `json:"type"`
	Amount         int64             `json:"amount"`
	TenureMonths   int               `json:"tenureMonths"`
	SelectedOffer  *Offer            `json:"selectedOffer,omitempty"`
	Status         ApplicationStatus `json:"status"`
	DecisionReason string            `json:"decisionReason,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NewLoanApplication starts a draft for the customer.
func NewLoanApplication(id, customerID string, now time.Time) LoanApplication {
	return LoanApplication{
		ID:         id,
		CustomerID: customerID,
		Type:       LoanTypePersonal,
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (a LoanApplication) touch(now time.Time) LoanApplication {
	a.UpdatedAt = now
	return a
}

func (a LoanApplication) WithType(t LoanType, now time.Time) LoanApplication {
	a.Type = t
	return a.touch(now)
}

func (a LoanApplication) WithAmount(amount int64, now time.Time) LoanApplication {
	a.Amount = amount
	return a.touch(now)
}

func (a LoanApplication) WithTenure(months int, now time.Time) LoanApplication {
	a.TenureMonths = months
	return a.touch(now)
}

func (a LoanApplication) WithOffer(o Offer, now time.Time) LoanApplication {
	offer := o.Clone()
	a.SelectedOffer = &offer
	return a.touch(now)
}

func (a LoanApplication) transition(next ApplicationStatus, reason string, now time.Time) (LoanApplication, error) {
	if !a.Status.CanTransitionTo(next) {
		return a, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, a.Status, next)
	}
	a.Status = next
	a.DecisionReason = reason
	return a.touch(now), nil
}

func (a LoanApplication) Approve(now time.Time) (LoanApplication, error) {
	return a.transition(StatusApproved, "", now)
}

func (a LoanApplication) Reject(reason string, now time.Time) (LoanApplication, error) {
	return a.transition(StatusRejected, reason, now)
}

func (a LoanApplication) MarkDisbursed(now time.Time) (LoanApplication, error) {
	return a.transition(StatusDisbursed, a.DecisionReason, now)
}
