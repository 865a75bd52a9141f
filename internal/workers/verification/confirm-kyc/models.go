// internal/workers/verification/confirm-kyc/models.go
package confirmkyc

import "loan-assistant/internal/models"

type Input struct {
	CustomerID string `json:"customerId"`
	// UserKYCCompleted is the identity provider's own KYC flag.
	UserKYCCompleted bool `json:"userKycCompleted"`
}

type Output struct {
	Verified bool            `json:"verified"`
	Customer models.Customer `json:"customer"`
	Failures []string        `json:"failures,omitempty"`
}
