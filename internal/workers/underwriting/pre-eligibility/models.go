// internal/workers/underwriting/pre-eligibility/models.go
package preeligibility

import (
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

type Input struct {
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
}

type Output struct {
	Eligibility lending.PreEligibility `json:"eligibility"`
	Customer    models.Customer        `json:"customer"`
}
