// internal/workers/underwriting/credit-bureau-check/models.go
package creditbureaucheck

import "loan-assistant/internal/models"

type Input struct {
	CustomerID   string `json:"customerId"`
	ConsentGiven bool   `json:"consentGiven"`
}

type Output struct {
	Record models.CreditScoreRecord `json:"record"`
}
