// internal/workers/disbursement/disburse-funds/models.go
package disbursefunds

import "loan-assistant/internal/models"

type Input struct {
	Application models.LoanApplication `json:"application"`
	Letter      *models.SanctionLetter `json:"letter"`
}

type Output struct {
	Disbursement models.Disbursement    `json:"disbursement"`
	Application  models.LoanApplication `json:"application"`
}
