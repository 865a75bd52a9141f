// internal/workers/sanction/generate-sanction/models.go
package generatesanction

import "loan-assistant/internal/models"

type Input struct {
	Application  models.LoanApplication `json:"application"`
	CustomerName string                 `json:"customerName"`
}

type Output struct {
	Letter models.SanctionLetter `json:"letter"`
}
