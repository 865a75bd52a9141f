// internal/workers/underwriting/underwriting-decision/models.go
package underwritingdecision

import (
	"loan-assistant/internal/lending"
	"loan-assistant/internal/models"
)

type Input struct {
	Application models.LoanApplication `json:"application"`
	Outcome     lending.Outcome        `json:"outcome"`
	// Score is required on the consent path and ignored otherwise.
	Score *int `json:"score,omitempty"`
}

type Output struct {
	Decision    lending.Decision       `json:"decision"`
	Application models.LoanApplication `json:"application"`
}
