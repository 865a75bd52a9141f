// internal/workers/documents/verify-income/models.go
package verifyincome

type Input struct {
	CustomerID   string `json:"customerId"`
	DocumentName string `json:"documentName"`
	EMI          int64  `json:"emi"`
}

type Output struct {
	DocumentName  string `json:"documentName"`
	MonthlyIncome int64  `json:"monthlyIncome"`
	EMI           int64  `json:"emi"`
	Verified      bool   `json:"verified"`
}
