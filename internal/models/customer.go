// internal/models/customer.go
package models

// User is the authenticated identity handed to a conversation session.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	KYCCompleted bool   `json:"kycCompleted"`
}

// Customer is the bank-side record keyed by the same id as User.
type Customer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PreApprovedLimit int64  `json:"preApprovedLimit"`
	MonthlyIncome    int64  `json:"monthlyIncome"`
	AccountNumber    string `json:"accountNumber"`
	KYCVerified      bool   `json:"kycVerified"`
}

// MaskedAccount keeps only the last four digits.
func (c Customer) MaskedAccount() string {
	n := len(c.AccountNumber)
	if n <= 4 {
		return c.AccountNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = 'X'
	}
	copy(masked[n-4:], c.AccountNumber[n-4:])
	return string(masked)
}

type CreditScoreRecord struct {
	CustomerID string `json:"customerId"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Rating     string `json:"rating"`
}
