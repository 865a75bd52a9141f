// internal/catalog/static_test.go
package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

func TestLoadEmbedded(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	offers, err := cat.Offers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, offers)
	assert.Equal(t, "PL-001", offers[0].ID, "catalog order is preserved")

	types := map[models.LoanType]bool{}
	for _, o := range offers {
		assert.True(t, o.LoanType.Valid(), o.ID)
		assert.LessOrEqual(t, o.MinAmount, o.MaxAmount, o.ID)
		types[o.LoanType] = true
	}
	for _, lt := range models.LoanTypes {
		assert.True(t, types[lt], "no offer for %s", lt)
	}

	john, err := cat.Customer(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", john.Name)
	assert.Equal(t, int64(300000), john.PreApprovedLimit)

	score, err := cat.CreditScore(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, 780, score.Score)
	assert.Equal(t, 900, score.MaxScore)
}

func TestStatic_LookupMisses(t *testing.T) {
	cat := NewStatic(nil, nil, nil)
	ctx := context.Background()

	_, err := cat.Customer(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRecordNotFound))

	_, err = cat.CreditScore(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatic_OffersAreCopies(t *testing.T) {
	cat := NewStatic([]models.Offer{{ID: "X", Features: []string{"a"}, TenureOptions: []int{12}}}, nil, nil)
	ctx := context.Background()

	first, _ := cat.Offers(ctx)
	first[0].Features[0] = "mutated"
	first[0].ID = "Y"

	second, _ := cat.Offers(ctx)
	assert.Equal(t, "X", second[0].ID)
	assert.Equal(t, "a", second[0].Features[0])
}

func writeTables(t *testing.T, offers, customers, scores string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "offers.json"), []byte(offers), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.json"), []byte(customers), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credit_scores.json"), []byte(scores), 0o600))
	return dir
}

func TestLoadDir(t *testing.T) {
	goodOffer := `[{"id":"PL-9","loanType":"Personal","minAmount":50000,"maxAmount":90000,"interestRate":10,"processingFee":1,"tenureOptions":[12],"features":[]}]`
	goodCustomer := `[{"id":"C1","name":"A","preApprovedLimit":1,"monthlyIncome":1,"accountNumber":"1234","kycVerified":true}]`
	goodScore := `[{"customerId":"C1","score":700,"maxScore":900,"rating":"Good"}]`

	tests := []struct {
		name      string
		offers    string
		customers string
		scores    string
		wantCode  apperrors.ErrorCode
	}{
		{"valid", goodOffer, goodCustomer, goodScore, ""},
		{"unknown loan type", `[{"id":"X","loanType":"Crypto","minAmount":1,"maxAmount":2,"interestRate":1,"processingFee":1,"tenureOptions":[],"features":[]}]`, goodCustomer, goodScore, apperrors.ErrCodeCatalogInvalid},
		{"inverted band", `[{"id":"X","loanType":"Home","minAmount":5,"maxAmount":2,"interestRate":1,"processingFee":1,"tenureOptions":[],"features":[]}]`, goodCustomer, goodScore, apperrors.ErrCodeCatalogInvalid},
		{"score out of range", goodOffer, goodCustomer, `[{"customerId":"C1","score":1000,"maxScore":900,"rating":"?"}]`, apperrors.ErrCodeCatalogInvalid},
		{"missing field", goodOffer, `[{"id":"C1","name":"A"}]`, goodScore, apperrors.ErrCodeCatalogInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := LoadDir(writeTables(t, tt.offers, tt.customers, tt.scores))
			if tt.wantCode == "" {
				require.NoError(t, err)
				c, err := cat.Customer(context.Background(), "C1")
				require.NoError(t, err)
				assert.Equal(t, "1234", c.AccountNumber)
				return
			}
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	_, err := LoadDir(t.TempDir())
	assert.Error(t, err, "missing files")
}
