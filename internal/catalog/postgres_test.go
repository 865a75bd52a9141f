// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

func TestPostgres_Offers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "loan_type", "lender", "min_amount", "max_amount",
		"interest_rate", "processing_fee", "tenure_options", "features",
	}).
		AddRow("PL-001", "Personal", "Kaveri Finance", 50000, 500000, 10.5, 1.5, "{12,24,36}", `{"No prepayment charges","Instant disbursal"}`).
		AddRow("HL-001", "Home", nil, 200000, 1000000, 8.5, 0.5, "{36,60}", "{}")
	mock.ExpectQuery(regexp.QuoteMeta(queryOffers)).WillReturnRows(rows)

	offers, err := NewPostgres(db).Offers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 2)

	assert.Equal(t, models.LoanTypePersonal, offers[0].LoanType)
	assert.Equal(t, []int{12, 24, 36}, offers[0].TenureOptions)
	assert.Equal(t, []string{"No prepayment charges", "Instant disbursal"}, offers[0].Features)
	assert.Equal(t, "", offers[1].Lender)
	assert.Equal(t, 8.5, offers[1].InterestRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_OffersQueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryOffers)).WillReturnError(errors.New("connection reset"))

	_, err = NewPostgres(db).Offers(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeQueryExecutionFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Customer(t *testing.T) {
	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantCode apperrors.ErrorCode
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryCustomer)).
					WithArgs("CUST001").
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "name", "pre_approved_limit", "monthly_income", "account_number", "kyc_verified",
					}).AddRow("CUST001", "John Smith", 300000, 85000, "50100234567891", true))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryCustomer)).
					WithArgs("CUST001").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantCode: apperrors.ErrCodeRecordNotFound,
		},
		{
			name: "query error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryCustomer)).
					WithArgs("CUST001").
					WillReturnError(errors.New("timeout"))
			},
			wantCode: apperrors.ErrCodeQueryExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			c, err := NewPostgres(db).Customer(context.Background(), "CUST001")
			if tt.wantCode != "" {
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(300000), c.PreApprovedLimit)
				assert.True(t, c.KYCVerified)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_CreditScore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryCreditScore)).
		WithArgs("CUST002").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "score", "max_score", "rating"}).
			AddRow("CUST002", 640, 900, "Fair"))
	mock.ExpectQuery(regexp.QuoteMeta(queryCreditScore)).
		WithArgs("CUST404").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

	pg := NewPostgres(db)
	rec, err := pg.CreditScore(context.Background(), "CUST002")
	require.NoError(t, err)
	assert.Equal(t, 640, rec.Score)
	assert.Equal(t, "Fair", rec.Rating)

	_, err = pg.CreditScore(context.Background(), "CUST404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
