// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

const (
	queryOffers = `SELECT id, loan_type, lender, min_amount, max_amount, interest_rate, processing_fee, tenure_options, features FROM loan_offers ORDER BY position`

	queryCustomer = `SELECT id, name, pre_approved_limit, monthly_income, account_number, kyc_verified FROM customers WHERE id = $1`

	queryCreditScore = `SELECT customer_id, score, max_score, rating FROM credit_scores WHERE customer_id = $1`
)

// Postgres reads the reference tables through database/sql.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Offers(ctx context.Context) ([]models.Offer, error) {
	rows, err := p.db.QueryContext(ctx, queryOffers)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError(TableOffers, err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var (
			o       models.Offer
			lender  sql.NullString
			tenures pq.Int64Array
		)
		if err := rows.Scan(&o.ID, &o.LoanType, &lender, &o.MinAmount, &o.MaxAmount,
			&o.InterestRate, &o.ProcessingFee, &tenures, pq.Array(&o.Features)); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError(TableOffers, err)
		}
		o.Lender = lender.String
		o.TenureOptions = make([]int, len(tenures))
		for i, t := range tenures {
			o.TenureOptions[i] = int(t)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError(TableOffers, err)
	}
	return offers, nil
}

func (p *Postgres) Customer(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	err := p.db.QueryRowContext(ctx, queryCustomer, id).Scan(
		&c.ID, &c.Name, &c.PreApprovedLimit, &c.MonthlyIncome, &c.AccountNumber, &c.KYCVerified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, apperrors.NewRecordNotFoundError(TableCustomers, id)
	}
	if err != nil {
		return models.Customer{}, apperrors.NewQueryExecutionFailedError(TableCustomers, err)
	}
	return c, nil
}

func (p *Postgres) CreditScore(ctx context.Context, customerID string) (models.CreditScoreRecord, error) {
	var r models.CreditScoreRecord
	err := p.db.QueryRowContext(ctx, queryCreditScore, customerID).Scan(
		&r.CustomerID, &r.Score, &r.MaxScore, &r.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CreditScoreRecord{}, apperrors.NewRecordNotFoundError(TableCreditScores, customerID)
	}
	if err != nil {
		return models.CreditScoreRecord{}, apperrors.NewQueryExecutionFailedError(TableCreditScores, err)
	}
	return r, nil
}
