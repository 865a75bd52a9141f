// internal/catalog/catalog.go
package catalog

import (
	"context"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

// ErrNotFound matches any lookup miss via errors.Is.
var ErrNotFound = &apperrors.StandardError{Code: apperrors.ErrCodeRecordNotFound}

const (
	TableOffers       = "loan_offers"
	TableCustomers    = "customers"
	TableCreditScores = "credit_scores"
)

// OfferCatalog lists every offer in catalog order. Callers receive copies.
type OfferCatalog interface {
	Offers(ctx context.Context) ([]models.Offer, error)
}

type CustomerDirectory interface {
	Customer(ctx context.Context, id string) (models.Customer, error)
}

type CreditScoreTable interface {
	CreditScore(ctx context.Context, customerID string) (models.CreditScoreRecord, error)
}

// Catalog bundles the three read-only reference tables. Implementations are
// safe for concurrent use by many sessions.
type Catalog interface {
	OfferCatalog
	CustomerDirectory
	CreditScoreTable
}

// Composite lets each table come from a different source, e.g. a redis-cached
// score table in front of Postgres.
type Composite struct {
	OfferCatalog
	CustomerDirectory
	CreditScoreTable
}
