// internal/catalog/static.go
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/xeipuuv/gojsonschema"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

//go:embed data/*.json
var embeddedData embed.FS

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// Static serves the reference tables from memory. It is never mutated after
// construction.
type Static struct {
	offers    []models.Offer
	customers map[string]models.Customer
	scores    map[string]models.CreditScoreRecord
}

// LoadEmbedded returns the tables compiled into the binary.
func LoadEmbedded() (*Static, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, err
	}
	return loadFS(sub)
}

// LoadDir reads offers.json, customers.json and credit_scores.json from dir.
// An empty dir means the embedded tables.
func LoadDir(dir string) (*Static, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	return loadFS(os.DirFS(dir))
}

// NewStatic builds a catalog from already-decoded tables, mostly for tests.
func NewStatic(offers []models.Offer, customers []models.Customer, scores []models.CreditScoreRecord) *Static {
	s := &Static{
		offers:    make([]models.Offer, len(offers)),
		customers: make(map[string]models.Customer, len(customers)),
		scores:    make(map[string]models.CreditScoreRecord, len(scores)),
	}
	for i, o := range offers {
		s.offers[i] = o.Clone()
	}
	for _, c := range customers {
		s.customers[c.ID] = c
	}
	for _, r := range scores {
		s.scores[r.CustomerID] = r
	}
	return s
}

func loadFS(fsys fs.FS) (*Static, error) {
	var (
		offers    []models.Offer
		customers []models.Customer
		scores    []models.CreditScoreRecord
	)
	if err := readTable(fsys, "offers", &offers); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "customers", &customers); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "credit_scores", &scores); err != nil {
		return nil, err
	}

	var problems []string
	for _, o := range offers {
		if o.MinAmount > o.MaxAmount {
			problems = append(problems, fmt.Sprintf("%s: minAmount above maxAmount", o.ID))
		}
	}
	if len(problems) > 0 {
		return nil, apperrors.NewCatalogInvalidError(TableOffers, problems)
	}

	return NewStatic(offers, customers, scores), nil
}

func readTable(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name+".json")
	if err != nil {
		return fmt.Errorf("read %s table: %w", name, err)
	}
	if err := validateTable(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s table: %w", name, err)
	}
	return nil
}

func validateTable(name string, data []byte) error {
	schema, err := embeddedSchemas.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return fmt.Errorf("schema for %s: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return apperrors.NewCatalogInvalidError(name, []string{err.Error()})
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewCatalogInvalidError(name, errs)
	}
	return nil
}

func (s *Static) Offers(_ context.Context) ([]models.Offer, error) {
	out := make([]models.Offer, len(s.offers))
	for i, o := range s.offers {
		out[i] = o.Clone()
	}
	return out, nil
}

func (s *Static) Customer(_ context.Context, id string) (models.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return models.Customer{}, apperrors.NewRecordNotFoundError(TableCustomers, id)
	}
	return c, nil
}

func (s *Static) CreditScore(_ context.Context, customerID string) (models.CreditScoreRecord, error) {
	r, ok := s.scores[customerID]
	if !ok {
		return models.CreditScoreRecord{}, apperrors.NewRecordNotFoundError(TableCreditScores, customerID)
	}
	return r, nil
}
