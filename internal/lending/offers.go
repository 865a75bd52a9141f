// internal/lending/offers.go
package lending

import (
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

// FilterOffers keeps offers of loanType whose band covers amount, in catalog order.
func FilterOffers(catalog []models.Offer, loanType models.LoanType, amount int64) []models.Offer {
	out := make([]models.Offer, 0, len(catalog))
	for _, o := range catalog {
		if o.LoanType == loanType && o.Covers(amount) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// SelectOffer picks by 1-based position within the filtered list.
func SelectOffer(filtered []models.Offer, position int) (models.Offer, error) {
	if position < 1 || position > len(filtered) {
		return models.Offer{}, apperrors.NewInvalidOfferIndexError(position, len(filtered))
	}
	return filtered[position-1].Clone(), nil
}

// BestOffer returns the lowest-rate offer. Ties keep catalog order.
func BestOffer(filtered []models.Offer) (models.Offer, bool) {
	if len(filtered) == 0 {
		return models.Offer{}, false
	}
	best := 0
	for i := 1; i < len(filtered); i++ {
		if filtered[i].InterestRate < filtered[best].InterestRate {
			best = i
		}
	}
	return filtered[best].Clone(), true
}
