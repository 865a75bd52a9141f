// internal/lending/limits.go
package lending

import apperrors "loan-assistant/internal/common/errors"

const (
	MinAmount int64 = 50_000
	MaxAmount int64 = 1_000_000

	MinTenureMonths = 12
	MaxTenureMonths = 72
)

func ValidateAmount(amount int64) error {
	if amount < MinAmount || amount > MaxAmount {
		return apperrors.NewAmountOutOfRangeError(amount, MinAmount, MaxAmount)
	}
	return nil
}

func ValidateTenure(months int) error {
	if months < MinTenureMonths || months > MaxTenureMonths {
		return apperrors.NewTenureOutOfRangeError(months, MinTenureMonths, MaxTenureMonths)
	}
	return nil
}
