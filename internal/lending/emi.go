// internal/lending/emi.go
package lending

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// EMI returns the equated monthly installment in whole rupees:
//
//	r   = annualRatePercent / 1200
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split P/n. The result is rounded half-up.
func EMI(principal int64, annualRatePercent float64, months int) (int64, error) {
	if months < 1 {
		return 0, fmt.Errorf("emi: months must be >= 1, got %d", months)
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return 0, fmt.Errorf("emi: invalid annual rate %v", annualRatePercent)
	}
	if principal <= 0 {
		return 0, nil
	}

	r := annualRatePercent / 1200
	if r == 0 {
		return decimal.NewFromInt(principal).
			Div(decimal.NewFromInt(int64(months))).
			Round(0).
			IntPart(), nil
	}

	// float64 for the power, decimal for the rounding.
	factor := math.Pow(1+r, float64(months))
	payment := float64(principal) * r * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(0).IntPart(), nil
}

// MustEMI is EMI for inputs already validated by the caller.
func MustEMI(principal int64, annualRatePercent float64, months int) int64 {
	emi, err := EMI(principal, annualRatePercent, months)
	if err != nil {
		panic(err)
	}
	return emi
}

// ProcessingFeeAmount converts a percentage fee into rupees, rounded half-up.
func ProcessingFeeAmount(principal int64, feePercent float64) int64 {
	return decimal.NewFromInt(principal).
		Mul(decimal.NewFromFloat(feePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// IncomeCovers reports whether the installment stays strictly below half of
// the monthly income.
func IncomeCovers(emi, monthlyIncome int64) bool {
	return monthlyIncome > 0 && emi*2 < monthlyIncome
}
