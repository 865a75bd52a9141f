// internal/lending/emi_test.go
package lending

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		months    int
		want      int64
	}{
		{"one percent monthly over two years", 500000, 12, 24, 23537},
		{"personal loan rate", 500000, 10.5, 24, 23188},
		{"one year short loan", 100000, 11, 12, 8838},
		{"three year mid rate", 300000, 9.5, 36, 9610},
		{"zero rate is an even split", 200000, 0, 24, 8333},
		{"zero rate rounds half up", 50001, 0, 2, 25001},
		{"single month", 100000, 12, 1, 101000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EMI(tt.principal, tt.rate, tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEMI_MatchesClosedForm(t *testing.T) {
	r := 0.01
	f := math.Pow(1+r, 24)
	want := int64(math.Floor(500000*r*f/(f-1) + 0.5))

	got, err := EMI(500000, 12, 24)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEMI_Monotonicity(t *testing.T) {
	const principal = 500000

	prev := int64(0)
	for rate := 1.0; rate <= 30; rate += 0.5 {
		got := MustEMI(principal, rate, 36)
		assert.Greater(t, got, prev, "rate %.1f", rate)
		prev = got
	}

	prev = math.MaxInt64
	for months := 12; months <= 72; months++ {
		got := MustEMI(principal, 10.5, months)
		assert.Less(t, got, prev, "months %d", months)
		prev = got
	}
}

func TestEMI_InvalidInputs(t *testing.T) {
	_, err := EMI(500000, 12, 0)
	assert.Error(t, err)

	_, err = EMI(500000, -1, 12)
	assert.Error(t, err)

	_, err = EMI(500000, math.NaN(), 12)
	assert.Error(t, err)

	assert.Panics(t, func() { MustEMI(1, 1, 0) })

	got, err := EMI(0, 12, 12)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestProcessingFeeAmount(t *testing.T) {
	assert.Equal(t, int64(7500), ProcessingFeeAmount(500000, 1.5))
	assert.Equal(t, int64(1999), ProcessingFeeAmount(99950, 2))
	assert.Equal(t, int64(0), ProcessingFeeAmount(500000, 0))
}

func TestIncomeCovers(t *testing.T) {
	assert.True(t, IncomeCovers(23188, 85000))
	assert.False(t, IncomeCovers(42500, 85000), "exactly half is not below half")
	assert.False(t, IncomeCovers(50000, 85000))
	assert.False(t, IncomeCovers(1, 0))
}

func TestValidateRanges(t *testing.T) {
	assert.NoError(t, ValidateAmount(MinAmount))
	assert.NoError(t, ValidateAmount(MaxAmount))
	assert.Error(t, ValidateAmount(MinAmount-1))
	assert.Error(t, ValidateAmount(MaxAmount+1))

	assert.NoError(t, ValidateTenure(MinTenureMonths))
	assert.NoError(t, ValidateTenure(MaxTenureMonths))
	assert.Error(t, ValidateTenure(11))
	assert.Error(t, ValidateTenure(73))
}
