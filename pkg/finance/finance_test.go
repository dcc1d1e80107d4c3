package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortize(t *testing.T) {
	tests := []struct {
		name            string
		principal       decimal.Decimal
		rate            decimal.Decimal
		termYears       int
		expectedMonthly decimal.Decimal
		expectedTotal   decimal.Decimal
	}{
		{
			name:            "mid tier loan over 3 years",
			principal:       decimal.NewFromInt(10000),
			rate:            decimal.NewFromFloat(6.5),
			termYears:       3,
			expectedMonthly: decimal.NewFromFloat(306.49),
			expectedTotal:   decimal.NewFromFloat(1033.64),
		},
		{
			name:            "zero rate falls back to straight line",
			principal:       decimal.NewFromInt(12000),
			rate:            decimal.Zero,
			termYears:       1,
			expectedMonthly: decimal.NewFromInt(1000),
			expectedTotal:   decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Amortize(tt.principal, tt.rate, tt.termYears)
			require.NoError(t, err)
			assert.True(t, result.MonthlyPayment.Equal(tt.expectedMonthly),
				"expected monthly payment %v, got %v", tt.expectedMonthly, result.MonthlyPayment)
			assert.True(t, result.TotalInterest.Equal(tt.expectedTotal),
				"expected total interest %v, got %v", tt.expectedTotal, result.TotalInterest)
		})
	}
}

func TestAmortize_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		termYears int
	}{
		{"zero principal", decimal.Zero, decimal.NewFromFloat(6.5), 3},
		{"negative principal", decimal.NewFromInt(-5000), decimal.NewFromFloat(6.5), 3},
		{"zero term", decimal.NewFromInt(10000), decimal.NewFromFloat(6.5), 0},
		{"negative term", decimal.NewFromInt(10000), decimal.NewFromFloat(6.5), -1},
		{"negative rate", decimal.NewFromInt(10000), decimal.NewFromFloat(-0.5), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Amortize(tt.principal, tt.rate, tt.termYears)
			assert.Error(t, err)
		})
	}
}

// Every principal inside the offered range paired with any offered term must
// yield a strictly positive payment and non-negative interest.
func TestAmortize_TierCoverage(t *testing.T) {
	principals := []int64{1000, 9999, 10000, 24999, 25000, 50000}
	terms := []int{1, 3, 5, 7}

	for _, p := range principals {
		principal := decimal.NewFromInt(p)
		rate := RateForPrincipal(principal)

		for _, term := range terms {
			result, err := Amortize(principal, rate, term)
			require.NoError(t, err)
			assert.True(t, result.MonthlyPayment.IsPositive(),
				"principal=%d term=%d: monthly payment must be positive", p, term)
			assert.False(t, result.TotalInterest.IsNegative(),
				"principal=%d term=%d: total interest must not be negative", p, term)
		}
	}
}

func TestRateForPrincipal(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		expected  decimal.Decimal
	}{
		{"small loan", decimal.NewFromInt(1000), decimal.NewFromFloat(7.5)},
		{"just below mid tier", decimal.NewFromFloat(9999.99), decimal.NewFromFloat(7.5)},
		{"mid tier lower bound", decimal.NewFromInt(10000), decimal.NewFromFloat(6.5)},
		{"just below high tier", decimal.NewFromFloat(24999.99), decimal.NewFromFloat(6.5)},
		{"high tier lower bound", decimal.NewFromInt(25000), decimal.NewFromFloat(5.5)},
		{"maximum loan", decimal.NewFromInt(50000), decimal.NewFromFloat(5.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := RateForPrincipal(tt.principal)
			assert.True(t, rate.Equal(tt.expected),
				"expected %v, got %v", tt.expected, rate)
		})
	}
}
