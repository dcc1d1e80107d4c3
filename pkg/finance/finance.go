package finance

import (
	"github.com/shopspring/decimal"

	customError "github.com/fernbank/lending-engine/pkg/errors"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Rate tier boundaries and the rate assigned to each tier.
var (
	midTierFloor  = decimal.NewFromInt(10000)
	highTierFloor = decimal.NewFromInt(25000)

	lowTierRate  = decimal.NewFromFloat(7.5)
	midTierRate  = decimal.NewFromFloat(6.5)
	highTierRate = decimal.NewFromFloat(5.5)
)

// Amortization holds the derived figures for a fixed-payment loan.
type Amortization struct {
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
}

// Amortize computes the fixed monthly payment and total interest for a loan.
// Formula: monthly = P * r * (1+r)^n / ((1+r)^n - 1) with r the monthly rate
// and n the number of monthly payments. A zero rate degenerates to straight
// principal/n. Results are rounded to 2 decimal places (round half away from
// zero) since they are user-facing currency values.
func Amortize(principal, annualRatePercent decimal.Decimal, termYears int) (Amortization, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Amortization{}, customError.WrapInvalidInput("principal must be greater than zero")
	}
	if termYears <= 0 {
		return Amortization{}, customError.WrapInvalidInput("term must be greater than zero")
	}
	if annualRatePercent.IsNegative() {
		return Amortization{}, customError.WrapInvalidInput("interest rate must not be negative")
	}

	payments := decimal.NewFromInt(int64(termYears) * 12)
	monthlyRate := annualRatePercent.Div(hundred).Div(twelve)

	var monthly decimal.Decimal
	if monthlyRate.IsZero() {
		monthly = principal.Div(payments)
	} else {
		growth := one.Add(monthlyRate).Pow(payments)
		monthly = principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one))
	}

	// Total interest is derived from the exact payment, both figures are
	// rounded only at the end.
	totalInterest := monthly.Mul(payments).Sub(principal)

	return Amortization{
		MonthlyPayment: monthly.Round(2),
		TotalInterest:  totalInterest.Round(2),
	}, nil
}

// RateForPrincipal assigns an annual interest rate percent based on loan size.
// Larger loans get better rates: <10000 -> 7.5, <25000 -> 6.5, else 5.5.
func RateForPrincipal(principal decimal.Decimal) decimal.Decimal {
	switch {
	case principal.LessThan(midTierFloor):
		return lowTierRate
	case principal.LessThan(highTierFloor):
		return midTierRate
	default:
		return highTierRate
	}
}
