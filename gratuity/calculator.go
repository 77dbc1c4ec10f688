package gratuity

import (
	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/generic"
)

var one = decimal.NewFromInt(1)

// ComputeGratuity prices service under a rule from the Default registry.
//
// serviceYears is the effective service (years + months/12). decimalYears is
// the full fractional duration and only matters for a prorated first tier.
// A rule that is not registered contributes no entitlement; the unpaid leave
// deduction still applies.
func ComputeGratuity(basicSalary, serviceYears decimal.Decimal, rule Rule, unpaidLeaveDays int, decimalYears decimal.Decimal) (Result, error) {
	scheme, _ := Default.Lookup(rule)
	return ComputeGratuityWithScheme(basicSalary, serviceYears, scheme, unpaidLeaveDays, decimalYears)
}

// ComputeGratuityWithScheme prices service under an explicit scheme.
// Service under one year yields an *InsufficientServiceError and a zero Result.
func ComputeGratuityWithScheme(basicSalary, serviceYears decimal.Decimal, scheme Scheme, unpaidLeaveDays int, decimalYears decimal.Decimal) (Result, error) {
	if serviceYears.LessThan(one) {
		return Result{
			Amount:      generic.NewAmount(decimal.Zero, generic.UnitAED),
			DailySalary: generic.NewAmount(decimal.Zero, generic.UnitAED),
		}, &InsufficientServiceError{ServiceYears: serviceYears}
	}

	daily := DailySalary(basicSalary)
	amount := generic.NewAmount(scheme.Entitlement(daily, serviceYears, decimalYears), generic.UnitAED)

	// No floor: the deduction can push the amount below zero.
	if unpaidLeaveDays > 0 {
		leave := generic.NewAmountFromInt(unpaidLeaveDays, generic.UnitDays)
		amount = amount.Sub(leave.Priced(daily, generic.UnitAED))
	}

	return Result{
		Amount:      amount,
		DailySalary: generic.NewAmount(daily, generic.UnitAED),
	}, nil
}

// DailySalary annualises a monthly salary and spreads it over a 365-day year.
func DailySalary(basicSalary decimal.Decimal) decimal.Decimal {
	return basicSalary.Mul(monthsPerYear).Div(yearDays)
}

// Calculate runs the full sequence for a validated input: duration, effective
// service years, then pricing under scheme. The returned Calculation carries
// the duration even when pricing fails.
func Calculate(in Input, scheme Scheme) (Calculation, error) {
	calc := Calculation{Input: in, Scheme: scheme}
	if err := in.Period.Validate(); err != nil {
		return calc, err
	}

	calc.Duration = ComputeServiceDuration(in.Period.Start, in.Period.End)
	result, err := ComputeGratuityWithScheme(
		in.BasicSalary.Value,
		calc.Duration.ServiceYears(),
		scheme,
		in.UnpaidLeaveDays,
		calc.Duration.DecimalYears,
	)
	calc.Result = result
	return calc, err
}
