// Package gratuity implements UAE end-of-service gratuity calculation.
// It turns an employment period into a service-duration breakdown and
// prices that duration under a tiered rule scheme.
package gratuity

import (
	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/generic"
)

// =============================================================================
// RULE SELECTOR
// =============================================================================

// Rule identifies a gratuity scheme.
type Rule string

const (
	// RuleCurrent pays 21 days for the first year and 30 days for every year after.
	RuleCurrent Rule = "currentRule"
	// RuleOld pays 25 days for years 1-3, 30 days for years 4-6 and 35 days beyond.
	RuleOld Rule = "oldRule"
)

func (r Rule) String() string { return string(r) }

// =============================================================================
// CALCULATION TYPES
// =============================================================================

// Input is one calculation request, already validated by the caller.
type Input struct {
	BasicSalary     generic.Amount // monthly basic salary
	Period          generic.Period
	UnpaidLeaveDays int
	Rule            Rule
}

// ServiceDuration is the 365-day-year / 30-day-month breakdown of a period.
type ServiceDuration struct {
	Years        int
	Months       int // 0-12; remainders of 360-364 days give 12
	Days         int // 0-29
	TotalDays    int
	DecimalYears decimal.Decimal // Years + Months/12 + Days/365
}

// ServiceYears is the effective service used for pricing: whole years plus
// months, with leftover days dropped.
func (d ServiceDuration) ServiceYears() decimal.Decimal {
	return decimal.NewFromInt(int64(d.Years)).
		Add(decimal.NewFromInt(int64(d.Months)).Div(monthsPerYear))
}

// Result is the priced gratuity. Amount may be negative when the unpaid
// leave deduction exceeds the entitlement.
type Result struct {
	Amount      generic.Amount
	DailySalary generic.Amount
}

// Calculation bundles everything produced for one Input.
type Calculation struct {
	Input    Input
	Scheme   Scheme
	Duration ServiceDuration
	Result   Result
}
