/*
scheme.go - Tiered gratuity schemes

PURPOSE:
  A Scheme prices service years as a sequence of tiers. Each tier pays a
  number of days of basic salary per year of service that falls inside it.
  Service years are consumed tier by tier until none are left.

BUILT-IN SCHEMES:
  currentRule:  [1 year @ 21 days] [unbounded @ 30 days], first tier prorated
  oldRule:      [3 years @ 25 days] [3 years @ 30 days] [unbounded @ 35 days]

FIRST-TIER PRORATION:
  When ProrateFirstTier is set and service does not exceed the first tier,
  the first-tier rate is multiplied by the full decimal years (which still
  include leftover days) rather than by the effective service years.

EXAMPLE (oldRule, 10 service years, daily salary D):
  25*D*3 + 30*D*3 + 35*D*4

SEE ALSO:
  - calculator.go: Applies a scheme and the unpaid-leave deduction
  - registry.go: Scheme lookup by rule id
  - factory/scheme.go: JSON scheme documents
*/
package gratuity

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/generic"
)

// Tier pays DaysPerYear days of salary for each service year inside it.
// A zero Years means the tier is unbounded.
type Tier struct {
	Years       decimal.Decimal
	DaysPerYear decimal.Decimal
}

func (t Tier) Unbounded() bool { return t.Years.IsZero() }

type Scheme struct {
	ID               Rule
	Name             string
	Description      string
	Tiers            []Tier
	ProrateFirstTier bool
}

// Validate checks the structural rules of a scheme.
func (s Scheme) Validate() error {
	if s.ID == "" {
		return &generic.SchemeError{SchemeID: string(s.ID), Reason: "id is required"}
	}
	if s.Name == "" {
		return &generic.SchemeError{SchemeID: string(s.ID), Reason: "name is required"}
	}
	if len(s.Tiers) == 0 {
		return &generic.SchemeError{SchemeID: string(s.ID), Reason: "at least one tier is required"}
	}
	for i, t := range s.Tiers {
		if !t.DaysPerYear.IsPositive() {
			return &generic.SchemeError{SchemeID: string(s.ID), Reason: fmt.Sprintf("tier %d: days per year must be positive", i+1)}
		}
		if t.Years.IsNegative() {
			return &generic.SchemeError{SchemeID: string(s.ID), Reason: fmt.Sprintf("tier %d: years must not be negative", i+1)}
		}
		if t.Unbounded() && i != len(s.Tiers)-1 {
			return &generic.SchemeError{SchemeID: string(s.ID), Reason: fmt.Sprintf("tier %d: only the last tier may be unbounded", i+1)}
		}
	}
	if s.ProrateFirstTier && s.Tiers[0].Unbounded() {
		return &generic.SchemeError{SchemeID: string(s.ID), Reason: "prorated first tier must be bounded"}
	}
	return nil
}

// Entitlement prices serviceYears at the given daily salary, before any
// leave deduction.
func (s Scheme) Entitlement(dailySalary, serviceYears, decimalYears decimal.Decimal) decimal.Decimal {
	if len(s.Tiers) == 0 {
		return decimal.Zero
	}

	first := s.Tiers[0]
	if s.ProrateFirstTier && !first.Unbounded() && serviceYears.LessThanOrEqual(first.Years) {
		return dailySalary.Mul(first.DaysPerYear).Mul(decimalYears)
	}

	total := decimal.Zero
	remaining := serviceYears
	for _, t := range s.Tiers {
		if !remaining.IsPositive() {
			break
		}
		span := remaining
		if !t.Unbounded() && span.GreaterThan(t.Years) {
			span = t.Years
		}
		total = total.Add(dailySalary.Mul(t.DaysPerYear).Mul(span))
		remaining = remaining.Sub(span)
	}
	return total
}

// =============================================================================
// BUILT-IN SCHEMES
// =============================================================================

func CurrentRuleScheme() Scheme {
	return Scheme{
		ID:          RuleCurrent,
		Name:        "Current Rule",
		Description: "21 days for the first year, 30 days for the rest",
		Tiers: []Tier{
			{Years: decimal.NewFromInt(1), DaysPerYear: decimal.NewFromInt(21)},
			{Years: decimal.Zero, DaysPerYear: decimal.NewFromInt(30)},
		},
		ProrateFirstTier: true,
	}
}

func OldRuleScheme() Scheme {
	return Scheme{
		ID:          RuleOld,
		Name:        "Old Rule",
		Description: "25 days for first 3 years, 30 days for next 3 years, 35 days for others",
		Tiers: []Tier{
			{Years: decimal.NewFromInt(3), DaysPerYear: decimal.NewFromInt(25)},
			{Years: decimal.NewFromInt(3), DaysPerYear: decimal.NewFromInt(30)},
			{Years: decimal.Zero, DaysPerYear: decimal.NewFromInt(35)},
		},
	}
}
