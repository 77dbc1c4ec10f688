/*
Package generic provides the shared building blocks of the gratuity engine.

PURPOSE:
  Domain-agnostic value types used by the calculator, the API layer and the
  store. Nothing in here knows about UAE labour law; the gratuity package
  owns the rules.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 328.77 AED, 21 days)
  - Decimal helpers: Construction and fixed-point display

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift in money
  2. Type Safety: Units travel with the value so AED never mixes with days
  3. Display is separate: rounding happens only when formatting output

USAGE:
  salary, err := generic.ParseAmount("10000", generic.UnitAED)
  leave := generic.NewAmountFromInt(10, generic.UnitDays)
  fmt.Println(salary.StringFixed(2)) // 10000.00

SEE ALSO:
  - time.go: TimePoint and day arithmetic
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitAED  Unit = "AED"
	UnitDays Unit = "days"
)

func NewAmount(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

// ParseAmount parses a decimal string such as "10000" or "12500.50".
func ParseAmount(s string, unit Unit) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Value: d, Unit: unit}, nil
}

func (a Amount) Sub(b Amount) Amount { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) IsNegative() bool    { return a.Value.IsNegative() }
func (a Amount) IsZero() bool        { return a.Value.IsZero() }

// Priced converts a quantity of days into money at the given daily rate.
func (a Amount) Priced(rate decimal.Decimal, unit Unit) Amount {
	return Amount{Value: a.Value.Mul(rate), Unit: unit}
}

// StringFixed renders the value rounded to the given number of decimal places.
// Rounding is half away from zero.
func (a Amount) StringFixed(places int32) string { return a.Value.StringFixed(places) }

func (a Amount) String() string { return a.Value.String() + " " + string(a.Unit) }
