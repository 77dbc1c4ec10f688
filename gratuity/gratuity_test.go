package gratuity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/gratuity-engine/generic"
	"github.com/warp/gratuity-engine/gratuity"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func years(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func date(y int, m time.Month, d int) generic.TimePoint { return generic.NewTimePoint(y, m, d) }

var salary10k = dec("10000")

func daily10k() decimal.Decimal { return gratuity.DailySalary(salary10k) }

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "expected %s, got %s %v", expected, actual, msgAndArgs)
}

// =============================================================================
// DURATION CALCULATOR
// =============================================================================

func TestServiceDuration_FiveYearExample(t *testing.T) {
	// GIVEN: 2020-01-01 to 2025-01-01 (two leap years inside)
	// WHEN: Breaking the span down
	// THEN: 1827 days = 5 years, 0 months, 2 days

	d := gratuity.ComputeServiceDuration(date(2020, time.January, 1), date(2025, time.January, 1))

	assert.Equal(t, 1827, d.TotalDays)
	assert.Equal(t, 5, d.Years)
	assert.Equal(t, 0, d.Months)
	assert.Equal(t, 2, d.Days)
	assertDecimal(t, years(5).Add(dec("2").Div(dec("365"))), d.DecimalYears)
	assertDecimal(t, years(5), d.ServiceYears())
}

func TestServiceDuration_Breakdown(t *testing.T) {
	tests := []struct {
		name            string
		start, end      generic.TimePoint
		total, y, m, dd int
	}{
		{"one day", date(2024, time.March, 1), date(2024, time.March, 2), 1, 0, 0, 1},
		{"29 days stays in days", date(2023, time.February, 1), date(2023, time.March, 2), 29, 0, 0, 29},
		{"30 days is one month", date(2023, time.January, 1), date(2023, time.January, 31), 30, 0, 1, 0},
		{"364 days is 12 months 4 days", date(2023, time.January, 1), date(2023, time.December, 31), 364, 0, 12, 4},
		{"leap year is 1 year 1 day", date(2024, time.January, 1), date(2025, time.January, 1), 366, 1, 0, 1},
		{"two years three months", date(2021, time.January, 1), date(2023, time.April, 1), 820, 2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := gratuity.ComputeServiceDuration(tt.start, tt.end)
			assert.Equal(t, tt.total, d.TotalDays)
			assert.Equal(t, tt.y, d.Years)
			assert.Equal(t, tt.m, d.Months)
			assert.Equal(t, tt.dd, d.Days)
		})
	}
}

func TestServiceDuration_Symmetric(t *testing.T) {
	pairs := [][2]generic.TimePoint{
		{date(2020, time.January, 1), date(2025, time.January, 1)},
		{date(2019, time.July, 14), date(2021, time.February, 28)},
		{date(2000, time.February, 29), date(2024, time.February, 29)},
	}

	for _, p := range pairs {
		forward := gratuity.ComputeServiceDuration(p[0], p[1])
		backward := gratuity.ComputeServiceDuration(p[1], p[0])
		assert.Equal(t, forward.TotalDays, backward.TotalDays)
		assert.Equal(t, forward.Years, backward.Years)
		assertDecimal(t, forward.DecimalYears, backward.DecimalYears)
	}
}

func TestServiceDuration_CenturiesApart(t *testing.T) {
	// GIVEN: Spans far longer than a time.Duration can hold
	// WHEN: Breaking them down in both argument orders
	// THEN: Exact calendar day counts, identical and non-negative either way

	tests := []struct {
		name       string
		start, end generic.TimePoint
		total, y   int
	}{
		{"year one", date(1, time.January, 1), date(2025, time.January, 1), 739251, 2025},
		{"year 1700", date(1700, time.January, 1), date(2025, time.January, 1), 118704, 325},
		{"mistyped year", date(202, time.January, 1), date(2025, time.January, 1), 665838, 1824},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := gratuity.ComputeServiceDuration(tt.start, tt.end)
			backward := gratuity.ComputeServiceDuration(tt.end, tt.start)

			assert.Equal(t, tt.total, forward.TotalDays)
			assert.Equal(t, tt.y, forward.Years)
			assert.Equal(t, forward.TotalDays, backward.TotalDays)
			assert.Equal(t, forward.Years, backward.Years)
			assertDecimal(t, forward.DecimalYears, backward.DecimalYears)
			assert.False(t, backward.DecimalYears.IsNegative())
		})
	}

	d := gratuity.ComputeServiceDuration(date(1, time.January, 1), date(2025, time.January, 1))
	assert.Equal(t, 4, d.Months)
	assert.Equal(t, 6, d.Days)
}

func TestServiceDuration_PartialDayRoundsUp(t *testing.T) {
	// GIVEN: Two instants 36 hours apart
	// THEN: The partial second day counts as a whole day
	start := generic.NewInstant(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	end := generic.NewInstant(time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC))

	d := gratuity.ComputeServiceDuration(start, end)
	assert.Equal(t, 2, d.TotalDays)
}

func TestServiceDuration_DecimalYearsFormula(t *testing.T) {
	start := date(2010, time.March, 3)
	for _, offset := range []int{0, 17, 45, 364, 365, 400, 1000, 3653} {
		d := gratuity.ComputeServiceDuration(start, start.AddDays(offset))

		expected := years(int64(d.Years)).
			Add(decimal.NewFromInt(int64(d.Months)).Div(dec("12"))).
			Add(decimal.NewFromInt(int64(d.Days)).Div(dec("365")))
		assertDecimal(t, expected, d.DecimalYears, "offset", offset)
		assert.False(t, d.DecimalYears.IsNegative())
		assert.LessOrEqual(t, d.Months, 12)
		assert.Less(t, d.Days, 30)
	}
}

// =============================================================================
// GRATUITY CALCULATOR
// =============================================================================

func TestComputeGratuity_BelowOneYear_Rejected(t *testing.T) {
	// GIVEN: Half a year of service
	// WHEN: Computing gratuity under either rule
	// THEN: Fixed error message and zero amount

	for _, rule := range []gratuity.Rule{gratuity.RuleCurrent, gratuity.RuleOld} {
		result, err := gratuity.ComputeGratuity(salary10k, dec("0.5"), rule, 0, dec("0.5"))

		require.Error(t, err)
		assert.Equal(t, "Minimum 1 year of service required for gratuity.", err.Error())
		assert.ErrorIs(t, err, generic.ErrInsufficientService)
		var svcErr *gratuity.InsufficientServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.True(t, result.Amount.IsZero())
	}
}

func TestComputeGratuity_ElevenMonths_Rejected(t *testing.T) {
	sy := years(0).Add(dec("11").Div(dec("12")))
	_, err := gratuity.ComputeGratuity(salary10k, sy, gratuity.RuleCurrent, 0, sy)
	assert.ErrorIs(t, err, generic.ErrInsufficientService)
}

func TestComputeGratuity_DailySalary(t *testing.T) {
	result, err := gratuity.ComputeGratuity(salary10k, years(5), gratuity.RuleCurrent, 0, years(5))
	require.NoError(t, err)

	assertDecimal(t, dec("120000").Div(dec("365")), result.DailySalary.Value)
	assert.Equal(t, "328.77", result.DailySalary.StringFixed(2))
	assert.Equal(t, generic.UnitAED, result.DailySalary.Unit)
}

func TestComputeGratuity_CurrentRule_ExactlyOneYear_UsesDecimalYears(t *testing.T) {
	// GIVEN: 1 year effective service but 1 year 15 days in decimal years
	// THEN: First year is prorated by decimal years, leftover days included
	dy := years(1).Add(dec("15").Div(dec("365")))

	result, err := gratuity.ComputeGratuity(salary10k, years(1), gratuity.RuleCurrent, 0, dy)
	require.NoError(t, err)

	expected := daily10k().Mul(dec("21")).Mul(dy)
	assertDecimal(t, expected, result.Amount.Value)
}

func TestComputeGratuity_CurrentRule_FiveYears(t *testing.T) {
	result, err := gratuity.ComputeGratuity(salary10k, years(5), gratuity.RuleCurrent, 0, dec("5.0054794520547945"))
	require.NoError(t, err)

	d := daily10k()
	expected := d.Mul(dec("21")).Add(d.Mul(dec("30")).Mul(years(4)))
	assertDecimal(t, expected, result.Amount.Value)
}

func TestComputeGratuity_CurrentRule_FractionalYears(t *testing.T) {
	// 2 years 6 months: 21 + 30*1.5
	sy := years(2).Add(dec("6").Div(dec("12")))
	result, err := gratuity.ComputeGratuity(salary10k, sy, gratuity.RuleCurrent, 0, sy)
	require.NoError(t, err)

	d := daily10k()
	expected := d.Mul(dec("21")).Add(d.Mul(dec("30")).Mul(sy.Sub(years(1))))
	assertDecimal(t, expected, result.Amount.Value)
}

func TestComputeGratuity_OldRule_Tiers(t *testing.T) {
	d := daily10k()
	tests := []struct {
		name     string
		sy       decimal.Decimal
		expected decimal.Decimal
	}{
		{"two years", years(2), d.Mul(dec("25")).Mul(years(2))},
		{"exactly three years", years(3), d.Mul(dec("25")).Mul(years(3))},
		{"four years", years(4), d.Mul(dec("25")).Mul(years(3)).Add(d.Mul(dec("30")).Mul(years(1)))},
		{"exactly six years", years(6), d.Mul(dec("25")).Mul(years(3)).Add(d.Mul(dec("30")).Mul(years(3)))},
		{"ten years", years(10), d.Mul(dec("25")).Mul(years(3)).
			Add(d.Mul(dec("30")).Mul(years(3))).
			Add(d.Mul(dec("35")).Mul(years(4)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := gratuity.ComputeGratuity(salary10k, tt.sy, gratuity.RuleOld, 0, tt.sy)
			require.NoError(t, err)
			assertDecimal(t, tt.expected, result.Amount.Value)
		})
	}
}

func TestComputeGratuity_OldRule_OneYear_NotProrated(t *testing.T) {
	// Old rule prices the effective service years, not decimal years.
	dy := years(1).Add(dec("20").Div(dec("365")))
	result, err := gratuity.ComputeGratuity(salary10k, years(1), gratuity.RuleOld, 0, dy)
	require.NoError(t, err)

	assertDecimal(t, daily10k().Mul(dec("25")), result.Amount.Value)
}

func TestComputeGratuity_UnpaidLeave_Deducted(t *testing.T) {
	d := daily10k()
	for _, rule := range []gratuity.Rule{gratuity.RuleCurrent, gratuity.RuleOld} {
		base, err := gratuity.ComputeGratuity(salary10k, years(4), rule, 0, years(4))
		require.NoError(t, err)

		withLeave, err := gratuity.ComputeGratuity(salary10k, years(4), rule, 12, years(4))
		require.NoError(t, err)

		assertDecimal(t, base.Amount.Value.Sub(d.Mul(dec("12"))), withLeave.Amount.Value, rule)
	}
}

func TestComputeGratuity_UnpaidLeave_CanGoNegative(t *testing.T) {
	// GIVEN: One year under current rule (21 days) and 100 unpaid days
	// THEN: Amount is -79 daily salaries, no clamp at zero
	result, err := gratuity.ComputeGratuity(salary10k, years(1), gratuity.RuleCurrent, 100, years(1))
	require.NoError(t, err)

	assert.True(t, result.Amount.IsNegative())
	assertDecimal(t, daily10k().Mul(dec("-79")), result.Amount.Value)
}

func TestComputeGratuity_UnknownRule_OnlyLeaveDeduction(t *testing.T) {
	result, err := gratuity.ComputeGratuity(salary10k, years(3), gratuity.Rule("bogus"), 2, years(3))
	require.NoError(t, err)

	assertDecimal(t, daily10k().Mul(dec("-2")), result.Amount.Value)
}

func TestComputeGratuity_NegativeSalary_NotValidated(t *testing.T) {
	result, err := gratuity.ComputeGratuity(dec("-3650"), years(2), gratuity.RuleOld, 0, years(2))
	require.NoError(t, err)

	assertDecimal(t, dec("-120"), result.DailySalary.Value)
	assertDecimal(t, dec("-6000"), result.Amount.Value)
}

// =============================================================================
// END-TO-END
// =============================================================================

func TestCalculate_FiveYearExample(t *testing.T) {
	// GIVEN: AED 10,000 basic, 2020-01-01 to 2025-01-01, current rule
	// WHEN: Running the full calculation
	// THEN: 1827 days, 5 years, daily 328.77, gratuity 46356.16

	in := gratuity.Input{
		BasicSalary: generic.NewAmount(salary10k, generic.UnitAED),
		Period:      generic.Period{Start: date(2020, time.January, 1), End: date(2025, time.January, 1)},
		Rule:        gratuity.RuleCurrent,
	}

	calc, err := gratuity.Calculate(in, gratuity.CurrentRuleScheme())
	require.NoError(t, err)

	assert.Equal(t, 1827, calc.Duration.TotalDays)
	assert.Equal(t, 5, calc.Duration.Years)
	assert.Equal(t, "328.77", calc.Result.DailySalary.StringFixed(2))
	assert.Equal(t, "46356.16", calc.Result.Amount.StringFixed(2))
	assertDecimal(t, daily10k().Mul(dec("141")), calc.Result.Amount.Value)
}

func TestCalculate_IgnoresLeftoverDaysForServiceYears(t *testing.T) {
	// GIVEN: 3 years 0 months 29 days under old rule
	// THEN: Priced as exactly 3 years
	start := date(2015, time.June, 1)
	in := gratuity.Input{
		BasicSalary: generic.NewAmount(salary10k, generic.UnitAED),
		Period:      generic.Period{Start: start, End: start.AddDays(3*365 + 29)},
		Rule:        gratuity.RuleOld,
	}

	calc, err := gratuity.Calculate(in, gratuity.OldRuleScheme())
	require.NoError(t, err)

	assert.Equal(t, 29, calc.Duration.Days)
	assertDecimal(t, daily10k().Mul(dec("75")), calc.Result.Amount.Value)
}

func TestCalculate_InvalidPeriod(t *testing.T) {
	in := gratuity.Input{
		BasicSalary: generic.NewAmount(salary10k, generic.UnitAED),
		Period:      generic.Period{Start: date(2025, time.January, 1), End: date(2025, time.January, 1)},
	}

	_, err := gratuity.Calculate(in, gratuity.CurrentRuleScheme())
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

func TestCalculate_ShortService_KeepsDuration(t *testing.T) {
	in := gratuity.Input{
		BasicSalary: generic.NewAmount(salary10k, generic.UnitAED),
		Period:      generic.Period{Start: date(2024, time.January, 1), End: date(2024, time.July, 1)},
	}

	calc, err := gratuity.Calculate(in, gratuity.CurrentRuleScheme())
	assert.ErrorIs(t, err, generic.ErrInsufficientService)
	assert.Equal(t, 182, calc.Duration.TotalDays)
	assert.True(t, calc.Result.Amount.IsZero())
}
