package gratuity

import (
	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/generic"
)

// Every year is 365 days and every month is 30 days. Leap years and real
// month lengths are deliberately ignored.
const (
	daysPerYear  = 365
	daysPerMonth = 30
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	yearDays      = decimal.NewFromInt(daysPerYear)
)

// ComputeServiceDuration breaks the distance between two dates into years,
// months and days. The result does not depend on argument order.
func ComputeServiceDuration(start, end generic.TimePoint) ServiceDuration {
	totalDays := generic.CeilDaysBetween(start, end)

	years := totalDays / daysPerYear
	remaining := totalDays % daysPerYear
	months := remaining / daysPerMonth
	days := remaining % daysPerMonth

	return ServiceDuration{
		Years:        years,
		Months:       months,
		Days:         days,
		TotalDays:    totalDays,
		DecimalYears: decimalYears(years, months, days),
	}
}

func decimalYears(years, months, days int) decimal.Decimal {
	return decimal.NewFromInt(int64(years)).
		Add(decimal.NewFromInt(int64(months)).Div(monthsPerYear)).
		Add(decimal.NewFromInt(int64(days)).Div(yearDays))
}
