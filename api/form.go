package api

import (
	"strconv"
	"strings"

	"github.com/warp/gratuity-engine/generic"
	"github.com/warp/gratuity-engine/gratuity"
)

// User-facing validation messages.
const (
	msgRequiredFields = "Please fill in all required fields"
	msgEndAfterStart  = "End date must be after start date"
	msgInvalidSalary  = "Basic salary must be a number"
	msgInvalidDate    = "Dates must use the YYYY-MM-DD format"
	msgInvalidLeave   = "Leave without pay must be a whole number of days, zero or more"
	msgUnknownRule    = "Unknown gratuity rule"
)

// parseCalculationRequest validates raw form fields and resolves the rule.
// Checks run in form order: required fields, date order, then field formats.
func parseCalculationRequest(req CalculationRequest, schemes *gratuity.Registry) (gratuity.Input, gratuity.Scheme, error) {
	salaryRaw := strings.TrimSpace(req.BasicSalary)
	startRaw := strings.TrimSpace(req.StartDate)
	endRaw := strings.TrimSpace(req.EndDate)

	switch {
	case salaryRaw == "":
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("basic_salary", msgRequiredFields, generic.ErrMissingField)
	case startRaw == "":
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("start_date", msgRequiredFields, generic.ErrMissingField)
	case endRaw == "":
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("end_date", msgRequiredFields, generic.ErrMissingField)
	}

	// 0001-01-01 parses to the zero time, which the core reads as unset.
	start, err := generic.ParseTimePoint(startRaw)
	if err != nil || start.IsZero() {
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("start_date", msgInvalidDate, generic.ErrInvalidDate)
	}
	end, err := generic.ParseTimePoint(endRaw)
	if err != nil || end.IsZero() {
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("end_date", msgInvalidDate, generic.ErrInvalidDate)
	}
	period := generic.Period{Start: start, End: end}
	if err := period.Validate(); err != nil {
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("end_date", msgEndAfterStart, generic.ErrInvalidPeriod)
	}

	salary, err := generic.ParseAmount(salaryRaw, generic.UnitAED)
	if err != nil {
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("basic_salary", msgInvalidSalary, generic.ErrInvalidNumber)
	}

	leave := 0
	if leaveRaw := strings.TrimSpace(req.UnpaidLeaveDays); leaveRaw != "" {
		leave, err = strconv.Atoi(leaveRaw)
		if err != nil || leave < 0 {
			return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("unpaid_leave_days", msgInvalidLeave, generic.ErrInvalidNumber)
		}
	}

	rule := gratuity.Rule(strings.TrimSpace(req.Rule))
	if rule == "" {
		rule = gratuity.RuleCurrent
	}
	scheme, ok := schemes.Lookup(rule)
	if !ok {
		return gratuity.Input{}, gratuity.Scheme{}, generic.NewValidationError("rule", msgUnknownRule+": "+string(rule), generic.ErrUnknownRule)
	}

	return gratuity.Input{
		BasicSalary:     salary,
		Period:          period,
		UnpaidLeaveDays: leave,
		Rule:            rule,
	}, scheme, nil
}
