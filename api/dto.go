/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculator's decimal model from the wire contract:
  - Form fields arrive as raw strings, exactly as a form would post them
  - Money leaves as fixed 2-decimal strings, never as floats

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Wrappers

TYPES:
  Calculation:
    CalculationRequest, CalculationDTO, DurationDTO

  Rules:
    SchemeDTO, TierDTO (request bodies use factory.SchemeJSON)

VALIDATION:
  Validation is done in form.go, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - form.go: Raw form validation
  - handlers.go: Uses these types
  - factory/scheme.go: SchemeJSON type
*/
package api

import (
	"time"

	"github.com/warp/gratuity-engine/gratuity"
	"github.com/warp/gratuity-engine/store/sqlite"
)

// =============================================================================
// CALCULATION
// =============================================================================

// CalculationRequest carries the raw form fields.
type CalculationRequest struct {
	BasicSalary     string `json:"basic_salary"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	UnpaidLeaveDays string `json:"unpaid_leave_days"`
	Rule            string `json:"rule"`
}

// DurationDTO is the service-duration breakdown.
type DurationDTO struct {
	Years        int    `json:"years"`
	Months       int    `json:"months"`
	Days         int    `json:"days"`
	TotalDays    int    `json:"total_days"`
	DecimalYears string `json:"decimal_years"`
}

// CalculationDTO is the result shown to the user.
type CalculationDTO struct {
	GratuityAmount string             `json:"gratuity_amount"`
	DailySalary    string             `json:"daily_salary"`
	DecimalYears   string             `json:"decimal_years"`
	Currency       string             `json:"currency"`
	RuleName       string             `json:"rule_name"`
	Duration       DurationDTO        `json:"duration"`
	Form           CalculationRequest `json:"form"`
}

func toDurationDTO(d gratuity.ServiceDuration) DurationDTO {
	return DurationDTO{
		Years:        d.Years,
		Months:       d.Months,
		Days:         d.Days,
		TotalDays:    d.TotalDays,
		DecimalYears: d.DecimalYears.StringFixed(2),
	}
}

func toCalculationDTO(calc gratuity.Calculation, form CalculationRequest) CalculationDTO {
	return CalculationDTO{
		GratuityAmount: calc.Result.Amount.StringFixed(2),
		DailySalary:    calc.Result.DailySalary.StringFixed(2),
		DecimalYears:   calc.Duration.DecimalYears.StringFixed(2),
		Currency:       string(calc.Result.Amount.Unit),
		RuleName:       calc.Scheme.Name,
		Duration:       toDurationDTO(calc.Duration),
		Form:           form,
	}
}

// =============================================================================
// RULES
// =============================================================================

// TierDTO is one tier of a scheme.
type TierDTO struct {
	Years       string `json:"years"` // "0" = unbounded
	DaysPerYear string `json:"days_per_year"`
}

// SchemeDTO represents a rule scheme in API responses.
type SchemeDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	ProrateFirstTier bool      `json:"prorate_first_tier"`
	Tiers            []TierDTO `json:"tiers"`
	Builtin          bool      `json:"builtin"`
	Version          int       `json:"version"`
	UpdatedAt        string    `json:"updated_at,omitempty"`
}

func toSchemeDTO(s gratuity.Scheme, rec *sqlite.SchemeRecord) SchemeDTO {
	dto := SchemeDTO{
		ID:               string(s.ID),
		Name:             s.Name,
		Description:      s.Description,
		ProrateFirstTier: s.ProrateFirstTier,
		Tiers:            make([]TierDTO, 0, len(s.Tiers)),
	}
	for _, t := range s.Tiers {
		dto.Tiers = append(dto.Tiers, TierDTO{Years: t.Years.String(), DaysPerYear: t.DaysPerYear.String()})
	}
	if rec != nil {
		dto.Builtin = rec.Builtin
		dto.Version = rec.Version
		if !rec.UpdatedAt.IsZero() {
			dto.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
		}
	}
	return dto
}

// =============================================================================
// COMMON
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Details any    `json:"details,omitempty"`
}

// HealthDTO is returned by the health endpoint.
type HealthDTO struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Schemes  int    `json:"schemes"`
}
