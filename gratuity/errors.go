package gratuity

import (
	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/generic"
)

// MinimumServiceMessage is shown when service is below one year.
const MinimumServiceMessage = "Minimum 1 year of service required for gratuity."

// InsufficientServiceError is returned when effective service is under one year.
type InsufficientServiceError struct {
	ServiceYears decimal.Decimal
}

func (e *InsufficientServiceError) Error() string {
	return MinimumServiceMessage
}

func (e *InsufficientServiceError) Unwrap() error {
	return generic.ErrInsufficientService
}
