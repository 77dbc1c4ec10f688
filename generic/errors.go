/*
errors.go - Centralized error types for the gratuity engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Validation errors - Caller input rejected before the core runs
  2. Eligibility errors - Core-level refusal (insufficient service)
  3. Scheme errors - Unknown or malformed rule schemes

USAGE:
  The API layer maps errors to HTTP statuses:

    if generic.IsClientError(err) {
        writeError(w, http.StatusBadRequest, ...)
    }

SEE ALSO:
  - gratuity/errors.go: InsufficientServiceError
  - api/handlers.go: Status mapping
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingField is returned when a required input is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidPeriod is returned when the end date is not after the start date.
	ErrInvalidPeriod = errors.New("invalid period: end not after start")

	// ErrInvalidNumber is returned when a numeric field cannot be parsed.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidDate is returned when a date field cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownRule is returned when the rule selector names no known scheme.
	ErrUnknownRule = errors.New("unknown gratuity rule")

	// ErrInsufficientService is returned when service is below the one-year minimum.
	ErrInsufficientService = errors.New("insufficient service")

	// ErrSchemeNotFound is returned when a referenced scheme doesn't exist.
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrSchemeExists is returned when creating a scheme whose id is taken.
	ErrSchemeExists = errors.New("scheme already exists")

	// ErrBuiltinScheme is returned when modifying or deleting a built-in scheme.
	ErrBuiltinScheme = errors.New("built-in schemes are read-only")

	// ErrInvalidScheme is returned when a scheme definition is malformed.
	ErrInvalidScheme = errors.New("invalid scheme")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a rejected input field with a user-facing message.
type ValidationError struct {
	Field   string
	Message string
	Err     error // one of the sentinels above
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// SchemeError reports a malformed scheme definition.
type SchemeError struct {
	SchemeID string
	Reason   string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("invalid scheme %q: %s", e.SchemeID, e.Reason)
}

func (e *SchemeError) Unwrap() error {
	return ErrInvalidScheme
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnknownRule) ||
		errors.Is(err, ErrInvalidScheme)
}

// IsConflict returns true if the error conflicts with existing state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSchemeExists) ||
		errors.Is(err, ErrBuiltinScheme)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSchemeNotFound)
}
