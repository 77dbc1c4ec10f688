package generic

// =============================================================================
// PERIOD - Employment span between joining and leaving
// =============================================================================

// Period is the span of employment used for service-duration math.
// A valid period has End strictly after Start.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Validate rejects empty or inverted periods.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ErrMissingField
	}
	if !p.End.After(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
