package generic

import (
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - Calendar date (or instant) used for employment boundaries
// =============================================================================

type TimePoint struct {
	Time        time.Time
	Granularity Granularity
}

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityInstant
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Granularity: GranularityDay}
}

func NewInstant(t time.Time) TimePoint {
	return TimePoint{Time: t.UTC(), Granularity: GranularityInstant}
}

// ParseTimePoint accepts a calendar date (YYYY-MM-DD, read as UTC midnight)
// or an RFC 3339 timestamp.
func ParseTimePoint(s string) (TimePoint, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return TimePoint{Time: t, Granularity: GranularityDay}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return TimePoint{}, err
	}
	return NewInstant(t), nil
}

// Comparison
func (tp TimePoint) Equal(other TimePoint) bool { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool { return tp.Time.After(other.Time) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint {
	return TimePoint{Time: tp.Time.AddDate(0, 0, n), Granularity: tp.Granularity}
}

func (tp TimePoint) IsZero() bool { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	if tp.Granularity == GranularityDay {
		return tp.Time.Format(DateLayout)
	}
	return tp.Time.Format(time.RFC3339)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// CeilDaysBetween returns the absolute distance between two points in days,
// rounded up to the next whole day. A partial day counts as a full one.
// Computed from Unix seconds; time.Duration overflows past ~292 years.
func CeilDaysBetween(a, b TimePoint) int {
	secs := b.Time.Unix() - a.Time.Unix()
	nanos := int64(b.Time.Nanosecond() - a.Time.Nanosecond())
	if secs < 0 || (secs == 0 && nanos < 0) {
		secs, nanos = -secs, -nanos
	}
	if nanos < 0 {
		secs--
		nanos += int64(time.Second)
	}

	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos > 0 {
		days++
	}
	return int(days)
}
