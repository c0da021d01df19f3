package domain

import (
	"math"
	"time"
)

// Interval is a half-open time range [Start, End) used for all overlap testing
// in the service. Every component (availability, maintenance, recurrence) goes
// through this one implementation.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval from its bounds.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the interval is non-empty (End strictly after Start).
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// [a,b) and [c,d) overlap iff a < d and c < b; touching boundaries do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether t falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Hours returns the duration in fractional hours.
func (i Interval) Hours() float64 {
	return i.Duration().Hours()
}

// SameDay reports whether both bounds fall on the same calendar day.
// The end bound is exclusive, so an interval ending exactly at midnight of the
// next day still counts as a single-day interval.
func (i Interval) SameDay() bool {
	end := i.End
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
		end = end.Add(-time.Nanosecond)
	}
	y1, m1, d1 := i.Start.Date()
	y2, m2, d2 := end.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ExpandBy widens the interval by setup and cleanup buffers in minutes.
// Used to derive the physical occupation span of a booking from its
// requested interval.
func (i Interval) ExpandBy(setupMinutes, cleanupMinutes int) Interval {
	return Interval{
		Start: i.Start.Add(-time.Duration(setupMinutes) * time.Minute),
		End:   i.End.Add(time.Duration(cleanupMinutes) * time.Minute),
	}
}

// DaysUntil returns the number of whole days between now and the interval
// start, rounded up. Returns 0 when the start is in the past.
func (i Interval) DaysUntil(now time.Time) int {
	diff := i.Start.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// MinutesOfDay returns both bounds as minutes since midnight.
// Only meaningful for single-day intervals; callers must check SameDay first.
func (i Interval) MinutesOfDay() (startMin, endMin int) {
	startMin = i.Start.Hour()*60 + i.Start.Minute()
	endMin = i.End.Hour()*60 + i.End.Minute()
	if endMin == 0 && !i.End.Equal(i.Start) {
		// Exclusive end at midnight means end of day.
		endMin = 24 * 60
	}
	return startMin, endMin
}
