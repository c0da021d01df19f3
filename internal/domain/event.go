package domain

import "time"

// RecurrencePattern is the repetition unit of a recurrence rule.
type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
	PatternYearly  RecurrencePattern = "yearly"
)

// IsValid reports whether the pattern is one of the known units.
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	}
	return false
}

// RecurrenceRule is a compact description of how to generate repeating event
// occurrences from a template. Termination is either EndAfter occurrences or
// EndDate, whichever is configured (both may be set; the earlier bound wins).
type RecurrenceRule struct {
	Pattern  RecurrencePattern
	Interval int

	// DaysOfWeek restricts weekly rules to explicit weekdays.
	DaysOfWeek []time.Weekday
	// DayOfMonth optionally pins monthly/yearly rules to a day, clamped to
	// the last valid day of the target month.
	DayOfMonth int
	// MonthOfYear optionally resets yearly rules to a specific month.
	MonthOfYear time.Month

	EndAfter int
	EndDate  *time.Time
}

// HasWeekdays reports whether the rule restricts weekly steps to given days.
func (r *RecurrenceRule) HasWeekdays() bool {
	return len(r.DaysOfWeek) > 0
}

// EventTemplate is the source of a recurring event series. Materializing
// instances never mutates the template.
type EventTemplate struct {
	ID          int64
	Title       string
	Description *string
	VenueID     int64
	OrganizerID int64

	// StartTime/EndTime anchor the first occurrence; subsequent occurrences
	// keep the same wall-clock times and duration.
	StartTime time.Time
	EndTime   time.Time

	Services   []LineItem
	Recurrence *RecurrenceRule

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the anchor [StartTime, EndTime) interval.
func (t *EventTemplate) Interval() Interval {
	return Interval{Start: t.StartTime, End: t.EndTime}
}

// EventDraft is one materialized occurrence of a recurring template. Drafts
// carry no booking or payment state; promoting a draft into a real booking is
// an explicit separate step performed by the caller.
type EventDraft struct {
	TemplateID  int64
	Sequence    int
	Title       string
	Description *string
	VenueID     int64
	OrganizerID int64
	StartTime   time.Time
	EndTime     time.Time
	Services    []LineItem
	Status      string
}

// DraftStatus is the fixed status of freshly generated drafts.
const DraftStatus = "draft"
