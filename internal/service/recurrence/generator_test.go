package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/recurrence"
)

func template(start, end time.Time, rule *domain.RecurrenceRule) *domain.EventTemplate {
	return &domain.EventTemplate{
		ID:          7,
		Title:       "Weekly standup",
		VenueID:     10,
		OrganizerID: 3,
		StartTime:   start,
		EndTime:     end,
		Recurrence:  rule,
		Active:      true,
	}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts
}

func starts(drafts []domain.EventDraft) []string {
	out := make([]string, len(drafts))
	for i, d := range drafts {
		out[i] = d.StartTime.Format("2006-01-02T15:04")
	}
	return out
}

func TestGenerate_Daily(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1})

	drafts, err := gen.Generate(tpl, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02T10:00", "2024-06-03T10:00", "2024-06-04T10:00"}, starts(drafts))
}

func TestGenerate_DailyWithInterval(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 3})

	drafts, err := gen.Generate(tpl, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-04T10:00", "2024-06-07T10:00"}, starts(drafts))
}

func TestGenerate_TemplateIsNotReemitted(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1})

	drafts, err := gen.Generate(tpl, 5)

	require.NoError(t, err)
	for _, d := range drafts {
		assert.True(t, d.StartTime.After(tpl.StartTime))
	}
	assert.Equal(t, 1, drafts[0].Sequence)
	assert.Equal(t, 5, drafts[4].Sequence)
}

func TestGenerate_PreservesDurationAndFields(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T09:30"), day(t, "2024-06-01T13:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1})
	tpl.Services = []domain.LineItem{{ItemID: 1, Name: "Projector", UnitPrice: 30, Quantity: 1}}

	drafts, err := gen.Generate(tpl, 2)

	require.NoError(t, err)
	for _, d := range drafts {
		assert.Equal(t, 3*time.Hour+30*time.Minute, d.EndTime.Sub(d.StartTime))
		assert.Equal(t, tpl.ID, d.TemplateID)
		assert.Equal(t, tpl.VenueID, d.VenueID)
		assert.Equal(t, tpl.OrganizerID, d.OrganizerID)
		assert.Equal(t, tpl.Services, d.Services)
		assert.Equal(t, domain.DraftStatus, d.Status)
	}
}

func TestGenerate_WeeklyOnWeekdays(t *testing.T) {
	gen := recurrence.NewGenerator()
	// 2024-06-03 is a Monday.
	tpl := template(day(t, "2024-06-03T10:00"), day(t, "2024-06-03T11:00"),
		&domain.RecurrenceRule{
			Pattern:    domain.PatternWeekly,
			Interval:   1,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		})

	drafts, err := gen.Generate(tpl, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-06-05T10:00", // Wed
		"2024-06-07T10:00", // Fri
		"2024-06-10T10:00", // Mon
		"2024-06-12T10:00", // Wed
	}, starts(drafts))
}

func TestGenerate_BiweeklyOnWeekdays(t *testing.T) {
	gen := recurrence.NewGenerator()
	// 2024-06-03 is a Monday; every second week on Mon and Fri.
	tpl := template(day(t, "2024-06-03T10:00"), day(t, "2024-06-03T11:00"),
		&domain.RecurrenceRule{
			Pattern:    domain.PatternWeekly,
			Interval:   2,
			DaysOfWeek: []time.Weekday{time.Monday, time.Friday},
		})

	drafts, err := gen.Generate(tpl, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-06-07T10:00", // Fri, same week
		"2024-06-17T10:00", // Mon, one week skipped
		"2024-06-21T10:00", // Fri
	}, starts(drafts))
}

func TestGenerate_WeeklyWithoutWeekdays(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-03T10:00"), day(t, "2024-06-03T11:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternWeekly, Interval: 2})

	drafts, err := gen.Generate(tpl, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-17T10:00", "2024-07-01T10:00"}, starts(drafts))
}

func TestGenerate_MonthlyClampsToLastDay(t *testing.T) {
	gen := recurrence.NewGenerator()
	// Anchor Jan 31 of a leap year. The clamp must not accumulate:
	// March comes back to the 31st even though February was clamped.
	tpl := template(day(t, "2024-01-31T10:00"), day(t, "2024-01-31T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternMonthly, Interval: 1})

	drafts, err := gen.Generate(tpl, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-02-29T10:00",
		"2024-03-31T10:00",
		"2024-04-30T10:00",
		"2024-05-31T10:00",
	}, starts(drafts))
}

func TestGenerate_MonthlyNonLeapFebruary(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2023-01-31T10:00"), day(t, "2023-01-31T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternMonthly, Interval: 1})

	drafts, err := gen.Generate(tpl, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"2023-02-28T10:00"}, starts(drafts))
}

func TestGenerate_MonthlyPinnedDayOfMonth(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-05T10:00"), day(t, "2024-06-05T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternMonthly, Interval: 1, DayOfMonth: 31})

	drafts, err := gen.Generate(tpl, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-07-31T10:00", "2024-08-31T10:00", "2024-09-30T10:00"}, starts(drafts))
}

func TestGenerate_YearlyLeapDay(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-02-29T10:00"), day(t, "2024-02-29T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternYearly, Interval: 1})

	drafts, err := gen.Generate(tpl, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025-02-28T10:00",
		"2026-02-28T10:00",
		"2027-02-28T10:00",
		"2028-02-29T10:00",
	}, starts(drafts))
}

func TestGenerate_EndAfterBoundsTheSeries(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1, EndAfter: 2})

	drafts, err := gen.Generate(tpl, 10)

	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestGenerate_EndDateBoundsTheSeries(t *testing.T) {
	gen := recurrence.NewGenerator()
	until := day(t, "2024-06-04T00:00")
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1, EndDate: &until})

	drafts, err := gen.Generate(tpl, 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02T10:00", "2024-06-03T10:00"}, starts(drafts))
}

func TestGenerate_LimitIsCapped(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-01T10:00"), day(t, "2024-06-01T12:00"),
		&domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1})

	drafts, err := gen.Generate(tpl, 100000)

	require.NoError(t, err)
	assert.Len(t, drafts, domain.MaxRecurrenceLimit)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := recurrence.NewGenerator()
	tpl := template(day(t, "2024-06-03T10:00"), day(t, "2024-06-03T11:00"),
		&domain.RecurrenceRule{
			Pattern:    domain.PatternWeekly,
			Interval:   2,
			DaysOfWeek: []time.Weekday{time.Tuesday, time.Thursday},
		})

	first, err := gen.Generate(tpl, 12)
	require.NoError(t, err)
	second, err := gen.Generate(tpl, 12)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_Validation(t *testing.T) {
	gen := recurrence.NewGenerator()
	anchorStart := day(t, "2024-06-01T10:00")
	anchorEnd := day(t, "2024-06-01T12:00")

	tests := []struct {
		name    string
		tpl     *domain.EventTemplate
		limit   int
		wantErr error
	}{
		{
			name:    "no rule",
			tpl:     template(anchorStart, anchorEnd, nil),
			limit:   5,
			wantErr: recurrence.ErrNoRule,
		},
		{
			name:    "unknown pattern",
			tpl:     template(anchorStart, anchorEnd, &domain.RecurrenceRule{Pattern: "hourly", Interval: 1}),
			limit:   5,
			wantErr: recurrence.ErrInvalidPattern,
		},
		{
			name:    "zero interval",
			tpl:     template(anchorStart, anchorEnd, &domain.RecurrenceRule{Pattern: domain.PatternDaily}),
			limit:   5,
			wantErr: recurrence.ErrInvalidInterval,
		},
		{
			name:    "inverted anchor",
			tpl:     template(anchorEnd, anchorStart, &domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1}),
			limit:   5,
			wantErr: recurrence.ErrInvalidAnchor,
		},
		{
			name:    "non-positive limit",
			tpl:     template(anchorStart, anchorEnd, &domain.RecurrenceRule{Pattern: domain.PatternDaily, Interval: 1}),
			limit:   0,
			wantErr: recurrence.ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.tpl, tt.limit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
