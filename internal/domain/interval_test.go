package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts
}

func interval(t *testing.T, start, end string) domain.Interval {
	t.Helper()
	return domain.NewInterval(mustTime(t, start), mustTime(t, end))
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    domain.Interval
		b    domain.Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z"),
			b:    interval(t, "2024-06-01T11:00:00Z", "2024-06-01T13:00:00Z"),
			want: true,
		},
		{
			name: "containment",
			a:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T14:00:00Z"),
			b:    interval(t, "2024-06-01T11:00:00Z", "2024-06-01T12:00:00Z"),
			want: true,
		},
		{
			name: "touching boundaries do not overlap",
			a:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z"),
			b:    interval(t, "2024-06-01T12:00:00Z", "2024-06-01T14:00:00Z"),
			want: false,
		},
		{
			name: "disjoint",
			a:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T11:00:00Z"),
			b:    interval(t, "2024-06-01T15:00:00Z", "2024-06-01T16:00:00Z"),
			want: false,
		},
		{
			name: "identical intervals",
			a:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z"),
			b:    interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap must be symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Hours(t *testing.T) {
	i := interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:30:00Z")
	assert.InDelta(t, 2.5, i.Hours(), 1e-9)
}

func TestInterval_SameDay(t *testing.T) {
	assert.True(t, interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z").SameDay())
	assert.True(t, interval(t, "2024-06-01T20:00:00Z", "2024-06-02T00:00:00Z").SameDay(),
		"exclusive end at midnight is still a single-day interval")
	assert.False(t, interval(t, "2024-06-01T20:00:00Z", "2024-06-02T01:00:00Z").SameDay())
}

func TestInterval_ExpandBy(t *testing.T) {
	i := interval(t, "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z")
	expanded := i.ExpandBy(30, 45)
	assert.Equal(t, mustTime(t, "2024-06-01T09:30:00Z"), expanded.Start)
	assert.Equal(t, mustTime(t, "2024-06-01T12:45:00Z"), expanded.End)
}

func TestInterval_DaysUntil(t *testing.T) {
	now := mustTime(t, "2024-06-01T12:00:00Z")

	tests := []struct {
		name  string
		start string
		want  int
	}{
		{"in the past", "2024-05-30T10:00:00Z", 0},
		{"same moment", "2024-06-01T12:00:00Z", 0},
		{"a few hours ahead rounds up", "2024-06-01T18:00:00Z", 1},
		{"exactly five days", "2024-06-06T12:00:00Z", 5},
		{"five days and an hour rounds up", "2024-06-06T13:00:00Z", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := domain.NewInterval(mustTime(t, tt.start), mustTime(t, tt.start).Add(time.Hour))
			assert.Equal(t, tt.want, i.DaysUntil(now))
		})
	}
}

func TestInterval_MinutesOfDay(t *testing.T) {
	start, end := interval(t, "2024-06-01T08:30:00Z", "2024-06-01T22:00:00Z").MinutesOfDay()
	assert.Equal(t, 8*60+30, start)
	assert.Equal(t, 22*60, end)

	start, end = interval(t, "2024-06-01T23:00:00Z", "2024-06-02T00:00:00Z").MinutesOfDay()
	assert.Equal(t, 23*60, start)
	assert.Equal(t, 24*60, end)
}
