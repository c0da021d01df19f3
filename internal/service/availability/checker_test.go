package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error

	lastStatuses []domain.BookingStatus
	lastExclude  *int64
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, venueID int64, span domain.Interval, statuses []domain.BookingStatus, excludeBookingID *int64) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastStatuses = statuses
	f.lastExclude = excludeBookingID

	matched := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.VenueID != venueID {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.OccupationSpan().Overlaps(span) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func allWeekOpen(open, close string) domain.WeekSchedule {
	day := domain.DayHours{
		Available: true,
		Open:      types.TimeString(open),
		Close:     types.TimeString(close),
	}
	return domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func openVenue() *domain.Venue {
	return &domain.Venue{
		ID:               10,
		Name:             "Ballroom",
		CapacityMin:      10,
		CapacityMax:      200,
		BasePrice:        100,
		PricePerHour:     50,
		MinBookingHours:  1,
		Status:           domain.VenueStatusActive,
		OperatingHours:   allWeekOpen("08:00", "22:00"),
		CancellationTier: domain.TierModerate,
		Active:           true,
	}
}

func confirmedBooking(id int64, venueID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		Reference:  "ref",
		VenueID:    venueID,
		StartTime:  start,
		EndTime:    end,
		SetupStart: start,
		CleanupEnd: end,
		Status:     domain.StatusConfirmed,
		Active:     true,
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts
}

func TestCheck_AvailableOnEmptyCalendar(t *testing.T) {
	// Venue open 08:00-22:00 every day, no existing bookings,
	// request 2024-06-01 10:00-12:00 with min-hours=1.
	repo := &fakeBookingRepo{}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(),
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.NoError(t, err)
}

func TestCheck_RejectsOverlappingBooking(t *testing.T) {
	// Existing confirmed booking 11:00-13:00; request 10:00-12:00.
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			confirmedBooking(1, 10, at(t, "2024-06-01T11:00"), at(t, "2024-06-01T13:00")),
		},
	}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(),
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.ErrorIs(t, err, availability.ErrBookingConflict)
}

func TestCheck_TouchingBookingDoesNotConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			confirmedBooking(1, 10, at(t, "2024-06-01T12:00"), at(t, "2024-06-01T14:00")),
		},
	}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(),
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.NoError(t, err)
}

func TestCheck_SelfExclusionOnRecheck(t *testing.T) {
	// Rechecking a booking's own unchanged interval with excludeBookingID set
	// to itself must come back available.
	own := confirmedBooking(42, 10, at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00"))
	repo := &fakeBookingRepo{bookings: []*domain.Booking{own}}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(), own.Interval(), ptr.Ptr(own.ID))

	assert.NoError(t, err)
	require.NotNil(t, repo.lastExclude)
	assert.Equal(t, int64(42), *repo.lastExclude)
}

func TestCheck_BuffersWidenTheConflictSpan(t *testing.T) {
	// 30min setup buffer makes a 12:00 request collide with a booking ending 12:15.
	venue := openVenue()
	venue.SetupBufferMinutes = 30

	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			confirmedBooking(1, 10, at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:15")),
		},
	}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), venue,
		domain.NewInterval(at(t, "2024-06-01T12:30"), at(t, "2024-06-01T14:00")), nil)

	assert.ErrorIs(t, err, availability.ErrBookingConflict)
}

func TestCheck_VenueStatus(t *testing.T) {
	repo := &fakeBookingRepo{}
	checker := availability.NewChecker(repo, nopLogger{}, nil)
	span := domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00"))

	inactive := openVenue()
	inactive.Status = domain.VenueStatusInactive
	assert.ErrorIs(t, checker.Check(context.Background(), inactive, span, nil), availability.ErrVenueInactive)

	archived := openVenue()
	archived.Active = false
	assert.ErrorIs(t, checker.Check(context.Background(), archived, span, nil), availability.ErrVenueInactive)

	maintenance := openVenue()
	maintenance.Status = domain.VenueStatusMaintenance
	assert.ErrorIs(t, checker.Check(context.Background(), maintenance, span, nil), availability.ErrVenueUnderMaintenance)
}

func TestCheck_OperatingHours(t *testing.T) {
	repo := &fakeBookingRepo{}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"starts before opening", "2024-06-01T07:00", "2024-06-01T09:00", availability.ErrOutsideOperatingHours},
		{"ends after closing", "2024-06-01T21:00", "2024-06-01T23:00", availability.ErrOutsideOperatingHours},
		{"exactly the full window", "2024-06-01T08:00", "2024-06-01T22:00", nil},
		{"spans two days", "2024-06-01T21:00", "2024-06-02T10:00", availability.ErrMultiDayInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Check(context.Background(), openVenue(),
				domain.NewInterval(at(t, tt.start), at(t, tt.end)), nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheck_DayOfWeekUnavailable(t *testing.T) {
	venue := openVenue()
	venue.OperatingHours.Saturday = domain.DayHours{Available: false}

	checker := availability.NewChecker(&fakeBookingRepo{}, nopLogger{}, nil)

	// 2024-06-01 is a Saturday.
	err := checker.Check(context.Background(), venue,
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.ErrorIs(t, err, availability.ErrDayUnavailable)
}

func TestCheck_MinimumDuration(t *testing.T) {
	venue := openVenue()
	venue.MinBookingHours = 2

	checker := availability.NewChecker(&fakeBookingRepo{}, nopLogger{}, nil)

	err := checker.Check(context.Background(), venue,
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T11:00")), nil)

	assert.ErrorIs(t, err, availability.ErrBelowMinimumDuration)
}

func TestCheck_MaintenanceWindowConflict(t *testing.T) {
	venue := openVenue()
	venue.MaintenanceWindows = []domain.MaintenanceWindow{
		{
			ID:     1,
			Span:   domain.NewInterval(at(t, "2024-06-01T11:00"), at(t, "2024-06-01T15:00")),
			Reason: "floor repair",
		},
	}

	checker := availability.NewChecker(&fakeBookingRepo{}, nopLogger{}, nil)

	err := checker.Check(context.Background(), venue,
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.ErrorIs(t, err, availability.ErrMaintenanceConflict)
}

func TestCheck_RepositoryFailure(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection refused")}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(),
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	assert.ErrorIs(t, err, availability.ErrInternal)
}

func TestCheck_QueriesConflictStatuses(t *testing.T) {
	repo := &fakeBookingRepo{}
	checker := availability.NewChecker(repo, nopLogger{}, nil)

	err := checker.Check(context.Background(), openVenue(),
		domain.NewInterval(at(t, "2024-06-01T10:00"), at(t, "2024-06-01T12:00")), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.ConflictStatuses, repo.lastStatuses)
}
