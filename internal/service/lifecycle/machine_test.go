package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
	"github.com/m04kA/SMC-VenueService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueService/internal/service/lifecycle"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

type fakeAvailability struct {
	err         error
	called      bool
	lastExclude *int64
}

func (f *fakeAvailability) Check(_ context.Context, _ *domain.Venue, _ domain.Interval, excludeBookingID *int64) error {
	f.called = true
	f.lastExclude = excludeBookingID
	return f.err
}

type emptyBookingRepo struct{}

func (emptyBookingRepo) FindOverlapping(context.Context, int64, domain.Interval, []domain.BookingStatus, *int64) ([]*domain.Booking, error) {
	return nil, nil
}

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newMachine(av *fakeAvailability) *lifecycle.Machine {
	if av == nil {
		av = &fakeAvailability{}
	}
	return lifecycle.NewMachine(av, cancellation.NewPolicy(), pricing.NewCalculator(), nopLogger{}, nil)
}

func moderateVenue() *domain.Venue {
	return &domain.Venue{
		ID:               10,
		Name:             "Ballroom",
		BasePrice:        200,
		PricePerHour:     50,
		Status:           domain.VenueStatusActive,
		CancellationTier: domain.TierModerate,
		Active:           true,
	}
}

func bookingIn(status domain.BookingStatus) *domain.Booking {
	start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         1,
		Reference:  "b-1",
		VenueID:    10,
		GuestID:    5,
		StartTime:  start,
		EndTime:    start.Add(3 * time.Hour),
		SetupStart: start,
		CleanupEnd: start.Add(3 * time.Hour),
		Pricing:    domain.PricingBreakdown{GrandTotal: 1000},
		Payment:    domain.PaymentInfo{Status: domain.PaymentStatusUnpaid},
		Status:     status,
		Active:     true,
	}
}

func transitionAt(t *testing.T, m *lifecycle.Machine, b *domain.Booking, target domain.BookingStatus, now time.Time) (*domain.Booking, error) {
	t.Helper()
	return m.Transition(context.Background(), b, target, lifecycle.TransitionContext{
		Actor: "staff:7",
		Now:   now,
		Venue: moderateVenue(),
	})
}

func TestTransition_LegalityMatrix(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      domain.BookingStatus
		wantErr error
	}{
		{"inquiry to tentative", domain.StatusInquiry, domain.StatusTentative, nil},
		{"tentative to pending", domain.StatusTentative, domain.StatusPending, nil},
		{"pending to confirmed", domain.StatusPending, domain.StatusConfirmed, nil},
		{"confirmed to in_progress", domain.StatusConfirmed, domain.StatusInProgress, nil},
		{"in_progress to completed", domain.StatusInProgress, domain.StatusCompleted, nil},
		{"no_show from confirmed", domain.StatusConfirmed, domain.StatusNoShow, nil},
		{"cancel from inquiry", domain.StatusInquiry, domain.StatusCancelled, nil},
		{"cancel from confirmed", domain.StatusConfirmed, domain.StatusCancelled, nil},

		{"skip inquiry to pending", domain.StatusInquiry, domain.StatusPending, lifecycle.ErrIllegalTransition},
		{"skip pending to in_progress", domain.StatusPending, domain.StatusInProgress, lifecycle.ErrIllegalTransition},
		{"skip tentative to completed", domain.StatusTentative, domain.StatusCompleted, lifecycle.ErrIllegalTransition},
		{"backwards confirmed to pending", domain.StatusConfirmed, domain.StatusPending, lifecycle.ErrIllegalTransition},
		{"backwards in_progress to tentative", domain.StatusInProgress, domain.StatusTentative, lifecycle.ErrIllegalTransition},
		{"same status", domain.StatusPending, domain.StatusPending, lifecycle.ErrIllegalTransition},
		{"out of completed", domain.StatusCompleted, domain.StatusConfirmed, lifecycle.ErrIllegalTransition},
		{"cancel a completed booking", domain.StatusCompleted, domain.StatusCancelled, lifecycle.ErrIllegalTransition},
		{"cancel a no_show booking", domain.StatusNoShow, domain.StatusCancelled, lifecycle.ErrIllegalTransition},
		{"unknown target", domain.StatusPending, domain.BookingStatus("parked"), lifecycle.ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(nil)
			b := bookingIn(tt.from)

			_, err := transitionAt(t, m, b, tt.to, now)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.to, b.Status)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, b.Status)
			}
		})
	}
}

func TestTransition_CancelTwiceIsAnError(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusConfirmed)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := transitionAt(t, m, b, domain.StatusCancelled, now)
	require.NoError(t, err)

	_, err = transitionAt(t, m, b, domain.StatusCancelled, now)
	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
}

func TestTransition_DepositGate(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("blocked when deposit not covered", func(t *testing.T) {
		m := newMachine(nil)
		b := bookingIn(domain.StatusPending)
		b.Payment.DepositRequired = true
		b.Payment.DepositAmount = 300
		b.Payment.AmountPaid = 100

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		assert.ErrorIs(t, err, lifecycle.ErrDepositRequired)
		assert.Equal(t, domain.StatusPending, b.Status)
	})

	t.Run("passes when amount paid covers the deposit", func(t *testing.T) {
		m := newMachine(nil)
		b := bookingIn(domain.StatusPending)
		b.Payment.DepositRequired = true
		b.Payment.DepositAmount = 300
		b.Payment.AmountPaid = 300

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		assert.NoError(t, err)
	})

	t.Run("passes when deposit is not required", func(t *testing.T) {
		m := newMachine(nil)
		b := bookingIn(domain.StatusPending)

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		assert.NoError(t, err)
	})

	t.Run("cannot be bypassed by skipping confirmed", func(t *testing.T) {
		m := newMachine(nil)
		b := bookingIn(domain.StatusPending)
		b.Payment.DepositRequired = true
		b.Payment.DepositAmount = 300
		b.Payment.AmountPaid = 0

		_, err := transitionAt(t, m, b, domain.StatusInProgress, now)

		assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
		assert.Equal(t, domain.StatusPending, b.Status)
	})
}

func TestTransition_AvailabilityRecheckOnConfirm(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("runs even when nothing changed since creation", func(t *testing.T) {
		av := &fakeAvailability{}
		m := newMachine(av)
		b := bookingIn(domain.StatusPending)

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		require.NoError(t, err)
		assert.True(t, av.called)
		require.NotNil(t, av.lastExclude)
		assert.Equal(t, b.ID, *av.lastExclude)
	})

	t.Run("clears the revalidation flag after a reschedule", func(t *testing.T) {
		av := &fakeAvailability{}
		m := newMachine(av)
		b := bookingIn(domain.StatusPending)
		b.NeedsRevalidation = true

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		require.NoError(t, err)
		assert.True(t, av.called)
		assert.False(t, b.NeedsRevalidation)
	})

	t.Run("confirmation blocked when re-check fails", func(t *testing.T) {
		av := &fakeAvailability{err: errors.New("interval overlaps an existing booking")}
		m := newMachine(av)
		b := bookingIn(domain.StatusPending)

		_, err := transitionAt(t, m, b, domain.StatusConfirmed, now)

		assert.ErrorIs(t, err, lifecycle.ErrRevalidationFailed)
		assert.Equal(t, domain.StatusPending, b.Status)
	})

	t.Run("venue is required", func(t *testing.T) {
		m := newMachine(nil)
		b := bookingIn(domain.StatusPending)

		_, err := m.Transition(context.Background(), b, domain.StatusConfirmed, lifecycle.TransitionContext{
			Actor: "staff:7",
			Now:   now,
		})

		assert.ErrorIs(t, err, lifecycle.ErrVenueRequired)
	})
}

// Окно обслуживания, добавленное после создания бронирования, блокирует
// подтверждение: проверка доступности на подтверждении идет по актуальному
// состоянию площадки
func TestTransition_ConfirmBlockedByMaintenanceAddedAfterCreation(t *testing.T) {
	b := bookingIn(domain.StatusPending)

	venue := moderateVenue()
	venue.OperatingHours = allWeekOpen("08:00", "22:00")
	checker := availability.NewChecker(emptyBookingRepo{}, nopLogger{}, nil)
	m := lifecycle.NewMachine(checker, cancellation.NewPolicy(), pricing.NewCalculator(), nopLogger{}, nil)

	// До появления окна обслуживания подтверждение проходит
	earlier := bookingIn(domain.StatusPending)
	_, err := m.Transition(context.Background(), earlier, domain.StatusConfirmed, lifecycle.TransitionContext{
		Actor: "staff:7",
		Now:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Venue: venue,
	})
	require.NoError(t, err)

	venue.MaintenanceWindows = []domain.MaintenanceWindow{{
		ID:     1,
		Span:   domain.Interval{Start: b.StartTime.Add(-time.Hour), End: b.EndTime.Add(time.Hour)},
		Reason: "замена паркета",
	}}

	_, err = m.Transition(context.Background(), b, domain.StatusConfirmed, lifecycle.TransitionContext{
		Actor: "staff:7",
		Now:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Venue: venue,
	})

	assert.ErrorIs(t, err, lifecycle.ErrRevalidationFailed)
	assert.Equal(t, domain.StatusPending, b.Status)
}

func TestTransition_CancellationRecordsFeeAndRefund(t *testing.T) {
	// Moderate tier, grand total 1000, cancelled 5 days before the event:
	// 20% fee = 200; paid 500 -> suggested refund 300.
	m := newMachine(nil)
	b := bookingIn(domain.StatusConfirmed)
	b.Payment.AmountPaid = 500
	now := b.StartTime.AddDate(0, 0, -5)

	reason := "client request"
	_, err := m.Transition(context.Background(), b, domain.StatusCancelled, lifecycle.TransitionContext{
		Actor: "guest:5",
		Note:  &reason,
		Now:   now,
		Venue: moderateVenue(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	require.NotNil(t, b.CancellationFee)
	assert.InDelta(t, 200, *b.CancellationFee, 0.001)
	require.NotNil(t, b.CancellationRefund)
	assert.InDelta(t, 300, *b.CancellationRefund, 0.001)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, reason, *b.CancellationReason)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)
	assert.Equal(t, domain.PaymentStatusRefundPending, b.Payment.Status)
}

func TestTransition_RefundOverrideKeepsFeeOnRecord(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusConfirmed)
	b.Payment.AmountPaid = 500
	now := b.StartTime.AddDate(0, 0, -5)

	_, err := m.Transition(context.Background(), b, domain.StatusCancelled, lifecycle.TransitionContext{
		Actor:          "staff:7",
		Now:            now,
		Venue:          moderateVenue(),
		RefundOverride: ptr.Ptr(500.0),
	})

	require.NoError(t, err)
	require.NotNil(t, b.CancellationFee)
	assert.InDelta(t, 200, *b.CancellationFee, 0.001)
	require.NotNil(t, b.CancellationRefund)
	assert.InDelta(t, 500, *b.CancellationRefund, 0.001)
}

func TestTransition_AppendsTimeline(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusInquiry)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := transitionAt(t, m, b, domain.StatusTentative, now)
	require.NoError(t, err)
	_, err = transitionAt(t, m, b, domain.StatusPending, now.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, b.Timeline, 2)
	assert.Equal(t, domain.StatusTentative, b.Timeline[0].Status)
	assert.Equal(t, now, b.Timeline[0].At)
	assert.Equal(t, "staff:7", b.Timeline[0].Actor)
	assert.Equal(t, domain.StatusPending, b.Timeline[1].Status)
}

func TestTransition_ArchivedBookingRejected(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusPending)
	b.Active = false

	_, err := transitionAt(t, m, b, domain.StatusConfirmed, time.Now())

	assert.ErrorIs(t, err, lifecycle.ErrBookingArchived)
}

func TestReprice_UpdatesBreakdownAndBalance(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusConfirmed)
	b.Services = []domain.LineItem{{ItemID: 1, Name: "AV package", UnitPrice: 100, Quantity: 2}}
	b.Payment.AmountPaid = 100

	underDeposited, err := m.Reprice(b, moderateVenue(), 0.10)

	require.NoError(t, err)
	assert.False(t, underDeposited)
	// 200 base + 50*3h + 200 services = 550; tax 55.
	assert.InDelta(t, 550, b.Pricing.TotalBeforeTax, 0.001)
	assert.InDelta(t, 605, b.Pricing.GrandTotal, 0.001)
	assert.InDelta(t, 505, b.Payment.Balance, 0.001)
}

func TestReprice_SurfacesUnderDepositWithoutRevokingConfirmation(t *testing.T) {
	m := newMachine(nil)
	b := bookingIn(domain.StatusConfirmed)
	b.Payment.DepositRequired = true
	b.Payment.DepositAmount = 105
	b.Payment.AmountPaid = 105

	// Adding equipment raises the total, the 30% deposit outgrows the payment.
	b.Equipment = []domain.LineItem{{ItemID: 2, Name: "Stage", UnitPrice: 500, Quantity: 1}}

	underDeposited, err := m.Reprice(b, moderateVenue(), 0.10)

	require.NoError(t, err)
	assert.True(t, underDeposited)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Greater(t, b.Payment.DepositAmount, b.Payment.AmountPaid)
}

func TestReprice_RejectedForTerminalStatuses(t *testing.T) {
	m := newMachine(nil)

	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		b := bookingIn(status)
		_, err := m.Reprice(b, moderateVenue(), 0.10)
		assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition, string(status))
	}
}
