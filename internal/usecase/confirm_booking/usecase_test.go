package confirm_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/lifecycle"
	"github.com/m04kA/SMC-VenueService/internal/usecase/confirm_booking"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	updateErr error

	updated *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	booking.Version++
	f.updated = booking
	return booking, nil
}

type fakeVenueRepo struct {
	venue *domain.Venue
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	if f.venue == nil || f.venue.ID != id {
		return nil, venueRepo.ErrVenueNotFound
	}
	return f.venue, nil
}

type fakeMachine struct {
	err error

	lastTarget domain.BookingStatus
	lastCtx    lifecycle.TransitionContext
}

func (f *fakeMachine) Transition(_ context.Context, booking *domain.Booking, target domain.BookingStatus, tctx lifecycle.TransitionContext) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastTarget = target
	f.lastCtx = tctx
	booking.Status = target
	booking.AppendTimeline(target, tctx.Now, tctx.Actor, tctx.Note)
	return booking, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	start := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	return &domain.Booking{
		ID:            5,
		Reference:     "b2b2e9a2-9df4-4d0f-a2bb-0f6d54f0b001",
		VenueID:       10,
		GuestID:       1,
		EventName:     "Конференция",
		StartTime:     start,
		EndTime:       start.Add(3 * time.Hour),
		SetupStart:    start.Add(-30 * time.Minute),
		CleanupEnd:    start.Add(3*time.Hour + 30*time.Minute),
		AttendeeCount: 80,
		Status:        domain.StatusPending,
		Payment: domain.PaymentInfo{
			Status:          domain.PaymentStatusDepositPaid,
			DepositRequired: true,
			DepositAmount:   100,
			DepositPaid:     true,
			AmountPaid:      100,
			Balance:         200,
		},
		Active:  true,
		Version: 3,
	}
}

func newUseCase(repo *fakeBookingRepo, venues *fakeVenueRepo, machine *fakeMachine) *confirm_booking.UseCase {
	return confirm_booking.NewUseCase(repo, venues, machine, fakeTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	machine := &fakeMachine{}
	uc := newUseCase(repo, &fakeVenueRepo{venue: &domain.Venue{ID: 10, Active: true}}, machine)

	resp, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 5, UserID: 77})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, machine.lastTarget)
	assert.Equal(t, "staff:77", machine.lastCtx.Actor)
	require.NotNil(t, machine.lastCtx.Venue)
	require.NotNil(t, repo.updated)
	assert.Equal(t, int64(4), repo.updated.Version)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{}, &fakeMachine{})

	_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 0, UserID: 77})
	assert.ErrorIs(t, err, confirm_booking.ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{}, &fakeMachine{})

	_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 5, UserID: 77})
	assert.ErrorIs(t, err, confirm_booking.ErrBookingNotFound)
}

func TestExecute_VenueNotFound(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	uc := newUseCase(repo, &fakeVenueRepo{}, &fakeMachine{})

	_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 5, UserID: 77})
	assert.ErrorIs(t, err, confirm_booking.ErrVenueNotFound)
}

// Ошибки машины состояний доходят до обработчика без переупаковки:
// он различает депозит, ревалидацию и запрещенный переход по sentinel
func TestExecute_LifecycleErrorsPassThrough(t *testing.T) {
	for _, sentinel := range []error{
		lifecycle.ErrDepositRequired,
		lifecycle.ErrRevalidationFailed,
		lifecycle.ErrIllegalTransition,
	} {
		repo := &fakeBookingRepo{booking: pendingBooking()}
		uc := newUseCase(repo, &fakeVenueRepo{venue: &domain.Venue{ID: 10, Active: true}}, &fakeMachine{err: sentinel})

		_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 5, UserID: 77})
		assert.ErrorIs(t, err, sentinel)
		assert.Nil(t, repo.updated)
	}
}

func TestExecute_VersionConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		booking:   pendingBooking(),
		updateErr: bookingRepo.ErrVersionConflict,
	}
	uc := newUseCase(repo, &fakeVenueRepo{venue: &domain.Venue{ID: 10, Active: true}}, &fakeMachine{})

	_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 5, UserID: 77})
	assert.ErrorIs(t, err, confirm_booking.ErrVersionConflict)
}
