package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueService/internal/service/lifecycle"
)

// UseCase use case для подтверждения бронирования
// Чтение FOR UPDATE, проверки машины состояний (депозит, ревалидация доступности)
// и запись статуса выполняются в одной сериализуемой транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	machine      StateMachine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	venueRepository VenueRepository,
	machine StateMachine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		venueRepo:    venueRepository,
		machine:      machine,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Внутри транзакции GetByID читает строку с FOR UPDATE
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		venue, err := uc.venueRepo.GetByID(txCtx, booking.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("ConfirmBooking: venue id=%d not found", booking.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get venue id=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}

		updated, err := uc.machine.Transition(txCtx, booking, domain.StatusConfirmed, lifecycle.TransitionContext{
			Actor: fmt.Sprintf("staff:%d", req.UserID),
			Note:  req.Note,
			Now:   now,
			Venue: venue,
		})
		if err != nil {
			uc.logger.Warn("ConfirmBooking: transition rejected for booking id=%d: %v", req.BookingID, err)
			return err
		}

		saved, err := uc.bookingRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("ConfirmBooking: version conflict for booking id=%d", req.BookingID)
				return ErrVersionConflict
			}
			uc.logger.Error("ConfirmBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking id=%d confirmed", result.ID)
	return models.FromDomainBooking(result), nil
}
