package cancel_booking

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

// UseCase use case для отмены бронирования
// Отменить может гость-владелец или персонал отеля площадки.
// Сбор за отмену считается машиной состояний по тарифу площадки,
// ручная корректировка возврата доступна только персоналу
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	machine      StateMachine
	hotelClient  HotelServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      CancellationCounter
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, тогда счетчики не ведутся
func NewUseCase(
	bookingRepository BookingRepository,
	venueRepository VenueRepository,
	machine StateMachine,
	hotelClient HotelServiceClient,
	txManager TransactionManager,
	metrics CancellationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		venueRepo:    venueRepository,
		machine:      machine,
		hotelClient:  hotelClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}
	if req.RefundOverride != nil && *req.RefundOverride < 0 {
		return nil, fmt.Errorf("%w: refund override must not be negative", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking
	var tier domain.CancellationTier

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		venue, err := uc.venueRepo.GetByID(txCtx, booking.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("CancelBooking: venue id=%d not found", booking.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("CancelBooking: failed to get venue id=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}

		actor, isStaff, err := uc.resolveActor(txCtx, booking, venue, req.UserID)
		if err != nil {
			return err
		}
		if req.RefundOverride != nil && !isStaff {
			uc.logger.Warn("CancelBooking: guest id=%d attempted a refund override on booking id=%d",
				req.UserID, req.BookingID)
			return fmt.Errorf("%w: refund override requires staff access", ErrPermissionDenied)
		}

		updated, err := uc.machine.Transition(txCtx, booking, domain.StatusCancelled, lifecycle.TransitionContext{
			Actor:          actor,
			Note:           req.Reason,
			Now:            now,
			Venue:          venue,
			RefundOverride: req.RefundOverride,
		})
		if err != nil {
			uc.logger.Warn("CancelBooking: transition rejected for booking id=%d: %v", req.BookingID, err)
			return err
		}

		// Запись остается активной: история отмен нужна для отчетности
		saved, err := uc.bookingRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("CancelBooking: version conflict for booking id=%d", req.BookingID)
				return ErrVersionConflict
			}
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = saved
		tier = venue.CancellationTier
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCancelled(string(tier))
	}
	uc.logger.Info("CancelBooking: booking id=%d cancelled, fee=%.2f, refund=%.2f",
		result.ID, floatOrZero(result.CancellationFee), floatOrZero(result.CancellationRefund))

	return models.FromDomainBooking(result), nil
}

// resolveActor определяет, от чьего имени идет отмена
func (uc *UseCase) resolveActor(ctx context.Context, booking *domain.Booking, venue *domain.Venue, userID int64) (string, bool, error) {
	if booking.GuestID == userID {
		return fmt.Sprintf("guest:%d", userID), false, nil
	}

	hotel, err := uc.hotelClient.GetHotel(ctx, venue.HotelID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get hotel id=%d: %v", venue.HotelID, err)
		return "", false, fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
	}
	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			return fmt.Sprintf("staff:%d", userID), true, nil
		}
	}

	uc.logger.Warn("CancelBooking: user id=%d has no access to booking id=%d", userID, booking.ID)
	return "", false, ErrPermissionDenied
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
