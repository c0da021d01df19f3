package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// UseCase use case для переноса бронирования на другой интервал
// Новый интервал проверяется на доступность с исключением самого
// бронирования, стоимость пересчитывается по прежней налоговой ставке.
// Подтвержденное бронирование остается подтвержденным, более ранние
// статусы помечаются на повторную проверку при подтверждении
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	availability AvailabilityChecker
	repricer     Repricer
	hotelClient  HotelServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	venueRepository VenueRepository,
	availability AvailabilityChecker,
	repricer Repricer,
	hotelClient HotelServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		venueRepo:    venueRepository,
		availability: availability,
		repricer:     repricer,
		hotelClient:  hotelClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, interval=[%s, %s)",
		req.BookingID, req.UserID,
		req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	now := uc.timeProvider.Now()
	if err := uc.validate(req, now); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var underDeposited bool

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
				booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrNotReschedulable, booking.Status)
		}

		venue, err := uc.venueRepo.GetByID(txCtx, booking.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("RescheduleBooking: venue id=%d not found", booking.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get venue id=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}

		actor, err := uc.resolveActor(txCtx, booking, venue, req.UserID)
		if err != nil {
			return err
		}

		attendees := booking.AttendeeCount
		if req.AttendeeCount != nil {
			attendees = *req.AttendeeCount
		}
		if !venue.FitsAttendees(attendees) {
			uc.logger.Warn("RescheduleBooking: attendee count %d is out of venue id=%d capacity [%d, %d]",
				attendees, venue.ID, venue.CapacityMin, venue.CapacityMax)
			return fmt.Errorf("%w: %d attendees, capacity [%d, %d]",
				ErrCapacityExceeded, attendees, venue.CapacityMin, venue.CapacityMax)
		}

		// Самоисключение: старый интервал бронирования не считается конфликтом
		interval := domain.NewInterval(req.StartTime, req.EndTime)
		if err := uc.availability.Check(txCtx, venue, interval, &booking.ID); err != nil {
			uc.logger.Warn("RescheduleBooking: venue id=%d unavailable: %v", venue.ID, err)
			return fmt.Errorf("%w: %v", ErrVenueUnavailable, err)
		}

		span := venue.OccupationSpan(interval)
		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
		booking.SetupStart = span.Start
		booking.CleanupEnd = span.End
		booking.AttendeeCount = attendees

		// Подтвержденное бронирование прошло свежую проверку выше и
		// остается подтвержденным, остальные перепроверяются при подтверждении
		if booking.Status != domain.StatusConfirmed {
			booking.NeedsRevalidation = true
		}

		underDeposited, err = uc.repricer.Reprice(booking, venue, booking.Pricing.TaxRate)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: repricing failed for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		booking.AppendTimeline(booking.Status, now, actor, rescheduleNote(req))

		saved, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("RescheduleBooking: version conflict for booking id=%d", req.BookingID)
				return ErrVersionConflict
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to [%s, %s)",
		result.ID, result.StartTime.Format(domain.TimeFormat), result.EndTime.Format(domain.TimeFormat))

	return &Response{
		Booking:        models.FromDomainBooking(result),
		UnderDeposited: underDeposited,
	}, nil
}

func (uc *UseCase) validate(req *Request, now time.Time) error {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}
	interval := domain.NewInterval(req.StartTime, req.EndTime)
	if !interval.IsValid() {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if !req.StartTime.After(now) {
		return fmt.Errorf("%w: startTime must be in the future", ErrInvalidInput)
	}
	if req.AttendeeCount != nil && *req.AttendeeCount <= 0 {
		return fmt.Errorf("%w: attendeeCount must be positive", ErrInvalidInput)
	}
	return nil
}

// resolveActor определяет, от чьего имени идет перенос
func (uc *UseCase) resolveActor(ctx context.Context, booking *domain.Booking, venue *domain.Venue, userID int64) (string, error) {
	if booking.GuestID == userID {
		return fmt.Sprintf("guest:%d", userID), nil
	}

	hotel, err := uc.hotelClient.GetHotel(ctx, venue.HotelID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get hotel id=%d: %v", venue.HotelID, err)
		return "", fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
	}
	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			return fmt.Sprintf("staff:%d", userID), nil
		}
	}

	uc.logger.Warn("RescheduleBooking: user id=%d has no access to booking id=%d", userID, booking.ID)
	return "", ErrPermissionDenied
}

func rescheduleNote(req *Request) *string {
	note := fmt.Sprintf("rescheduled to [%s, %s)",
		req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))
	if req.Note != nil && *req.Note != "" {
		note = note + ": " + *req.Note
	}
	return &note
}
