package update_line_items

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// UseCase use case для замены услуг, оборудования и кейтеринга бронирования
// Интервал и статус не меняются: подтвержденное бронирование остается
// подтвержденным, недобор депозита после пересчета только отражается в ответе
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
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
	repricer Repricer,
	hotelClient HotelServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		venueRepo:    venueRepository,
		repricer:     repricer,
		hotelClient:  hotelClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case замены позиций бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateLineItems: booking=%d, user=%d, services=%d, equipment=%d, catering=%t",
		req.BookingID, req.UserID, len(req.Services), len(req.Equipment), req.Catering != nil)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateLineItems: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking
	var underDeposited bool

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateLineItems: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateLineItems: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsTerminal() {
			uc.logger.Warn("UpdateLineItems: booking id=%d in status %s cannot be edited",
				booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrNotEditable, booking.Status)
		}

		venue, err := uc.venueRepo.GetByID(txCtx, booking.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("UpdateLineItems: venue id=%d not found", booking.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("UpdateLineItems: failed to get venue id=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}

		actor, err := uc.resolveActor(txCtx, booking, venue, req.UserID)
		if err != nil {
			return err
		}

		booking.Services = req.domainServices()
		booking.Equipment = req.domainEquipment()
		booking.Catering = req.domainCatering()

		underDeposited, err = uc.repricer.Reprice(booking, venue, booking.Pricing.TaxRate)
		if err != nil {
			uc.logger.Warn("UpdateLineItems: repricing failed for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		note := "line items updated"
		booking.AppendTimeline(booking.Status, now, actor, &note)

		saved, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("UpdateLineItems: version conflict for booking id=%d", req.BookingID)
				return ErrVersionConflict
			}
			uc.logger.Error("UpdateLineItems: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateLineItems: booking id=%d updated, grand total=%.2f",
		result.ID, result.Pricing.GrandTotal)

	return &Response{
		Booking:        models.FromDomainBooking(result),
		UnderDeposited: underDeposited,
	}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}
	for _, li := range req.Services {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	for _, li := range req.Equipment {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	if req.Catering != nil && (req.Catering.PerHeadRate < 0 || req.Catering.HeadCount <= 0) {
		return fmt.Errorf("%w: catering rate must not be negative and head count must be positive", ErrInvalidInput)
	}
	return nil
}

func validateLineItem(li LineItemRequest) error {
	if li.Name == "" {
		return fmt.Errorf("%w: line item name is required", ErrInvalidInput)
	}
	if li.UnitPrice < 0 || li.Quantity <= 0 {
		return fmt.Errorf("%w: line item %q has invalid price or quantity", ErrInvalidInput, li.Name)
	}
	return nil
}

// resolveActor определяет, от чьего имени идет редактирование
func (uc *UseCase) resolveActor(ctx context.Context, booking *domain.Booking, venue *domain.Venue, userID int64) (string, error) {
	if booking.GuestID == userID {
		return fmt.Sprintf("guest:%d", userID), nil
	}

	hotel, err := uc.hotelClient.GetHotel(ctx, venue.HotelID)
	if err != nil {
		uc.logger.Error("UpdateLineItems: failed to get hotel id=%d: %v", venue.HotelID, err)
		return "", fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
	}
	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			return fmt.Sprintf("staff:%d", userID), nil
		}
	}

	uc.logger.Warn("UpdateLineItems: user id=%d has no access to booking id=%d", userID, booking.ID)
	return "", ErrPermissionDenied
}
