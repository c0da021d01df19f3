package cancellation_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
)

// UseCase use case котировки отмены: сколько будет стоить отмена сейчас
// Бронирование не изменяется, расчет идет по тем же правилам, что и отмена
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	policy       CancellationPolicy
	hotelClient  HotelServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	venueRepository VenueRepository,
	policy CancellationPolicy,
	hotelClient HotelServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		venueRepo:    venueRepository,
		policy:       policy,
		hotelClient:  hotelClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case котировки отмены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancellationQuote: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancellationQuote: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancellationQuote: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancellationQuote: booking id=%d in status %s cannot be cancelled",
			booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNotCancellable, booking.Status)
	}

	venue, err := uc.venueRepo.GetByID(ctx, booking.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CancellationQuote: venue id=%d not found", booking.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CancellationQuote: failed to get venue id=%d: %v", booking.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if err := uc.checkAccess(ctx, booking, venue, req.UserID); err != nil {
		return nil, err
	}

	days := booking.Interval().DaysUntil(uc.timeProvider.Now())
	quote, err := uc.policy.Evaluate(venue.CancellationTier, booking.Pricing.GrandTotal,
		booking.Payment.AmountPaid, days)
	if err != nil {
		uc.logger.Error("CancellationQuote: policy evaluation failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		BookingID:       booking.ID,
		Tier:            string(venue.CancellationTier),
		DaysUntilEvent:  days,
		FeePercent:      quote.FeePercent,
		Fee:             quote.Fee,
		SuggestedRefund: quote.SuggestedRefund,
	}, nil
}

// checkAccess разрешает доступ гостю-владельцу и персоналу отеля
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, venue *domain.Venue, userID int64) error {
	if booking.GuestID == userID {
		return nil
	}

	hotel, err := uc.hotelClient.GetHotel(ctx, venue.HotelID)
	if err != nil {
		uc.logger.Error("CancellationQuote: failed to get hotel id=%d: %v", venue.HotelID, err)
		return fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
	}
	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			return nil
		}
	}

	uc.logger.Warn("CancellationQuote: user id=%d has no access to booking id=%d", userID, booking.ID)
	return ErrPermissionDenied
}
