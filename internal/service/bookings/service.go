package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	hotelClient "github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
	storage "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueStorage "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// Service читающий сервис бронирований: карточка, история гостя,
// календарь площадки для персонала. Все мутации идут через usecase-слой
// и машину состояний, здесь только чтение и проверка прав
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	hotelClient HotelServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	hotelClient HotelServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		hotelClient: hotelClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Гость видит только свои бронирования; персонал отеля площадки - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetGuestBookings получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestBookings(ctx context.Context, req *models.GetGuestBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGuestBookings: fetching bookings for guest=%d, status=%v", req.GuestID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestBookings: invalid status=%s for guest=%d", *req.Status, req.GuestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByGuestID(ctx, req.GuestID, domainStatus)
	if err != nil {
		s.logger.Error("GetGuestBookings: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestBookings: successfully fetched %d bookings for guest=%d", len(bookings), req.GuestID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает календарь бронирований площадки с фильтрацией
// по периоду и статусу. Доступно только персоналу отеля площадки
//
// Примеры использования:
//   - Все активные бронирования: GetVenueBookings(ctx, &GetVenueBookingsRequest{VenueID: 10, UserID: 7})
//   - Бронирования за период: указать StartDate и EndDate
//   - Только подтвержденные: указать Status = "confirmed"
//   - Включая архивные: IncludeInactive = true
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	// Календарь площадки доступен только персоналу отеля
	if err := s.checkStaffAccess(ctx, venue.HotelID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByReference получает бронирование по внешнему reference (uuid)
// Права доступа те же, что и в GetByID
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s for user=%d", reference, userID)

	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByReference: access denied for user=%d to booking id=%d", userID, booking.ID)
		return nil, err
	}

	s.logger.Info("GetByReference: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// Archive мягко удаляет бронирование из рабочих выборок
// Доступно только персоналу отеля и только для завершенных или отмененных
// бронирований; запись остается в БД и видна с include_inactive
func (s *Service) Archive(ctx context.Context, bookingID, userID int64) error {
	s.logger.Info("Archive: archiving booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("Archive: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Archive: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Archive - repository error: %v", ErrInternal, err)
	}

	venue, err := s.getVenue(ctx, booking.VenueID)
	if err != nil {
		return err
	}
	if err := s.checkStaffAccess(ctx, venue.HotelID, userID); err != nil {
		return ErrAccessDenied
	}

	if !booking.IsTerminal() {
		s.logger.Warn("Archive: booking id=%d has non-terminal status %s", bookingID, booking.Status)
		return fmt.Errorf("%w: status %s", ErrNotTerminal, booking.Status)
	}

	if err := s.bookingRepo.Archive(ctx, bookingID); err != nil {
		s.logger.Error("Archive: failed to archive booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Archive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Archive: booking id=%d archived", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueStorage.ErrVenueNotFound) {
			s.logger.Warn("getVenue: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("getVenue: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: getVenue - repository error: %v", ErrInternal, err)
	}
	return venue, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Гость видит свое бронирование, персонал отеля площадки - любое
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.GuestID == userID {
		return nil
	}

	venue, err := s.getVenue(ctx, booking.VenueID)
	if err != nil {
		return err
	}

	if err := s.checkStaffAccess(ctx, venue.HotelID, userID); err != nil {
		// Ошибка уже залогирована в checkStaffAccess
		return ErrAccessDenied
	}

	return nil
}

// checkStaffAccess проверяет, что пользователь входит в персонал отеля
func (s *Service) checkStaffAccess(ctx context.Context, hotelID int64, userID int64) error {
	hotel, err := s.hotelClient.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelClient.ErrHotelNotFound) {
			s.logger.Warn("checkStaffAccess: hotel id=%d not found", hotelID)
			return ErrHotelNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get hotel id=%d: %v", hotelID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get hotel: %v", ErrInternal, err)
	}

	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			s.logger.Info("checkStaffAccess: user=%d is staff of hotel=%d", userID, hotelID)
			return nil
		}
	}

	s.logger.Warn("checkStaffAccess: user=%d is not staff of hotel=%d", userID, hotelID)
	return ErrAccessDenied
}
