package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	guestClient "github.com/m04kA/SMC-VenueService/internal/integrations/guestservice"
	hotelClient "github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// UseCase use case для создания бронирования
// Вся работа с БД идет в сериализуемой транзакции: чтение площадки,
// поиск пересечений (FOR UPDATE) и вставка выполняются атомарно,
// поэтому два конкурирующих запроса не могут занять один интервал
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	availability AvailabilityChecker
	calculator   *pricing.Calculator
	guestClient  GuestServiceClient
	hotelClient  HotelServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      CreationCounter
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, тогда счетчики не ведутся
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepository VenueRepository,
	availability AvailabilityChecker,
	calculator *pricing.Calculator,
	guestClient GuestServiceClient,
	hotelClient HotelServiceClient,
	txManager TransactionManager,
	metrics CreationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepository,
		availability: availability,
		calculator:   calculator,
		guestClient:  guestClient,
		hotelClient:  hotelClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%d, venue=%d, event=%q, interval=[%s, %s)",
		req.GuestID, req.VenueID, req.EventName,
		req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	status, err := resolveInitialStatus(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 2. Проверяем существование гостя
	if _, err := uc.guestClient.GetGuest(ctx, req.GuestID); err != nil {
		if errors.Is(err, guestClient.ErrGuestNotFound) {
			uc.logger.Warn("CreateBooking: guest id=%d not found", req.GuestID)
			return nil, ErrGuestNotFound
		}
		uc.logger.Error("CreateBooking: failed to get guest id=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: failed to get guest: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем площадку
		venue, err := uc.venueRepo.GetByID(txCtx, req.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}

		// 3.2. Вместимость
		if !venue.FitsAttendees(req.AttendeeCount) {
			uc.logger.Warn("CreateBooking: attendee count %d is out of venue id=%d capacity [%d, %d]",
				req.AttendeeCount, venue.ID, venue.CapacityMin, venue.CapacityMax)
			return fmt.Errorf("%w: %d attendees, capacity [%d, %d]",
				ErrCapacityExceeded, req.AttendeeCount, venue.CapacityMin, venue.CapacityMax)
		}

		// 3.3. Доступность интервала
		// Внутри транзакции FindOverlapping блокирует конфликтующие строки
		interval := domain.NewInterval(req.StartTime, req.EndTime)
		if err := uc.availability.Check(txCtx, venue, interval, nil); err != nil {
			uc.logger.Warn("CreateBooking: venue id=%d unavailable: %v", venue.ID, err)
			return fmt.Errorf("%w: %v", ErrVenueUnavailable, err)
		}

		// 3.4. Налоговая ставка и процент депозита отеля
		// При недоступности HotelService берем дефолтные ставки
		taxRate := domain.DefaultTaxRate
		depositPercent := domain.DefaultDepositPercent
		hotel, err := uc.hotelClient.GetHotelWithGracefulDegradation(txCtx, venue.HotelID)
		switch {
		case err == nil:
			taxRate = hotel.TaxRate
			depositPercent = hotel.DepositPercent
		case errors.Is(err, hotelClient.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: using default tax and deposit rates for hotel id=%d", venue.HotelID)
		case errors.Is(err, hotelClient.ErrHotelNotFound):
			uc.logger.Warn("CreateBooking: hotel id=%d not found, using default rates", venue.HotelID)
		default:
			uc.logger.Error("CreateBooking: failed to get hotel id=%d: %v", venue.HotelID, err)
			return fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
		}

		// 3.5. Расчет стоимости
		breakdown, err := uc.calculator.Compute(pricing.Input{
			Venue:           venue,
			Interval:        interval,
			Services:        req.domainServices(),
			Equipment:       req.domainEquipment(),
			Catering:        req.domainCatering(),
			AdditionalCosts: req.domainAdditionalCosts(),
			Discounts:       req.domainDiscounts(),
			TaxRate:         taxRate,
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		depositAmount := uc.calculator.DepositFor(breakdown.GrandTotal, depositPercent)

		// 3.6. Собираем бронирование
		span := venue.OccupationSpan(interval)
		booking := &domain.Booking{
			Reference:     uuid.NewString(),
			VenueID:       venue.ID,
			GuestID:       req.GuestID,
			EventName:     req.EventName,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			SetupStart:    span.Start,
			CleanupEnd:    span.End,
			AttendeeCount: req.AttendeeCount,
			Services:      req.domainServices(),
			Equipment:     req.domainEquipment(),
			Catering:      req.domainCatering(),
			Pricing:       breakdown,
			Payment: domain.PaymentInfo{
				Status:          domain.PaymentStatusUnpaid,
				DepositRequired: depositAmount > 0,
				DepositAmount:   depositAmount,
				Balance:         breakdown.GrandTotal,
			},
			Status: status,
			Active: true,
		}
		booking.AppendTimeline(status, now, fmt.Sprintf("guest:%d", req.GuestID), nil)

		// 3.7. Сохраняем
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(result.Status))
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)

	return models.FromDomainBooking(result), nil
}
