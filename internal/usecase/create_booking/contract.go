package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/guestservice"
	"github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityChecker проверка доступности интервала
type AvailabilityChecker interface {
	Check(ctx context.Context, venue *domain.Venue, requested domain.Interval, excludeBookingID *int64) error
}

// GuestServiceClient интерфейс клиента для GuestService
type GuestServiceClient interface {
	GetGuest(ctx context.Context, guestID int64) (*guestservice.Guest, error)
}

// HotelServiceClient интерфейс клиента для HotelService
type HotelServiceClient interface {
	GetHotelWithGracefulDegradation(ctx context.Context, hotelID int64) (*hotelservice.Hotel, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreationCounter счетчик созданных бронирований для метрик
type CreationCounter interface {
	IncBookingCreated(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
