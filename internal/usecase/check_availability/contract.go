package check_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityChecker интерфейс проверки доступности интервала
type AvailabilityChecker interface {
	Check(ctx context.Context, venue *domain.Venue, requested domain.Interval, excludeBookingID *int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
