package availability

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
// FindOverlapping возвращает бронирования площадки в блокирующих статусах,
// чьи физические интервалы (с учетом буферов) пересекают span
type BookingRepository interface {
	FindOverlapping(ctx context.Context, venueID int64, span domain.Interval, statuses []domain.BookingStatus, excludeBookingID *int64) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RejectionCounter счетчик отказов по причинам (реализуется pkg/metrics)
type RejectionCounter interface {
	IncAvailabilityRejection(reason string)
}
