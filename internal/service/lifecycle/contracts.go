package lifecycle

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/cancellation"
)

// AvailabilityChecker повторная проверка доступности при подтверждении
type AvailabilityChecker interface {
	Check(ctx context.Context, venue *domain.Venue, requested domain.Interval, excludeBookingID *int64) error
}

// CancellationPolicy расчет штрафа и возврата при отмене
type CancellationPolicy interface {
	Evaluate(tier domain.CancellationTier, grandTotal, amountPaid float64, daysUntilEvent int) (cancellation.Quote, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// TransitionCounter счетчик переходов статусов для метрик
type TransitionCounter interface {
	IncBookingTransition(from, to string)
}
