package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Checker проверяет доступность площадки для предложенного интервала
// Проверки идут по порядку и прерываются на первой неудаче:
//  1. операционный статус площадки
//  2. день недели и рабочие часы (по времени суток, интервал в пределах одного дня)
//  3. минимальная длительность бронирования
//  4. пересечения с существующими бронированиями (с учетом буферов)
//  5. пересечения с окнами обслуживания
//
// Проверка оптимистичная: авторитетной защитой от гонок является
// constraint в хранилище, см. миграции. При подтверждении бронирования
// проверку нужно выполнять повторно внутри той же транзакции
type Checker struct {
	bookings BookingRepository
	logger   Logger
	metrics  RejectionCounter
}

// NewChecker создает проверку доступности
// metrics может быть nil, тогда счетчики отказов не ведутся
func NewChecker(bookings BookingRepository, logger Logger, metrics RejectionCounter) *Checker {
	return &Checker{
		bookings: bookings,
		logger:   logger,
		metrics:  metrics,
	}
}

// Check возвращает nil, если интервал доступен для бронирования,
// иначе конкретную ошибку-причину. excludeBookingID исключает собственное
// бронирование из поиска конфликтов при перепроверке (reschedule/confirm)
func (c *Checker) Check(ctx context.Context, venue *domain.Venue, requested domain.Interval, excludeBookingID *int64) error {
	err := c.check(ctx, venue, requested, excludeBookingID)
	if err != nil && c.metrics != nil {
		c.metrics.IncAvailabilityRejection(reasonLabel(err))
	}
	return err
}

func (c *Checker) check(ctx context.Context, venue *domain.Venue, requested domain.Interval, excludeBookingID *int64) error {
	if !requested.IsValid() {
		return ErrInvalidInterval
	}

	// 1. Операционный статус площадки
	if venue.Status == domain.VenueStatusMaintenance {
		c.logger.Warn("Check: venue id=%d is under maintenance", venue.ID)
		return ErrVenueUnderMaintenance
	}
	if !venue.IsBookable() {
		c.logger.Warn("Check: venue id=%d is not active (status=%s, active=%v)", venue.ID, venue.Status, venue.Active)
		return ErrVenueInactive
	}

	// 2. День недели и рабочие часы
	// Проверка по времени суток, поэтому интервал обязан лежать в одном дне
	if !requested.SameDay() {
		return ErrMultiDayInterval
	}
	if err := c.checkOperatingHours(venue, requested); err != nil {
		return err
	}

	// 3. Минимальная длительность
	if requested.Hours() < venue.MinBookingHours {
		return fmt.Errorf("%w: %.2fh requested, %.2fh minimum", ErrBelowMinimumDuration, requested.Hours(), venue.MinBookingHours)
	}

	// Конфликты считаем по физическому интервалу с учетом буферов на монтаж и уборку
	span := venue.OccupationSpan(requested)

	// 4. Пересечения с существующими бронированиями
	conflicts, err := c.bookings.FindOverlapping(ctx, venue.ID, span, domain.ConflictStatuses, excludeBookingID)
	if err != nil {
		c.logger.Error("Check: failed to query overlapping bookings for venue id=%d: %v", venue.ID, err)
		return fmt.Errorf("%w: failed to query overlapping bookings: %v", ErrInternal, err)
	}
	for _, b := range conflicts {
		if !b.BlocksVenue() {
			continue
		}
		if b.OccupationSpan().Overlaps(span) {
			c.logger.Info("Check: venue id=%d interval conflicts with booking id=%d", venue.ID, b.ID)
			return fmt.Errorf("%w: conflicting booking %s", ErrBookingConflict, b.Reference)
		}
	}

	// 5. Пересечения с окнами обслуживания
	for _, mw := range venue.MaintenanceWindows {
		if mw.Span.Overlaps(span) {
			c.logger.Info("Check: venue id=%d interval overlaps maintenance window id=%d (%s)", venue.ID, mw.ID, mw.Reason)
			return fmt.Errorf("%w: %s", ErrMaintenanceConflict, mw.Reason)
		}
	}

	return nil
}

// checkOperatingHours проверяет, что интервал лежит внутри рабочего окна дня недели
func (c *Checker) checkOperatingHours(venue *domain.Venue, requested domain.Interval) error {
	day := venue.OperatingHours.ForDay(requested.Start.Weekday())
	if !day.Available {
		return fmt.Errorf("%w: %s", ErrDayUnavailable, requested.Start.Weekday())
	}
	if day.Open.IsZero() || day.Close.IsZero() {
		return fmt.Errorf("%w: %s has no operating window", ErrDayUnavailable, requested.Start.Weekday())
	}

	openMin, err := day.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: malformed open time %q: %v", ErrInternal, day.Open, err)
	}

	// "24:00" допускается как маркер закрытия в конце дня
	closeMin := 24 * 60
	if day.Close != "24:00" {
		closeMin, err = day.Close.Minutes()
		if err != nil {
			return fmt.Errorf("%w: malformed close time %q: %v", ErrInternal, day.Close, err)
		}
	}

	startMin, endMin := requested.MinutesOfDay()
	if startMin < openMin || endMin > closeMin {
		return fmt.Errorf("%w: requested window is outside %s-%s",
			ErrOutsideOperatingHours, day.Open, day.Close)
	}

	return nil
}
