package availability

import "errors"

// Ошибки-причины недоступности. Возвращаются вместо голого bool,
// чтобы вызывающая сторона могла показать конкретную причину отказа
var (
	// ErrVenueInactive возвращается, когда площадка выключена или в архиве
	ErrVenueInactive = errors.New("availability: venue is not active")

	// ErrVenueUnderMaintenance возвращается, когда площадка в статусе обслуживания
	ErrVenueUnderMaintenance = errors.New("availability: venue is under maintenance")

	// ErrMultiDayInterval возвращается для интервалов, выходящих за границы одного дня
	ErrMultiDayInterval = errors.New("availability: booking interval must not span multiple days")

	// ErrDayUnavailable возвращается, когда день недели закрыт для бронирования
	ErrDayUnavailable = errors.New("availability: venue is not available on this day of week")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы дня
	ErrOutsideOperatingHours = errors.New("availability: interval is outside venue operating hours")

	// ErrBelowMinimumDuration возвращается, когда интервал короче минимальной длительности
	ErrBelowMinimumDuration = errors.New("availability: interval is below the minimum booking duration")

	// ErrBookingConflict возвращается при пересечении с существующим бронированием
	ErrBookingConflict = errors.New("availability: interval overlaps an existing booking")

	// ErrMaintenanceConflict возвращается при пересечении с окном обслуживания
	ErrMaintenanceConflict = errors.New("availability: interval overlaps a maintenance window")

	// ErrInvalidInterval возвращается при некорректном интервале
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)

// Reason возвращает машиночитаемую метку причины отказа
// Используется в метриках и в ответах проверки доступности
func Reason(err error) string {
	return reasonLabel(err)
}

// reasonLabel метка причины отказа для метрик
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, ErrVenueInactive):
		return "venue_inactive"
	case errors.Is(err, ErrVenueUnderMaintenance):
		return "venue_under_maintenance"
	case errors.Is(err, ErrMultiDayInterval):
		return "multi_day_interval"
	case errors.Is(err, ErrDayUnavailable):
		return "day_unavailable"
	case errors.Is(err, ErrOutsideOperatingHours):
		return "outside_operating_hours"
	case errors.Is(err, ErrBelowMinimumDuration):
		return "below_minimum_duration"
	case errors.Is(err, ErrBookingConflict):
		return "booking_conflict"
	case errors.Is(err, ErrMaintenanceConflict):
		return "maintenance_conflict"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	default:
		return "internal"
	}
}
