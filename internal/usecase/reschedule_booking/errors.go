package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("reschedule_booking: venue not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец
	// бронирования и не входит в персонал отеля
	ErrPermissionDenied = errors.New("reschedule_booking: permission denied")

	// ErrNotReschedulable возвращается для завершенных и отмененных бронирований
	ErrNotReschedulable = errors.New("reschedule_booking: booking can no longer be rescheduled")

	// ErrCapacityExceeded возвращается, когда число гостей не подходит площадке
	ErrCapacityExceeded = errors.New("reschedule_booking: attendee count is out of venue capacity")

	// ErrVenueUnavailable возвращается, когда новый интервал недоступен
	ErrVenueUnavailable = errors.New("reschedule_booking: venue is not available for the requested interval")

	// ErrVersionConflict возвращается при конкурентном изменении записи
	ErrVersionConflict = errors.New("reschedule_booking: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
