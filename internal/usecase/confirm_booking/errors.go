package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("confirm_booking: venue not found")

	// ErrVersionConflict возвращается при конкурентном изменении записи
	// Операция повторяема: нужно перечитать бронирование и попробовать снова
	ErrVersionConflict = errors.New("confirm_booking: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
