package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("cancel_booking: venue not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец
	// бронирования и не входит в персонал отеля
	ErrPermissionDenied = errors.New("cancel_booking: permission denied")

	// ErrVersionConflict возвращается при конкурентном изменении записи
	ErrVersionConflict = errors.New("cancel_booking: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
