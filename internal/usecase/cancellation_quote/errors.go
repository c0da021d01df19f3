package cancellation_quote

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancellation_quote: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancellation_quote: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("cancellation_quote: venue not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец
	// бронирования и не входит в персонал отеля
	ErrPermissionDenied = errors.New("cancellation_quote: permission denied")

	// ErrNotCancellable возвращается для бронирований в терминальном статусе
	ErrNotCancellable = errors.New("cancellation_quote: booking can no longer be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancellation_quote: internal error")
)
