package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrGuestNotFound возвращается, когда гость не найден
	ErrGuestNotFound = errors.New("create_booking: guest not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrCapacityExceeded возвращается, когда количество гостей не попадает
	// в допустимую вместимость площадки
	ErrCapacityExceeded = errors.New("create_booking: attendee count is out of venue capacity")

	// ErrVenueUnavailable возвращается, когда интервал недоступен для
	// бронирования; текст содержит конкретную причину отказа
	ErrVenueUnavailable = errors.New("create_booking: venue is not available for the requested interval")

	// ErrInvalidStatus возвращается, когда запрошен недопустимый начальный статус
	ErrInvalidStatus = errors.New("create_booking: initial status must be inquiry or pending")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
