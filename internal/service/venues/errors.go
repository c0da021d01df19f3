package venues

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("venues: invalid input data")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venues: venue not found")

	// ErrWindowNotFound возвращается, когда окно обслуживания не найдено
	ErrWindowNotFound = errors.New("venues: maintenance window not found")

	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = errors.New("venues: hotel not found")

	// ErrAccessDenied возвращается, когда пользователь не входит в персонал отеля
	ErrAccessDenied = errors.New("venues: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("venues: internal error")
)
