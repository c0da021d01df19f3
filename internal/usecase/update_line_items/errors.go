package update_line_items

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_line_items: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_line_items: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("update_line_items: venue not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец
	// бронирования и не входит в персонал отеля
	ErrPermissionDenied = errors.New("update_line_items: permission denied")

	// ErrNotEditable возвращается для завершенных и отмененных бронирований
	ErrNotEditable = errors.New("update_line_items: booking can no longer be edited")

	// ErrVersionConflict возвращается при конкурентном изменении записи
	ErrVersionConflict = errors.New("update_line_items: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_line_items: internal error")
)
