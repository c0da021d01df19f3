package events

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("events: invalid input data")

	// ErrTemplateNotFound возвращается, когда шаблон события не найден
	ErrTemplateNotFound = errors.New("events: event template not found")

	// ErrVenueNotFound возвращается, когда площадка шаблона не найдена
	ErrVenueNotFound = errors.New("events: venue not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("events: internal error")
)
