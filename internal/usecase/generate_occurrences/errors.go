package generate_occurrences

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_occurrences: invalid input data")

	// ErrTemplateNotFound возвращается, когда шаблон события не найден
	ErrTemplateNotFound = errors.New("generate_occurrences: event template not found")

	// ErrNoRecurrence возвращается для шаблона без правила повторения
	ErrNoRecurrence = errors.New("generate_occurrences: template has no recurrence rule")

	// ErrInvalidRule возвращается при некорректном правиле повторения
	ErrInvalidRule = errors.New("generate_occurrences: invalid recurrence rule")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_occurrences: internal error")
)
