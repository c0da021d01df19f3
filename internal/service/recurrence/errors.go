package recurrence

import "errors"

var (
	// ErrNoRule возвращается, когда у шаблона нет правила повторения
	ErrNoRule = errors.New("recurrence: template has no recurrence rule")

	// ErrInvalidPattern возвращается при неизвестном паттерне повторения
	ErrInvalidPattern = errors.New("recurrence: invalid recurrence pattern")

	// ErrInvalidInterval возвращается, когда шаг правила меньше 1
	ErrInvalidInterval = errors.New("recurrence: rule interval must be at least 1")

	// ErrInvalidAnchor возвращается при некорректном якорном интервале шаблона
	ErrInvalidAnchor = errors.New("recurrence: template anchor interval is invalid")

	// ErrInvalidLimit возвращается при неположительном лимите генерации
	ErrInvalidLimit = errors.New("recurrence: limit must be positive")
)
