package cancellation

import "errors"

var (
	// ErrUnknownTier возвращается при неизвестной категории политики отмены
	ErrUnknownTier = errors.New("cancellation: unknown policy tier")

	// ErrInvalidAmount возвращается при отрицательной сумме бронирования
	ErrInvalidAmount = errors.New("cancellation: grand total must not be negative")
)
