package lifecycle

import "errors"

var (
	// ErrIllegalTransition возвращается при запрещенном переходе статуса
	// Повторная отмена и переводы назад по цепочке - тоже ошибка, не no-op
	ErrIllegalTransition = errors.New("lifecycle: illegal status transition")

	// ErrBookingArchived возвращается при попытке перевести архивное бронирование
	ErrBookingArchived = errors.New("lifecycle: booking is archived")

	// ErrDepositRequired возвращается при подтверждении без внесенного депозита
	ErrDepositRequired = errors.New("lifecycle: deposit must be paid before confirmation")

	// ErrRevalidationFailed возвращается, когда повторная проверка доступности
	// при подтверждении не прошла
	ErrRevalidationFailed = errors.New("lifecycle: availability revalidation failed")

	// ErrVenueRequired возвращается, когда для перехода нужна площадка,
	// а она не передана
	ErrVenueRequired = errors.New("lifecycle: venue is required for this transition")

	// ErrUnknownStatus возвращается при неизвестном статусе бронирования
	ErrUnknownStatus = errors.New("lifecycle: unknown booking status")

	// ErrInternal возвращается при внутренних ошибках машины состояний
	ErrInternal = errors.New("lifecycle: internal error")
)
