package hotelservice

import "errors"

var (
	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("hotelservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("hotelservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что HotelService недоступен и следует использовать
	// дефолтные ставки налога и депозита
	ErrServiceDegraded = errors.New("hotelservice unavailable: graceful degradation applied")
)
