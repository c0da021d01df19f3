package cancel_booking

import "github.com/m04kA/SMC-VenueService/internal/service/bookings/models"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID      int64    // ID бронирования
	UserID         int64    // Кто отменяет (гость-владелец или персонал отеля)
	Reason         *string  // Причина отмены
	RefundOverride *float64 // Ручная корректировка возврата (только персонал)
}

// Response ответ с отмененным бронированием
type Response = models.BookingResponse
