package confirm_booking

import "github.com/m04kA/SMC-VenueService/internal/service/bookings/models"

// Request модель запроса на подтверждение бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // Кто подтверждает (персонал отеля)
	Note      *string // Опциональная заметка для таймлайна
}

// Response ответ с подтвержденным бронированием
type Response = models.BookingResponse
