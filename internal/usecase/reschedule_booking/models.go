package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID     int64     // ID бронирования
	UserID        int64     // Кто переносит (гость-владелец или персонал отеля)
	StartTime     time.Time // Новое начало события
	EndTime       time.Time // Новый конец события
	AttendeeCount *int      // Новое число гостей (опционально)
	Note          *string   // Заметка для таймлайна
}

// Response ответ с перенесенным бронированием
type Response struct {
	Booking        *models.BookingResponse `json:"booking"`
	UnderDeposited bool                    `json:"underDeposited"` // Внесенный депозит меньше требуемого после пересчета
}
