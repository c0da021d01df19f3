package check_availability

import "time"

// Request модель запроса проверки доступности площадки
type Request struct {
	VenueID int64     // ID площадки
	Start   time.Time // Начало интервала
	End     time.Time // Конец интервала (полуоткрытый [start, end))
}

// Response результат проверки доступности
type Response struct {
	VenueID   int64     `json:"venueId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    *string   `json:"reason,omitempty"` // Причина отказа, если недоступна
}
