package cancellation_quote

// Request модель запроса котировки отмены
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // Кто спрашивает (гость-владелец или персонал отеля)
}

// Response котировка отмены без изменения бронирования
type Response struct {
	BookingID       int64   `json:"bookingId"`
	Tier            string  `json:"tier"`
	DaysUntilEvent  int     `json:"daysUntilEvent"`
	FeePercent      float64 `json:"feePercent"`
	Fee             float64 `json:"fee"`
	SuggestedRefund float64 `json:"suggestedRefund"`
}
