package guestservice

// Guest модель гостя из GuestService
type Guest struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	VIP      bool    `json:"vip"`
}

// ErrorResponse модель ошибки от GuestService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
