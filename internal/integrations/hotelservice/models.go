package hotelservice

// Hotel модель отеля из HotelService
// TaxRate и DepositPercent - доли (0.10 = 10%), не проценты
type Hotel struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Timezone       string  `json:"timezone"`
	TaxRate        float64 `json:"tax_rate"`
	DepositPercent float64 `json:"deposit_percent"`
	StaffIDs       []int64 `json:"staff_ids"`
}

// ErrorResponse модель ошибки от HotelService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
