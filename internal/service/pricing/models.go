package pricing

import "github.com/m04kA/SMC-VenueService/internal/domain"

// Input входные данные расчета стоимости бронирования
// Все позиции передаются с ценами, зафиксированными на момент бронирования
type Input struct {
	Venue           *domain.Venue
	Interval        domain.Interval
	Services        []domain.LineItem
	Equipment       []domain.LineItem
	Catering        *domain.CateringBlock
	AdditionalCosts []domain.AdditionalCost
	Discounts       []domain.Discount
	TaxRate         float64
}
