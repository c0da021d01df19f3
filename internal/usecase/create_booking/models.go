package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestID       int64     // ID гостя
	VenueID       int64     // ID площадки
	EventName     string    // Название мероприятия
	StartTime     time.Time // Начало интервала
	EndTime       time.Time // Конец интервала (полуоткрытый [start, end))
	AttendeeCount int       // Количество гостей мероприятия

	Services  []LineItemRequest // Дополнительные услуги
	Equipment []LineItemRequest // Оборудование
	Catering  *CateringRequest  // Кейтеринг (опционально)

	Discounts       []DiscountRequest       // Скидки
	AdditionalCosts []AdditionalCostRequest // Дополнительные сборы

	// InitialStatus начальный статус: inquiry или pending
	// По умолчанию pending
	InitialStatus *string
}

// LineItemRequest позиция услуги или оборудования
// Цена фиксируется на момент бронирования
type LineItemRequest struct {
	ItemID    int64
	Name      string
	UnitPrice float64
	Quantity  int
}

// CateringRequest блок кейтеринга
type CateringRequest struct {
	MenuID      int64
	MenuName    string
	PerHeadRate float64
	HeadCount   int
}

// DiscountRequest скидка: фиксированная сумма или процент
type DiscountRequest struct {
	Label string
	Kind  string // flat | percent
	Value float64
}

// AdditionalCostRequest дополнительный фиксированный сбор
type AdditionalCostRequest struct {
	Label  string
	Amount float64
}

// Response ответ с созданным бронированием
type Response = models.BookingResponse

func (r *Request) domainServices() []domain.LineItem {
	return toDomainLineItems(r.Services)
}

func (r *Request) domainEquipment() []domain.LineItem {
	return toDomainLineItems(r.Equipment)
}

func (r *Request) domainCatering() *domain.CateringBlock {
	if r.Catering == nil {
		return nil
	}
	return &domain.CateringBlock{
		MenuID:      r.Catering.MenuID,
		MenuName:    r.Catering.MenuName,
		PerHeadRate: r.Catering.PerHeadRate,
		HeadCount:   r.Catering.HeadCount,
	}
}

func (r *Request) domainDiscounts() []domain.Discount {
	if len(r.Discounts) == 0 {
		return nil
	}
	discounts := make([]domain.Discount, len(r.Discounts))
	for i, d := range r.Discounts {
		discounts[i] = domain.Discount{
			Label: d.Label,
			Kind:  domain.DiscountKind(d.Kind),
			Value: d.Value,
		}
	}
	return discounts
}

func (r *Request) domainAdditionalCosts() []domain.AdditionalCost {
	if len(r.AdditionalCosts) == 0 {
		return nil
	}
	costs := make([]domain.AdditionalCost, len(r.AdditionalCosts))
	for i, c := range r.AdditionalCosts {
		costs[i] = domain.AdditionalCost{Label: c.Label, Amount: c.Amount}
	}
	return costs
}

func toDomainLineItems(items []LineItemRequest) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.LineItem, len(items))
	for i, li := range items {
		out[i] = domain.LineItem{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return out
}
