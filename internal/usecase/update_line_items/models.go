package update_line_items

import (
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// Request модель запроса на замену позиций бронирования
// Переданные списки полностью заменяют прежние: пустой слайс
// удаляет все позиции, nil-указатель кейтеринга убирает кейтеринг
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // Кто редактирует (гость-владелец или персонал отеля)

	Services  []LineItemRequest // Новый набор услуг
	Equipment []LineItemRequest // Новый набор оборудования
	Catering  *CateringRequest  // Новый блок кейтеринга
}

// LineItemRequest позиция услуги или оборудования
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

// Response ответ с обновленным бронированием
type Response struct {
	Booking        *models.BookingResponse `json:"booking"`
	UnderDeposited bool                    `json:"underDeposited"` // Внесенный депозит меньше требуемого после пересчета
}

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
