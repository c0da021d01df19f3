package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID       int64  `json:"venueId"`
	EventName     string `json:"eventName"`
	StartTime     string `json:"startTime"` // RFC3339
	EndTime       string `json:"endTime"`   // RFC3339
	AttendeeCount int    `json:"attendeeCount"`

	Services  []LineItemPayload `json:"services,omitempty"`
	Equipment []LineItemPayload `json:"equipment,omitempty"`
	Catering  *CateringPayload  `json:"catering,omitempty"`

	Discounts       []DiscountPayload       `json:"discounts,omitempty"`
	AdditionalCosts []AdditionalCostPayload `json:"additionalCosts,omitempty"`

	InitialStatus *string `json:"initialStatus,omitempty"` // inquiry | pending
}

// LineItemPayload позиция услуги или оборудования
type LineItemPayload struct {
	ItemID    int64   `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// CateringPayload блок кейтеринга
type CateringPayload struct {
	MenuID      int64   `json:"menuId"`
	MenuName    string  `json:"menuName"`
	PerHeadRate float64 `json:"perHeadRate"`
	HeadCount   int     `json:"headCount"`
}

// DiscountPayload скидка
type DiscountPayload struct {
	Label string  `json:"label"`
	Kind  string  `json:"kind"` // flat | percent
	Value float64 `json:"value"`
}

// AdditionalCostPayload дополнительный сбор
type AdditionalCostPayload struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(guestID int64) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		GuestID:       guestID,
		VenueID:       r.VenueID,
		EventName:     r.EventName,
		StartTime:     start,
		EndTime:       end,
		AttendeeCount: r.AttendeeCount,
		Catering:      toCateringRequest(r.Catering),
		InitialStatus: r.InitialStatus,
	}
	req.Services = toLineItemRequests(r.Services)
	req.Equipment = toLineItemRequests(r.Equipment)
	for _, d := range r.Discounts {
		req.Discounts = append(req.Discounts, createBooking.DiscountRequest{
			Label: d.Label,
			Kind:  d.Kind,
			Value: d.Value,
		})
	}
	for _, c := range r.AdditionalCosts {
		req.AdditionalCosts = append(req.AdditionalCosts, createBooking.AdditionalCostRequest{
			Label:  c.Label,
			Amount: c.Amount,
		})
	}
	return req, nil
}

func toLineItemRequests(items []LineItemPayload) []createBooking.LineItemRequest {
	if len(items) == 0 {
		return nil
	}
	out := make([]createBooking.LineItemRequest, len(items))
	for i, li := range items {
		out[i] = createBooking.LineItemRequest{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return out
}

func toCateringRequest(c *CateringPayload) *createBooking.CateringRequest {
	if c == nil {
		return nil
	}
	return &createBooking.CateringRequest{
		MenuID:      c.MenuID,
		MenuName:    c.MenuName,
		PerHeadRate: c.PerHeadRate,
		HeadCount:   c.HeadCount,
	}
}
