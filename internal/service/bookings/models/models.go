package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetGuestBookingsRequest запрос на получение истории бронирований гостя
type GetGuestBookingsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
// Доступно только персоналу отеля
type GetVenueBookingsRequest struct {
	UserID          int64      `json:"userId"`
	VenueID         int64      `json:"venueId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить архивные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LineItemResponse позиция услуги или оборудования
type LineItemResponse struct {
	ItemID    int64   `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// CateringResponse блок кейтеринга
type CateringResponse struct {
	MenuID      int64   `json:"menuId"`
	MenuName    string  `json:"menuName"`
	PerHeadRate float64 `json:"perHeadRate"`
	HeadCount   int     `json:"headCount"`
	Total       float64 `json:"total"`
}

// DiscountResponse примененная скидка
type DiscountResponse struct {
	Label   string  `json:"label"`
	Kind    string  `json:"kind"`
	Value   float64 `json:"value"`
	Applied float64 `json:"applied"`
}

// AdditionalCostResponse дополнительный фиксированный сбор
type AdditionalCostResponse struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PricingResponse детализация стоимости
type PricingResponse struct {
	VenuePrice      float64                  `json:"venuePrice"`
	ServicesCost    float64                  `json:"servicesCost"`
	EquipmentCost   float64                  `json:"equipmentCost"`
	CateringCost    float64                  `json:"cateringCost"`
	AdditionalCosts []AdditionalCostResponse `json:"additionalCosts,omitempty"`
	Discounts       []DiscountResponse       `json:"discounts,omitempty"`
	TaxRate         float64                  `json:"taxRate"`
	TaxAmount       float64                  `json:"taxAmount"`
	TotalBeforeTax  float64                  `json:"totalBeforeTax"`
	GrandTotal      float64                  `json:"grandTotal"`
}

// PaymentResponse состояние оплаты
type PaymentResponse struct {
	Status          string  `json:"status"`
	DepositRequired bool    `json:"depositRequired"`
	DepositAmount   float64 `json:"depositAmount"`
	DepositPaid     bool    `json:"depositPaid"`
	AmountPaid      float64 `json:"amountPaid"`
	Balance         float64 `json:"balance"`
}

// TimelineEntryResponse запись таймлайна переходов статуса
type TimelineEntryResponse struct {
	Status string  `json:"status"`
	At     string  `json:"at"` // ISO 8601
	Actor  string  `json:"actor"`
	Note   *string `json:"note,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	VenueID       int64  `json:"venueId"`
	GuestID       int64  `json:"guestId"`
	EventName     string `json:"eventName"`
	StartTime     string `json:"startTime"`  // ISO 8601
	EndTime       string `json:"endTime"`    // ISO 8601
	SetupStart    string `json:"setupStart"` // ISO 8601
	CleanupEnd    string `json:"cleanupEnd"` // ISO 8601
	AttendeeCount int    `json:"attendeeCount"`
	Status        string `json:"status"`

	Services  []LineItemResponse `json:"services,omitempty"`
	Equipment []LineItemResponse `json:"equipment,omitempty"`
	Catering  *CateringResponse  `json:"catering,omitempty"`

	Pricing  PricingResponse         `json:"pricing"`
	Payment  PaymentResponse         `json:"payment"`
	Timeline []TimelineEntryResponse `json:"timeline"`

	CancellationFee    *float64 `json:"cancellationFee,omitempty"`
	CancellationRefund *float64 `json:"cancellationRefund,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		VenueID:            b.VenueID,
		GuestID:            b.GuestID,
		EventName:          b.EventName,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		SetupStart:         b.SetupStart.Format(time.RFC3339),
		CleanupEnd:         b.CleanupEnd.Format(time.RFC3339),
		AttendeeCount:      b.AttendeeCount,
		Status:             string(b.Status),
		Services:           fromDomainLineItems(b.Services),
		Equipment:          fromDomainLineItems(b.Equipment),
		Pricing:            fromDomainPricing(b.Pricing),
		Payment:            fromDomainPayment(b.Payment),
		Timeline:           fromDomainTimeline(b.Timeline),
		CancellationFee:    b.CancellationFee,
		CancellationRefund: b.CancellationRefund,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Catering != nil {
		resp.Catering = &CateringResponse{
			MenuID:      b.Catering.MenuID,
			MenuName:    b.Catering.MenuName,
			PerHeadRate: b.Catering.PerHeadRate,
			HeadCount:   b.Catering.HeadCount,
			Total:       b.Catering.Total(),
		}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

func fromDomainLineItems(items []domain.LineItem) []LineItemResponse {
	if len(items) == 0 {
		return nil
	}
	resp := make([]LineItemResponse, len(items))
	for i, li := range items {
		resp[i] = LineItemResponse{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			Total:     li.Total(),
		}
	}
	return resp
}

func fromDomainPricing(p domain.PricingBreakdown) PricingResponse {
	resp := PricingResponse{
		VenuePrice:     p.VenuePrice,
		ServicesCost:   p.ServicesCost,
		EquipmentCost:  p.EquipmentCost,
		CateringCost:   p.CateringCost,
		TaxRate:        p.TaxRate,
		TaxAmount:      p.TaxAmount,
		TotalBeforeTax: p.TotalBeforeTax,
		GrandTotal:     p.GrandTotal,
	}

	for _, ac := range p.AdditionalCosts {
		resp.AdditionalCosts = append(resp.AdditionalCosts, AdditionalCostResponse{
			Label:  ac.Label,
			Amount: ac.Amount,
		})
	}
	for _, d := range p.Discounts {
		resp.Discounts = append(resp.Discounts, DiscountResponse{
			Label:   d.Label,
			Kind:    string(d.Kind),
			Value:   d.Value,
			Applied: d.Applied,
		})
	}

	return resp
}

func fromDomainPayment(p domain.PaymentInfo) PaymentResponse {
	return PaymentResponse{
		Status:          string(p.Status),
		DepositRequired: p.DepositRequired,
		DepositAmount:   p.DepositAmount,
		DepositPaid:     p.DepositPaid,
		AmountPaid:      p.AmountPaid,
		Balance:         p.Balance,
	}
}

func fromDomainTimeline(entries []domain.TimelineEntry) []TimelineEntryResponse {
	resp := make([]TimelineEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = TimelineEntryResponse{
			Status: string(e.Status),
			At:     e.At.Format(time.RFC3339),
			Actor:  e.Actor,
			Note:   e.Note,
		}
	}
	return resp
}
