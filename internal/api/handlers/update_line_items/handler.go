package update_line_items

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	updateLineItems "github.com/m04kA/SMC-VenueService/internal/usecase/update_line_items"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotEditable        = "изменение позиций недопустимо из текущего статуса"
	msgVersionConflict    = "бронирование было изменено, повторите запрос"
	msgInvalidInput       = "некорректные позиции бронирования"
)

// UpdateLineItemsRequest HTTP request model
// Списки заменяют прежние значения целиком
type UpdateLineItemsRequest struct {
	Services  []LineItemPayload `json:"services"`
	Equipment []LineItemPayload `json:"equipment"`
	Catering  *CateringPayload  `json:"catering,omitempty"`
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

type Handler struct {
	useCase UpdateLineItemsUseCase
	logger  Logger
}

func NewHandler(useCase UpdateLineItemsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/items - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateLineItemsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &updateLineItems.Request{
		BookingID: bookingID,
		UserID:    userID,
		Services:  toLineItemRequests(req.Services),
		Equipment: toLineItemRequests(req.Equipment),
	}
	if req.Catering != nil {
		useCaseReq.Catering = &updateLineItems.CateringRequest{
			MenuID:      req.Catering.MenuID,
			MenuName:    req.Catering.MenuName,
			PerHeadRate: req.Catering.PerHeadRate,
			HeadCount:   req.Catering.HeadCount,
		}
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateLineItems.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/items - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateLineItems.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id}/items - Permission denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateLineItems.ErrNotEditable):
			h.logger.Warn("PATCH /bookings/{id}/items - Not editable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotEditable)

		case errors.Is(err, updateLineItems.ErrVersionConflict):
			h.logger.Warn("PATCH /bookings/{id}/items - Version conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, updateLineItems.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/items - Failed to update items: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/items - Items updated: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func toLineItemRequests(items []LineItemPayload) []updateLineItems.LineItemRequest {
	if len(items) == 0 {
		return nil
	}
	out := make([]updateLineItems.LineItemRequest, len(items))
	for i, li := range items {
		out[i] = updateLineItems.LineItemRequest{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return out
}
