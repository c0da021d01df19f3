package create_venue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/venues"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgHotelNotFound      = "отель не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные площадки"
)

// CreateVenueRequest HTTP request model
type CreateVenueRequest struct {
	HotelID     int64   `json:"hotelId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	CapacityMin int `json:"capacityMin"`
	CapacityMax int `json:"capacityMax"`

	BasePrice    float64 `json:"basePrice"`
	PricePerHour float64 `json:"pricePerHour"`

	SetupBufferMinutes   int     `json:"setupBufferMinutes"`
	CleanupBufferMinutes int     `json:"cleanupBufferMinutes"`
	MinBookingHours      float64 `json:"minBookingHours"`

	OperatingHours   models.WeekSchedulePayload `json:"operatingHours"`
	CancellationTier string                     `json:"cancellationTier"`
}

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateVenueRequest{
		UserID:               userID,
		HotelID:              req.HotelID,
		Name:                 req.Name,
		Description:          req.Description,
		CapacityMin:          req.CapacityMin,
		CapacityMax:          req.CapacityMax,
		BasePrice:            req.BasePrice,
		PricePerHour:         req.PricePerHour,
		SetupBufferMinutes:   req.SetupBufferMinutes,
		CleanupBufferMinutes: req.CleanupBufferMinutes,
		MinBookingHours:      req.MinBookingHours,
		OperatingHours:       req.OperatingHours,
		CancellationTier:     req.CancellationTier,
	})
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrHotelNotFound):
			h.logger.Warn("POST /venues - Hotel not found: hotel_id=%d", req.HotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("POST /venues - Access denied: hotel_id=%d, user_id=%d", req.HotelID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("POST /venues - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /venues - Failed to create venue: hotel_id=%d, error=%v", req.HotelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues - Venue created: venue_id=%d, hotel_id=%d, user_id=%d",
		result.ID, req.HotelID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
