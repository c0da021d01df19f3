package update_venue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/venues"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные площадки"
)

// UpdateVenueRequest HTTP request model, nil-поля не изменяются
type UpdateVenueRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	CapacityMin *int `json:"capacityMin,omitempty"`
	CapacityMax *int `json:"capacityMax,omitempty"`

	BasePrice    *float64 `json:"basePrice,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`

	SetupBufferMinutes   *int     `json:"setupBufferMinutes,omitempty"`
	CleanupBufferMinutes *int     `json:"cleanupBufferMinutes,omitempty"`
	MinBookingHours      *float64 `json:"minBookingHours,omitempty"`

	Status           *string                     `json:"status,omitempty"`
	OperatingHours   *models.WeekSchedulePayload `json:"operatingHours,omitempty"`
	CancellationTier *string                     `json:"cancellationTier,omitempty"`
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

// Handle PATCH /api/v1/venues/{venueId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /venues/{id} - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /venues/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /venues/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateVenueRequest{
		UserID:               userID,
		VenueID:              venueID,
		Name:                 req.Name,
		Description:          req.Description,
		CapacityMin:          req.CapacityMin,
		CapacityMax:          req.CapacityMax,
		BasePrice:            req.BasePrice,
		PricePerHour:         req.PricePerHour,
		SetupBufferMinutes:   req.SetupBufferMinutes,
		CleanupBufferMinutes: req.CleanupBufferMinutes,
		MinBookingHours:      req.MinBookingHours,
		Status:               req.Status,
		OperatingHours:       req.OperatingHours,
		CancellationTier:     req.CancellationTier,
	})
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("PATCH /venues/{id} - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("PATCH /venues/{id} - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("PATCH /venues/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /venues/{id} - Failed to update venue: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /venues/{id} - Venue updated: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
