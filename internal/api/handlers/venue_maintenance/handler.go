package venue_maintenance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/venues"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidWindowID    = "некорректный ID окна обслуживания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgWindowNotFound     = "окно обслуживания не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректный интервал обслуживания"
)

// AddWindowRequest HTTP request model
type AddWindowRequest struct {
	Start  string `json:"start"` // RFC3339
	End    string `json:"end"`   // RFC3339
	Reason string `json:"reason"`
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

// HandleAdd POST /api/v1/venues/{venueId}/maintenance-windows
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/maintenance-windows - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues/{id}/maintenance-windows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/maintenance-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/maintenance-windows - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/maintenance-windows - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.AddMaintenanceWindow(r.Context(), &models.AddMaintenanceWindowRequest{
		UserID:  userID,
		VenueID: venueID,
		Start:   start,
		End:     end,
		Reason:  req.Reason,
	})
	if err != nil {
		h.respondServiceError(w, "POST /venues/{id}/maintenance-windows", venueID, userID, err)
		return
	}

	h.logger.Info("POST /venues/{id}/maintenance-windows - Window added: venue_id=%d, window_id=%d",
		venueID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleRemove DELETE /api/v1/venues/{venueId}/maintenance-windows/{windowId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/maintenance-windows/{windowId} - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}
	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/maintenance-windows/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /venues/{id}/maintenance-windows/{windowId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveMaintenanceWindow(r.Context(), venueID, windowID, userID); err != nil {
		h.respondServiceError(w, "DELETE /venues/{id}/maintenance-windows/{windowId}", venueID, userID, err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/maintenance-windows/{windowId} - Window removed: venue_id=%d, window_id=%d",
		venueID, windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, venueID, userID int64, err error) {
	switch {
	case errors.Is(err, venues.ErrVenueNotFound):
		h.logger.Warn("%s - Venue not found: venue_id=%d", op, venueID)
		handlers.RespondNotFound(w, msgVenueNotFound)

	case errors.Is(err, venues.ErrWindowNotFound):
		h.logger.Warn("%s - Window not found: venue_id=%d", op, venueID)
		handlers.RespondNotFound(w, msgWindowNotFound)

	case errors.Is(err, venues.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: venue_id=%d, user_id=%d", op, venueID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, venues.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: venue_id=%d, error=%v", op, venueID, err)
		handlers.RespondInternalError(w)
	}
}
