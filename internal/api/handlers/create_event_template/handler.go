package create_event_template

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/events"
	"github.com/m04kA/SMC-VenueService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgInvalidInput       = "некорректные данные шаблона"
)

// CreateTemplateRequest HTTP request model
type CreateTemplateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	VenueID     int64   `json:"venueId"`
	StartTime   string  `json:"startTime"` // RFC3339
	EndTime     string  `json:"endTime"`   // RFC3339

	Services   []models.LineItemPayload  `json:"services,omitempty"`
	Recurrence *models.RecurrencePayload `json:"recurrence,omitempty"`
}

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-templates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		h.logger.Warn("POST /event-templates - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		h.logger.Warn("POST /event-templates - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateTemplate(r.Context(), &models.CreateTemplateRequest{
		OrganizerID: userID,
		Title:       req.Title,
		Description: req.Description,
		VenueID:     req.VenueID,
		StartTime:   start,
		EndTime:     end,
		Services:    req.Services,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrVenueNotFound):
			h.logger.Warn("POST /event-templates - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /event-templates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /event-templates - Failed to create template: venue_id=%d, error=%v",
				req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-templates - Template created: template_id=%d, organizer_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
