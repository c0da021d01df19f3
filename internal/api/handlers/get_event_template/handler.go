package get_event_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/service/events"
)

const (
	msgInvalidTemplateID = "некорректный ID шаблона события"
	msgTemplateNotFound  = "шаблон события не найден"
)

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

// Handle GET /api/v1/event-templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	templateID, ok := h.templateID(w, r, "GET /event-templates/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetTemplate(r.Context(), templateID)
	if err != nil {
		h.respondServiceError(w, "GET /event-templates/{id}", templateID, err)
		return
	}

	h.logger.Info("GET /event-templates/{id} - Template retrieved: template_id=%d", templateID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDrafts GET /api/v1/event-templates/{templateId}/occurrences
func (h *Handler) HandleDrafts(w http.ResponseWriter, r *http.Request) {
	templateID, ok := h.templateID(w, r, "GET /event-templates/{id}/occurrences")
	if !ok {
		return
	}

	result, err := h.service.ListDrafts(r.Context(), templateID)
	if err != nil {
		h.respondServiceError(w, "GET /event-templates/{id}/occurrences", templateID, err)
		return
	}

	h.logger.Info("GET /event-templates/{id}/occurrences - Drafts listed: template_id=%d, count=%d",
		templateID, len(result.Drafts))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) templateID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	templateID, err := strconv.ParseInt(mux.Vars(r)["templateId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid template ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return 0, false
	}
	return templateID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, templateID int64, err error) {
	switch {
	case errors.Is(err, events.ErrTemplateNotFound):
		h.logger.Warn("%s - Template not found: template_id=%d", op, templateID)
		handlers.RespondNotFound(w, msgTemplateNotFound)

	default:
		h.logger.Error("%s - Failed: template_id=%d, error=%v", op, templateID, err)
		handlers.RespondInternalError(w)
	}
}
