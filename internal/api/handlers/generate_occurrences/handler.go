package generate_occurrences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	generateOccurrences "github.com/m04kA/SMC-VenueService/internal/usecase/generate_occurrences"
)

const (
	msgInvalidTemplateID  = "некорректный ID шаблона события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTemplateNotFound   = "шаблон события не найден"
	msgNoRecurrence       = "у шаблона нет правила повторения"
	msgInvalidRule        = "некорректное правило повторения"
	msgInvalidLimit       = "некорректный лимит генерации"
)

// GenerateOccurrencesRequest HTTP request model (тело опционально)
type GenerateOccurrencesRequest struct {
	Limit *int `json:"limit,omitempty"`
}

type Handler struct {
	useCase GenerateOccurrencesUseCase
	logger  Logger
}

func NewHandler(useCase GenerateOccurrencesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-templates/{templateId}/occurrences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /event-templates/{id}/occurrences - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req GenerateOccurrencesRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /event-templates/{id}/occurrences - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &generateOccurrences.Request{
		TemplateID: templateID,
		Limit:      req.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateOccurrences.ErrTemplateNotFound):
			h.logger.Warn("POST /event-templates/{id}/occurrences - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, generateOccurrences.ErrNoRecurrence):
			h.logger.Warn("POST /event-templates/{id}/occurrences - No recurrence rule: template_id=%d", templateID)
			handlers.RespondUnprocessable(w, msgNoRecurrence)

		case errors.Is(err, generateOccurrences.ErrInvalidRule):
			h.logger.Warn("POST /event-templates/{id}/occurrences - Invalid rule: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondUnprocessable(w, msgInvalidRule)

		case errors.Is(err, generateOccurrences.ErrInvalidInput):
			h.logger.Warn("POST /event-templates/{id}/occurrences - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("POST /event-templates/{id}/occurrences - Failed: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-templates/{id}/occurrences - Generated %d drafts: template_id=%d",
		len(result.Drafts), templateID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
