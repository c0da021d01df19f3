package generate_occurrences

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Request модель запроса на генерацию черновиков событий
type Request struct {
	TemplateID int64 // ID шаблона события
	Limit      *int  // Верхняя граница числа черновиков (опционально)
}

// DraftResponse черновик события из развернутого правила повторения
type DraftResponse struct {
	TemplateID  int64     `json:"templateId"`
	Sequence    int       `json:"sequence"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	VenueID     int64     `json:"venueId"`
	OrganizerID int64     `json:"organizerId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
}

// Response ответ со сгенерированными черновиками
type Response struct {
	TemplateID int64           `json:"templateId"`
	Drafts     []DraftResponse `json:"drafts"`
}

func fromDomainDrafts(templateID int64, drafts []domain.EventDraft) *Response {
	out := make([]DraftResponse, len(drafts))
	for i, d := range drafts {
		out[i] = DraftResponse{
			TemplateID:  d.TemplateID,
			Sequence:    d.Sequence,
			Title:       d.Title,
			Description: d.Description,
			VenueID:     d.VenueID,
			OrganizerID: d.OrganizerID,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Status:      d.Status,
		}
	}
	return &Response{TemplateID: templateID, Drafts: out}
}
