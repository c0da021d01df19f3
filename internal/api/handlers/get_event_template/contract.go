package get_event_template

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/events/models"
)

type EventService interface {
	GetTemplate(ctx context.Context, templateID int64) (*models.TemplateResponse, error)
	ListDrafts(ctx context.Context, templateID int64) (*models.DraftListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
