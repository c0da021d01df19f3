package create_event_template

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/events/models"
)

type EventService interface {
	CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
