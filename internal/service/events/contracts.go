package events

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// EventRepository интерфейс репозитория шаблонов событий
type EventRepository interface {
	CreateTemplate(ctx context.Context, template *domain.EventTemplate) (*domain.EventTemplate, error)
	GetTemplateByID(ctx context.Context, id int64) (*domain.EventTemplate, error)
	ListDraftsByTemplate(ctx context.Context, templateID int64) ([]domain.EventDraft, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
