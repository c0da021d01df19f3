package generate_occurrences

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// EventRepository интерфейс репозитория шаблонов событий
type EventRepository interface {
	GetTemplateByID(ctx context.Context, id int64) (*domain.EventTemplate, error)
	SaveDrafts(ctx context.Context, templateID int64, drafts []domain.EventDraft) error
}

// OccurrenceGenerator разворачивает правило повторения в черновики
type OccurrenceGenerator interface {
	Generate(template *domain.EventTemplate, limit int) ([]domain.EventDraft, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// OccurrenceCounter интерфейс для метрик генерации черновиков
type OccurrenceCounter interface {
	AddOccurrencesGenerated(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
