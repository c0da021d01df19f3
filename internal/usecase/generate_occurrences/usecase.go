package generate_occurrences

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	eventRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/event"
	"github.com/m04kA/SMC-VenueService/internal/service/recurrence"
)

// UseCase use case для разворачивания правила повторения шаблона
// в серию черновиков событий. Повторный вызов перегенерирует серию:
// старые черновики шаблона заменяются новыми
type UseCase struct {
	eventRepo  EventRepository
	generator  OccurrenceGenerator
	txManager  TransactionManager
	maxDrafts  int
	metrics    OccurrenceCounter
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
// maxDrafts ограничивает размер серии, metrics может быть nil
func NewUseCase(
	eventRepository EventRepository,
	generator OccurrenceGenerator,
	txManager TransactionManager,
	maxDrafts int,
	metrics OccurrenceCounter,
	logger Logger,
) *UseCase {
	if maxDrafts <= 0 || maxDrafts > domain.MaxRecurrenceLimit {
		maxDrafts = domain.MaxRecurrenceLimit
	}
	return &UseCase{
		eventRepo: eventRepository,
		generator: generator,
		txManager: txManager,
		maxDrafts: maxDrafts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute выполняет use case генерации черновиков
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateOccurrences: template=%d", req.TemplateID)

	if req.TemplateID <= 0 {
		return nil, fmt.Errorf("%w: templateID must be positive", ErrInvalidInput)
	}
	limit := uc.maxDrafts
	if req.Limit != nil {
		if *req.Limit <= 0 {
			return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
		}
		if *req.Limit < limit {
			limit = *req.Limit
		}
	}

	var drafts []domain.EventDraft

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		template, err := uc.eventRepo.GetTemplateByID(txCtx, req.TemplateID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrTemplateNotFound) {
				uc.logger.Warn("GenerateOccurrences: template id=%d not found", req.TemplateID)
				return ErrTemplateNotFound
			}
			uc.logger.Error("GenerateOccurrences: failed to get template id=%d: %v", req.TemplateID, err)
			return fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
		}

		drafts, err = uc.generator.Generate(template, limit)
		if err != nil {
			switch {
			case errors.Is(err, recurrence.ErrNoRule):
				uc.logger.Warn("GenerateOccurrences: template id=%d has no recurrence rule", req.TemplateID)
				return ErrNoRecurrence
			case errors.Is(err, recurrence.ErrInvalidPattern),
				errors.Is(err, recurrence.ErrInvalidInterval),
				errors.Is(err, recurrence.ErrInvalidAnchor),
				errors.Is(err, recurrence.ErrInvalidLimit):
				uc.logger.Warn("GenerateOccurrences: template id=%d has invalid rule: %v", req.TemplateID, err)
				return fmt.Errorf("%w: %v", ErrInvalidRule, err)
			default:
				uc.logger.Error("GenerateOccurrences: generation failed for template id=%d: %v", req.TemplateID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		if err := uc.eventRepo.SaveDrafts(txCtx, template.ID, drafts); err != nil {
			uc.logger.Error("GenerateOccurrences: failed to save drafts for template id=%d: %v", req.TemplateID, err)
			return fmt.Errorf("%w: failed to save drafts: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AddOccurrencesGenerated(len(drafts))
	}
	uc.logger.Info("GenerateOccurrences: template id=%d expanded into %d drafts", req.TemplateID, len(drafts))

	return fromDomainDrafts(req.TemplateID, drafts), nil
}
