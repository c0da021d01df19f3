package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	eventRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/event"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/events/models"
)

// Service сервис управления шаблонами повторяющихся событий
// Шаблон описывает якорное событие и правило повторения,
// разворачивание в черновики выполняет отдельный usecase
type Service struct {
	eventRepo EventRepository
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(eventRepository EventRepository, venueRepository VenueRepository, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepository,
		venueRepo: venueRepository,
		logger:    logger,
	}
}

// CreateTemplate создает шаблон события
func (s *Service) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("CreateTemplate: title=%q, venue=%d, organizer=%d", req.Title, req.VenueID, req.OrganizerID)

	if err := validateCreateTemplate(req); err != nil {
		s.logger.Warn("CreateTemplate: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("CreateTemplate: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("CreateTemplate: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	rule, badDay := req.Recurrence.ToDomainRecurrence()
	if badDay != "" {
		s.logger.Warn("CreateTemplate: unknown weekday %q", badDay)
		return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, badDay)
	}

	template := &domain.EventTemplate{
		Title:       req.Title,
		Description: req.Description,
		VenueID:     req.VenueID,
		OrganizerID: req.OrganizerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Services:    models.ToDomainLineItems(req.Services),
		Recurrence:  rule,
		Active:      true,
	}

	created, err := s.eventRepo.CreateTemplate(ctx, template)
	if err != nil {
		s.logger.Error("CreateTemplate: failed to create template: %v", err)
		return nil, fmt.Errorf("%w: failed to create template: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTemplate: template id=%d created", created.ID)
	return models.FromDomainTemplate(created), nil
}

// GetTemplate возвращает шаблон события по ID
func (s *Service) GetTemplate(ctx context.Context, templateID int64) (*models.TemplateResponse, error) {
	template, err := s.getTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainTemplate(template), nil
}

// ListDrafts возвращает сгенерированные черновики шаблона
func (s *Service) ListDrafts(ctx context.Context, templateID int64) (*models.DraftListResponse, error) {
	if _, err := s.getTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	drafts, err := s.eventRepo.ListDraftsByTemplate(ctx, templateID)
	if err != nil {
		s.logger.Error("ListDrafts: failed to list drafts for template id=%d: %v", templateID, err)
		return nil, fmt.Errorf("%w: failed to list drafts: %v", ErrInternal, err)
	}
	return models.FromDomainDrafts(templateID, drafts), nil
}

func (s *Service) getTemplate(ctx context.Context, templateID int64) (*domain.EventTemplate, error) {
	template, err := s.eventRepo.GetTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrTemplateNotFound) {
			s.logger.Warn("getTemplate: template id=%d not found", templateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("getTemplate: failed to get template id=%d: %v", templateID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	return template, nil
}

func validateCreateTemplate(req *models.CreateTemplateRequest) error {
	if req.OrganizerID <= 0 || req.VenueID <= 0 {
		return fmt.Errorf("%w: organizerID and venueID must be positive", ErrInvalidInput)
	}
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !domain.NewInterval(req.StartTime, req.EndTime).IsValid() {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	for _, li := range req.Services {
		if li.Name == "" || li.UnitPrice < 0 || li.Quantity <= 0 {
			return fmt.Errorf("%w: line item %q has invalid fields", ErrInvalidInput, li.Name)
		}
	}
	if req.Recurrence != nil {
		if !domain.RecurrencePattern(req.Recurrence.Pattern).IsValid() {
			return fmt.Errorf("%w: unknown recurrence pattern %q", ErrInvalidInput, req.Recurrence.Pattern)
		}
		if req.Recurrence.Interval < 1 {
			return fmt.Errorf("%w: recurrence interval must be at least 1", ErrInvalidInput)
		}
		if req.Recurrence.EndAfter < 0 {
			return fmt.Errorf("%w: endAfter must not be negative", ErrInvalidInput)
		}
	}
	return nil
}
