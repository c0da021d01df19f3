package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

// Repository репозиторий шаблонов повторяющихся событий и их черновиков
// Правило повторения и позиции услуг хранятся в JSONB-колонках
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateTemplate создает шаблон повторяющегося события
func (r *Repository) CreateTemplate(ctx context.Context, template *domain.EventTemplate) (*domain.EventTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := json.Marshal(template.Services)
	if err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrMarshal, err)
	}

	var recurrence []byte
	if template.Recurrence != nil {
		recurrence, err = json.Marshal(template.Recurrence)
		if err != nil {
			return nil, fmt.Errorf("%w: recurrence: %v", ErrMarshal, err)
		}
	}

	query, args, err := psqlbuilder.Insert("event_templates").
		Columns(
			"title",
			"description",
			"venue_id",
			"organizer_id",
			"start_time",
			"end_time",
			"services",
			"recurrence",
			"active",
		).
		Values(
			template.Title,
			template.Description,
			template.VenueID,
			template.OrganizerID,
			template.StartTime,
			template.EndTime,
			services,
			recurrence,
			template.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&template.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - execute insert: %v", ErrExecQuery, err)
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return template, nil
}

// GetTemplateByID получает шаблон по ID
func (r *Repository) GetTemplateByID(ctx context.Context, id int64) (*domain.EventTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"description",
		"venue_id",
		"organizer_id",
		"start_time",
		"end_time",
		"services",
		"recurrence",
		"active",
		"created_at",
		"updated_at",
	).
		From("event_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByID - build select query: %v", ErrBuildQuery, err)
	}

	var template domain.EventTemplate
	var services, recurrence []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&template.ID,
		&template.Title,
		&template.Description,
		&template.VenueID,
		&template.OrganizerID,
		&template.StartTime,
		&template.EndTime,
		&services,
		&recurrence,
		&template.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByID - scan template: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(services, &template.Services); err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByID - services: %v", ErrScanRow, err)
	}
	if len(recurrence) > 0 {
		template.Recurrence = &domain.RecurrenceRule{}
		if err := json.Unmarshal(recurrence, template.Recurrence); err != nil {
			return nil, fmt.Errorf("%w: GetTemplateByID - recurrence: %v", ErrScanRow, err)
		}
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return &template, nil
}

// SaveDrafts сохраняет сгенерированные черновики вхождений одной вставкой
// Предыдущие черновики шаблона удаляются: генерация перезаписывает серию
func (r *Repository) SaveDrafts(ctx context.Context, templateID int64, drafts []domain.EventDraft) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("event_drafts").
		Where(squirrel.Eq{"template_id": templateID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveDrafts - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: SaveDrafts - delete stale drafts: %v", ErrExecQuery, err)
	}

	if len(drafts) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("event_drafts").
		Columns(
			"template_id",
			"sequence",
			"title",
			"description",
			"venue_id",
			"organizer_id",
			"start_time",
			"end_time",
			"services",
			"status",
		)

	for _, d := range drafts {
		services, err := json.Marshal(d.Services)
		if err != nil {
			return fmt.Errorf("%w: SaveDrafts - services: %v", ErrMarshal, err)
		}
		insertBuilder = insertBuilder.Values(
			templateID,
			d.Sequence,
			d.Title,
			d.Description,
			d.VenueID,
			d.OrganizerID,
			d.StartTime,
			d.EndTime,
			services,
			d.Status,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveDrafts - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveDrafts - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListDraftsByTemplate получает черновики шаблона в порядке следования
func (r *Repository) ListDraftsByTemplate(ctx context.Context, templateID int64) ([]domain.EventDraft, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"template_id",
		"sequence",
		"title",
		"description",
		"venue_id",
		"organizer_id",
		"start_time",
		"end_time",
		"services",
		"status",
	).
		From("event_drafts").
		Where(squirrel.Eq{"template_id": templateID}).
		OrderBy("sequence ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDraftsByTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDraftsByTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	drafts := make([]domain.EventDraft, 0)
	for rows.Next() {
		var d domain.EventDraft
		var services []byte

		err := rows.Scan(
			&d.TemplateID,
			&d.Sequence,
			&d.Title,
			&d.Description,
			&d.VenueID,
			&d.OrganizerID,
			&d.StartTime,
			&d.EndTime,
			&services,
			&d.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDraftsByTemplate - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(services, &d.Services); err != nil {
			return nil, fmt.Errorf("%w: ListDraftsByTemplate - services: %v", ErrScanRow, err)
		}

		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDraftsByTemplate - rows error: %v", ErrScanRow, err)
	}

	return drafts, nil
}
