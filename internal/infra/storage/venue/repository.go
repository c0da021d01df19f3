package venue

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

// Repository репозиторий для работы с площадками
// Рабочие часы хранятся в JSONB-колонке целиком, окна обслуживания -
// в отдельной таблице maintenance_windows
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var venueColumnList = []string{
	"id", "hotel_id", "name", "description",
	"capacity_min", "capacity_max", "base_price", "price_per_hour",
	"setup_buffer_minutes", "cleanup_buffer_minutes", "min_booking_hours",
	"status", "operating_hours", "cancellation_tier", "active",
	"created_at", "updated_at",
}

// Create создает новую площадку
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(venue.OperatingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: operating hours: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Insert("venues").
		Columns(
			"hotel_id",
			"name",
			"description",
			"capacity_min",
			"capacity_max",
			"base_price",
			"price_per_hour",
			"setup_buffer_minutes",
			"cleanup_buffer_minutes",
			"min_booking_hours",
			"status",
			"operating_hours",
			"cancellation_tier",
			"active",
		).
		Values(
			venue.HotelID,
			venue.Name,
			venue.Description,
			venue.CapacityMin,
			venue.CapacityMax,
			venue.BasePrice,
			venue.PricePerHour,
			venue.SetupBufferMinutes,
			venue.CleanupBufferMinutes,
			venue.MinBookingHours,
			venue.Status,
			hours,
			venue.CancellationTier,
			venue.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&venue.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return venue, nil
}

// GetByID получает площадку по ID вместе с окнами обслуживания
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumnList...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}

	windows, err := r.getMaintenanceWindows(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.MaintenanceWindows = windows

	return venue, nil
}

// ListByHotel получает все площадки отеля
// Архивные площадки включаются только при includeInactive=true
func (r *Repository) ListByHotel(ctx context.Context, hotelID int64, includeInactive bool) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(venueColumnList...).
		From("venues").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		OrderBy("name ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHotel - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHotel - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByHotel - rows error: %v", ErrScanRow, err)
	}

	// Окна обслуживания подтягиваем по каждой площадке отдельно:
	// список отеля короткий, N+1 здесь не проблема
	for _, v := range venues {
		windows, err := r.getMaintenanceWindows(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.MaintenanceWindows = windows
	}

	return venues, nil
}

// Update сохраняет изменяемые поля площадки
func (r *Repository) Update(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(venue.OperatingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: operating hours: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Update("venues").
		Set("name", venue.Name).
		Set("description", venue.Description).
		Set("capacity_min", venue.CapacityMin).
		Set("capacity_max", venue.CapacityMax).
		Set("base_price", venue.BasePrice).
		Set("price_per_hour", venue.PricePerHour).
		Set("setup_buffer_minutes", venue.SetupBufferMinutes).
		Set("cleanup_buffer_minutes", venue.CleanupBufferMinutes).
		Set("min_booking_hours", venue.MinBookingHours).
		Set("status", venue.Status).
		Set("operating_hours", hours).
		Set("cancellation_tier", venue.CancellationTier).
		Set("active", venue.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venue.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	venue.UpdatedAt = updatedAt.Time

	return venue, nil
}

// AddMaintenanceWindow добавляет окно обслуживания площадки
func (r *Repository) AddMaintenanceWindow(ctx context.Context, venueID int64, window *domain.MaintenanceWindow) (*domain.MaintenanceWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("maintenance_windows").
		Columns("venue_id", "start_time", "end_time", "reason").
		Values(venueID, window.Span.Start, window.Span.End, window.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddMaintenanceWindow - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return nil, fmt.Errorf("%w: AddMaintenanceWindow - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

// RemoveMaintenanceWindow удаляет окно обслуживания
func (r *Repository) RemoveMaintenanceWindow(ctx context.Context, venueID, windowID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("maintenance_windows").
		Where(squirrel.Eq{"id": windowID, "venue_id": venueID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveMaintenanceWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveMaintenanceWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveMaintenanceWindow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

func (r *Repository) getMaintenanceWindows(ctx context.Context, venueID int64) ([]domain.MaintenanceWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_time", "end_time", "reason").
		From("maintenance_windows").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getMaintenanceWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMaintenanceWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.MaintenanceWindow, 0)
	for rows.Next() {
		var w domain.MaintenanceWindow
		if err := rows.Scan(&w.ID, &w.Span.Start, &w.Span.End, &w.Reason); err != nil {
			return nil, fmt.Errorf("%w: getMaintenanceWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMaintenanceWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&venue.ID,
		&venue.HotelID,
		&venue.Name,
		&venue.Description,
		&venue.CapacityMin,
		&venue.CapacityMax,
		&venue.BasePrice,
		&venue.PricePerHour,
		&venue.SetupBufferMinutes,
		&venue.CleanupBufferMinutes,
		&venue.MinBookingHours,
		&venue.Status,
		&hours,
		&venue.CancellationTier,
		&venue.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanVenue - scan row: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(hours, &venue.OperatingHours); err != nil {
		return nil, fmt.Errorf("%w: scanVenue - operating hours: %v", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}
