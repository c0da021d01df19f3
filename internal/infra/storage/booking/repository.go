package booking

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

// Вложенные структуры бронирования (позиции, детализация стоимости, оплата,
// таймлайн) хранятся в JSONB-колонках: они читаются и пишутся только целиком,
// вся фильтрация идет по плоским колонкам
var bookingColumnList = []string{
	"id", "reference", "venue_id", "guest_id", "event_name",
	"start_time", "end_time", "setup_start", "cleanup_end", "attendee_count",
	"services", "equipment", "catering", "pricing", "payment", "status", "timeline",
	"cancellation_fee", "cancellation_refund", "cancellation_reason", "cancelled_at",
	"needs_revalidation", "active", "version", "created_at", "updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её - это
// обязательный режим для создания с проверкой доступности, иначе между
// проверкой и вставкой возможна гонка с конкурирующим бронированием
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := marshalPayload(booking)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"venue_id",
			"guest_id",
			"event_name",
			"start_time",
			"end_time",
			"setup_start",
			"cleanup_end",
			"attendee_count",
			"services",
			"equipment",
			"catering",
			"pricing",
			"payment",
			"status",
			"timeline",
			"needs_revalidation",
			"active",
		).
		Values(
			booking.Reference,
			booking.VenueID,
			booking.GuestID,
			booking.EventName,
			booking.StartTime,
			booking.EndTime,
			booking.SetupStart,
			booking.CleanupEnd,
			booking.AttendeeCount,
			payload.services,
			payload.equipment,
			payload.catering,
			payload.pricing,
			payload.payment,
			booking.Status,
			payload.timeline,
			booking.NeedsRevalidation,
			booking.Active,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по внешнему reference (uuid)
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, pred squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumnList...).
		From("bookings").
		Where(pred)

	// Внутри транзакции читаем с блокировкой: GetByID в usecase-ах
	// предшествует мутации той же записи
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByGuestID получает историю бронирований гостя
// Опционально фильтрует по статусу
func (r *Repository) GetByGuestID(ctx context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumnList...).
		From("bookings").
		Where(squirrel.Eq{"guest_id": guestID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению архивных записей
//
// Примеры использования:
//
// 1. Все бронирования площадки:
//    filter := domain.VenueBookingsFilter{VenueID: 10}
//
// 2. Бронирования за период:
//    start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
//    end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
//    filter := domain.VenueBookingsFilter{VenueID: 10, StartDate: &start, EndDate: &end}
//
// 3. Только подтвержденные:
//    status := domain.StatusConfirmed
//    filter := domain.VenueBookingsFilter{VenueID: 10, Status: &status}
//
// 4. Включая архивные:
//    filter := domain.VenueBookingsFilter{VenueID: 10, IncludeInactive: true}
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumnList...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindOverlapping ищет бронирования площадки, чей физический интервал
// [setup_start, cleanup_end) пересекается с span, в одном из переданных
// статусов. excludeBookingID исключает собственную запись при перепроверке
//
// Внутри транзакции строки блокируются (FOR UPDATE) - это основа защиты
// от двойного бронирования вместе с serializable-уровнем изоляции
func (r *Repository) FindOverlapping(ctx context.Context, venueID int64, span domain.Interval, statuses []domain.BookingStatus, excludeBookingID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumnList...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"status": statusStrings}).
		// Полуоткрытые интервалы [a,b) и [c,d) пересекаются при a < d AND c < b
		Where(squirrel.Lt{"setup_start": span.End}).
		Where(squirrel.Gt{"cleanup_end": span.Start}).
		OrderBy("setup_start ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет бронирование целиком с оптимистичной проверкой версии
// При несовпадении версии возвращает ErrVersionConflict - вызывающая сторона
// должна перечитать запись и повторить операцию от свежего состояния
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := marshalPayload(booking)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("event_name", booking.EventName).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("setup_start", booking.SetupStart).
		Set("cleanup_end", booking.CleanupEnd).
		Set("attendee_count", booking.AttendeeCount).
		Set("services", payload.services).
		Set("equipment", payload.equipment).
		Set("catering", payload.catering).
		Set("pricing", payload.pricing).
		Set("payment", payload.payment).
		Set("status", booking.Status).
		Set("timeline", payload.timeline).
		Set("cancellation_fee", booking.CancellationFee).
		Set("cancellation_refund", booking.CancellationRefund).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("needs_revalidation", booking.NeedsRevalidation).
		Set("active", booking.Active).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.Eq{"version": booking.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, r.classifyMissedUpdate(ctx, booking.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Archive мягко удаляет бронирование: ставит active=false, запись
// остается для аудита
func (r *Repository) Archive(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Archive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Archive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Archive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// classifyMissedUpdate различает пропавшую запись и конфликт версий
func (r *Repository) classifyMissedUpdate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: classifyMissedUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: classifyMissedUpdate - execute query: %v", ErrExecQuery, err)
	}

	return fmt.Errorf("%w: booking id=%d", ErrVersionConflict, id)
}

// Сериализация вложенных структур

type bookingPayload struct {
	services  []byte
	equipment []byte
	catering  []byte
	pricing   []byte
	payment   []byte
	timeline  []byte
}

func marshalPayload(booking *domain.Booking) (*bookingPayload, error) {
	services, err := json.Marshal(booking.Services)
	if err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrMarshal, err)
	}
	equipment, err := json.Marshal(booking.Equipment)
	if err != nil {
		return nil, fmt.Errorf("%w: equipment: %v", ErrMarshal, err)
	}
	var catering []byte
	if booking.Catering != nil {
		catering, err = json.Marshal(booking.Catering)
		if err != nil {
			return nil, fmt.Errorf("%w: catering: %v", ErrMarshal, err)
		}
	}
	pricing, err := json.Marshal(booking.Pricing)
	if err != nil {
		return nil, fmt.Errorf("%w: pricing: %v", ErrMarshal, err)
	}
	payment, err := json.Marshal(booking.Payment)
	if err != nil {
		return nil, fmt.Errorf("%w: payment: %v", ErrMarshal, err)
	}
	timeline, err := json.Marshal(booking.Timeline)
	if err != nil {
		return nil, fmt.Errorf("%w: timeline: %v", ErrMarshal, err)
	}

	return &bookingPayload{
		services:  services,
		equipment: equipment,
		catering:  catering,
		pricing:   pricing,
		payment:   payment,
		timeline:  timeline,
	}, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var services, equipment, pricing, payment, timeline []byte
	var catering []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.VenueID,
		&booking.GuestID,
		&booking.EventName,
		&booking.StartTime,
		&booking.EndTime,
		&booking.SetupStart,
		&booking.CleanupEnd,
		&booking.AttendeeCount,
		&services,
		&equipment,
		&catering,
		&pricing,
		&payment,
		&booking.Status,
		&timeline,
		&booking.CancellationFee,
		&booking.CancellationRefund,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.NeedsRevalidation,
		&booking.Active,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(services, &booking.Services); err != nil {
		return nil, fmt.Errorf("%w: scanBooking - services: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(equipment, &booking.Equipment); err != nil {
		return nil, fmt.Errorf("%w: scanBooking - equipment: %v", ErrScanRow, err)
	}
	if len(catering) > 0 {
		booking.Catering = &domain.CateringBlock{}
		if err := json.Unmarshal(catering, booking.Catering); err != nil {
			return nil, fmt.Errorf("%w: scanBooking - catering: %v", ErrScanRow, err)
		}
	}
	if err := json.Unmarshal(pricing, &booking.Pricing); err != nil {
		return nil, fmt.Errorf("%w: scanBooking - pricing: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(payment, &booking.Payment); err != nil {
		return nil, fmt.Errorf("%w: scanBooking - payment: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(timeline, &booking.Timeline); err != nil {
		return nil, fmt.Errorf("%w: scanBooking - timeline: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
