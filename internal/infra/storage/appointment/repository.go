package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/psqlbuilder"
)

const table = "appointments"

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation  = "23P01"
	pqUniqueViolation     = "23505"
	pqSerializationFailed = "40001"
)

var columns = []string{
	"id",
	"client_id",
	"service_ids",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"total_price_cents",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfNoConflict сохраняет подтвержденную запись
//
// Проверку пересечений выполняет вызывающий код внутри транзакции, а таблица
// дополнительно защищена exclusion constraint по tsrange и частичным уникальным
// индексом (client_id, appointment_date). Нарушение любого из них возвращается
// как ErrConflictDetected или ErrDuplicateClientBooking, а не как ошибка запроса
func (r *Repository) InsertIfNoConflict(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"service_ids",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"total_price_cents",
			"status",
			"notes",
		).
		Values(
			a.ClientID,
			pq.Array(a.ServiceIDs),
			a.Date,
			a.StartTime,
			a.DurationMinutes,
			a.TotalPriceCents,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertIfNoConflict - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, translateError("InsertIfNoConflict - execute insert", err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID (в любом статусе)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// UpdateStatus переводит запись из статуса from в статус to одним условным UPDATE
// Если запись существует, но её статус уже не from, возвращает ErrStatusMismatch
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, translateError("UpdateStatus - execute update", err)
	}

	// Ни одна строка не обновилась: записи нет или статус уже другой
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: id=%d expected status %s", ErrStatusMismatch, id, from)
}

// ListByDate получает записи на дату в указанном статусе, по возрастанию времени начала
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListByDate(ctx context.Context, date time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"appointment_date": date, "status": status}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByDate", selectBuilder)
}

// ListByDateRange получает записи в диапазоне дат включительно, по (дата, время)
func (r *Repository) ListByDateRange(ctx context.Context, start, end time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"appointment_date": start}).
		Where(squirrel.LtOrEq{"appointment_date": end}).
		Where(squirrel.Eq{"status": status}).
		OrderBy("appointment_date ASC", "start_time ASC")

	return r.list(ctx, "ListByDateRange", selectBuilder)
}

// ListByClient получает записи клиента в указанном статусе, по (дата, время)
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID, "status": status}).
		OrderBy("appointment_date ASC", "start_time ASC")

	return r.list(ctx, "ListByClient", selectBuilder)
}

// ListByStatus получает все записи в указанном статусе, по (дата, время)
func (r *Repository) ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": status}).
		OrderBy("appointment_date ASC", "start_time ASC")

	return r.list(ctx, "ListByStatus", selectBuilder)
}

// ExistsForClientOnDate проверяет, есть ли у клиента запись на дату в одном из статусов
func (r *Repository) ExistsForClientOnDate(ctx context.Context, clientID int64, date time.Time, statuses []domain.AppointmentStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"client_id": clientID, "appointment_date": date, "status": statusStrings}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForClientOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, translateError("ExistsForClientOnDate - execute query", err)
	}

	return exists, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(op+" - execute query", err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError(op+" - rows error", err)
	}

	return appointments, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		pq.Array(&a.ServiceIDs),
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.TotalPriceCents,
		&a.Status,
		&a.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// translateError переводит ошибки ограничений PostgreSQL в ошибки репозитория
func translateError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation, pqSerializationFailed:
			return fmt.Errorf("%w: %s: %v", ErrConflictDetected, op, err)
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s: %v", ErrDuplicateClientBooking, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
