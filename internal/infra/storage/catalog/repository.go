package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/psqlbuilder"
)

const table = "services"

var columns = []string{
	"id",
	"name",
	"description",
	"price_cents",
	"duration_minutes",
	"icon_name",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository каталог услуг барбера (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Lookup возвращает активные услуги по ids и список ids, которые не найдены
// Неактивная услуга считается не найденной
func (r *Repository) Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Service, []int64, error) {
	found := make(map[int64]*domain.Service, len(ids))
	if len(ids) == 0 {
		return found, nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where("id = ANY(?)", pq.Array(uniqueIDs(ids))).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: Lookup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: Lookup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("Lookup: %w", err)
	}

	for _, s := range services {
		found[s.ID] = s
	}

	var missing []int64
	for _, id := range uniqueIDs(ids) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	return found, missing, nil
}

// ListActive возвращает меню активных услуг, отсортированное по названию
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	return services, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var s domain.Service
		var description sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Name,
			&description,
			&s.PriceCents,
			&s.DurationMinutes,
			&s.IconName,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}

		s.Description = description.String
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// uniqueIDs убирает повторы, сохраняя порядок первого появления
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
