package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/dbmetrics"
	"github.com/planbay/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var resourceColumns = []string{
	"id",
	"org_id",
	"location_id",
	"name",
	"type",
	"max_concurrent_bookings",
	"active",
	"display_color",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с ресурсами (боксы, подъемники, персонал, залы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый ресурс
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"org_id",
			"location_id",
			"name",
			"type",
			"max_concurrent_bookings",
			"active",
			"display_color",
		).
		Values(
			res.OrgID,
			res.LocationID,
			res.Name,
			res.Type,
			res.MaxConcurrentBookings,
			res.Active,
			res.DisplayColor,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID в рамках организации
func (r *Repository) GetByID(ctx context.Context, orgID, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Resource
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.OrgID,
		&res.LocationID,
		&res.Name,
		&res.Type,
		&res.MaxConcurrentBookings,
		&res.Active,
		&res.DisplayColor,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// ListByOrg получает активные ресурсы организации, отсортированные по имени
// Опционально фильтрует по локации
func (r *Repository) ListByOrg(ctx context.Context, orgID int64, locationID *int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"org_id": orgID, "active": true}).
		OrderBy("name ASC")

	if locationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *locationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrg - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrg - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanResources(rows)
}

// ListActiveByLocation получает активные ресурсы локации в порядке
// возрастания ID
// Порядок важен: контроллер допуска при автоподборе ресурса берет первый
// свободный, детерминизм достигается сортировкой по наименьшему ID
func (r *Repository) ListActiveByLocation(ctx context.Context, orgID, locationID int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"org_id": orgID, "location_id": locationID, "active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanResources(rows)
}

// Update обновляет изменяемые атрибуты ресурса
func (r *Repository) Update(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("name", res.Name).
		Set("type", res.Type).
		Set("max_concurrent_bookings", res.MaxConcurrentBookings).
		Set("display_color", res.DisplayColor).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "org_id": res.OrgID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrResourceNotFound
	}

	return res, nil
}

// Deactivate скрывает ресурс от будущих бронирований
// Существующие бронирования не отменяются
func (r *Repository) Deactivate(ctx context.Context, orgID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// scanResources сканирует результаты запроса в слайс ресурсов
func (r *Repository) scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		var res domain.Resource
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.OrgID,
			&res.LocationID,
			&res.Name,
			&res.Type,
			&res.MaxConcurrentBookings,
			&res.Active,
			&res.DisplayColor,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanResources - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}
