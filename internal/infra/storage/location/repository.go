package location

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/dbmetrics"
	"github.com/planbay/scheduling-service/pkg/psqlbuilder"
	"github.com/planbay/scheduling-service/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var locationColumns = []string{
	"id",
	"org_id",
	"name",
	"address",
	"timezone",
	"active",
	"headquarters",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с локациями и их рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую локацию вместе с рабочими часами
// Флаг headquarters выставляет вызывающий сервис: он же снимает флаг
// с предыдущей штаб-квартиры в той же транзакции
func (r *Repository) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("locations").
		Columns(
			"org_id",
			"name",
			"address",
			"timezone",
			"active",
			"headquarters",
		).
		Values(
			loc.OrgID,
			loc.Name,
			loc.Address,
			loc.Timezone,
			loc.Active,
			loc.Headquarters,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time

	if err := r.replaceHours(ctx, loc.ID, loc.Hours); err != nil {
		return nil, err
	}

	return loc, nil
}

// GetByID получает локацию по ID в рамках организации, включая рабочие часы
func (r *Repository) GetByID(ctx context.Context, orgID, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.OrgID,
		&loc.Name,
		&loc.Address,
		&loc.Timezone,
		&loc.Active,
		&loc.Headquarters,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time

	hours, err := r.loadHours(ctx, loc.ID)
	if err != nil {
		return nil, err
	}
	loc.Hours = hours

	return &loc, nil
}

// ListByOrg получает локации организации, отсортированные по имени
// Без рабочих часов: список нужен для справочников, часы запрашиваются по ID
func (r *Repository) ListByOrg(ctx context.Context, orgID int64, activeOnly bool) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
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

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&loc.ID,
			&loc.OrgID,
			&loc.Name,
			&loc.Address,
			&loc.Timezone,
			&loc.Active,
			&loc.Headquarters,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListByOrg - scan row: %v", ErrScanRow, err)
		}

		loc.CreatedAt = createdAt.Time
		loc.UpdatedAt = updatedAt.Time

		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOrg - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// Update обновляет изменяемые атрибуты локации (без рабочих часов)
func (r *Repository) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("locations").
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("timezone", loc.Timezone).
		Set("active", loc.Active).
		Set("headquarters", loc.Headquarters).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": loc.ID, "org_id": loc.OrgID}).
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
		return nil, ErrLocationNotFound
	}

	return loc, nil
}

// SetHours заменяет рабочие часы локации целиком
func (r *Repository) SetHours(ctx context.Context, orgID, locationID int64, hours domain.WeekSchedule) error {
	// Проверяем принадлежность локации организации перед заменой часов
	if _, err := r.GetByID(ctx, orgID, locationID); err != nil {
		return err
	}
	return r.replaceHours(ctx, locationID, hours)
}

// DemoteHeadquarters снимает флаг штаб-квартиры со всех локаций организации
// Вызывается в одной транзакции с назначением новой штаб-квартиры:
// инвариант "ровно одна штаб-квартира на организацию" держится на этой паре
func (r *Repository) DemoteHeadquarters(ctx context.Context, orgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("locations").
		Set("headquarters", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"org_id": orgID, "headquarters": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DemoteHeadquarters - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DemoteHeadquarters - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// loadHours загружает рабочие часы локации
func (r *Repository) loadHours(ctx context.Context, locationID int64) (domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var schedule domain.WeekSchedule

	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("location_hours").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return schedule, fmt.Errorf("%w: loadHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return schedule, fmt.Errorf("%w: loadHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var openTime, closeTime types.TimeString

		if err := rows.Scan(&weekday, &openTime, &closeTime); err != nil {
			return schedule, fmt.Errorf("%w: loadHours - scan row: %v", ErrScanRow, err)
		}

		if weekday < 0 || weekday > 6 {
			return schedule, fmt.Errorf("%w: loadHours - weekday out of range: %d", ErrScanRow, weekday)
		}

		schedule[weekday] = &domain.DayHours{
			Weekday:   time.Weekday(weekday),
			OpenTime:  openTime,
			CloseTime: closeTime,
		}
	}

	if err := rows.Err(); err != nil {
		return schedule, fmt.Errorf("%w: loadHours - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// replaceHours удаляет старые часы и вставляет новые
func (r *Repository) replaceHours(ctx context.Context, locationID int64, hours domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("location_hours").
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: replaceHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("location_hours").
		Columns("location_id", "weekday", "open_time", "close_time")

	hasRows := false
	for weekday, day := range hours {
		if day == nil {
			continue
		}
		insertBuilder = insertBuilder.Values(locationID, weekday, day.OpenTime, day.CloseTime)
		hasRows = true
	}

	if !hasRows {
		return nil
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
