package timeclock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/dbmetrics"
	"github.com/planbay/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для учета рабочих смен и перерывов персонала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSession открывает новую смену
func (r *Repository) CreateSession(ctx context.Context, s *domain.CheckinSession) (*domain.CheckinSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("checkin_sessions").
		Columns("id", "org_id", "location_id", "staff_user_id", "started_at").
		Values(s.ID, s.OrgID, s.LocationID, s.StaffUserID, s.StartedAt).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSession - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSession - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetSession получает смену со всеми перерывами
// Внутри транзакции строка смены блокируется FOR UPDATE: конкурентные
// добавления перерывов в одну смену сериализуются
func (r *Repository) GetSession(ctx context.Context, orgID int64, id uuid.UUID) (*domain.CheckinSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"org_id",
		"location_id",
		"staff_user_id",
		"started_at",
		"ended_at",
		"created_at",
		"updated_at",
	).
		From("checkin_sessions").
		Where(squirrel.Eq{"id": id, "org_id": orgID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CheckinSession
	var endedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OrgID,
		&s.LocationID,
		&s.StaffUserID,
		&s.StartedAt,
		&endedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - scan session: %v", ErrScanRow, err)
	}

	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	breaks, err := r.listBreaks(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Breaks = breaks

	return &s, nil
}

// EndSession закрывает смену
func (r *Repository) EndSession(ctx context.Context, orgID int64, id uuid.UUID, endedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("checkin_sessions").
		Set("ended_at", endedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EndSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: EndSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: EndSession - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// AddBreak добавляет перерыв в смену
// Проверку пересечений с существующими перерывами выполняет сервисный слой
// внутри транзакции, удерживающей блокировку строки смены
func (r *Repository) AddBreak(ctx context.Context, b *domain.SessionBreak) (*domain.SessionBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var endAt interface{}
	if b.EndAt != nil {
		endAt = *b.EndAt
	}

	query, args, err := psqlbuilder.Insert("session_breaks").
		Columns("session_id", "start_at", "end_at").
		Values(b.SessionID, b.StartAt, endAt).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddBreak - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddBreak - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time

	return b, nil
}

// EndBreak закрывает открытый перерыв
func (r *Repository) EndBreak(ctx context.Context, breakID int64, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("session_breaks").
		Set("end_at", endAt).
		Where(squirrel.Eq{"id": breakID}).
		Where("end_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EndBreak - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: EndBreak - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: EndBreak - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBreakNotFound
	}

	return nil
}

// listBreaks загружает перерывы смены, отсортированные по началу
func (r *Repository) listBreaks(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "session_id", "start_at", "end_at", "created_at").
		From("session_breaks").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.SessionBreak, 0)
	for rows.Next() {
		var b domain.SessionBreak
		var endAt, createdAt sql.NullTime

		if err := rows.Scan(&b.ID, &b.SessionID, &b.StartAt, &endAt, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: listBreaks - scan row: %v", ErrScanRow, err)
		}

		if endAt.Valid {
			b.EndAt = &endAt.Time
		}
		b.CreatedAt = createdAt.Time
		breaks = append(breaks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listBreaks - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}
