package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
)

// SessionRepository контракт хранилища смен
type SessionRepository interface {
	CreateSession(ctx context.Context, s *domain.CheckinSession) (*domain.CheckinSession, error)
	GetSession(ctx context.Context, orgID int64, id uuid.UUID) (*domain.CheckinSession, error)
	EndSession(ctx context.Context, orgID int64, id uuid.UUID, endedAt time.Time) error
	AddBreak(ctx context.Context, b *domain.SessionBreak) (*domain.SessionBreak, error)
	EndBreak(ctx context.Context, breakID int64, endAt time.Time) error
}

// TxManager контракт менеджера транзакций
// AddBreak требует сериализуемой изоляции: конкурентные вставки перерывов
// в одну смену не должны создавать пересечений
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger контракт логгера
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
