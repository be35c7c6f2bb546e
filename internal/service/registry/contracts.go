package registry

import (
	"context"

	"github.com/planbay/scheduling-service/internal/domain"
)

// LocationRepository контракт хранилища локаций
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, orgID, locationID int64) (*domain.Location, error)
	ListByOrg(ctx context.Context, orgID int64, activeOnly bool) ([]*domain.Location, error)
	Update(ctx context.Context, location *domain.Location) (*domain.Location, error)
	SetHours(ctx context.Context, orgID, locationID int64, hours domain.WeekSchedule) error
	DemoteHeadquarters(ctx context.Context, orgID int64) error
}

// ResourceRepository контракт хранилища ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, orgID, resourceID int64) (*domain.Resource, error)
	ListByOrg(ctx context.Context, orgID int64, locationID *int64) ([]*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	Deactivate(ctx context.Context, orgID, resourceID int64) error
}

// TxManager контракт менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger контракт логгера
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
