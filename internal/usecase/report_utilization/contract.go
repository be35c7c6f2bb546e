package report_utilization

import (
	"context"
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListForResourceAndDate получает активные бронирования ресурса на дату
	ListForResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, orgID, resourceID int64) (*domain.Resource, error)
	ListActiveByLocation(ctx context.Context, orgID, locationID int64) ([]*domain.Resource, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, orgID, locationID int64) (*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
