package request_booking

import (
	"context"
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// ListForResourceAndDate получает активные бронирования ресурса на дату
	// Внутри транзакции строки блокируются FOR UPDATE
	ListForResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, orgID, resourceID int64) (*domain.Resource, error)

	// ListActiveByLocation возвращает активные ресурсы локации,
	// отсортированные по возрастанию id
	ListActiveByLocation(ctx context.Context, orgID, locationID int64) ([]*domain.Resource, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, orgID, locationID int64) (*domain.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationDispatcher интерфейс отправки событий (fire-and-forget)
type NotificationDispatcher interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
