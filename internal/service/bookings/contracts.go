package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, orgID, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, orgID int64, reference uuid.UUID) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// NotificationDispatcher интерфейс отправки событий (fire-and-forget)
type NotificationDispatcher interface {
	BookingCancelled(ctx context.Context, b *domain.Booking)
	BookingStatusChanged(ctx context.Context, b *domain.Booking, oldStatus domain.BookingStatus)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
