package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reservation of a time interval against a resource
type Booking struct {
	ID         int64
	Reference  uuid.UUID // Публичный код бронирования для клиента
	OrgID      int64
	ResourceID int64
	LocationID int64

	CustomerName  string
	CustomerPhone *string

	BookingDate time.Time // Дата без времени
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	ServiceName *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts against resource capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanTransition проверяет допустимость перехода статуса
// completed и cancelled терминальны; no_show менеджер может исправить
// только на completed (частая ошибка персонала при отметке неявки)
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return false
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
	case StatusNoShow:
		return to == StatusCompleted
	default:
		return false
	}
}

// ValidBookingStatus возвращает true для известного статуса бронирования
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// LocationBookingsFilter фильтр для получения бронирований локации
type LocationBookingsFilter struct {
	OrgID           int64
	LocationID      int64
	ResourceID      *int64         // Фильтр по ресурсу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
