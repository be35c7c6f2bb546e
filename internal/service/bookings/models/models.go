package models

import (
	"fmt"
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
)

// BookingResponse модель бронирования для внешних слоев
type BookingResponse struct {
	ID         int64
	Reference  string
	OrgID      int64
	ResourceID int64
	LocationID int64

	CustomerName  string
	CustomerPhone *string

	BookingDate time.Time
	StartTime   string
	EndTime     string
	Status      string

	ServiceName *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse
	Total    int
}

// ListLocationBookingsRequest запрос бронирований локации с фильтрацией
type ListLocationBookingsRequest struct {
	OrgID           int64
	LocationID      int64
	ResourceID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListLocationBookingsRequest) ToDomainFilter() (domain.LocationBookingsFilter, error) {
	filter := domain.LocationBookingsFilter{
		OrgID:           r.OrgID,
		LocationID:      r.LocationID,
		ResourceID:      r.ResourceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.LocationBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	OrgID              int64
	UserID             int64
	CancellationReason string
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	OrgID  int64
	UserID int64
	Status string
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidBookingStatus(status) {
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
	return status, nil
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference.String(),
		OrgID:              b.OrgID,
		ResourceID:         b.ResourceID,
		LocationID:         b.LocationID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
