package create_booking

import (
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
	requestBooking "github.com/planbay/scheduling-service/internal/usecase/request_booking"
	"github.com/planbay/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LocationID    int64   `json:"locationId"`
	ResourceID    *int64  `json:"resourceId,omitempty"` // nil - автоподбор ресурса
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2026-09-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	EndTime       string  `json:"endTime"`     // "11:00"
	ServiceName   *string `json:"serviceName,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Confirmed     bool    `json:"confirmed,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	ResourceID    int64   `json:"resourceId"`
	LocationID    int64   `json:"locationId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	ServiceName   *string `json:"serviceName,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(orgID, userID int64) (*requestBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		OrgID:         orgID,
		UserID:        userID,
		LocationID:    r.LocationID,
		ResourceID:    r.ResourceID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		ServiceName:   r.ServiceName,
		Notes:         r.Notes,
		Confirmed:     r.Confirmed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference.String(),
		ResourceID:    resp.ResourceID,
		LocationID:    resp.LocationID,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		ServiceName:   resp.ServiceName,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
