package get_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/internal/service/bookings"
	bookingModels "github.com/planbay/scheduling-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64      `json:"id"`
	Reference          string     `json:"reference"`
	ResourceID         int64      `json:"resourceId"`
	LocationID         int64      `json:"locationId"`
	CustomerName       string     `json:"customerName"`
	CustomerPhone      *string    `json:"customerPhone,omitempty"`
	BookingDate        string     `json:"bookingDate"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	Status             string     `json:"status"`
	ServiceName        *string    `json:"serviceName,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          string     `json:"createdAt"`
	UpdatedAt          string     `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(b *bookingModels.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		ResourceID:         b.ResourceID,
		LocationID:         b.LocationID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	orgID := middleware.OrgID(r.Context())

	booking, err := h.service.GetByID(r.Context(), orgID, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d, org_id=%d", bookingID, orgID)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(booking))
}
