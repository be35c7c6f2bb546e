package get_booking_by_reference

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/internal/service/bookings"
	bookingModels "github.com/planbay/scheduling-service/internal/service/bookings/models"
)

const (
	msgInvalidReference = "invalid booking reference"
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
	CreatedAt     string  `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(b *bookingModels.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		ResourceID:    b.ResourceID,
		LocationID:    b.LocationID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		ServiceName:   b.ServiceName,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

// Handle GET /api/v1/bookings/reference/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(mux.Vars(r)["reference"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	orgID := middleware.OrgID(r.Context())

	booking, err := h.service.GetByReference(r.Context(), orgID, reference)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/reference/{reference} - Booking not found: reference=%s, org_id=%d", reference, orgID)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /bookings/reference/{reference} - Failed to get booking: reference=%s, error=%v", reference, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(booking))
}
