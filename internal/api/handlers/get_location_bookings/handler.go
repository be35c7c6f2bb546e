package get_location_bookings

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
	msgInvalidLocationID = "invalid location id"
	msgInvalidQuery      = "invalid query parameters"
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

// BookingItem элемент списка бронирований
type BookingItem struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	ResourceID   int64   `json:"resourceId"`
	CustomerName string  `json:"customerName"`
	BookingDate  string  `json:"bookingDate"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  *string `json:"serviceName,omitempty"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Bookings []BookingItem `json:"bookings"`
	Total    int           `json:"total"`
}

// Handle GET /api/v1/locations/{locationId}/bookings
// Query: ?resourceId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	req, err := parseQuery(r, middleware.OrgID(r.Context()), locationID)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListLocationBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /locations/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /locations/{id}/bookings - Failed to list bookings: location_id=%d, error=%v", locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]BookingItem, len(result.Bookings))
	for i, b := range result.Bookings {
		items[i] = BookingItem{
			ID:           b.ID,
			Reference:    b.Reference,
			ResourceID:   b.ResourceID,
			CustomerName: b.CustomerName,
			BookingDate:  b.BookingDate.Format(domain.DateFormat),
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       b.Status,
			ServiceName:  b.ServiceName,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, &ListResponse{Bookings: items, Total: result.Total})
}

// parseQuery разбирает query-параметры фильтра
func parseQuery(r *http.Request, orgID, locationID int64) (*bookingModels.ListLocationBookingsRequest, error) {
	req := &bookingModels.ListLocationBookingsRequest{
		OrgID:      orgID,
		LocationID: locationID,
	}

	q := r.URL.Query()

	if raw := q.Get("resourceId"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if raw := q.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := q.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
