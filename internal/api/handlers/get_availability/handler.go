package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/domain"
	getAvailability "github.com/planbay/scheduling-service/internal/usecase/get_availability"
)

const (
	msgInvalidLocationID = "invalid location id"
	msgInvalidQuery      = "invalid query parameters, expected orgId, date=YYYY-MM-DD and optional resourceId"
	msgLocationNotFound  = "location not found"
	msgResourceNotFound  = "resource not found"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// FreeInterval свободный интервал ресурса
type FreeInterval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ResourceAvailability доступность одного ресурса
type ResourceAvailability struct {
	ResourceID     int64          `json:"resourceId"`
	ResourceName   string         `json:"resourceName"`
	Capacity       int            `json:"capacity"`
	Open           bool           `json:"open"`
	FreeIntervals  []FreeInterval `json:"freeIntervals"`
	MaxConcurrency int            `json:"maxConcurrency"`
}

// AvailabilityResponse HTTP response model для режима локации
type AvailabilityResponse struct {
	Date      string                 `json:"date"`
	Resources []ResourceAvailability `json:"resources"`
}

// SingleResourceResponse плоский ответ при явном resourceId
type SingleResourceResponse struct {
	Date           string         `json:"date"`
	ResourceID     int64          `json:"resourceId"`
	ResourceName   string         `json:"resourceName"`
	Capacity       int            `json:"capacity"`
	Open           bool           `json:"open"`
	FreeIntervals  []FreeInterval `json:"freeIntervals"`
	MaxConcurrency int            `json:"maxConcurrency"`
}

// Handle GET /api/v1/locations/{locationId}/availability
// Query: ?orgId=&date=YYYY-MM-DD&resourceId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	q := r.URL.Query()

	orgID, err := strconv.ParseInt(q.Get("orgId"), 10, 64)
	if err != nil || orgID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq := &getAvailability.Request{
		OrgID: orgID,
		Date:  date,
	}

	if raw := q.Get("resourceId"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || resourceID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		useCaseReq.ResourceID = &resourceID
	} else {
		useCaseReq.LocationID = &locationID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/availability - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailability.ErrResourceNotFound):
			h.logger.Warn("GET /locations/{id}/availability - Resource not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /locations/{id}/availability - Failed: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Запрос по одному ресурсу отвечает плоской структурой без обертки
	if useCaseReq.ResourceID != nil && len(result.Resources) == 1 {
		res := toResourceAvailability(result.Resources[0])
		handlers.RespondJSON(w, http.StatusOK, &SingleResourceResponse{
			Date:           result.Date.Format(domain.DateFormat),
			ResourceID:     res.ResourceID,
			ResourceName:   res.ResourceName,
			Capacity:       res.Capacity,
			Open:           res.Open,
			FreeIntervals:  res.FreeIntervals,
			MaxConcurrency: res.MaxConcurrency,
		})
		return
	}

	response := &AvailabilityResponse{
		Date:      result.Date.Format(domain.DateFormat),
		Resources: make([]ResourceAvailability, len(result.Resources)),
	}
	for i, res := range result.Resources {
		response.Resources[i] = toResourceAvailability(res)
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

func toResourceAvailability(res getAvailability.ResourceAvailability) ResourceAvailability {
	intervals := make([]FreeInterval, len(res.FreeIntervals))
	for i, iv := range res.FreeIntervals {
		intervals[i] = FreeInterval{
			StartTime: iv.StartTime.String(),
			EndTime:   iv.EndTime.String(),
		}
	}
	return ResourceAvailability{
		ResourceID:     res.ResourceID,
		ResourceName:   res.ResourceName,
		Capacity:       res.Capacity,
		Open:           res.Open,
		FreeIntervals:  intervals,
		MaxConcurrency: res.MaxConcurrency,
	}
}
