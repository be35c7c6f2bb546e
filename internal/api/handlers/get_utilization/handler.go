package get_utilization

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/domain"
	reportUtilization "github.com/planbay/scheduling-service/internal/usecase/report_utilization"
)

const (
	msgInvalidLocationID = "invalid location id"
	msgInvalidQuery      = "invalid query parameters, expected startDate, endDate and optional resourceId"
	msgLocationNotFound  = "location not found"
	msgResourceNotFound  = "resource not found"
)

type Handler struct {
	useCase ReportUtilizationUseCase
	logger  Logger
}

func NewHandler(useCase ReportUtilizationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// UtilizationRow строка отчета о загрузке
type UtilizationRow struct {
	Date            string  `json:"date"`
	ResourceID      int64   `json:"resourceId"`
	ResourceName    string  `json:"resourceName"`
	Capacity        int     `json:"capacity"`
	OpenMinutes     int     `json:"openMinutes"`
	CapacityMinutes int     `json:"capacityMinutes"`
	BookedMinutes   int     `json:"bookedMinutes"`
	FreeMinutes     int     `json:"freeMinutes"`
	UtilizationPct  float64 `json:"utilizationPct"`
	PeakConcurrency int     `json:"peakConcurrency"`
	BookingsCount   int     `json:"bookingsCount"`
}

// UtilizationResponse HTTP response model
type UtilizationResponse struct {
	LocationID int64            `json:"locationId"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Rows       []UtilizationRow `json:"rows"`
}

// Handle GET /api/v1/locations/{locationId}/utilization
// Query: ?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&resourceId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	q := r.URL.Query()

	startDate, err := time.Parse(domain.DateFormat, q.Get("startDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, q.Get("endDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq := &reportUtilization.Request{
		OrgID:      middleware.OrgID(r.Context()),
		LocationID: locationID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if raw := q.Get("resourceId"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || resourceID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		useCaseReq.ResourceID = &resourceID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reportUtilization.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/utilization - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, reportUtilization.ErrResourceNotFound):
			h.logger.Warn("GET /locations/{id}/utilization - Resource not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reportUtilization.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/utilization - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /locations/{id}/utilization - Failed: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	rows := make([]UtilizationRow, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = UtilizationRow{
			Date:            row.Date.Format(domain.DateFormat),
			ResourceID:      row.ResourceID,
			ResourceName:    row.ResourceName,
			Capacity:        row.Capacity,
			OpenMinutes:     row.OpenMinutes,
			CapacityMinutes: row.CapacityMinutes,
			BookedMinutes:   row.BookedMinutes,
			FreeMinutes:     row.FreeMinutes,
			UtilizationPct:  row.UtilizationPct,
			PeakConcurrency: row.PeakConcurrency,
			BookingsCount:   row.BookingsCount,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, &UtilizationResponse{
		LocationID: locationID,
		StartDate:  result.StartDate.Format(domain.DateFormat),
		EndDate:    result.EndDate.Format(domain.DateFormat),
		Rows:       rows,
	})
}
