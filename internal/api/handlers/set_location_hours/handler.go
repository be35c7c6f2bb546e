package set_location_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/service/registry"
	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidLocationID  = "invalid location id"
	msgLocationNotFound   = "location not found"
	msgAccessDenied       = "only owner or admin can manage locations"
)

type Handler struct {
	service RegistryService
	logger  Logger
}

func NewHandler(service RegistryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// DayHours рабочие часы одного дня недели
type DayHours struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// SetHoursRequest HTTP request model
// Дни, отсутствующие в списке, становятся выходными
type SetHoursRequest struct {
	Hours []DayHours `json:"hours"`
}

// SetHoursResponse HTTP response model
type SetHoursResponse struct {
	LocationID int64      `json:"locationId"`
	Hours      []DayHours `json:"hours"`
}

// Handle PUT /api/v1/locations/{locationId}/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req SetHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())

	hours := make([]registryModels.DayHoursSpec, len(req.Hours))
	for i, day := range req.Hours {
		hours[i] = registryModels.DayHoursSpec{
			Weekday:   day.Weekday,
			OpenTime:  day.OpenTime,
			CloseTime: day.CloseTime,
		}
	}

	serviceReq := &registryModels.SetLocationHoursRequest{
		OrgID:      orgID,
		UserRole:   middleware.UserRole(r.Context()),
		LocationID: locationID,
		Hours:      hours,
	}

	updated, err := h.service.SetLocationHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("PUT /locations/{id}/hours - Access denied: org_id=%d, location_id=%d", orgID, locationID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrLocationNotFound):
			h.logger.Warn("PUT /locations/{id}/hours - Location not found: org_id=%d, location_id=%d", orgID, locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("PUT /locations/{id}/hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /locations/{id}/hours - Failed to set hours: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	responseHours := make([]DayHours, len(updated.Hours))
	for i, day := range updated.Hours {
		responseHours[i] = DayHours{Weekday: day.Weekday, OpenTime: day.OpenTime, CloseTime: day.CloseTime}
	}

	h.logger.Info("PUT /locations/{id}/hours - Hours updated: location_id=%d, org_id=%d", locationID, orgID)
	handlers.RespondJSON(w, http.StatusOK, &SetHoursResponse{
		LocationID: updated.ID,
		Hours:      responseHours,
	})
}
