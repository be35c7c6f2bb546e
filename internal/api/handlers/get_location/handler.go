package get_location

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/service/registry"
	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

const (
	msgInvalidLocationID = "invalid location id"
	msgLocationNotFound  = "location not found"
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

// LocationResponse HTTP response model
type LocationResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Timezone     string     `json:"timezone"`
	Active       bool       `json:"active"`
	Headquarters bool       `json:"headquarters"`
	Hours        []DayHours `json:"hours"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(loc *registryModels.LocationResponse) *LocationResponse {
	hours := make([]DayHours, len(loc.Hours))
	for i, h := range loc.Hours {
		hours[i] = DayHours{Weekday: h.Weekday, OpenTime: h.OpenTime, CloseTime: h.CloseTime}
	}
	return &LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Address:      loc.Address,
		Timezone:     loc.Timezone,
		Active:       loc.Active,
		Headquarters: loc.Headquarters,
		Hours:        hours,
		CreatedAt:    loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    loc.UpdatedAt.Format(time.RFC3339),
	}
}

// Handle GET /api/v1/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	orgID := middleware.OrgID(r.Context())

	location, err := h.service.GetLocation(r.Context(), orgID, locationID)
	if err != nil {
		if errors.Is(err, registry.ErrLocationNotFound) {
			h.logger.Warn("GET /locations/{id} - Location not found: location_id=%d, org_id=%d", locationID, orgID)
			handlers.RespondNotFound(w, msgLocationNotFound)
			return
		}
		h.logger.Error("GET /locations/{id} - Failed to get location: location_id=%d, error=%v", locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(location))
}
