package list_locations

import (
	"net/http"
	"strconv"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
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

// LocationItem элемент списка локаций
type LocationItem struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Timezone     string     `json:"timezone"`
	Active       bool       `json:"active"`
	Headquarters bool       `json:"headquarters"`
	Hours        []DayHours `json:"hours"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Locations []LocationItem `json:"locations"`
	Total     int            `json:"total"`
}

// Handle GET /api/v1/locations
// Query: ?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgID(r.Context())

	activeOnly := false
	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, "invalid activeOnly parameter")
			return
		}
		activeOnly = parsed
	}

	locations, err := h.service.ListLocations(r.Context(), orgID, activeOnly)
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: org_id=%d, error=%v", orgID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toListResponse(locations))
}

func toListResponse(locations []*registryModels.LocationResponse) *ListResponse {
	items := make([]LocationItem, len(locations))
	for i, loc := range locations {
		hours := make([]DayHours, len(loc.Hours))
		for j, h := range loc.Hours {
			hours[j] = DayHours{Weekday: h.Weekday, OpenTime: h.OpenTime, CloseTime: h.CloseTime}
		}
		items[i] = LocationItem{
			ID:           loc.ID,
			Name:         loc.Name,
			Address:      loc.Address,
			Timezone:     loc.Timezone,
			Active:       loc.Active,
			Headquarters: loc.Headquarters,
			Hours:        hours,
		}
	}
	return &ListResponse{Locations: items, Total: len(items)}
}
