package list_resources

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

// ResourceItem элемент списка ресурсов
type ResourceItem struct {
	ID                    int64   `json:"id"`
	LocationID            int64   `json:"locationId"`
	Name                  string  `json:"name"`
	Type                  string  `json:"type"`
	MaxConcurrentBookings int     `json:"maxConcurrentBookings"`
	Active                bool    `json:"active"`
	DisplayColor          *string `json:"displayColor,omitempty"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Resources []ResourceItem `json:"resources"`
	Total     int            `json:"total"`
}

// Handle GET /api/v1/resources
// Query: ?locationId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgID(r.Context())

	var locationID *int64
	if raw := r.URL.Query().Get("locationId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			handlers.RespondBadRequest(w, "invalid locationId parameter")
			return
		}
		locationID = &parsed
	}

	resources, err := h.service.ListResources(r.Context(), orgID, locationID)
	if err != nil {
		h.logger.Error("GET /resources - Failed to list resources: org_id=%d, error=%v", orgID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toListResponse(resources))
}

func toListResponse(resources []*registryModels.ResourceResponse) *ListResponse {
	items := make([]ResourceItem, len(resources))
	for i, res := range resources {
		items[i] = ResourceItem{
			ID:                    res.ID,
			LocationID:            res.LocationID,
			Name:                  res.Name,
			Type:                  res.Type,
			MaxConcurrentBookings: res.MaxConcurrentBookings,
			Active:                res.Active,
			DisplayColor:          res.DisplayColor,
		}
	}
	return &ListResponse{Resources: items, Total: len(items)}
}
