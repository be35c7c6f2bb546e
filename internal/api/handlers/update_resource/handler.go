package update_resource

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
	msgInvalidRequestBody = "invalid request body"
	msgInvalidResourceID  = "invalid resource id"
	msgResourceNotFound   = "resource not found"
	msgAccessDenied       = "only owner or admin can manage resources"
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

// UpdateResourceRequest HTTP request model, все поля опциональны
type UpdateResourceRequest struct {
	Name                  *string `json:"name,omitempty"`
	Type                  *string `json:"type,omitempty"`
	MaxConcurrentBookings *int    `json:"maxConcurrentBookings,omitempty"`
	DisplayColor          *string `json:"displayColor,omitempty"`
}

// ResourceResponse HTTP response model
type ResourceResponse struct {
	ID                    int64   `json:"id"`
	LocationID            int64   `json:"locationId"`
	Name                  string  `json:"name"`
	Type                  string  `json:"type"`
	MaxConcurrentBookings int     `json:"maxConcurrentBookings"`
	Active                bool    `json:"active"`
	DisplayColor          *string `json:"displayColor,omitempty"`
	UpdatedAt             string  `json:"updatedAt"`
}

// Handle PATCH /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil || resourceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req UpdateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /resources/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())

	serviceReq := &registryModels.UpdateResourceRequest{
		OrgID:                 orgID,
		UserRole:              middleware.UserRole(r.Context()),
		ResourceID:            resourceID,
		Name:                  req.Name,
		Type:                  req.Type,
		MaxConcurrentBookings: req.MaxConcurrentBookings,
		DisplayColor:          req.DisplayColor,
	}

	updated, err := h.service.UpdateResource(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("PATCH /resources/{id} - Access denied: org_id=%d, resource_id=%d", orgID, resourceID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrResourceNotFound):
			h.logger.Warn("PATCH /resources/{id} - Resource not found: org_id=%d, resource_id=%d", orgID, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("PATCH /resources/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /resources/{id} - Failed to update resource: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /resources/{id} - Resource updated: resource_id=%d, org_id=%d", resourceID, orgID)
	handlers.RespondJSON(w, http.StatusOK, &ResourceResponse{
		ID:                    updated.ID,
		LocationID:            updated.LocationID,
		Name:                  updated.Name,
		Type:                  updated.Type,
		MaxConcurrentBookings: updated.MaxConcurrentBookings,
		Active:                updated.Active,
		DisplayColor:          updated.DisplayColor,
		UpdatedAt:             updated.UpdatedAt.Format(time.RFC3339),
	})
}
