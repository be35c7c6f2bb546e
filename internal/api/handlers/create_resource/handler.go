package create_resource

import (
	"errors"
	"net/http"
	"time"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/service/registry"
	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgLocationNotFound   = "location not found"
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

// CreateResourceRequest HTTP request model
type CreateResourceRequest struct {
	LocationID            int64   `json:"locationId"`
	Name                  string  `json:"name"`
	Type                  string  `json:"type"` // bay | lift | staff | room | equipment
	MaxConcurrentBookings int     `json:"maxConcurrentBookings,omitempty"`
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
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(res *registryModels.ResourceResponse) *ResourceResponse {
	return &ResourceResponse{
		ID:                    res.ID,
		LocationID:            res.LocationID,
		Name:                  res.Name,
		Type:                  res.Type,
		MaxConcurrentBookings: res.MaxConcurrentBookings,
		Active:                res.Active,
		DisplayColor:          res.DisplayColor,
		CreatedAt:             res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             res.UpdatedAt.Format(time.RFC3339),
	}
}

// Handle POST /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())

	serviceReq := &registryModels.CreateResourceRequest{
		OrgID:                 orgID,
		UserRole:              middleware.UserRole(r.Context()),
		LocationID:            req.LocationID,
		Name:                  req.Name,
		Type:                  req.Type,
		MaxConcurrentBookings: req.MaxConcurrentBookings,
		DisplayColor:          req.DisplayColor,
	}

	created, err := h.service.CreateResource(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("POST /resources - Access denied: org_id=%d", orgID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrLocationNotFound):
			h.logger.Warn("POST /resources - Location not found: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("POST /resources - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /resources - Failed to create resource: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources - Resource created: resource_id=%d, org_id=%d", created.ID, orgID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(created))
}
