package update_location

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

// UpdateLocationRequest HTTP request model, все поля опциональны
type UpdateLocationRequest struct {
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	Active       *bool   `json:"active,omitempty"`
	Headquarters *bool   `json:"headquarters,omitempty"`
}

// LocationResponse HTTP response model
type LocationResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Timezone     string `json:"timezone"`
	Active       bool   `json:"active"`
	Headquarters bool   `json:"headquarters"`
	UpdatedAt    string `json:"updatedAt"`
}

// Handle PATCH /api/v1/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req UpdateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())

	serviceReq := &registryModels.UpdateLocationRequest{
		OrgID:        orgID,
		UserRole:     middleware.UserRole(r.Context()),
		LocationID:   locationID,
		Name:         req.Name,
		Address:      req.Address,
		Timezone:     req.Timezone,
		Active:       req.Active,
		Headquarters: req.Headquarters,
	}

	updated, err := h.service.UpdateLocation(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("PATCH /locations/{id} - Access denied: org_id=%d, location_id=%d", orgID, locationID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrLocationNotFound):
			h.logger.Warn("PATCH /locations/{id} - Location not found: org_id=%d, location_id=%d", orgID, locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("PATCH /locations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /locations/{id} - Failed to update location: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /locations/{id} - Location updated: location_id=%d, org_id=%d", locationID, orgID)
	handlers.RespondJSON(w, http.StatusOK, &LocationResponse{
		ID:           updated.ID,
		Name:         updated.Name,
		Address:      updated.Address,
		Timezone:     updated.Timezone,
		Active:       updated.Active,
		Headquarters: updated.Headquarters,
		UpdatedAt:    updated.UpdatedAt.Format(time.RFC3339),
	})
}
