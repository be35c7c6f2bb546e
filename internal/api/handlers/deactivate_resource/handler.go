package deactivate_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/service/registry"
)

const (
	msgInvalidResourceID = "invalid resource id"
	msgResourceNotFound  = "resource not found"
	msgAccessDenied      = "only owner or admin can manage resources"
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

// Handle DELETE /api/v1/resources/{resourceId}
// Ресурс деактивируется, существующие брони не затрагиваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil || resourceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	orgID := middleware.OrgID(r.Context())
	userRole := middleware.UserRole(r.Context())

	if err := h.service.DeactivateResource(r.Context(), orgID, userRole, resourceID); err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{id} - Access denied: org_id=%d, resource_id=%d", orgID, resourceID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{id} - Resource not found: org_id=%d, resource_id=%d", orgID, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("DELETE /resources/{id} - Failed to deactivate: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id} - Resource deactivated: resource_id=%d, org_id=%d", resourceID, orgID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
