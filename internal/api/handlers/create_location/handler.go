package create_location

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
	Weekday   int    `json:"weekday"` // 0 = Sunday ... 6 = Saturday
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// CreateLocationRequest HTTP request model
type CreateLocationRequest struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Timezone     string     `json:"timezone,omitempty"`
	Headquarters bool       `json:"headquarters,omitempty"`
	Hours        []DayHours `json:"hours"`
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

// Handle POST /api/v1/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /locations - Invalid request body: %v", err)
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

	serviceReq := &registryModels.CreateLocationRequest{
		OrgID:        orgID,
		UserRole:     middleware.UserRole(r.Context()),
		Name:         req.Name,
		Address:      req.Address,
		Timezone:     req.Timezone,
		Headquarters: req.Headquarters,
		Hours:        hours,
	}

	created, err := h.service.CreateLocation(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("POST /locations - Access denied: org_id=%d", orgID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("POST /locations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /locations - Failed to create location: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /locations - Location created: location_id=%d, org_id=%d", created.ID, orgID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(created))
}
