package start_session

import (
	"net/http"
	"time"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	timeclockModels "github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service TimeclockService
	logger  Logger
}

func NewHandler(service TimeclockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// StartSessionRequest HTTP request model
type StartSessionRequest struct {
	LocationID int64      `json:"locationId"`
	StartedAt  *time.Time `json:"startedAt,omitempty"` // nil - текущее время
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID          string `json:"id"`
	LocationID  int64  `json:"locationId"`
	StaffUserID int64  `json:"staffUserId"`
	StartedAt   string `json:"startedAt"`
}

// Handle POST /api/v1/timeclock/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeclock/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.LocationID <= 0 {
		handlers.RespondBadRequest(w, "locationId must be positive")
		return
	}

	orgID := middleware.OrgID(r.Context())
	userID := middleware.UserID(r.Context())

	serviceReq := &timeclockModels.StartSessionRequest{
		OrgID:       orgID,
		LocationID:  req.LocationID,
		StaffUserID: userID,
	}
	if req.StartedAt != nil {
		serviceReq.StartedAt = *req.StartedAt
	}

	session, err := h.service.StartSession(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("POST /timeclock/sessions - Failed to start session: org_id=%d, user_id=%d, error=%v",
			orgID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /timeclock/sessions - Session started: session_id=%s, user_id=%d", session.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, &SessionResponse{
		ID:          session.ID.String(),
		LocationID:  session.LocationID,
		StaffUserID: session.StaffUserID,
		StartedAt:   session.StartedAt.Format(time.RFC3339),
	})
}
