package end_session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/service/timeclock"
	timeclockModels "github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSessionID   = "invalid session id"
	msgSessionNotFound    = "session not found"
	msgSessionClosed      = "session is already closed"
)

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

// EndSessionRequest HTTP request model
type EndSessionRequest struct {
	EndedAt *time.Time `json:"endedAt,omitempty"` // nil - текущее время
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID        string `json:"id"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
}

// Handle PATCH /api/v1/timeclock/sessions/{sessionId}/end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req EndSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /timeclock/sessions/{id}/end - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())

	serviceReq := &timeclockModels.EndSessionRequest{
		OrgID:     orgID,
		SessionID: sessionID,
	}
	if req.EndedAt != nil {
		serviceReq.EndedAt = *req.EndedAt
	}

	session, err := h.service.EndSession(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeclock.ErrSessionNotFound):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/end - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, timeclock.ErrSessionClosed):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/end - Already closed: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionClosed)

		case errors.Is(err, timeclock.ErrInvalidInput):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/end - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /timeclock/sessions/{id}/end - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /timeclock/sessions/{id}/end - Session ended: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, &SessionResponse{
		ID:        session.ID.String(),
		StartedAt: session.StartedAt.Format(time.RFC3339),
		EndedAt:   session.EndedAt.Format(time.RFC3339),
	})
}
