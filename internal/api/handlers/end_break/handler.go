package end_break

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
	msgNoOpenBreak        = "session has no open break"
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

// EndBreakRequest HTTP request model
type EndBreakRequest struct {
	EndAt *time.Time `json:"endAt,omitempty"` // nil - текущее время
}

// BreakItem перерыв смены
type BreakItem struct {
	ID      int64      `json:"id"`
	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
}

// BreaksResponse HTTP response model
type BreaksResponse struct {
	SessionID string      `json:"sessionId"`
	Breaks    []BreakItem `json:"breaks"`
}

// Handle PATCH /api/v1/timeclock/sessions/{sessionId}/breaks/end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req EndBreakRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /timeclock/sessions/{id}/breaks/end - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &timeclockModels.EndBreakRequest{
		OrgID:     middleware.OrgID(r.Context()),
		SessionID: sessionID,
	}
	if req.EndAt != nil {
		serviceReq.EndAt = *req.EndAt
	}

	session, err := h.service.EndBreak(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeclock.ErrSessionNotFound):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/breaks/end - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, timeclock.ErrNoOpenBreak):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/breaks/end - No open break: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNoOpenBreak)

		case errors.Is(err, timeclock.ErrInvalidInput):
			h.logger.Warn("PATCH /timeclock/sessions/{id}/breaks/end - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /timeclock/sessions/{id}/breaks/end - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	breaks := make([]BreakItem, len(session.Breaks))
	for i, b := range session.Breaks {
		breaks[i] = BreakItem{ID: b.ID, StartAt: b.StartAt, EndAt: b.EndAt}
	}

	h.logger.Info("PATCH /timeclock/sessions/{id}/breaks/end - Break ended: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, &BreaksResponse{SessionID: session.ID.String(), Breaks: breaks})
}
