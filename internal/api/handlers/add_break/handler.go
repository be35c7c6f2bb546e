package add_break

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
	msgBreakOverlap       = "break overlaps an existing break"
	msgBreakOutOfBounds   = "break is outside session bounds"
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

// AddBreakRequest HTTP request model
// Пустой endAt открывает перерыв, который закрывается отдельным запросом
type AddBreakRequest struct {
	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
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

// Handle POST /api/v1/timeclock/sessions/{sessionId}/breaks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req AddBreakRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeclock/sessions/{id}/breaks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.StartAt.IsZero() {
		handlers.RespondBadRequest(w, "startAt is required")
		return
	}

	serviceReq := &timeclockModels.AddBreakRequest{
		OrgID:     middleware.OrgID(r.Context()),
		SessionID: sessionID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
	}

	session, err := h.service.AddBreak(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeclock.ErrSessionNotFound):
			h.logger.Warn("POST /timeclock/sessions/{id}/breaks - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, timeclock.ErrBreakOverlap):
			h.logger.Warn("POST /timeclock/sessions/{id}/breaks - Break overlap: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgBreakOverlap)

		case errors.Is(err, timeclock.ErrBreakOutOfBounds):
			h.logger.Warn("POST /timeclock/sessions/{id}/breaks - Break out of bounds: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgBreakOutOfBounds)

		case errors.Is(err, timeclock.ErrInvalidInput):
			h.logger.Warn("POST /timeclock/sessions/{id}/breaks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /timeclock/sessions/{id}/breaks - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeclock/sessions/{id}/breaks - Break added: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusCreated, toBreaksResponse(session))
}

func toBreaksResponse(session *timeclockModels.SessionResponse) *BreaksResponse {
	breaks := make([]BreakItem, len(session.Breaks))
	for i, b := range session.Breaks {
		breaks[i] = BreakItem{ID: b.ID, StartAt: b.StartAt, EndAt: b.EndAt}
	}
	return &BreaksResponse{SessionID: session.ID.String(), Breaks: breaks}
}
