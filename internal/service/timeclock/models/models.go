package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
)

// StartSessionRequest запрос на открытие смены
type StartSessionRequest struct {
	OrgID       int64
	LocationID  int64
	StaffUserID int64
	StartedAt   time.Time // zero - текущее время
}

// EndSessionRequest запрос на закрытие смены
type EndSessionRequest struct {
	OrgID     int64
	SessionID uuid.UUID
	EndedAt   time.Time // zero - текущее время
}

// AddBreakRequest запрос на добавление перерыва
// Пустой EndAt открывает перерыв без известного конца
type AddBreakRequest struct {
	OrgID     int64
	SessionID uuid.UUID
	StartAt   time.Time
	EndAt     *time.Time
}

// EndBreakRequest запрос на закрытие открытого перерыва
type EndBreakRequest struct {
	OrgID     int64
	SessionID uuid.UUID
	EndAt     time.Time // zero - текущее время
}

// BreakResponse перерыв смены для внешних слоев
type BreakResponse struct {
	ID      int64
	StartAt time.Time
	EndAt   *time.Time
}

// SessionResponse смена для внешних слоев
type SessionResponse struct {
	ID          uuid.UUID
	OrgID       int64
	LocationID  int64
	StaffUserID int64
	StartedAt   time.Time
	EndedAt     *time.Time
	Breaks      []BreakResponse
}

// FromDomainSession конвертирует domain смену в response
func FromDomainSession(s *domain.CheckinSession) *SessionResponse {
	breaks := make([]BreakResponse, len(s.Breaks))
	for i, b := range s.Breaks {
		breaks[i] = BreakResponse{
			ID:      b.ID,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
		}
	}

	return &SessionResponse{
		ID:          s.ID,
		OrgID:       s.OrgID,
		LocationID:  s.LocationID,
		StaffUserID: s.StaffUserID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		Breaks:      breaks,
	}
}
