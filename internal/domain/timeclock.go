package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckinSession рабочая смена сотрудника (check-in ... check-out)
type CheckinSession struct {
	ID          uuid.UUID
	OrgID       int64
	LocationID  int64
	StaffUserID int64
	StartedAt   time.Time
	EndedAt     *time.Time // nil - смена еще открыта
	Breaks      []SessionBreak

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the session has not been checked out yet
func (s *CheckinSession) IsOpen() bool {
	return s.EndedAt == nil
}

// SessionBreak перерыв внутри смены
// Перерывы одной смены не должны пересекаться (граничащие допустимы)
type SessionBreak struct {
	ID        int64
	SessionID uuid.UUID
	StartAt   time.Time
	EndAt     *time.Time // nil - перерыв еще идет

	CreatedAt time.Time
}

// IsOpen returns true if the break has not been ended yet
func (b SessionBreak) IsOpen() bool {
	return b.EndAt == nil
}

// Overlaps проверяет реальное пересечение двух перерывов
// Строгие неравенства: перерыв, начинающийся ровно в момент окончания
// другого, пересечением не считается. Открытый перерыв считается
// продолжающимся бесконечно
func (b SessionBreak) Overlaps(other SessionBreak) bool {
	if other.EndAt != nil && !b.StartAt.Before(*other.EndAt) {
		return false
	}
	if b.EndAt != nil && !other.StartAt.Before(*b.EndAt) {
		return false
	}
	return true
}
