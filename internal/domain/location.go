package domain

import (
	"time"

	"github.com/planbay/scheduling-service/pkg/types"
)

// DayHours operating hours for a single weekday
type DayHours struct {
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeekSchedule операционные часы локации по дням недели
// Индекс - time.Weekday; nil означает, что локация закрыта в этот день
type WeekSchedule [7]*DayHours

// ForDate возвращает рабочие часы на день недели указанной даты
func (s WeekSchedule) ForDate(date time.Time) *DayHours {
	return s[int(date.Weekday())]
}

// Location represents a physical site owning resources and defining operating hours
type Location struct {
	ID           int64
	OrgID        int64
	Name         string
	Address      string
	Timezone     string
	Active       bool
	Headquarters bool
	Hours        WeekSchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn returns true if the location has operating hours on the given date
func (l *Location) IsOpenOn(date time.Time) bool {
	return l.Active && l.Hours.ForDate(date) != nil
}

// CoversInterval проверяет, что интервал [start, end) целиком попадает
// в рабочие часы локации на указанную дату
func (l *Location) CoversInterval(date time.Time, start, end types.TimeString) bool {
	hours := l.Hours.ForDate(date)
	if !l.Active || hours == nil {
		return false
	}
	return !start.IsBefore(hours.OpenTime) && !end.IsAfter(hours.CloseTime)
}
