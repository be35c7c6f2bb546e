package domain

import "github.com/planbay/scheduling-service/pkg/types"

// TimeRange полуинтервал [Start, End) внутри одного дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps проверяет реальное пересечение двух интервалов
// Строгие неравенства: граничащие интервалы не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && r.End.IsAfter(other.Start)
}

// Touches возвращает true, если интервалы пересекаются или граничат
// Используется при склейке занятых интервалов в максимальные
func (r TimeRange) Touches(other TimeRange) bool {
	return !r.End.IsBefore(other.Start) && !other.End.IsBefore(r.Start)
}

// IsValid проверяет, что начало строго раньше конца
func (r TimeRange) IsValid() bool {
	return r.Start.IsBefore(r.End)
}
