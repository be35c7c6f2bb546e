package get_availability

import (
	"time"

	"github.com/planbay/scheduling-service/pkg/types"
)

// Request модель запроса на расчет доступности
// Должен быть указан ровно один из ResourceID / LocationID
type Request struct {
	OrgID      int64
	ResourceID *int64    // доступность одного ресурса
	LocationID *int64    // доступность всех активных ресурсов локации
	Date       time.Time // дата расчета (без времени)
}

// Response модель ответа с доступностью по ресурсам
type Response struct {
	Date      time.Time
	OrgID     int64
	Resources []ResourceAvailability
}

// ResourceAvailability доступность одного ресурса на дату
type ResourceAvailability struct {
	ResourceID     int64
	ResourceName   string
	Capacity       int
	Open           bool           // false, если локация закрыта в этот день
	FreeIntervals  []FreeInterval // пустой список у закрытой или полностью занятой локации
	MaxConcurrency int            // пиковое число одновременных броней за день
}

// FreeInterval интервал, в котором ресурс может принять хотя бы одну бронь
type FreeInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
