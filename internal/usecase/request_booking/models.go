package request_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/pkg/types"
)

// Request модель запроса на создание бронирования
// Пустой ResourceID включает автоподбор: берется активный ресурс локации
// с наименьшим id, у которого есть свободное место на весь интервал
type Request struct {
	OrgID         int64
	UserID        int64
	LocationID    int64
	ResourceID    *int64
	CustomerName  string
	CustomerPhone *string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	ServiceName   *string
	Notes         *string
	Confirmed     bool // true - бронь сразу подтверждена, иначе pending
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	Reference     uuid.UUID
	OrgID         int64
	ResourceID    int64
	LocationID    int64
	CustomerName  string
	CustomerPhone *string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        string
	ServiceName   *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
