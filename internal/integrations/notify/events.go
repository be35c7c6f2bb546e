package notify

// Routing keys событий бронирования
const (
	RKBookingCreated       = "booking.created"
	RKBookingCancelled     = "booking.cancelled"
	RKBookingStatusChanged = "booking.status_changed"
)

// BookingEvent полезная нагрузка события бронирования
// Содержит достаточно данных для текста уведомления без похода в БД
type BookingEvent struct {
	BookingID  int64  `json:"booking_id"`
	Reference  string `json:"reference"`
	OrgID      int64  `json:"org_id"`
	ResourceID int64  `json:"resource_id"`
	LocationID int64  `json:"location_id"`
	Customer   string `json:"customer"`
	Date       string `json:"date"`       // YYYY-MM-DD
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM
	Status     string `json:"status"`
	OldStatus  string `json:"old_status,omitempty"`
}
