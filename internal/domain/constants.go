package domain

// Default configuration values
const (
	DefaultMaxConcurrentBookings = 1
	DefaultTimezone              = "UTC"
)

// Business validation constants
const (
	MinConcurrentBookings       = 1
	MaxConcurrentBookingsLimit  = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
	MaxLocationNameLength       = 200
	MaxResourceNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Роли, которым разрешено управлять справочником локаций и ресурсов
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// IsManagerRole возвращает true для ролей с правом изменять справочник
func IsManagerRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}

// InactiveStatuses список статусов, не занимающих вместимость ресурса
// Используется при подсчёте занятости и доступных интервалов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих вместимость ресурса
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
