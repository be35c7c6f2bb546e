package domain

import "time"

// ResourceType represents the kind of bookable unit
type ResourceType string

const (
	ResourceTypeBay       ResourceType = "bay"
	ResourceTypeLift      ResourceType = "lift"
	ResourceTypeStaff     ResourceType = "staff"
	ResourceTypeRoom      ResourceType = "room"
	ResourceTypeEquipment ResourceType = "equipment"
)

// ValidResourceType возвращает true для известного типа ресурса
func ValidResourceType(t ResourceType) bool {
	switch t {
	case ResourceTypeBay, ResourceTypeLift, ResourceTypeStaff, ResourceTypeRoom, ResourceTypeEquipment:
		return true
	default:
		return false
	}
}

// Resource represents a finite bookable unit inside a location
type Resource struct {
	ID                    int64
	OrgID                 int64
	LocationID            int64
	Name                  string
	Type                  ResourceType
	MaxConcurrentBookings int // Вместимость: сколько активных бронирований допустимо одновременно
	Active                bool
	DisplayColor          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupportsParallelBookings returns true if the resource accepts more than one
// concurrent booking
func (r *Resource) SupportsParallelBookings() bool {
	return r.MaxConcurrentBookings > 1
}
