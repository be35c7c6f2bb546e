package models

import (
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/types"
)

// DayHoursSpec рабочие часы на один день недели
type DayHoursSpec struct {
	Weekday   int // 0 = Sunday ... 6 = Saturday
	OpenTime  string
	CloseTime string
}

// CreateLocationRequest запрос на создание локации
type CreateLocationRequest struct {
	OrgID        int64
	UserRole     string
	Name         string
	Address      string
	Timezone     string
	Headquarters bool
	Hours        []DayHoursSpec
}

// UpdateLocationRequest запрос на обновление локации
type UpdateLocationRequest struct {
	OrgID        int64
	UserRole     string
	LocationID   int64
	Name         *string
	Address      *string
	Timezone     *string
	Active       *bool
	Headquarters *bool
}

// SetLocationHoursRequest запрос на замену рабочих часов локации
type SetLocationHoursRequest struct {
	OrgID      int64
	UserRole   string
	LocationID int64
	Hours      []DayHoursSpec
}

// CreateResourceRequest запрос на создание ресурса
type CreateResourceRequest struct {
	OrgID                 int64
	UserRole              string
	LocationID            int64
	Name                  string
	Type                  string
	MaxConcurrentBookings int // 0 - использовать значение по умолчанию
	DisplayColor          *string
}

// UpdateResourceRequest запрос на обновление ресурса
type UpdateResourceRequest struct {
	OrgID                 int64
	UserRole              string
	ResourceID            int64
	Name                  *string
	Type                  *string
	MaxConcurrentBookings *int
	DisplayColor          *string
}

// LocationResponse модель локации для внешних слоев
type LocationResponse struct {
	ID           int64
	OrgID        int64
	Name         string
	Address      string
	Timezone     string
	Active       bool
	Headquarters bool
	Hours        []DayHoursSpec
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResourceResponse модель ресурса для внешних слоев
type ResourceResponse struct {
	ID                    int64
	OrgID                 int64
	LocationID            int64
	Name                  string
	Type                  string
	MaxConcurrentBookings int
	Active                bool
	DisplayColor          *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ToWeekSchedule конвертирует список часов в domain расписание с валидацией
func ToWeekSchedule(specs []DayHoursSpec) (domain.WeekSchedule, error) {
	var schedule domain.WeekSchedule

	for _, spec := range specs {
		if spec.Weekday < 0 || spec.Weekday > 6 {
			return schedule, errWeekdayRange(spec.Weekday)
		}
		if schedule[spec.Weekday] != nil {
			return schedule, errWeekdayDuplicate(spec.Weekday)
		}

		open, err := types.NewTimeStringFromString(spec.OpenTime)
		if err != nil {
			return schedule, err
		}
		closeAt, err := types.NewTimeStringFromString(spec.CloseTime)
		if err != nil {
			return schedule, err
		}
		if !open.IsBefore(closeAt) {
			return schedule, errHoursOrder(spec.Weekday)
		}

		schedule[spec.Weekday] = &domain.DayHours{
			Weekday:   time.Weekday(spec.Weekday),
			OpenTime:  open,
			CloseTime: closeAt,
		}
	}

	return schedule, nil
}

// FromWeekSchedule конвертирует domain расписание в список часов
func FromWeekSchedule(schedule domain.WeekSchedule) []DayHoursSpec {
	specs := make([]DayHoursSpec, 0)
	for weekday, day := range schedule {
		if day == nil {
			continue
		}
		specs = append(specs, DayHoursSpec{
			Weekday:   weekday,
			OpenTime:  day.OpenTime.String(),
			CloseTime: day.CloseTime.String(),
		})
	}
	return specs
}

// FromDomainLocation конвертирует domain локацию в response
func FromDomainLocation(loc *domain.Location) *LocationResponse {
	return &LocationResponse{
		ID:           loc.ID,
		OrgID:        loc.OrgID,
		Name:         loc.Name,
		Address:      loc.Address,
		Timezone:     loc.Timezone,
		Active:       loc.Active,
		Headquarters: loc.Headquarters,
		Hours:        FromWeekSchedule(loc.Hours),
		CreatedAt:    loc.CreatedAt,
		UpdatedAt:    loc.UpdatedAt,
	}
}

// FromDomainResource конвертирует domain ресурс в response
func FromDomainResource(res *domain.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:                    res.ID,
		OrgID:                 res.OrgID,
		LocationID:            res.LocationID,
		Name:                  res.Name,
		Type:                  string(res.Type),
		MaxConcurrentBookings: res.MaxConcurrentBookings,
		Active:                res.Active,
		DisplayColor:          res.DisplayColor,
		CreatedAt:             res.CreatedAt,
		UpdatedAt:             res.UpdatedAt,
	}
}

// FromDomainResourceList конвертирует список domain ресурсов
func FromDomainResourceList(resources []*domain.Resource) []*ResourceResponse {
	result := make([]*ResourceResponse, len(resources))
	for i, res := range resources {
		result[i] = FromDomainResource(res)
	}
	return result
}

// FromDomainLocationList конвертирует список domain локаций
func FromDomainLocationList(locations []*domain.Location) []*LocationResponse {
	result := make([]*LocationResponse, len(locations))
	for i, loc := range locations {
		result[i] = FromDomainLocation(loc)
	}
	return result
}
