package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/planbay/scheduling-service/internal/domain"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	resourcestorage "github.com/planbay/scheduling-service/internal/infra/storage/resource"
	"github.com/planbay/scheduling-service/internal/service/registry/models"
)

// Service реестр локаций и бронируемых ресурсов организации
type Service struct {
	locations LocationRepository
	resources ResourceRepository
	txManager TxManager
	logger    Logger
}

func New(locations LocationRepository, resources ResourceRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		locations: locations,
		resources: resources,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateLocation создает локацию. Если передан флаг Headquarters,
// прежняя головная локация организации снимается в той же транзакции.
func (s *Service) CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error) {
	if !domain.IsManagerRole(req.UserRole) {
		return nil, fmt.Errorf("%w: CreateLocation - role %q", ErrAccessDenied, req.UserRole)
	}
	if err := validateLocationName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: CreateLocation - %v", ErrInvalidInput, err)
	}

	hours, err := models.ToWeekSchedule(req.Hours)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLocation - %v", ErrInvalidInput, err)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}

	location := &domain.Location{
		OrgID:        req.OrgID,
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Timezone:     timezone,
		Active:       true,
		Headquarters: req.Headquarters,
		Hours:        hours,
	}

	var created *domain.Location
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.Headquarters {
			if err := s.locations.DemoteHeadquarters(txCtx, req.OrgID); err != nil {
				return fmt.Errorf("demote headquarters: %w", err)
			}
		}

		var createErr error
		created, createErr = s.locations.Create(txCtx, location)
		return createErr
	})
	if err != nil {
		s.logger.Error("registry: CreateLocation failed for org %d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: CreateLocation: %v", ErrInternal, err)
	}

	s.logger.Info("registry: created location %d (org %d, hq=%t)", created.ID, created.OrgID, created.Headquarters)
	return models.FromDomainLocation(created), nil
}

// UpdateLocation обновляет поля локации. Смена головной локации
// выполняется транзакционно, как и при создании.
func (s *Service) UpdateLocation(ctx context.Context, req *models.UpdateLocationRequest) (*models.LocationResponse, error) {
	if !domain.IsManagerRole(req.UserRole) {
		return nil, fmt.Errorf("%w: UpdateLocation - role %q", ErrAccessDenied, req.UserRole)
	}

	location, err := s.locations.GetByID(ctx, req.OrgID, req.LocationID)
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			return nil, fmt.Errorf("%w: UpdateLocation - location %d", ErrLocationNotFound, req.LocationID)
		}
		return nil, fmt.Errorf("%w: UpdateLocation: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if err := validateLocationName(*req.Name); err != nil {
			return nil, fmt.Errorf("%w: UpdateLocation - %v", ErrInvalidInput, err)
		}
		location.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		location.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		location.Timezone = *req.Timezone
	}
	if req.Active != nil {
		location.Active = *req.Active
	}

	becameHQ := false
	if req.Headquarters != nil {
		becameHQ = *req.Headquarters && !location.Headquarters
		location.Headquarters = *req.Headquarters
	}

	var updated *domain.Location
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if becameHQ {
			if err := s.locations.DemoteHeadquarters(txCtx, req.OrgID); err != nil {
				return fmt.Errorf("demote headquarters: %w", err)
			}
		}

		var updateErr error
		updated, updateErr = s.locations.Update(txCtx, location)
		return updateErr
	})
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			return nil, fmt.Errorf("%w: UpdateLocation - location %d", ErrLocationNotFound, req.LocationID)
		}
		s.logger.Error("registry: UpdateLocation failed for location %d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: UpdateLocation: %v", ErrInternal, err)
	}

	return models.FromDomainLocation(updated), nil
}

// SetLocationHours заменяет недельное расписание локации целиком.
// Существующие брони вне новых часов остаются без изменений.
func (s *Service) SetLocationHours(ctx context.Context, req *models.SetLocationHoursRequest) (*models.LocationResponse, error) {
	if !domain.IsManagerRole(req.UserRole) {
		return nil, fmt.Errorf("%w: SetLocationHours - role %q", ErrAccessDenied, req.UserRole)
	}

	hours, err := models.ToWeekSchedule(req.Hours)
	if err != nil {
		return nil, fmt.Errorf("%w: SetLocationHours - %v", ErrInvalidInput, err)
	}

	location, err := s.locations.GetByID(ctx, req.OrgID, req.LocationID)
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			return nil, fmt.Errorf("%w: SetLocationHours - location %d", ErrLocationNotFound, req.LocationID)
		}
		return nil, fmt.Errorf("%w: SetLocationHours: %v", ErrInternal, err)
	}

	if err := s.locations.SetHours(ctx, req.OrgID, location.ID, hours); err != nil {
		s.logger.Error("registry: SetLocationHours failed for location %d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: SetLocationHours: %v", ErrInternal, err)
	}

	location.Hours = hours
	return models.FromDomainLocation(location), nil
}

// ListLocations возвращает локации организации
func (s *Service) ListLocations(ctx context.Context, orgID int64, activeOnly bool) ([]*models.LocationResponse, error) {
	locations, err := s.locations.ListByOrg(ctx, orgID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations: %v", ErrInternal, err)
	}
	return models.FromDomainLocationList(locations), nil
}

// GetLocation возвращает локацию по идентификатору
func (s *Service) GetLocation(ctx context.Context, orgID, locationID int64) (*models.LocationResponse, error) {
	location, err := s.locations.GetByID(ctx, orgID, locationID)
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			return nil, fmt.Errorf("%w: GetLocation - location %d", ErrLocationNotFound, locationID)
		}
		return nil, fmt.Errorf("%w: GetLocation: %v", ErrInternal, err)
	}
	return models.FromDomainLocation(location), nil
}

// CreateResource создает ресурс в локации своей организации
func (s *Service) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	if !domain.IsManagerRole(req.UserRole) {
		return nil, fmt.Errorf("%w: CreateResource - role %q", ErrAccessDenied, req.UserRole)
	}
	if err := validateResourceName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: CreateResource - %v", ErrInvalidInput, err)
	}
	if !domain.ValidResourceType(domain.ResourceType(req.Type)) {
		return nil, fmt.Errorf("%w: CreateResource - unknown resource type %q", ErrInvalidInput, req.Type)
	}

	capacity := req.MaxConcurrentBookings
	if capacity == 0 {
		capacity = domain.DefaultMaxConcurrentBookings
	}
	if err := validateCapacity(capacity); err != nil {
		return nil, fmt.Errorf("%w: CreateResource - %v", ErrInvalidInput, err)
	}

	// Локация должна существовать и принадлежать той же организации.
	// GetByID фильтрует по org_id, поэтому чужая локация выглядит как отсутствующая.
	if _, err := s.locations.GetByID(ctx, req.OrgID, req.LocationID); err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			return nil, fmt.Errorf("%w: CreateResource - location %d", ErrLocationNotFound, req.LocationID)
		}
		return nil, fmt.Errorf("%w: CreateResource: %v", ErrInternal, err)
	}

	resource := &domain.Resource{
		OrgID:                 req.OrgID,
		LocationID:            req.LocationID,
		Name:                  strings.TrimSpace(req.Name),
		Type:                  domain.ResourceType(req.Type),
		MaxConcurrentBookings: capacity,
		Active:                true,
		DisplayColor:          req.DisplayColor,
	}

	created, err := s.resources.Create(ctx, resource)
	if err != nil {
		s.logger.Error("registry: CreateResource failed for org %d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: CreateResource: %v", ErrInternal, err)
	}

	s.logger.Info("registry: created resource %d (%s, capacity %d) at location %d",
		created.ID, created.Type, created.MaxConcurrentBookings, created.LocationID)
	return models.FromDomainResource(created), nil
}

// UpdateResource обновляет поля ресурса
func (s *Service) UpdateResource(ctx context.Context, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	if !domain.IsManagerRole(req.UserRole) {
		return nil, fmt.Errorf("%w: UpdateResource - role %q", ErrAccessDenied, req.UserRole)
	}

	resource, err := s.resources.GetByID(ctx, req.OrgID, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourcestorage.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: UpdateResource - resource %d", ErrResourceNotFound, req.ResourceID)
		}
		return nil, fmt.Errorf("%w: UpdateResource: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if err := validateResourceName(*req.Name); err != nil {
			return nil, fmt.Errorf("%w: UpdateResource - %v", ErrInvalidInput, err)
		}
		resource.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !domain.ValidResourceType(domain.ResourceType(*req.Type)) {
			return nil, fmt.Errorf("%w: UpdateResource - unknown resource type %q", ErrInvalidInput, *req.Type)
		}
		resource.Type = domain.ResourceType(*req.Type)
	}
	if req.MaxConcurrentBookings != nil {
		if err := validateCapacity(*req.MaxConcurrentBookings); err != nil {
			return nil, fmt.Errorf("%w: UpdateResource - %v", ErrInvalidInput, err)
		}
		resource.MaxConcurrentBookings = *req.MaxConcurrentBookings
	}
	if req.DisplayColor != nil {
		resource.DisplayColor = req.DisplayColor
	}

	updated, err := s.resources.Update(ctx, resource)
	if err != nil {
		if errors.Is(err, resourcestorage.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: UpdateResource - resource %d", ErrResourceNotFound, req.ResourceID)
		}
		s.logger.Error("registry: UpdateResource failed for resource %d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: UpdateResource: %v", ErrInternal, err)
	}

	return models.FromDomainResource(updated), nil
}

// DeactivateResource помечает ресурс неактивным. Существующие брони
// не затрагиваются, новые на него не принимаются.
func (s *Service) DeactivateResource(ctx context.Context, orgID int64, userRole string, resourceID int64) error {
	if !domain.IsManagerRole(userRole) {
		return fmt.Errorf("%w: DeactivateResource - role %q", ErrAccessDenied, userRole)
	}

	if err := s.resources.Deactivate(ctx, orgID, resourceID); err != nil {
		if errors.Is(err, resourcestorage.ErrResourceNotFound) {
			return fmt.Errorf("%w: DeactivateResource - resource %d", ErrResourceNotFound, resourceID)
		}
		s.logger.Error("registry: DeactivateResource failed for resource %d: %v", resourceID, err)
		return fmt.Errorf("%w: DeactivateResource: %v", ErrInternal, err)
	}

	s.logger.Info("registry: deactivated resource %d (org %d)", resourceID, orgID)
	return nil
}

// ListResources возвращает активные ресурсы организации,
// опционально отфильтрованные по локации
func (s *Service) ListResources(ctx context.Context, orgID int64, locationID *int64) ([]*models.ResourceResponse, error) {
	resources, err := s.resources.ListByOrg(ctx, orgID, locationID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListResources: %v", ErrInternal, err)
	}
	return models.FromDomainResourceList(resources), nil
}

func validateLocationName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("location name is required")
	}
	if len(trimmed) > domain.MaxLocationNameLength {
		return fmt.Errorf("location name exceeds %d characters", domain.MaxLocationNameLength)
	}
	return nil
}

func validateResourceName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("resource name is required")
	}
	if len(trimmed) > domain.MaxResourceNameLength {
		return fmt.Errorf("resource name exceeds %d characters", domain.MaxResourceNameLength)
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < domain.MinConcurrentBookings || capacity > domain.MaxConcurrentBookingsLimit {
		return fmt.Errorf("max concurrent bookings must be between %d and %d",
			domain.MinConcurrentBookings, domain.MaxConcurrentBookingsLimit)
	}
	return nil
}
