package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planbay/scheduling-service/internal/domain"
	bookingstorage "github.com/planbay/scheduling-service/internal/infra/storage/booking"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	resourcestorage "github.com/planbay/scheduling-service/internal/infra/storage/resource"
)

// UseCase use case расчета свободных интервалов ресурсов
// Расчет ничего не изменяет: повторный запрос при неизменных бронированиях
// возвращает тот же результат
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	locationRepo LocationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	locationRepo LocationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		locationRepo: locationRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	resources, err := uc.resolveResources(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:      req.Date,
		OrgID:     req.OrgID,
		Resources: make([]ResourceAvailability, 0, len(resources)),
	}

	// Локации кешируются в рамках запроса: все ресурсы одной локации
	// используют одно и то же расписание
	locations := make(map[int64]*domain.Location)

	for _, resource := range resources {
		location, ok := locations[resource.LocationID]
		if !ok {
			location, err = uc.locationRepo.GetByID(ctx, req.OrgID, resource.LocationID)
			if err != nil {
				if errors.Is(err, locationstorage.ErrLocationNotFound) {
					uc.logger.Warn("GetAvailability: location id=%d not found for resource id=%d",
						resource.LocationID, resource.ID)
					return nil, ErrLocationNotFound
				}
				uc.logger.Error("GetAvailability: failed to get location id=%d: %v", resource.LocationID, err)
				return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
			}
			locations[resource.LocationID] = location
		}

		availability, err := uc.resourceAvailability(ctx, resource, location, req)
		if err != nil {
			return nil, err
		}

		response.Resources = append(response.Resources, *availability)
	}

	uc.logger.Info("GetAvailability: org=%d, date=%s, resources=%d",
		req.OrgID, req.Date.Format(domain.DateFormat), len(response.Resources))

	return response, nil
}

// resolveResources определяет набор ресурсов для расчета
func (uc *UseCase) resolveResources(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if req.ResourceID != nil {
		resource, err := uc.resourceRepo.GetByID(ctx, req.OrgID, *req.ResourceID)
		if err != nil {
			if errors.Is(err, resourcestorage.ErrResourceNotFound) {
				uc.logger.Warn("GetAvailability: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}
		return []*domain.Resource{resource}, nil
	}

	// Режим локации: считаем доступность всех активных ресурсов
	if _, err := uc.locationRepo.GetByID(ctx, req.OrgID, *req.LocationID); err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailability: location id=%d not found", *req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get location id=%d: %v", *req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	resources, err := uc.resourceRepo.ListActiveByLocation(ctx, req.OrgID, *req.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list resources for location id=%d: %v", *req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	return resources, nil
}

// resourceAvailability считает свободные интервалы одного ресурса на дату
func (uc *UseCase) resourceAvailability(
	ctx context.Context,
	resource *domain.Resource,
	location *domain.Location,
	req *Request,
) (*ResourceAvailability, error) {
	result := &ResourceAvailability{
		ResourceID:    resource.ID,
		ResourceName:  resource.Name,
		Capacity:      resource.MaxConcurrentBookings,
		FreeIntervals: []FreeInterval{},
	}

	// Неактивный ресурс и закрытый день дают пустую доступность
	if !resource.Active {
		return result, nil
	}

	day := location.Hours.ForDate(req.Date)
	if day == nil || !location.Active {
		return result, nil
	}
	result.Open = true

	bookings, err := uc.listBookingsWithRetry(ctx, resource.ID, req)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for resource id=%d: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	full, err := buildFullIntervals(bookings, resource.MaxConcurrentBookings)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build busy intervals: %v", ErrInternal, err)
	}

	result.MaxConcurrency, err = maxConcurrency(bookings)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute peak concurrency: %v", ErrInternal, err)
	}

	openMinute, err := day.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMinute, err := day.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	free := subtractIntervals(minuteInterval{start: openMinute, end: closeMinute}, full)

	// Для сегодняшней даты прошедшее время недоступно
	now := uc.timeProvider.Now()
	if isSameDay(req.Date, now) {
		free = clampIntervals(free, now.Hour()*60+now.Minute())
	}

	result.FreeIntervals = toFreeIntervals(free)

	return result, nil
}

// listBookingsWithRetry читает бронирования с одним повтором на временных
// ошибках хранилища. Чтение идемпотентно, повтор безопасен.
func (uc *UseCase) listBookingsWithRetry(ctx context.Context, resourceID int64, req *Request) ([]*domain.Booking, error) {
	bookings, err := uc.bookingRepo.ListForResourceAndDate(ctx, resourceID, req.Date)
	if err == nil {
		return bookings, nil
	}

	if !bookingstorage.IsStorageError(err) {
		return nil, err
	}

	uc.logger.Warn("GetAvailability: retrying bookings read for resource id=%d after error: %v", resourceID, err)
	return uc.bookingRepo.ListForResourceAndDate(ctx, resourceID, req.Date)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
