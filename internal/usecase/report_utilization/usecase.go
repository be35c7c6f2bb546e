package report_utilization

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

// UseCase use case отчета о загрузке ресурсов
// Отчет только читает данные и безопасен параллельно с созданием броней:
// видит либо состояние до вставки, либо после
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	locationRepo LocationRepository
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
		logger:       logger,
	}
}

// Execute выполняет use case построения отчета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReportUtilization: validation failed: %v", err)
		return nil, err
	}

	location, err := uc.locationRepo.GetByID(ctx, req.OrgID, req.LocationID)
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			uc.logger.Warn("ReportUtilization: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("ReportUtilization: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	resources, err := uc.resolveResources(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &Response{
		OrgID:      req.OrgID,
		LocationID: req.LocationID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Rows:       make([]UtilizationRow, 0),
	}

	for date := dateOnly(req.StartDate); !date.After(dateOnly(req.EndDate)); date = date.AddDate(0, 0, 1) {
		day := location.Hours.ForDate(date)

		for _, resource := range resources {
			row, err := uc.resourceDay(ctx, resource, day, date)
			if err != nil {
				return nil, err
			}
			response.Rows = append(response.Rows, *row)
		}
	}

	uc.logger.Info("ReportUtilization: org=%d, location=%d, %s..%s, rows=%d",
		req.OrgID, req.LocationID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		len(response.Rows))

	return response, nil
}

// resolveResources определяет набор ресурсов отчета
func (uc *UseCase) resolveResources(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if req.ResourceID != nil {
		resource, err := uc.resourceRepo.GetByID(ctx, req.OrgID, *req.ResourceID)
		if err != nil {
			if errors.Is(err, resourcestorage.ErrResourceNotFound) {
				uc.logger.Warn("ReportUtilization: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("ReportUtilization: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}
		return []*domain.Resource{resource}, nil
	}

	resources, err := uc.resourceRepo.ListActiveByLocation(ctx, req.OrgID, req.LocationID)
	if err != nil {
		uc.logger.Error("ReportUtilization: failed to list resources for location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	return resources, nil
}

// resourceDay строит строку отчета для одного ресурса за один день
func (uc *UseCase) resourceDay(
	ctx context.Context,
	resource *domain.Resource,
	day *domain.DayHours,
	date time.Time,
) (*UtilizationRow, error) {
	row := &UtilizationRow{
		Date:         date,
		ResourceID:   resource.ID,
		ResourceName: resource.Name,
		Capacity:     resource.MaxConcurrentBookings,
	}

	if day == nil {
		return row, nil
	}

	openMinute, err := day.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMinute, err := day.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	bookings, err := uc.listBookingsWithRetry(ctx, resource.ID, date)
	if err != nil {
		uc.logger.Error("ReportUtilization: failed to get bookings for resource id=%d: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	stats, err := computeDayStats(bookings, openMinute, closeMinute)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute day stats: %v", ErrInternal, err)
	}

	row.OpenMinutes = closeMinute - openMinute
	row.CapacityMinutes = row.OpenMinutes * resource.MaxConcurrentBookings
	row.BookedMinutes = stats.bookedMinutes
	row.FreeMinutes = row.CapacityMinutes - row.BookedMinutes
	if row.FreeMinutes < 0 {
		row.FreeMinutes = 0
	}
	row.UtilizationPct = utilizationPct(row.BookedMinutes, row.CapacityMinutes)
	row.PeakConcurrency = stats.peakConcurrency
	row.BookingsCount = stats.bookingsCount

	return row, nil
}

// listBookingsWithRetry читает брони с одним повтором на временных
// ошибках хранилища
func (uc *UseCase) listBookingsWithRetry(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error) {
	bookings, err := uc.bookingRepo.ListForResourceAndDate(ctx, resourceID, date)
	if err == nil {
		return bookings, nil
	}

	if !bookingstorage.IsStorageError(err) {
		return nil, err
	}

	uc.logger.Warn("ReportUtilization: retrying bookings read for resource id=%d after error: %v", resourceID, err)
	return uc.bookingRepo.ListForResourceAndDate(ctx, resourceID, date)
}

// dateOnly обнуляет компонент времени
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
