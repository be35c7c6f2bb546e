package request_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	resourcestorage "github.com/planbay/scheduling-service/internal/infra/storage/resource"
)

// UseCase use case создания бронирования
// Проверка вместимости и вставка выполняются в одной сериализуемой
// транзакции с блокировкой броней дня, поэтому два конкурентных запроса
// на последнее место не могут пройти оба
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	locationRepo LocationRepository
	txManager    TransactionManager
	dispatcher   NotificationDispatcher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	locationRepo LocationRepository,
	txManager TransactionManager,
	dispatcher NotificationDispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		locationRepo: locationRepo,
		txManager:    txManager,
		dispatcher:   dispatcher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: org=%d, location=%d, date=%s, time=%s-%s",
		req.OrgID, req.LocationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RequestBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Локация существует, активна и открыта на весь интервал
	location, err := uc.locationRepo.GetByID(ctx, req.OrgID, req.LocationID)
	if err != nil {
		if errors.Is(err, locationstorage.ErrLocationNotFound) {
			uc.logger.Warn("RequestBooking: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("RequestBooking: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	if !location.Active || !location.CoversInterval(req.Date, req.StartTime, req.EndTime) {
		uc.logger.Warn("RequestBooking: location id=%d closed for %s %s-%s",
			req.LocationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return nil, ErrLocationClosed
	}

	// 4. Кандидаты: явный ресурс или все активные ресурсы локации
	// для автоподбора по возрастанию id
	candidates, err := uc.resolveCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 5. Проверка вместимости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, resource := range candidates {
			// 5.1. Перечитываем активные брони дня с блокировкой (FOR UPDATE)
			bookings, err := uc.bookingRepo.ListForResourceAndDate(txCtx, resource.ID, req.Date)
			if err != nil {
				uc.logger.Error("RequestBooking: failed to get bookings for resource id=%d: %v", resource.ID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			// 5.2. Пик одновременных броней внутри запрошенного интервала
			peak, err := peakConcurrencyWithin(bookings, req.StartTime, req.EndTime)
			if err != nil {
				uc.logger.Error("RequestBooking: failed to compute concurrency for resource id=%d: %v", resource.ID, err)
				return fmt.Errorf("%w: failed to compute concurrency: %v", ErrInternal, err)
			}

			if peak >= resource.MaxConcurrentBookings {
				uc.logger.Info("RequestBooking: resource id=%d full, %d/%d spots taken",
					resource.ID, peak, resource.MaxConcurrentBookings)
				continue
			}

			// 5.3. Место есть, создаем бронирование
			status := domain.StatusPending
			if req.Confirmed {
				status = domain.StatusConfirmed
			}

			booking := &domain.Booking{
				Reference:     uuid.New(),
				OrgID:         req.OrgID,
				ResourceID:    resource.ID,
				LocationID:    req.LocationID,
				CustomerName:  strings.TrimSpace(req.CustomerName),
				CustomerPhone: req.CustomerPhone,
				BookingDate:   req.Date,
				StartTime:     req.StartTime,
				EndTime:       req.EndTime,
				Status:        status,
				ServiceName:   req.ServiceName,
				Notes:         req.Notes,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("RequestBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			result = created
			return nil
		}

		// Ни у одного кандидата нет свободного места
		return ErrCapacityExceeded
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestBooking: created booking id=%d (ref=%s) on resource id=%d",
		result.ID, result.Reference, result.ResourceID)

	// 6. Уведомление после коммита, сбой доставки не откатывает бронь
	uc.dispatcher.BookingCreated(ctx, result)

	return toResponse(result), nil
}

// resolveCandidates определяет упорядоченный список ресурсов-кандидатов
func (uc *UseCase) resolveCandidates(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if req.ResourceID != nil {
		resource, err := uc.resourceRepo.GetByID(ctx, req.OrgID, *req.ResourceID)
		if err != nil {
			if errors.Is(err, resourcestorage.ErrResourceNotFound) {
				uc.logger.Warn("RequestBooking: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("RequestBooking: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}

		if resource.LocationID != req.LocationID {
			uc.logger.Warn("RequestBooking: resource id=%d is not at location id=%d", resource.ID, req.LocationID)
			return nil, ErrResourceNotFound
		}
		if !resource.Active {
			uc.logger.Warn("RequestBooking: resource id=%d is inactive", resource.ID)
			return nil, ErrResourceInactive
		}

		return []*domain.Resource{resource}, nil
	}

	resources, err := uc.resourceRepo.ListActiveByLocation(ctx, req.OrgID, req.LocationID)
	if err != nil {
		uc.logger.Error("RequestBooking: failed to list resources for location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	if len(resources) == 0 {
		uc.logger.Warn("RequestBooking: no active resources at location id=%d", req.LocationID)
		return nil, ErrCapacityExceeded
	}

	return resources, nil
}

// toResponse конвертирует domain бронирование в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		Reference:     b.Reference,
		OrgID:         b.OrgID,
		ResourceID:    b.ResourceID,
		LocationID:    b.LocationID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		ServiceName:   b.ServiceName,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
