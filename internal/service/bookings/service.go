package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
	bookingRepo "github.com/planbay/scheduling-service/internal/infra/storage/booking"
	"github.com/planbay/scheduling-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Создание бронирований живет в usecase контроллера допуска;
// здесь только чтение и переходы статусов
type Service struct {
	bookingRepo BookingRepository
	notifier    NotificationDispatcher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier NotificationDispatcher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID в рамках организации
func (s *Service) GetByID(ctx context.Context, orgID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for org=%d", id, orgID)

	booking, err := s.bookingRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found in org=%d", id, orgID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному коду
// Код выдается клиенту при создании, поэтому поиск идет по нему, а не по ID
func (s *Service) GetByReference(ctx context.Context, orgID int64, reference uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s for org=%d", reference, orgID)

	booking, err := s.bookingRepo.GetByReference(ctx, orgID, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found in org=%d", reference, orgID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListLocationBookings получает бронирования локации с гибкой фильтрацией
func (s *Service) ListLocationBookings(ctx context.Context, req *models.ListLocationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListLocationBookings: org=%d, location=%d", req.OrgID, req.LocationID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListLocationBookings: invalid filter for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListLocationBookings: repository error for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: ListLocationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListLocationBookings: fetched %d bookings for location=%d", len(bookings), req.LocationID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить можно только pending/confirmed; отмена немедленно освобождает
// вместимость ресурса для последующих расчётов доступности
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, req.OrgID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	booking.Status = domain.StatusCancelled
	s.notifier.BookingCancelled(ctx, booking)

	return nil
}

// UpdateStatus обновляет статус бронирования
// Терминальные статусы (completed, cancelled) неизменяемы:
// любая попытка перехода из них возвращает ErrInvalidTransition
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, req.OrgID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !domain.CanTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d transitioned %s -> %s", bookingID, booking.Status, newStatus)

	oldStatus := booking.Status
	booking.Status = newStatus
	s.notifier.BookingStatusChanged(ctx, booking, oldStatus)

	return models.FromDomainBooking(booking), nil
}
