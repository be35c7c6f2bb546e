package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planbay/scheduling-service/internal/domain"
	timeclockstorage "github.com/planbay/scheduling-service/internal/infra/storage/timeclock"
	"github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

// Service учет рабочих смен персонала и перерывов внутри смен
type Service struct {
	sessions  SessionRepository
	txManager TxManager
	logger    Logger
}

func New(sessions SessionRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		sessions:  sessions,
		txManager: txManager,
		logger:    logger,
	}
}

// StartSession открывает новую смену сотрудника
func (s *Service) StartSession(ctx context.Context, req *models.StartSessionRequest) (*models.SessionResponse, error) {
	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}

	session := &domain.CheckinSession{
		ID:          uuid.New(),
		OrgID:       req.OrgID,
		LocationID:  req.LocationID,
		StaffUserID: req.StaffUserID,
		StartedAt:   startedAt,
	}

	created, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		s.logger.Error("timeclock: StartSession failed for staff %d: %v", req.StaffUserID, err)
		return nil, fmt.Errorf("%w: StartSession: %v", ErrInternal, err)
	}

	s.logger.Info("timeclock: opened session %s for staff %d at location %d",
		created.ID, created.StaffUserID, created.LocationID)
	return models.FromDomainSession(created), nil
}

// EndSession закрывает смену. Повторное закрытие возвращает ошибку.
func (s *Service) EndSession(ctx context.Context, req *models.EndSessionRequest) (*models.SessionResponse, error) {
	endedAt := req.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now().UTC()
	}

	var session *domain.CheckinSession
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.sessions.GetSession(txCtx, req.OrgID, req.SessionID)
		if err != nil {
			return err
		}
		if !current.IsOpen() {
			return ErrSessionClosed
		}
		if endedAt.Before(current.StartedAt) {
			return fmt.Errorf("%w: end time before session start", ErrInvalidInput)
		}
		for _, b := range current.Breaks {
			if b.IsOpen() {
				return fmt.Errorf("%w: session has an open break", ErrInvalidInput)
			}
		}

		if err := s.sessions.EndSession(txCtx, req.OrgID, req.SessionID, endedAt); err != nil {
			return err
		}

		current.EndedAt = &endedAt
		session = current
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, timeclockstorage.ErrSessionNotFound):
			return nil, fmt.Errorf("%w: EndSession - session %s", ErrSessionNotFound, req.SessionID)
		case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrInvalidInput):
			return nil, err
		default:
			s.logger.Error("timeclock: EndSession failed for session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: EndSession: %v", ErrInternal, err)
		}
	}

	return models.FromDomainSession(session), nil
}

// AddBreak добавляет перерыв в открытую или закрытую смену.
// Перерыв должен лежать внутри границ смены и не пересекаться с уже
// записанными перерывами. Проверка и вставка выполняются в сериализуемой
// транзакции с блокировкой строки смены, поэтому две конкурентные вставки
// пересекающихся перерывов не могут пройти обе.
func (s *Service) AddBreak(ctx context.Context, req *models.AddBreakRequest) (*models.SessionResponse, error) {
	if req.EndAt != nil && !req.StartAt.Before(*req.EndAt) {
		return nil, fmt.Errorf("%w: break start must be before break end", ErrInvalidInput)
	}

	candidate := domain.SessionBreak{
		SessionID: req.SessionID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
	}

	var session *domain.CheckinSession
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.sessions.GetSession(txCtx, req.OrgID, req.SessionID)
		if err != nil {
			return err
		}

		if req.StartAt.Before(current.StartedAt) {
			return fmt.Errorf("%w: break starts before session", ErrBreakOutOfBounds)
		}
		if current.EndedAt != nil {
			if req.EndAt == nil {
				return fmt.Errorf("%w: open break in a closed session", ErrBreakOutOfBounds)
			}
			if req.EndAt.After(*current.EndedAt) {
				return fmt.Errorf("%w: break ends after session", ErrBreakOutOfBounds)
			}
		}

		for _, existing := range current.Breaks {
			if candidate.Overlaps(existing) {
				return fmt.Errorf("%w: break %d", ErrBreakOverlap, existing.ID)
			}
		}

		added, err := s.sessions.AddBreak(txCtx, &candidate)
		if err != nil {
			return err
		}

		current.Breaks = append(current.Breaks, *added)
		session = current
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, timeclockstorage.ErrSessionNotFound):
			return nil, fmt.Errorf("%w: AddBreak - session %s", ErrSessionNotFound, req.SessionID)
		case errors.Is(err, ErrBreakOverlap), errors.Is(err, ErrBreakOutOfBounds), errors.Is(err, ErrInvalidInput):
			return nil, err
		default:
			s.logger.Error("timeclock: AddBreak failed for session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: AddBreak: %v", ErrInternal, err)
		}
	}

	return models.FromDomainSession(session), nil
}

// EndBreak закрывает открытый перерыв смены. В смене может быть не больше
// одного открытого перерыва, поэтому идентификатор перерыва не требуется.
func (s *Service) EndBreak(ctx context.Context, req *models.EndBreakRequest) (*models.SessionResponse, error) {
	endAt := req.EndAt
	if endAt.IsZero() {
		endAt = time.Now().UTC()
	}

	var session *domain.CheckinSession
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.sessions.GetSession(txCtx, req.OrgID, req.SessionID)
		if err != nil {
			return err
		}

		var open *domain.SessionBreak
		for i := range current.Breaks {
			if current.Breaks[i].IsOpen() {
				open = &current.Breaks[i]
				break
			}
		}
		if open == nil {
			return ErrNoOpenBreak
		}

		if !endAt.After(open.StartAt) {
			return fmt.Errorf("%w: break end must be after break start", ErrInvalidInput)
		}

		if err := s.sessions.EndBreak(txCtx, open.ID, endAt); err != nil {
			return err
		}

		open.EndAt = &endAt
		session = current
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, timeclockstorage.ErrSessionNotFound):
			return nil, fmt.Errorf("%w: EndBreak - session %s", ErrSessionNotFound, req.SessionID)
		case errors.Is(err, timeclockstorage.ErrBreakNotFound):
			return nil, fmt.Errorf("%w: EndBreak - session %s", ErrNoOpenBreak, req.SessionID)
		case errors.Is(err, ErrNoOpenBreak), errors.Is(err, ErrInvalidInput):
			return nil, err
		default:
			s.logger.Error("timeclock: EndBreak failed for session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: EndBreak: %v", ErrInternal, err)
		}
	}

	return models.FromDomainSession(session), nil
}

// GetSession возвращает смену с перерывами
func (s *Service) GetSession(ctx context.Context, orgID int64, sessionID uuid.UUID) (*models.SessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, orgID, sessionID)
	if err != nil {
		if errors.Is(err, timeclockstorage.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: GetSession - session %s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: GetSession: %v", ErrInternal, err)
	}
	return models.FromDomainSession(session), nil
}
