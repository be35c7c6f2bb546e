package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	timeclockstorage "github.com/planbay/scheduling-service/internal/infra/storage/timeclock"
	"github.com/planbay/scheduling-service/internal/service/timeclock/models"
	"github.com/planbay/scheduling-service/pkg/ptr"
)

type stubLogger struct{}

func (stubLogger) Debug(string, ...interface{}) {}
func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSessionRepo struct {
	sessions    map[uuid.UUID]*domain.CheckinSession
	nextBreakID int64
}

func newFakeSessionRepo(sessions ...*domain.CheckinSession) *fakeSessionRepo {
	byID := make(map[uuid.UUID]*domain.CheckinSession)
	for _, s := range sessions {
		byID[s.ID] = s
	}
	return &fakeSessionRepo{sessions: byID}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, s *domain.CheckinSession) (*domain.CheckinSession, error) {
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) GetSession(_ context.Context, orgID int64, id uuid.UUID) (*domain.CheckinSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.OrgID != orgID {
		return nil, timeclockstorage.ErrSessionNotFound
	}
	copied := *s
	copied.Breaks = append([]domain.SessionBreak(nil), s.Breaks...)
	return &copied, nil
}

func (r *fakeSessionRepo) EndSession(_ context.Context, orgID int64, id uuid.UUID, endedAt time.Time) error {
	s, ok := r.sessions[id]
	if !ok || s.OrgID != orgID {
		return timeclockstorage.ErrSessionNotFound
	}
	s.EndedAt = &endedAt
	return nil
}

func (r *fakeSessionRepo) AddBreak(_ context.Context, b *domain.SessionBreak) (*domain.SessionBreak, error) {
	s, ok := r.sessions[b.SessionID]
	if !ok {
		return nil, timeclockstorage.ErrSessionNotFound
	}
	r.nextBreakID++
	b.ID = r.nextBreakID
	s.Breaks = append(s.Breaks, *b)
	return b, nil
}

func (r *fakeSessionRepo) EndBreak(_ context.Context, breakID int64, endAt time.Time) error {
	for _, s := range r.sessions {
		for i := range s.Breaks {
			if s.Breaks[i].ID == breakID && s.Breaks[i].EndAt == nil {
				s.Breaks[i].EndAt = &endAt
				return nil
			}
		}
	}
	return timeclockstorage.ErrBreakNotFound
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func openSession(id uuid.UUID) *domain.CheckinSession {
	return &domain.CheckinSession{
		ID:          id,
		OrgID:       1,
		LocationID:  10,
		StaffUserID: 7,
		StartedAt:   at(9, 0),
	}
}

func TestStartSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := New(repo, fakeTxManager{}, stubLogger{})

	resp, err := svc.StartSession(context.Background(), &models.StartSessionRequest{
		OrgID:       1,
		LocationID:  10,
		StaffUserID: 7,
		StartedAt:   at(9, 0),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, at(9, 0), resp.StartedAt)
	assert.Nil(t, resp.EndedAt)
	assert.Empty(t, resp.Breaks)
}

func TestEndSession(t *testing.T) {
	id := uuid.New()
	repo := newFakeSessionRepo(openSession(id))
	svc := New(repo, fakeTxManager{}, stubLogger{})

	resp, err := svc.EndSession(context.Background(), &models.EndSessionRequest{
		OrgID:     1,
		SessionID: id,
		EndedAt:   at(18, 0),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.EndedAt)
	assert.Equal(t, at(18, 0), *resp.EndedAt)
}

func TestEndSession_AlreadyClosed(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.EndedAt = ptr.Ptr(at(17, 0))
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.EndSession(context.Background(), &models.EndSessionRequest{
		OrgID:     1,
		SessionID: id,
		EndedAt:   at(18, 0),
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestEndSession_BeforeStart(t *testing.T) {
	id := uuid.New()
	svc := New(newFakeSessionRepo(openSession(id)), fakeTxManager{}, stubLogger{})

	_, err := svc.EndSession(context.Background(), &models.EndSessionRequest{
		OrgID:     1,
		SessionID: id,
		EndedAt:   at(8, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEndSession_OpenBreakBlocksCheckout(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{{ID: 1, SessionID: id, StartAt: at(12, 0)}}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.EndSession(context.Background(), &models.EndSessionRequest{
		OrgID:     1,
		SessionID: id,
		EndedAt:   at(18, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEndSession_NotFound(t *testing.T) {
	svc := New(newFakeSessionRepo(), fakeTxManager{}, stubLogger{})

	_, err := svc.EndSession(context.Background(), &models.EndSessionRequest{
		OrgID:     1,
		SessionID: uuid.New(),
		EndedAt:   at(18, 0),
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAddBreak(t *testing.T) {
	id := uuid.New()
	svc := New(newFakeSessionRepo(openSession(id)), fakeTxManager{}, stubLogger{})

	resp, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(12, 0),
		EndAt:     ptr.Ptr(at(12, 30)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, at(12, 0), resp.Breaks[0].StartAt)
}

func TestAddBreak_OpenBreak(t *testing.T) {
	id := uuid.New()
	svc := New(newFakeSessionRepo(openSession(id)), fakeTxManager{}, stubLogger{})

	resp, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(12, 0),
	})
	require.NoError(t, err)
	require.Len(t, resp.Breaks, 1)
	assert.Nil(t, resp.Breaks[0].EndAt)
}

func TestAddBreak_OverlapRejected(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{
		{ID: 1, SessionID: id, StartAt: at(12, 0), EndAt: ptr.Ptr(at(13, 0))},
	}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(12, 30),
		EndAt:     ptr.Ptr(at(13, 30)),
	})
	assert.ErrorIs(t, err, ErrBreakOverlap)
}

func TestAddBreak_TouchingBreakAllowed(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{
		{ID: 1, SessionID: id, StartAt: at(12, 0), EndAt: ptr.Ptr(at(13, 0))},
	}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(13, 0),
		EndAt:     ptr.Ptr(at(13, 30)),
	})
	assert.NoError(t, err)
}

func TestAddBreak_SecondOpenBreakRejected(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{{ID: 1, SessionID: id, StartAt: at(12, 0)}}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	// Открытый перерыв считается бесконечным, любой следующий пересекается
	_, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(15, 0),
	})
	assert.ErrorIs(t, err, ErrBreakOverlap)
}

func TestAddBreak_OutOfBounds(t *testing.T) {
	id := uuid.New()
	closed := openSession(id)
	closed.EndedAt = ptr.Ptr(at(17, 0))
	svc := New(newFakeSessionRepo(closed), fakeTxManager{}, stubLogger{})

	// Перерыв раньше начала смены
	_, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(8, 0),
		EndAt:     ptr.Ptr(at(8, 30)),
	})
	assert.ErrorIs(t, err, ErrBreakOutOfBounds)

	// Перерыв выходит за конец закрытой смены
	_, err = svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(16, 30),
		EndAt:     ptr.Ptr(at(17, 30)),
	})
	assert.ErrorIs(t, err, ErrBreakOutOfBounds)

	// Открытый перерыв в закрытой смене
	_, err = svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(12, 0),
	})
	assert.ErrorIs(t, err, ErrBreakOutOfBounds)
}

func TestAddBreak_StartAfterEnd(t *testing.T) {
	id := uuid.New()
	svc := New(newFakeSessionRepo(openSession(id)), fakeTxManager{}, stubLogger{})

	_, err := svc.AddBreak(context.Background(), &models.AddBreakRequest{
		OrgID:     1,
		SessionID: id,
		StartAt:   at(13, 0),
		EndAt:     ptr.Ptr(at(12, 0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEndBreak(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{{ID: 1, SessionID: id, StartAt: at(12, 0)}}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	resp, err := svc.EndBreak(context.Background(), &models.EndBreakRequest{
		OrgID:     1,
		SessionID: id,
		EndAt:     at(12, 45),
	})
	require.NoError(t, err)
	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].EndAt)
	assert.Equal(t, at(12, 45), *resp.Breaks[0].EndAt)
}

func TestEndBreak_NoOpenBreak(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{
		{ID: 1, SessionID: id, StartAt: at(12, 0), EndAt: ptr.Ptr(at(12, 30))},
	}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.EndBreak(context.Background(), &models.EndBreakRequest{
		OrgID:     1,
		SessionID: id,
		EndAt:     at(13, 0),
	})
	assert.ErrorIs(t, err, ErrNoOpenBreak)
}

func TestEndBreak_EndBeforeStart(t *testing.T) {
	id := uuid.New()
	session := openSession(id)
	session.Breaks = []domain.SessionBreak{{ID: 1, SessionID: id, StartAt: at(12, 0)}}
	svc := New(newFakeSessionRepo(session), fakeTxManager{}, stubLogger{})

	_, err := svc.EndBreak(context.Background(), &models.EndBreakRequest{
		OrgID:     1,
		SessionID: id,
		EndAt:     at(11, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSession(t *testing.T) {
	id := uuid.New()
	svc := New(newFakeSessionRepo(openSession(id)), fakeTxManager{}, stubLogger{})

	resp, err := svc.GetSession(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)

	// Чужая организация не видит смену
	_, err = svc.GetSession(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
