package bookings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	bookingstorage "github.com/planbay/scheduling-service/internal/infra/storage/booking"
	"github.com/planbay/scheduling-service/internal/service/bookings/models"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	cancelled      []int64
	statusUpdates  map[int64]domain.BookingStatus
	lastReason     string
	failUpdateWith error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	byID := make(map[int64]*domain.Booking)
	for _, b := range bookings {
		byID[b.ID] = b
	}
	return &fakeRepo{bookings: byID, statusUpdates: make(map[int64]domain.BookingStatus)}
}

func (r *fakeRepo) GetByID(_ context.Context, _, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByReference(_ context.Context, _ int64, reference uuid.UUID) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.Reference == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingstorage.ErrBookingNotFound
}

func (r *fakeRepo) ListWithFilter(_ context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.LocationID == filter.LocationID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if r.failUpdateWith != nil {
		return r.failUpdateWith
	}
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	r.cancelled = append(r.cancelled, id)
	r.lastReason = reason
	return nil
}

type recordingDispatcher struct {
	cancelled     []*domain.Booking
	statusChanges []*domain.Booking
	oldStatuses   []domain.BookingStatus
}

func (d *recordingDispatcher) BookingCancelled(_ context.Context, b *domain.Booking) {
	d.cancelled = append(d.cancelled, b)
}

func (d *recordingDispatcher) BookingStatusChanged(_ context.Context, b *domain.Booking, oldStatus domain.BookingStatus) {
	d.statusChanges = append(d.statusChanges, b)
	d.oldStatuses = append(d.oldStatuses, oldStatus)
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		Reference:    uuid.New(),
		OrgID:        1,
		ResourceID:   100,
		LocationID:   10,
		CustomerName: "John Doe",
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       status,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &recordingDispatcher{}, stubLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference(t *testing.T) {
	booking := testBooking(1, domain.StatusConfirmed)
	repo := newFakeRepo(booking)
	svc := NewService(repo, &recordingDispatcher{}, stubLogger{})

	resp, err := svc.GetByReference(context.Background(), 1, booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference.String(), resp.Reference)

	_, err = svc.GetByReference(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	dispatcher := &recordingDispatcher{}
	svc := NewService(repo, dispatcher, stubLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		OrgID:              1,
		UserID:             7,
		CancellationReason: "customer request",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.Equal(t, "customer request", repo.lastReason)
	require.Len(t, dispatcher.cancelled, 1)
	assert.Equal(t, domain.StatusCancelled, dispatcher.cancelled[0].Status)
}

func TestCancel_TerminalStatusesAreImmutable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo(testBooking(1, status))
			dispatcher := &recordingDispatcher{}
			svc := NewService(repo, dispatcher, stubLogger{})

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{OrgID: 1, UserID: 7})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.cancelled)
			assert.Empty(t, dispatcher.cancelled)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	dispatcher := &recordingDispatcher{}
	svc := NewService(repo, dispatcher, stubLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		OrgID:  1,
		UserID: 7,
		Status: "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	require.Len(t, dispatcher.statusChanges, 1)
	assert.Equal(t, domain.StatusPending, dispatcher.oldStatuses[0])
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"completed is terminal", domain.StatusCompleted, "pending"},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed"},
		{"no_show only corrects to completed", domain.StatusNoShow, "cancelled"},
		{"same status", domain.StatusPending, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testBooking(1, tt.from))
			svc := NewService(repo, &recordingDispatcher{}, stubLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				OrgID: 1, UserID: 7, Status: tt.to,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.statusUpdates)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &recordingDispatcher{}, stubLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		OrgID: 1, UserID: 7, Status: "done",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListLocationBookings(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusPending),
		testBooking(2, domain.StatusConfirmed),
	)
	svc := NewService(repo, &recordingDispatcher{}, stubLogger{})

	resp, err := svc.ListLocationBookings(context.Background(), &models.ListLocationBookingsRequest{
		OrgID:      1,
		LocationID: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	// Неизвестный статус в фильтре отклоняется до похода в репозиторий
	bad := "done"
	_, err = svc.ListLocationBookings(context.Background(), &models.ListLocationBookingsRequest{
		OrgID:      1,
		LocationID: 10,
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
