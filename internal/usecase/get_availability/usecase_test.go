package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	"github.com/planbay/scheduling-service/pkg/ptr"
	"github.com/planbay/scheduling-service/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type stubBookingRepo struct {
	bookings map[int64][]*domain.Booking
	err      error
}

func (s *stubBookingRepo) ListForResourceAndDate(_ context.Context, resourceID int64, _ time.Time) ([]*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings[resourceID], nil
}

type stubResourceRepo struct {
	byID   map[int64]*domain.Resource
	active []*domain.Resource
	err    error
}

func (s *stubResourceRepo) GetByID(_ context.Context, _, resourceID int64) (*domain.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[resourceID], nil
}

func (s *stubResourceRepo) ListActiveByLocation(_ context.Context, _, _ int64) ([]*domain.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.active, nil
}

type stubLocationRepo struct {
	byID map[int64]*domain.Location
}

func (s *stubLocationRepo) GetByID(_ context.Context, _, locationID int64) (*domain.Location, error) {
	loc, ok := s.byID[locationID]
	if !ok {
		return nil, locationstorage.ErrLocationNotFound
	}
	return loc, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func weekdaysSchedule(open, closeAt string) domain.WeekSchedule {
	var schedule domain.WeekSchedule
	for wd := time.Monday; wd <= time.Friday; wd++ {
		schedule[int(wd)] = &domain.DayHours{
			Weekday:   wd,
			OpenTime:  types.TimeString(open),
			CloseTime: types.TimeString(closeAt),
		}
	}
	return schedule
}

// monday
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newAvailabilityFixture(bookings []*domain.Booking) (*UseCase, *stubBookingRepo) {
	location := &domain.Location{
		ID:     10,
		OrgID:  1,
		Active: true,
		Hours:  weekdaysSchedule("09:00", "18:00"),
	}
	resource := &domain.Resource{
		ID:                    100,
		OrgID:                 1,
		LocationID:            10,
		Name:                  "Bay 1",
		Type:                  domain.ResourceTypeBay,
		MaxConcurrentBookings: 1,
		Active:                true,
	}

	bookingRepo := &stubBookingRepo{bookings: map[int64][]*domain.Booking{100: bookings}}
	uc := NewUseCase(
		bookingRepo,
		&stubResourceRepo{byID: map[int64]*domain.Resource{100: resource}, active: []*domain.Resource{resource}},
		&stubLocationRepo{byID: map[int64]*domain.Location{10: location}},
		stubLogger{},
	)
	// Запросы в тестах относятся к будущей дате, clamping не срабатывает
	uc.timeProvider = fixedClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	return uc, bookingRepo
}

func TestExecute_FreeDayWithoutBookings(t *testing.T) {
	uc, _ := newAvailabilityFixture(nil)

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, ResourceID: ptr.Ptr(int64(100)), Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)

	ra := resp.Resources[0]
	assert.True(t, ra.Open)
	assert.Equal(t, 0, ra.MaxConcurrency)
	require.Len(t, ra.FreeIntervals, 1)
	assert.Equal(t, types.TimeString("09:00"), ra.FreeIntervals[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), ra.FreeIntervals[0].EndTime)
}

func TestExecute_BookingSplitsFreeTime(t *testing.T) {
	uc, _ := newAvailabilityFixture([]*domain.Booking{
		activeBooking("10:00", "11:00"),
	})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, ResourceID: ptr.Ptr(int64(100)), Date: testDate})
	require.NoError(t, err)

	ra := resp.Resources[0]
	assert.Equal(t, 1, ra.MaxConcurrency)
	require.Len(t, ra.FreeIntervals, 2)
	assert.Equal(t, types.TimeString("09:00"), ra.FreeIntervals[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), ra.FreeIntervals[0].EndTime)
	assert.Equal(t, types.TimeString("11:00"), ra.FreeIntervals[1].StartTime)
	assert.Equal(t, types.TimeString("18:00"), ra.FreeIntervals[1].EndTime)
}

func TestExecute_ClosedDayGivesEmptyAvailability(t *testing.T) {
	uc, _ := newAvailabilityFixture(nil)

	// 2025-06-01 - воскресенье, локация закрыта
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, ResourceID: ptr.Ptr(int64(100)), Date: sunday})
	require.NoError(t, err)

	ra := resp.Resources[0]
	assert.False(t, ra.Open)
	assert.Empty(t, ra.FreeIntervals)
}

func TestExecute_TodayPastTimeIsClamped(t *testing.T) {
	uc, _ := newAvailabilityFixture(nil)
	// Запрос на сегодня в 14:30
	uc.timeProvider = fixedClock{now: time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, ResourceID: ptr.Ptr(int64(100)), Date: testDate})
	require.NoError(t, err)

	ra := resp.Resources[0]
	require.Len(t, ra.FreeIntervals, 1)
	assert.Equal(t, types.TimeString("14:30"), ra.FreeIntervals[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), ra.FreeIntervals[0].EndTime)
}

func TestExecute_IsIdempotent(t *testing.T) {
	uc, _ := newAvailabilityFixture([]*domain.Booking{
		activeBooking("10:00", "11:00"),
	})

	req := &Request{OrgID: 1, ResourceID: ptr.Ptr(int64(100)), Date: testDate}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_LocationMode(t *testing.T) {
	location := &domain.Location{ID: 10, OrgID: 1, Active: true, Hours: weekdaysSchedule("09:00", "18:00")}
	resources := []*domain.Resource{
		{ID: 100, OrgID: 1, LocationID: 10, Name: "Bay 1", MaxConcurrentBookings: 1, Active: true},
		{ID: 101, OrgID: 1, LocationID: 10, Name: "Bay 2", MaxConcurrentBookings: 2, Active: true},
	}

	uc := NewUseCase(
		&stubBookingRepo{bookings: map[int64][]*domain.Booking{}},
		&stubResourceRepo{active: resources},
		&stubLocationRepo{byID: map[int64]*domain.Location{10: location}},
		stubLogger{},
	)
	uc.timeProvider = fixedClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	locID := int64(10)
	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, LocationID: &locID, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 2)
	assert.Equal(t, int64(100), resp.Resources[0].ResourceID)
	assert.Equal(t, int64(101), resp.Resources[1].ResourceID)
}

func TestExecute_LocationNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubBookingRepo{},
		&stubResourceRepo{},
		&stubLocationRepo{byID: map[int64]*domain.Location{}},
		stubLogger{},
	)

	locID := int64(99)
	_, err := uc.Execute(context.Background(), &Request{OrgID: 1, LocationID: &locID, Date: testDate})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestExecute_ValidationRequiresExactlyOneTarget(t *testing.T) {
	uc, _ := newAvailabilityFixture(nil)

	// Ни ресурс, ни локация не указаны
	_, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Указаны оба
	locID := int64(10)
	_, err = uc.Execute(context.Background(), &Request{
		OrgID: 1, ResourceID: ptr.Ptr(int64(100)), LocationID: &locID, Date: testDate,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
