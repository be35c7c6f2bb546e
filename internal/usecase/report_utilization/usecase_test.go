package report_utilization

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	"github.com/planbay/scheduling-service/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type stubBookingRepo struct {
	bookings map[int64][]*domain.Booking
}

func (s *stubBookingRepo) ListForResourceAndDate(_ context.Context, resourceID int64, _ time.Time) ([]*domain.Booking, error) {
	return s.bookings[resourceID], nil
}

type stubResourceRepo struct {
	active []*domain.Resource
}

func (s *stubResourceRepo) GetByID(_ context.Context, _, resourceID int64) (*domain.Resource, error) {
	for _, res := range s.active {
		if res.ID == resourceID {
			return res, nil
		}
	}
	return nil, nil
}

func (s *stubResourceRepo) ListActiveByLocation(_ context.Context, _, _ int64) ([]*domain.Resource, error) {
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

func newReportFixture(bookings map[int64][]*domain.Booking) *UseCase {
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
		MaxConcurrentBookings: 2,
		Active:                true,
	}

	return NewUseCase(
		&stubBookingRepo{bookings: bookings},
		&stubResourceRepo{active: []*domain.Resource{resource}},
		&stubLocationRepo{byID: map[int64]*domain.Location{10: location}},
		stubLogger{},
	)
}

func TestExecute_SingleDayReport(t *testing.T) {
	uc := newReportFixture(map[int64][]*domain.Booking{
		100: {activeBooking("10:00", "11:00")},
	})

	// monday
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 10,
		StartDate:  date,
		EndDate:    date,
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	row := resp.Rows[0]
	assert.Equal(t, int64(100), row.ResourceID)
	assert.Equal(t, 540, row.OpenMinutes)
	assert.Equal(t, 1080, row.CapacityMinutes) // 540 * вместимость 2
	assert.Equal(t, 60, row.BookedMinutes)
	assert.Equal(t, 1020, row.FreeMinutes)
	assert.Equal(t, 5.56, row.UtilizationPct)
	assert.Equal(t, 1, row.PeakConcurrency)
	assert.Equal(t, 1, row.BookingsCount)
}

func TestExecute_ClosedDayGivesZeroRow(t *testing.T) {
	uc := newReportFixture(nil)

	// sunday
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 10,
		StartDate:  date,
		EndDate:    date,
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	row := resp.Rows[0]
	assert.Equal(t, 0, row.OpenMinutes)
	assert.Equal(t, 0, row.CapacityMinutes)
	assert.Equal(t, 0.0, row.UtilizationPct)
}

func TestExecute_InclusiveDateRange(t *testing.T) {
	uc := newReportFixture(nil)

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 10,
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	// Один ресурс, три дня включительно
	assert.Len(t, resp.Rows, 3)
}

func TestExecute_RangeLimits(t *testing.T) {
	uc := newReportFixture(nil)

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 10,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 10,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, MaxReportRangeDays+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_LocationNotFound(t *testing.T) {
	uc := newReportFixture(nil)

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		OrgID:      1,
		LocationID: 99,
		StartDate:  date,
		EndDate:    date,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}
