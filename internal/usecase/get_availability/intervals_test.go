package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/types"
)

func activeBooking(start, end string) *domain.Booking {
	return &domain.Booking{
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func cancelledBooking(start, end string) *domain.Booking {
	b := activeBooking(start, end)
	b.Status = domain.StatusCancelled
	return b
}

func TestBuildFullIntervals_CapacityOne(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking("10:00", "11:00"),
		activeBooking("14:00", "15:00"),
	}

	full, err := buildFullIntervals(bookings, 1)
	require.NoError(t, err)

	assert.Equal(t, []minuteInterval{
		{start: 600, end: 660},
		{start: 840, end: 900},
	}, full)
}

func TestBuildFullIntervals_TouchingBookingsMerge(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking("10:00", "11:00"),
		activeBooking("11:00", "12:00"),
	}

	full, err := buildFullIntervals(bookings, 1)
	require.NoError(t, err)

	// Граничащие занятые интервалы склеиваются в один
	assert.Equal(t, []minuteInterval{{start: 600, end: 720}}, full)
}

func TestBuildFullIntervals_CapacityTwo(t *testing.T) {
	// При вместимости 2 момент занят, только когда активны обе брони
	bookings := []*domain.Booking{
		activeBooking("10:00", "12:00"),
		activeBooking("11:00", "13:00"),
	}

	full, err := buildFullIntervals(bookings, 2)
	require.NoError(t, err)
	assert.Equal(t, []minuteInterval{{start: 660, end: 720}}, full)
}

func TestBuildFullIntervals_DisjointBookingsNeverFillCapacityTwo(t *testing.T) {
	// Две непересекающиеся брони при вместимости 2 не занимают ни одного момента
	bookings := []*domain.Booking{
		activeBooking("10:00", "11:00"),
		activeBooking("11:00", "12:00"),
	}

	full, err := buildFullIntervals(bookings, 2)
	require.NoError(t, err)
	assert.Empty(t, full)
}

func TestBuildFullIntervals_IgnoresInactive(t *testing.T) {
	bookings := []*domain.Booking{
		cancelledBooking("10:00", "11:00"),
	}

	full, err := buildFullIntervals(bookings, 1)
	require.NoError(t, err)
	assert.Empty(t, full)
}

func TestSubtractIntervals(t *testing.T) {
	window := minuteInterval{start: 540, end: 1080} // 09:00 - 18:00

	tests := []struct {
		name string
		busy []minuteInterval
		want []minuteInterval
	}{
		{
			name: "no busy intervals",
			busy: nil,
			want: []minuteInterval{{start: 540, end: 1080}},
		},
		{
			name: "busy in the middle",
			busy: []minuteInterval{{start: 600, end: 660}},
			want: []minuteInterval{{start: 540, end: 600}, {start: 660, end: 1080}},
		},
		{
			name: "busy covers whole window",
			busy: []minuteInterval{{start: 540, end: 1080}},
			want: []minuteInterval{},
		},
		{
			name: "busy extends beyond window",
			busy: []minuteInterval{{start: 500, end: 620}},
			want: []minuteInterval{{start: 620, end: 1080}},
		},
		{
			name: "busy outside window ignored",
			busy: []minuteInterval{{start: 0, end: 300}, {start: 1100, end: 1200}},
			want: []minuteInterval{{start: 540, end: 1080}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtractIntervals(window, tt.busy))
		})
	}
}

func TestMaxConcurrency(t *testing.T) {
	peak, err := maxConcurrency([]*domain.Booking{
		activeBooking("10:00", "12:00"),
		activeBooking("11:00", "13:00"),
		activeBooking("11:30", "12:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, peak)

	// Граничащие брони не считаются одновременными
	peak, err = maxConcurrency([]*domain.Booking{
		activeBooking("10:00", "11:00"),
		activeBooking("11:00", "12:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, peak)

	peak, err = maxConcurrency(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, peak)
}

func TestClampIntervals(t *testing.T) {
	intervals := []minuteInterval{
		{start: 540, end: 600},
		{start: 630, end: 720},
	}

	// Отсечение середины интервала
	clamped := clampIntervals(intervals, 660)
	assert.Equal(t, []minuteInterval{{start: 660, end: 720}}, clamped)

	// Ничего не отсекается
	clamped = clampIntervals(intervals, 500)
	assert.Equal(t, intervals, clamped)

	// Все интервалы в прошлом
	clamped = clampIntervals(intervals, 720)
	assert.Empty(t, clamped)
}

func TestToFreeIntervals(t *testing.T) {
	result := toFreeIntervals([]minuteInterval{{start: 540, end: 630}})
	require.Len(t, result, 1)
	assert.Equal(t, types.TimeString("09:00"), result[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), result[0].EndTime)
}
