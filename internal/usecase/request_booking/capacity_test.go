package request_booking

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

func TestPeakConcurrencyWithin(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
		start    string
		end      string
		peak     int
	}{
		{
			name:     "empty day",
			bookings: nil,
			start:    "10:00", end: "11:00",
			peak: 0,
		},
		{
			name: "overlapping booking",
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:00"),
			},
			start: "10:30", end: "11:30",
			peak: 1,
		},
		{
			name: "touching booking does not count",
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:00"),
			},
			start: "11:00", end: "12:00",
			peak: 0,
		},
		{
			name: "disjoint bookings never stack",
			// Обе брони пересекают окно 10:30-11:30, но ни в один момент
			// не активны одновременно
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:00"),
				activeBooking("11:00", "12:00"),
			},
			start: "10:30", end: "11:30",
			peak: 1,
		},
		{
			name: "real stacking inside window",
			bookings: []*domain.Booking{
				activeBooking("10:00", "12:00"),
				activeBooking("10:30", "11:30"),
			},
			start: "10:00", end: "12:00",
			peak: 2,
		},
		{
			name: "cancelled bookings ignored",
			bookings: []*domain.Booking{
				{Status: domain.StatusCancelled, StartTime: "10:00", EndTime: "11:00"},
				{Status: domain.StatusNoShow, StartTime: "10:00", EndTime: "11:00"},
			},
			start: "10:00", end: "11:00",
			peak: 0,
		},
		{
			name: "booking clipped to window",
			bookings: []*domain.Booking{
				activeBooking("08:00", "20:00"),
			},
			start: "10:00", end: "11:00",
			peak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peak, err := peakConcurrencyWithin(tt.bookings, types.TimeString(tt.start), types.TimeString(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.peak, peak)
		})
	}
}
