package report_utilization

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

func TestComputeDayStats(t *testing.T) {
	open, closeAt := 540, 1080 // 09:00 - 18:00

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     dayStats
	}{
		{
			name:     "empty day",
			bookings: nil,
			want:     dayStats{},
		},
		{
			name: "single booking",
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:30"),
			},
			want: dayStats{bookedMinutes: 90, peakConcurrency: 1, bookingsCount: 1},
		},
		{
			name: "parallel bookings double the minutes",
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:00"),
				activeBooking("10:00", "11:00"),
			},
			want: dayStats{bookedMinutes: 120, peakConcurrency: 2, bookingsCount: 2},
		},
		{
			name: "booking clipped to operating hours",
			bookings: []*domain.Booking{
				activeBooking("08:00", "10:00"),
			},
			want: dayStats{bookedMinutes: 60, peakConcurrency: 1, bookingsCount: 1},
		},
		{
			name: "cancelled bookings ignored",
			bookings: []*domain.Booking{
				{Status: domain.StatusCancelled, StartTime: "10:00", EndTime: "11:00"},
			},
			want: dayStats{},
		},
		{
			name: "touching bookings are not concurrent",
			bookings: []*domain.Booking{
				activeBooking("10:00", "11:00"),
				activeBooking("11:00", "12:00"),
			},
			want: dayStats{bookedMinutes: 120, peakConcurrency: 1, bookingsCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := computeDayStats(tt.bookings, open, closeAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats)
		})
	}
}

func TestUtilizationPct(t *testing.T) {
	assert.Equal(t, 0.0, utilizationPct(100, 0))
	assert.Equal(t, 50.0, utilizationPct(270, 540))
	assert.Equal(t, 100.0, utilizationPct(540, 540))

	// Округление до сотых
	assert.Equal(t, 33.33, utilizationPct(180, 540))
}
