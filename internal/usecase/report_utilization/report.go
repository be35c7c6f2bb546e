package report_utilization

import (
	"math"
	"sort"

	"github.com/planbay/scheduling-service/internal/domain"
)

// dayStats агрегаты одного ресурса за один день
type dayStats struct {
	bookedMinutes   int
	peakConcurrency int
	bookingsCount   int
}

// computeDayStats считает агрегаты по активным броням дня
// Минуты каждой брони отсекаются по рабочему окну [openMinute, closeMinute)
func computeDayStats(bookings []*domain.Booking, openMinute, closeMinute int) (dayStats, error) {
	type event struct {
		minute int
		delta  int
	}

	var stats dayStats
	events := make([]event, 0, len(bookings)*2)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		start, err := booking.StartTime.Minutes()
		if err != nil {
			return stats, err
		}
		end, err := booking.EndTime.Minutes()
		if err != nil {
			return stats, err
		}
		if start >= end {
			continue
		}

		stats.bookingsCount++

		events = append(events, event{minute: start, delta: +1})
		events = append(events, event{minute: end, delta: -1})

		clippedStart := maxInt(start, openMinute)
		clippedEnd := minInt(end, closeMinute)
		if clippedStart < clippedEnd {
			stats.bookedMinutes += clippedEnd - clippedStart
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].minute != events[j].minute {
			return events[i].minute < events[j].minute
		}
		return events[i].delta < events[j].delta
	})

	count := 0
	for _, ev := range events {
		count += ev.delta
		if count > stats.peakConcurrency {
			stats.peakConcurrency = count
		}
	}

	return stats, nil
}

// utilizationPct считает процент загрузки с округлением до сотых
func utilizationPct(bookedMinutes, capacityMinutes int) float64 {
	if capacityMinutes <= 0 {
		return 0
	}
	pct := float64(bookedMinutes) / float64(capacityMinutes) * 100
	return math.Round(pct*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
