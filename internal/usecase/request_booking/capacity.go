package request_booking

import (
	"sort"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/types"
)

// peakConcurrencyWithin считает пиковое число одновременно активных
// бронирований внутри полуоткрытого окна [start, end).
//
// Заметающая прямая: +1 на начале брони, -1 на конце, концы обрабатываются
// раньше начал при равной минуте. Бронь, граничащая с окном, в пик не входит:
// при вместимости 1 брони 10:00-11:00 и 11:00-12:00 совместимы.
//
// Отказ по одному лишь числу пересекающих окно броней был бы неверным:
// при вместимости 2 брони 10:00-11:00 и 11:00-12:00 обе пересекают окно
// 10:30-11:30, но ни в один момент не заняты оба места
func peakConcurrencyWithin(bookings []*domain.Booking, start, end types.TimeString) (int, error) {
	windowStart, err := start.Minutes()
	if err != nil {
		return 0, err
	}
	windowEnd, err := end.Minutes()
	if err != nil {
		return 0, err
	}

	type event struct {
		minute int
		delta  int
	}

	events := make([]event, 0, len(bookings)*2)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bStart, err := booking.StartTime.Minutes()
		if err != nil {
			return 0, err
		}
		bEnd, err := booking.EndTime.Minutes()
		if err != nil {
			return 0, err
		}

		// Отсекаем часть брони вне окна. Брони, только граничащие с окном,
		// после отсечения становятся пустыми и пропускаются
		if bStart < windowStart {
			bStart = windowStart
		}
		if bEnd > windowEnd {
			bEnd = windowEnd
		}
		if bStart >= bEnd {
			continue
		}

		events = append(events, event{minute: bStart, delta: +1})
		events = append(events, event{minute: bEnd, delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].minute != events[j].minute {
			return events[i].minute < events[j].minute
		}
		return events[i].delta < events[j].delta
	})

	peak, count := 0, 0
	for _, ev := range events {
		count += ev.delta
		if count > peak {
			peak = count
		}
	}

	return peak, nil
}
