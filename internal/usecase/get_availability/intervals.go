package get_availability

import (
	"sort"

	"github.com/planbay/scheduling-service/internal/domain"
	"github.com/planbay/scheduling-service/pkg/types"
)

// minuteInterval полуоткрытый интервал [start, end) в минутах от полуночи
type minuteInterval struct {
	start int
	end   int
}

// sweepEvent событие заметающей прямой: +1 в момент начала брони, -1 в момент конца
type sweepEvent struct {
	minute int
	delta  int
}

// buildFullIntervals находит интервалы, в которых число одновременно активных
// бронирований достигает вместимости ресурса. Момент считается занятым, только
// когда занят ЦЕЛИКОМ: при вместимости 2 и двух непересекающихся бронях ни один
// момент не занят, хотя naive-подсчет пересечений с окном дал бы отказ.
//
// События сортируются по минуте; при равенстве концы обрабатываются раньше
// начал. Так бронь, заканчивающаяся в 12:00, освобождает место для брони,
// начинающейся в 12:00 (граничащие интервалы не конфликтуют).
// Граничащие занятые интервалы на выходе склеиваются.
func buildFullIntervals(bookings []*domain.Booking, capacity int) ([]minuteInterval, error) {
	events, err := buildSweepEvents(bookings)
	if err != nil {
		return nil, err
	}

	full := make([]minuteInterval, 0)
	count := 0
	fullSince := -1

	for _, ev := range events {
		prev := count
		count += ev.delta

		if prev < capacity && count >= capacity {
			fullSince = ev.minute
		}
		if prev >= capacity && count < capacity {
			appendMerged(&full, minuteInterval{start: fullSince, end: ev.minute})
			fullSince = -1
		}
	}

	return full, nil
}

// buildSweepEvents строит отсортированный список событий заметающей прямой
// по активным бронированиям
func buildSweepEvents(bookings []*domain.Booking) ([]sweepEvent, error) {
	events := make([]sweepEvent, 0, len(bookings)*2)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		start, err := booking.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		end, err := booking.EndTime.Minutes()
		if err != nil {
			return nil, err
		}
		if start >= end {
			continue
		}

		events = append(events, sweepEvent{minute: start, delta: +1})
		events = append(events, sweepEvent{minute: end, delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].minute != events[j].minute {
			return events[i].minute < events[j].minute
		}
		return events[i].delta < events[j].delta
	})

	return events, nil
}

// appendMerged добавляет интервал, склеивая его с предыдущим, если они граничат
func appendMerged(intervals *[]minuteInterval, next minuteInterval) {
	if next.start >= next.end {
		return
	}
	if n := len(*intervals); n > 0 && (*intervals)[n-1].end >= next.start {
		if next.end > (*intervals)[n-1].end {
			(*intervals)[n-1].end = next.end
		}
		return
	}
	*intervals = append(*intervals, next)
}

// subtractIntervals вычитает занятые интервалы из рабочего окна
// Занятые интервалы должны быть отсортированы и не пересекаться
// (buildFullIntervals это гарантирует)
func subtractIntervals(window minuteInterval, busy []minuteInterval) []minuteInterval {
	free := make([]minuteInterval, 0)
	cursor := window.start

	for _, b := range busy {
		if b.end <= window.start || b.start >= window.end {
			continue
		}
		if b.start > cursor {
			free = append(free, minuteInterval{start: cursor, end: minInt(b.start, window.end)})
		}
		if b.end > cursor {
			cursor = b.end
		}
	}

	if cursor < window.end {
		free = append(free, minuteInterval{start: cursor, end: window.end})
	}

	return free
}

// maxConcurrency возвращает пиковое число одновременно активных бронирований
func maxConcurrency(bookings []*domain.Booking) (int, error) {
	events, err := buildSweepEvents(bookings)
	if err != nil {
		return 0, err
	}

	peak, count := 0, 0
	for _, ev := range events {
		count += ev.delta
		if count > peak {
			peak = count
		}
	}

	return peak, nil
}

// toFreeIntervals конвертирует минутные интервалы в ответ с временами HH:MM
func toFreeIntervals(intervals []minuteInterval) []FreeInterval {
	result := make([]FreeInterval, 0, len(intervals))
	for _, iv := range intervals {
		result = append(result, FreeInterval{
			StartTime: types.NewTimeStringFromMinutes(iv.start),
			EndTime:   types.NewTimeStringFromMinutes(iv.end),
		})
	}
	return result
}

// clampIntervals отбрасывает часть интервалов раньше указанной минуты
func clampIntervals(intervals []minuteInterval, minMinute int) []minuteInterval {
	result := make([]minuteInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.end <= minMinute {
			continue
		}
		if iv.start < minMinute {
			iv.start = minMinute
		}
		result = append(result, iv)
	}
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
