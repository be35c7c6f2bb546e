package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/pkg/types"
)

// monday 2025-06-02, sunday 2025-06-01
var (
	testMonday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	testSunday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func weekdaysOnly() WeekSchedule {
	var schedule WeekSchedule
	for wd := time.Monday; wd <= time.Friday; wd++ {
		schedule[int(wd)] = &DayHours{Weekday: wd, OpenTime: "09:00", CloseTime: "18:00"}
	}
	return schedule
}

func TestWeekSchedule_ForDate(t *testing.T) {
	schedule := weekdaysOnly()

	day := schedule.ForDate(testMonday)
	require.NotNil(t, day)
	assert.Equal(t, time.Monday, day.Weekday)

	assert.Nil(t, schedule.ForDate(testSunday))
}

func TestLocation_IsOpenOn(t *testing.T) {
	loc := &Location{Active: true, Hours: weekdaysOnly()}

	assert.True(t, loc.IsOpenOn(testMonday))
	assert.False(t, loc.IsOpenOn(testSunday))

	loc.Active = false
	assert.False(t, loc.IsOpenOn(testMonday))
}

func TestLocation_CoversInterval(t *testing.T) {
	loc := &Location{Active: true, Hours: weekdaysOnly()}

	tests := []struct {
		name    string
		start   string
		end     string
		covered bool
	}{
		{"inside hours", "10:00", "12:00", true},
		{"exact hours", "09:00", "18:00", true},
		{"starts before open", "08:30", "10:00", false},
		{"ends after close", "17:00", "18:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loc.CoversInterval(testMonday, types.TimeString(tt.start), types.TimeString(tt.end))
			assert.Equal(t, tt.covered, got)
		})
	}

	// Закрытый день и неактивная локация не покрывают ничего
	assert.False(t, loc.CoversInterval(testSunday, "10:00", "11:00"))
	loc.Active = false
	assert.False(t, loc.CoversInterval(testMonday, "10:00", "11:00"))
}

func TestTimeRange_Overlaps(t *testing.T) {
	a := TimeRange{Start: "10:00", End: "11:00"}

	assert.True(t, a.Overlaps(TimeRange{Start: "10:30", End: "11:30"}))
	assert.True(t, a.Overlaps(TimeRange{Start: "09:00", End: "12:00"}))

	// Граничащие интервалы не пересекаются
	assert.False(t, a.Overlaps(TimeRange{Start: "11:00", End: "12:00"}))
	assert.False(t, a.Overlaps(TimeRange{Start: "09:00", End: "10:00"}))
}

func TestTimeRange_Touches(t *testing.T) {
	a := TimeRange{Start: "10:00", End: "11:00"}

	assert.True(t, a.Touches(TimeRange{Start: "11:00", End: "12:00"}))
	assert.True(t, a.Touches(TimeRange{Start: "10:30", End: "11:30"}))
	assert.False(t, a.Touches(TimeRange{Start: "11:01", End: "12:00"}))
}
