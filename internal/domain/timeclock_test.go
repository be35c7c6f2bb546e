package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func closedBreak(startHour, startMin, endHour, endMin int) SessionBreak {
	end := mustTime(endHour, endMin)
	return SessionBreak{StartAt: mustTime(startHour, startMin), EndAt: &end}
}

func openBreak(startHour, startMin int) SessionBreak {
	return SessionBreak{StartAt: mustTime(startHour, startMin)}
}

func TestSessionBreak_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     SessionBreak
		overlaps bool
	}{
		{"real overlap", closedBreak(12, 0, 13, 0), closedBreak(12, 30, 13, 30), true},
		{"containment", closedBreak(12, 0, 14, 0), closedBreak(12, 30, 13, 0), true},
		{"touching is allowed", closedBreak(12, 0, 13, 0), closedBreak(13, 0, 14, 0), false},
		{"disjoint", closedBreak(12, 0, 12, 30), closedBreak(14, 0, 14, 30), false},
		{"open break extends forever", openBreak(12, 0), closedBreak(15, 0, 15, 30), true},
		{"closed break before open one", closedBreak(10, 0, 11, 0), openBreak(11, 0), false},
		{"two open breaks always conflict", openBreak(12, 0), openBreak(15, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSessionBreak_IsOpen(t *testing.T) {
	assert.True(t, openBreak(12, 0).IsOpen())
	assert.False(t, closedBreak(12, 0, 13, 0).IsOpen())
}

func TestCheckinSession_IsOpen(t *testing.T) {
	s := &CheckinSession{StartedAt: mustTime(9, 0)}
	assert.True(t, s.IsOpen())

	end := mustTime(18, 0)
	s.EndedAt = &end
	assert.False(t, s.IsOpen())
}
