package timeclock

import "errors"

var (
	ErrSessionNotFound  = errors.New("timeclock: session not found")
	ErrSessionClosed    = errors.New("timeclock: session already closed")
	ErrBreakOverlap     = errors.New("timeclock: break overlaps an existing break")
	ErrBreakOutOfBounds = errors.New("timeclock: break outside session bounds")
	ErrNoOpenBreak      = errors.New("timeclock: no open break in session")
	ErrInvalidInput     = errors.New("timeclock: invalid input")
	ErrInternal         = errors.New("timeclock: internal error")
)
