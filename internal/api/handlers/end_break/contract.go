package end_break

import (
	"context"

	timeclockModels "github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

type TimeclockService interface {
	EndBreak(ctx context.Context, req *timeclockModels.EndBreakRequest) (*timeclockModels.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
