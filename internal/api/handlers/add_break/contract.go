package add_break

import (
	"context"

	timeclockModels "github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

type TimeclockService interface {
	AddBreak(ctx context.Context, req *timeclockModels.AddBreakRequest) (*timeclockModels.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
