package end_session

import (
	"context"

	timeclockModels "github.com/planbay/scheduling-service/internal/service/timeclock/models"
)

type TimeclockService interface {
	EndSession(ctx context.Context, req *timeclockModels.EndSessionRequest) (*timeclockModels.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
