package get_utilization

import (
	"context"

	reportUtilization "github.com/planbay/scheduling-service/internal/usecase/report_utilization"
)

type ReportUtilizationUseCase interface {
	Execute(ctx context.Context, req *reportUtilization.Request) (*reportUtilization.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
