package list_locations

import (
	"context"

	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

type RegistryService interface {
	ListLocations(ctx context.Context, orgID int64, activeOnly bool) ([]*registryModels.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
