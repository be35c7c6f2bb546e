package list_resources

import (
	"context"

	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

type RegistryService interface {
	ListResources(ctx context.Context, orgID int64, locationID *int64) ([]*registryModels.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
