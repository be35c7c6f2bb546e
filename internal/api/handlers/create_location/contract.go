package create_location

import (
	"context"

	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

type RegistryService interface {
	CreateLocation(ctx context.Context, req *registryModels.CreateLocationRequest) (*registryModels.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
