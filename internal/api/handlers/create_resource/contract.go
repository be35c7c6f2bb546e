package create_resource

import (
	"context"

	registryModels "github.com/planbay/scheduling-service/internal/service/registry/models"
)

type RegistryService interface {
	CreateResource(ctx context.Context, req *registryModels.CreateResourceRequest) (*registryModels.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
