package deactivate_resource

import "context"

type RegistryService interface {
	DeactivateResource(ctx context.Context, orgID int64, userRole string, resourceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
