package registry

import "errors"

var (
	ErrLocationNotFound = errors.New("registry: location not found")
	ErrResourceNotFound = errors.New("registry: resource not found")
	ErrAccessDenied     = errors.New("registry: access denied")
	ErrInvalidInput     = errors.New("registry: invalid input")
	ErrInternal         = errors.New("registry: internal error")
)
