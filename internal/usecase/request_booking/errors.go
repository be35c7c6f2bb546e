package request_booking

import "errors"

// Тексты конфликтов стабильны: на них завязаны клиенты API
var (
	// ErrCapacityExceeded возвращается, когда все места ресурса заняты
	// хотя бы в один момент запрошенного интервала
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrLocationClosed возвращается, когда интервал выходит за рабочие часы
	// локации или локация закрыта в этот день
	ErrLocationClosed = errors.New("location closed")

	// ErrResourceInactive возвращается при бронировании деактивированного ресурса
	ErrResourceInactive = errors.New("resource inactive")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
