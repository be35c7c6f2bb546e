package timeclock

import "errors"

var (
	// ErrSessionNotFound возвращается, когда смена не найдена
	ErrSessionNotFound = errors.New("timeclock.repository: session not found")

	// ErrBreakNotFound возвращается, когда открытый перерыв не найден
	ErrBreakNotFound = errors.New("timeclock.repository: break not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeclock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeclock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeclock.repository: failed to scan row")
)
