package venue

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue.repository: venue not found")

	// ErrWindowNotFound возвращается, когда окно обслуживания не найдено
	ErrWindowNotFound = errors.New("venue.repository: maintenance window not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venue.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации расписания
	ErrMarshal = errors.New("venue.repository: failed to marshal payload")
)
