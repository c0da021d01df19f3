package event

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон события не найден
	ErrTemplateNotFound = errors.New("event.repository: template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("event.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("event.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("event.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации вложенных структур
	ErrMarshal = errors.New("event.repository: failed to marshal payload")
)
