package equipmentrequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на инвентарь не найдена
	ErrRequestNotFound = errors.New("equipmentrequest.repository: request not found")

	// ErrItemNotFound возвращается, когда строка заявки не найдена
	ErrItemNotFound = errors.New("equipmentrequest.repository: request item not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("equipmentrequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("equipmentrequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("equipmentrequest.repository: failed to scan row")
)
