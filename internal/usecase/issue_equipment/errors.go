package issue_equipment

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("issue_equipment: request not found")

	// ErrEquipmentNotFound возвращается, когда инвентарь не найден на площадке бронирования
	ErrEquipmentNotFound = errors.New("issue_equipment: equipment not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("issue_equipment: unauthorized")

	// ErrForbidden возвращается, когда выдавать пытается не сотрудник
	ErrForbidden = errors.New("issue_equipment: staff role required")

	// ErrRequestClosed возвращается для заявок в статусе done или denied
	ErrRequestClosed = errors.New("issue_equipment: request is closed")

	// ErrIllegalQuantityReduction возвращается при попытке уменьшить выданное количество
	ErrIllegalQuantityReduction = errors.New("issue_equipment: issued quantity cannot be reduced, use return")

	// ErrInsufficientStock возвращается, когда доступного инвентаря меньше, чем нужно выдать
	ErrInsufficientStock = errors.New("issue_equipment: insufficient stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("issue_equipment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("issue_equipment: internal error")
)
