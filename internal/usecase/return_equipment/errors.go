package return_equipment

import "errors"

var (
	// ErrItemNotFound возвращается, когда строка заявки не найдена
	ErrItemNotFound = errors.New("return_equipment: request item not found")

	// ErrEquipmentNotFound возвращается, когда инвентарь строки удалён
	ErrEquipmentNotFound = errors.New("return_equipment: equipment not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("return_equipment: unauthorized")

	// ErrForbidden возвращается, когда принимать возврат пытается не сотрудник
	ErrForbidden = errors.New("return_equipment: staff role required")

	// ErrRequestClosed возвращается для отклонённых заявок
	ErrRequestClosed = errors.New("return_equipment: request is closed")

	// ErrQuantityOutOfRange возвращается, когда количество меньше 1 или больше невозвращённого
	ErrQuantityOutOfRange = errors.New("return_equipment: quantity out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("return_equipment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("return_equipment: internal error")
)
