package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена или неактивна
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrCourtNotFound возвращается, когда корт не принадлежит площадке или неактивен
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrEquipmentNotFound возвращается, когда выбранный инвентарь не принадлежит площадке
	ErrEquipmentNotFound = errors.New("create_booking: equipment not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("create_booking: unauthorized")

	// ErrOutsideOpeningHours возвращается, когда интервал выходит за часы работы площадки
	ErrOutsideOpeningHours = errors.New("create_booking: interval is outside opening hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с другим бронированием корта
	ErrSlotConflict = errors.New("create_booking: slot is already taken")

	// ErrQuotaExceeded возвращается, когда пользователь превысил лимит бронирований
	ErrQuotaExceeded = errors.New("create_booking: booking quota exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
