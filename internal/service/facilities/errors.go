package facilities

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden возвращается, когда у пользователя нет прав администратора
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrFacilityInUse возвращается при удалении площадки, на которую есть бронирования
	ErrFacilityInUse = errors.New("facility has bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
