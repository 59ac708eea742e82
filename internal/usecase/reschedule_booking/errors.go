package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrFacilityNotFound возвращается, когда площадка бронирования не найдена или неактивна
	ErrFacilityNotFound = errors.New("reschedule_booking: facility not found")

	// ErrCourtNotFound возвращается, когда корт бронирования больше не активен
	ErrCourtNotFound = errors.New("reschedule_booking: court not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("reschedule_booking: unauthorized")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("reschedule_booking: booking belongs to another user")

	// ErrBookingCancelled возвращается при попытке перенести отменённое бронирование
	ErrBookingCancelled = errors.New("reschedule_booking: booking is cancelled")

	// ErrModificationWindowClosed возвращается, когда до начала осталось 30 минут или меньше
	ErrModificationWindowClosed = errors.New("reschedule_booking: too late to modify the booking")

	// ErrOutsideOpeningHours возвращается, когда новый интервал выходит за часы работы площадки
	ErrOutsideOpeningHours = errors.New("reschedule_booking: interval is outside opening hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другим бронированием
	ErrSlotConflict = errors.New("reschedule_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
