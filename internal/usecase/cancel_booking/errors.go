package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("cancel_booking: unauthorized")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("cancel_booking: booking belongs to another user")

	// ErrBookingCancelled возвращается, если бронирование уже отменено
	ErrBookingCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrModificationWindowClosed возвращается, когда до начала осталось 30 минут или меньше
	ErrModificationWindowClosed = errors.New("cancel_booking: too late to modify the booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
