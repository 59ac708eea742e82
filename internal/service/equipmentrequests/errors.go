package equipmentrequests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("equipment request not found")

	// ErrUnauthorized возвращается, когда пользователь не аутентифицирован
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden возвращается, когда пользователь не сотрудник
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput возвращается при некорректном решении
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRequestClosed возвращается, когда заявка уже не ожидает решения
	ErrRequestClosed = errors.New("equipment request is not pending")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
