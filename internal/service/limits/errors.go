package limits

import "errors"

var (
	// ErrQuotaExceeded возвращается, когда пользователь превысил лимит бронирований
	ErrQuotaExceeded = errors.New("limits: booking quota exceeded")

	// ErrInternal возвращается при ошибках подсчёта бронирований
	ErrInternal = errors.New("limits: internal error")
)
