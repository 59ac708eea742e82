package availability

import "errors"

// ErrInternal возвращается при ошибках чтения данных для расписания
var ErrInternal = errors.New("availability: internal error")
