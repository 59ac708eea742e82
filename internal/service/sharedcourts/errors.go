package sharedcourts

import "errors"

// ErrInternal возвращается при ошибках чтения площадок или кортов
var ErrInternal = errors.New("sharedcourts: internal error")
