package delete_facility

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type FacilityService interface {
	Delete(ctx context.Context, actor *domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
