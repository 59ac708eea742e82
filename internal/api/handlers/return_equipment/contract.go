package return_equipment

import (
	"context"

	returnEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment"
)

type ReturnEquipmentUseCase interface {
	Execute(ctx context.Context, req *returnEquipment.Request) (*returnEquipment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
