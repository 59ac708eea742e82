package issue_equipment

import (
	"context"

	issueEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/issue_equipment"
)

type IssueEquipmentUseCase interface {
	Execute(ctx context.Context, req *issueEquipment.Request) (*issueEquipment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
