package decide_equipment_request

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests/models"
)

type EquipmentRequestService interface {
	Decide(ctx context.Context, actor *domain.Actor, requestID int64, req *models.DecisionRequest) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
