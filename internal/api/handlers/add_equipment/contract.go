package add_equipment

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
)

type FacilityService interface {
	AddEquipment(ctx context.Context, actor *domain.Actor, facilityID int64, req *models.AddEquipmentRequest) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
