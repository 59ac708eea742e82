package list_equipment

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
)

type FacilityService interface {
	ListEquipment(ctx context.Context, facilityID int64) (*models.EquipmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
