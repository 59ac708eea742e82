package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor        *domain.Actor
	FacilityID   int64
	CourtID      int64
	Date         time.Time        // дата бронирования в часовом поясе площадки (используются год, месяц, день)
	StartTime    types.TimeString // время начала, например "18:00"
	EndTime      types.TimeString // время окончания; пусто - один слот
	EquipmentIDs []int64          // выбранный инвентарь, по одной единице каждого
}

// Response модель ответа с созданным (или уже существующим) бронированием
type Response struct {
	ID         int64
	UserID     int64
	FacilityID int64
	CourtID    int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string

	// EquipmentRequestID заявка на инвентарь, если он был выбран
	EquipmentRequestID *int64

	// Duplicate true, если такое бронирование уже существовало и новое не создавалось
	Duplicate bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(b *domain.Booking, requestID *int64, duplicate bool) *Response {
	return &Response{
		ID:                 b.ID,
		UserID:             b.UserID,
		FacilityID:         b.FacilityID,
		CourtID:            b.CourtID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		EquipmentRequestID: requestID,
		Duplicate:          duplicate,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
