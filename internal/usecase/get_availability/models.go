package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса свободных слотов площадки
type Request struct {
	FacilityID  int64
	Date        time.Time // используются год, месяц и день
	Granularity int       // шаг и длительность слота в минутах; 0 - один час
}

// Response свободные времена начала по кортам площадки
type Response struct {
	Date               time.Time
	FacilityID         int64
	FacilityName       string
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int
	Courts             []CourtSlots
}

// CourtSlots свободные времена начала одного корта
type CourtSlots struct {
	CourtID   int64
	CourtName string
	Free      []types.TimeString
}
