package get_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_availability"
)

// CourtSlotsResponse свободные слоты корта
type CourtSlotsResponse struct {
	CourtID   int64    `json:"courtId"`
	CourtName string   `json:"courtName"`
	Free      []string `json:"free"` // времена начала HH:MM
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date               string               `json:"date"`
	FacilityID         int64                `json:"facilityId"`
	FacilityName       string               `json:"facilityName"`
	OpenTime           string               `json:"openTime"`
	CloseTime          string               `json:"closeTime"`
	GranularityMinutes int                  `json:"granularityMinutes"`
	Courts             []CourtSlotsResponse `json:"courts"`
}

// ToUseCaseRequest собирает запрос use case из параметров пути и query
func ToUseCaseRequest(facilityID int64, dateStr, granularityStr string, loc *time.Location) (*getAvailability.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	var granularity int
	if granularityStr != "" {
		granularity, err = strconv.Atoi(granularityStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailability.Request{
		FacilityID:  facilityID,
		Date:        date,
		Granularity: granularity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	courts := make([]CourtSlotsResponse, 0, len(resp.Courts))
	for _, c := range resp.Courts {
		free := make([]string, 0, len(c.Free))
		for _, slot := range c.Free {
			free = append(free, slot.String())
		}
		courts = append(courts, CourtSlotsResponse{CourtID: c.CourtID, CourtName: c.CourtName, Free: free})
	}

	return &AvailabilityResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		FacilityID:         resp.FacilityID,
		FacilityName:       resp.FacilityName,
		OpenTime:           resp.OpenTime.String(),
		CloseTime:          resp.CloseTime.String(),
		GranularityMinutes: resp.GranularityMinutes,
		Courts:             courts,
	}
}
