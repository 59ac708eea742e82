package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
)

// UseCase use case для получения свободных слотов площадки по кортам
type UseCase struct {
	availability AvailabilityLoader
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityLoader, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%d, date=%s, granularity=%d",
		req.FacilityID, req.Date.Format(domain.DateFormat), req.Granularity)

	// 1. Валидация входных данных
	granularity, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем площадку, корты и бронирования связанных площадок одним снимком
	snapshot, err := uc.availability.Load(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: load availability: %v", ErrInternal, err)
	}
	if snapshot == nil {
		uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
		return nil, ErrFacilityNotFound
	}

	// 3. Кандидаты на начало слота по часам работы
	facility := snapshot.Facility
	starts, err := scheduling.GenerateStartTimes(facility.OpenTime, facility.CloseTime, granularity, granularity)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: generate slots: %v", ErrInternal, err)
	}

	// 4. Отсекаем прошедшие и занятые слоты для каждого корта
	now := uc.timeProvider.Now()
	byCourt := snapshot.BookingsByCourt()

	courts := make([]CourtSlots, 0, len(snapshot.Courts))
	for _, court := range snapshot.Courts {
		courts = append(courts, CourtSlots{
			CourtID:   court.ID,
			CourtName: court.Name,
			Free:      scheduling.FreeStartTimes(snapshot.Date, starts, granularity, byCourt[court.ID], now),
		})
	}

	uc.logger.Info("GetAvailability: facility id=%d, %d courts, %d candidate slots",
		facility.ID, len(courts), len(starts))

	return &Response{
		Date:               snapshot.Date,
		FacilityID:         facility.ID,
		FacilityName:       facility.Name,
		OpenTime:           facility.OpenTime,
		CloseTime:          facility.CloseTime,
		GranularityMinutes: granularity,
		Courts:             courts,
	}, nil
}
