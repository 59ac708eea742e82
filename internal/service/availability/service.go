package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
)

// Snapshot всё, что нужно для расчёта слотов площадки на дату без дополнительных запросов
type Snapshot struct {
	Facility *domain.Facility

	// Courts активные корты площадки
	Courts []*domain.Court

	// Bookings активные бронирования всех связанных площадок за день,
	// CourtID заменён на ID одноимённого корта этой площадки
	Bookings []*domain.Booking

	// Date полночь запрошенного дня в часовом поясе площадки
	Date time.Time
}

// BookingsByCourt раскладывает бронирования снимка по кортам
func (s *Snapshot) BookingsByCourt() map[int64][]*domain.Booking {
	return scheduling.GroupByCourt(s.Bookings)
}

// Service Availability Service
type Service struct {
	facilityRepo FacilityRepository
	bookingRepo  BookingRepository
	resolver     CourtResolver
	txManager    TransactionManager
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	facilityRepo FacilityRepository,
	bookingRepo BookingRepository,
	resolver CourtResolver,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		txManager:    txManager,
		location:     location,
		logger:       logger,
	}
}

// Load собирает снимок площадки на дату date (берутся год, месяц и день).
// Возвращает nil, nil, если площадка не найдена или неактивна.
// Все чтения выполняются в одной read-only транзакции.
func (s *Service) Load(ctx context.Context, facilityID int64, date time.Time) (*Snapshot, error) {
	dayStart, dayEnd := scheduling.DayBounds(date, s.location)

	var snapshot *Snapshot

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 1. Получаем площадку
		facility, err := s.facilityRepo.GetByID(txCtx, facilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				s.logger.Warn("Availability: facility id=%d not found", facilityID)
				return nil
			}
			return fmt.Errorf("%w: Load - get facility id=%d: %v", ErrInternal, facilityID, err)
		}
		if !facility.IsActive {
			s.logger.Warn("Availability: facility id=%d is inactive", facilityID)
			return nil
		}

		// 2. Расширяем до связанных площадок и кортов
		resolution, err := s.resolver.Resolve(txCtx, facility)
		if err != nil {
			return fmt.Errorf("%w: Load - resolve shared courts: %v", ErrInternal, err)
		}

		linkedCourtIDs := make([]int64, 0, len(resolution.LinkedCourts))
		for _, c := range resolution.LinkedCourts {
			linkedCourtIDs = append(linkedCourtIDs, c.ID)
		}

		// 3. Все активные бронирования связанных кортов за день
		bookings, err := s.bookingRepo.GetActiveByCourts(txCtx, linkedCourtIDs, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("%w: Load - get bookings: %v", ErrInternal, err)
		}

		// 4. Переносим бронирования на корты запрошенной площадки
		snapshot = &Snapshot{
			Facility: facility,
			Courts:   resolution.TargetCourts,
			Bookings: scheduling.RemapBookings(bookings, resolution.Canonical),
			Date:     dayStart,
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Availability: failed to load facility id=%d: %v", facilityID, err)
		return nil, err
	}

	if snapshot != nil {
		s.logger.Info("Availability: facility id=%d, date=%s, courts=%d, bookings=%d",
			facilityID, dayStart.Format(domain.DateFormat), len(snapshot.Courts), len(snapshot.Bookings))
	}

	return snapshot, nil
}
