package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
)

// Policy лимиты бронирования. Ноль означает отсутствие ограничения.
type Policy struct {
	MaxActiveBookings  int
	MaxBookingsPerDay  int
	AdvanceBookingDays int
}

// Service Booking-Limit Policy
type Service struct {
	policy       Policy
	counter      BookingCounter
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса лимитов
func NewService(policy Policy, counter BookingCounter, location *time.Location, logger Logger) *Service {
	return &Service{
		policy:       policy,
		counter:      counter,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// CheckBookingLimit проверяет, может ли пользователь создать бронирование с началом proposedStart.
// Отказ возвращается как ErrQuotaExceeded с причиной.
func (s *Service) CheckBookingLimit(ctx context.Context, userID int64, proposedStart time.Time) error {
	now := s.timeProvider.Now()

	// 1. Горизонт бронирования
	if s.policy.AdvanceBookingDays > 0 {
		today := scheduling.LocalDate(now, s.location)
		horizon := today.AddDate(0, 0, s.policy.AdvanceBookingDays+1)
		if !proposedStart.Before(horizon) {
			s.logger.Warn("CheckBookingLimit: user=%d, start=%s is beyond %d days",
				userID, proposedStart.Format(time.RFC3339), s.policy.AdvanceBookingDays)
			return fmt.Errorf("%w: bookings are open at most %d days ahead", ErrQuotaExceeded, s.policy.AdvanceBookingDays)
		}
	}

	// 2. Количество предстоящих бронирований
	if s.policy.MaxActiveBookings > 0 {
		active, err := s.counter.CountUpcomingByUser(ctx, userID, now)
		if err != nil {
			s.logger.Error("CheckBookingLimit: failed to count upcoming bookings for user=%d: %v", userID, err)
			return fmt.Errorf("%w: count upcoming bookings: %v", ErrInternal, err)
		}
		if active >= s.policy.MaxActiveBookings {
			s.logger.Warn("CheckBookingLimit: user=%d has %d/%d upcoming bookings",
				userID, active, s.policy.MaxActiveBookings)
			return fmt.Errorf("%w: at most %d upcoming bookings allowed", ErrQuotaExceeded, s.policy.MaxActiveBookings)
		}
	}

	// 3. Количество бронирований в день начала
	if s.policy.MaxBookingsPerDay > 0 {
		dayStart, dayEnd := scheduling.DayBounds(proposedStart.In(s.location), s.location)
		perDay, err := s.counter.CountByUserInRange(ctx, userID, dayStart, dayEnd)
		if err != nil {
			s.logger.Error("CheckBookingLimit: failed to count daily bookings for user=%d: %v", userID, err)
			return fmt.Errorf("%w: count daily bookings: %v", ErrInternal, err)
		}
		if perDay >= s.policy.MaxBookingsPerDay {
			s.logger.Warn("CheckBookingLimit: user=%d has %d/%d bookings on %s",
				userID, perDay, s.policy.MaxBookingsPerDay, dayStart.Format("2006-01-02"))
			return fmt.Errorf("%w: at most %d bookings per day allowed", ErrQuotaExceeded, s.policy.MaxBookingsPerDay)
		}
	}

	return nil
}
