package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	requestRepo  EquipmentRequestRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	requestRepo EquipmentRequestRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		requestRepo:  requestRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID вместе с заявками на инвентарь
// Пользователь видит только своё бронирование, staff и admin - любое
func (s *Service) GetByID(ctx context.Context, actor *domain.Actor, id int64) (*models.BookingResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !booking.IsOwnedBy(actor.UserID) && !actor.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking, s.timeProvider.Now())

	requests, err := s.requestRepo.GetRequestsByBooking(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get equipment requests for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get equipment requests: %v", ErrInternal, err)
	}
	for _, r := range requests {
		items, err := s.requestRepo.GetItemsByRequest(ctx, r.ID)
		if err != nil {
			s.logger.Error("GetByID: failed to get items of request id=%d: %v", r.ID, err)
			return nil, fmt.Errorf("%w: GetByID - get request items: %v", ErrInternal, err)
		}
		resp.EquipmentRequests = append(resp.EquipmentRequests, models.FromDomainEquipmentRequest(r, items))
	}

	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Фильтр по статусу применяется к отображаемому статусу, поэтому поддерживает completed
func (s *Service) GetUserBookings(
	ctx context.Context,
	actor *domain.Actor,
	req *models.GetUserBookingsRequest,
) (*models.BookingListResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", actor.UserID, req.Status)

	filter, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: user=%d: %v", actor.UserID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	bookings = filterByDisplayStatus(bookings, filter, now)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), actor.UserID)
	return models.FromDomainBookingList(bookings, now), nil
}

// GetFacilityBookings возвращает расписание площадки за календарный день
// Доступно только staff и admin
func (s *Service) GetFacilityBookings(
	ctx context.Context,
	actor *domain.Actor,
	req *models.GetFacilityBookingsRequest,
) (*models.BookingListResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsStaff() {
		s.logger.Warn("GetFacilityBookings: user=%d with role=%s is not staff", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	filter, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetFacilityBookings: facility=%d: %v", req.FacilityID, err)
		return nil, err
	}

	from, to := scheduling.DayBounds(req.Date, req.Date.Location())
	bookings, err := s.bookingRepo.GetByFacility(ctx, req.FacilityID, from, to)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	bookings = filterByDisplayStatus(bookings, filter, now)

	s.logger.Info("GetFacilityBookings: facility=%d, date=%s, count=%d",
		req.FacilityID, from.Format(domain.DateFormat), len(bookings))
	return models.FromDomainBookingList(bookings, now), nil
}

func parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := models.ParseDisplayStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *raw)
	}
	return &status, nil
}

func filterByDisplayStatus(bookings []*domain.Booking, filter *domain.BookingStatus, now time.Time) []*domain.Booking {
	if filter == nil {
		return bookings
	}
	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.DisplayStatus(now) == *filter {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
