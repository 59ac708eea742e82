package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const operation = "reschedule"

var tracer = otel.Tracer("github.com/m04kA/SMC-CourtBooking/internal/usecase/reschedule_booking")

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	courtRepo    CourtRepository
	resolver     CourtResolver
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	courtRepo CourtRepository,
	resolver CourtResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		courtRepo:    courtRepo,
		resolver:     resolver,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование на новое время с сохранением длительности.
// Окно изменения проверяется по текущему (старому) началу бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "RescheduleBooking")
	defer func() {
		uc.finish(span, err)
	}()

	// 1. Проверяем пользователя
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}
	span.SetAttributes(attribute.Int64("user.id", req.Actor.UserID), attribute.Int64("booking.id", req.BookingID))

	uc.logger.Info("RescheduleBooking: user=%d, booking=%d, date=%s, time=%s",
		req.Actor.UserID, req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	// 3. Проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку бронирования
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// 3.2. Переносить может только владелец
		if !booking.IsOwnedBy(req.Actor.UserID) {
			return fmt.Errorf("%w: booking id=%d", ErrForbidden, booking.ID)
		}
		if booking.IsCancelled() {
			return fmt.Errorf("%w: booking id=%d", ErrBookingCancelled, booking.ID)
		}

		// 3.3. Окно изменения по текущему началу
		if !booking.CanBeModified(now) {
			return fmt.Errorf("%w: booking id=%d starts at %s", ErrModificationWindowClosed, booking.ID,
				booking.StartTime.In(uc.location).Format(time.RFC3339))
		}

		// 3.4. Новый интервал той же длительности
		interval := newInterval(req, booking, uc.location)

		facility, err := uc.facilityRepo.GetByID(txCtx, booking.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: get facility: %v", ErrInternal, err)
		}
		if !facility.IsActive {
			return fmt.Errorf("%w: facility id=%d is inactive", ErrFacilityNotFound, facility.ID)
		}

		if err := validateSchedule(facility, interval, now); err != nil {
			return err
		}

		// 3.5. Одноимённые корты связанных площадок
		resolution, err := uc.resolver.Resolve(txCtx, facility)
		if err != nil {
			return fmt.Errorf("%w: resolve shared courts: %v", ErrInternal, err)
		}
		court := resolution.Court(booking.CourtID)
		if court == nil {
			return fmt.Errorf("%w: court id=%d is not active", ErrCourtNotFound, booking.CourtID)
		}

		equivalentIDs := resolution.EquivalentCourtIDs(court)
		if err := uc.courtRepo.LockByIDs(txCtx, equivalentIDs); err != nil {
			return fmt.Errorf("%w: lock courts %v: %v", ErrInternal, equivalentIDs, err)
		}

		// 3.6. Пересечения со всеми активными бронированиями, кроме самого бронирования
		bookings, err := uc.bookingRepo.GetActiveByCourts(txCtx, equivalentIDs, interval.Start, interval.End)
		if err != nil {
			return fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
		}
		if conflict := scheduling.FindConflict(interval, bookings, booking.ID); conflict != nil {
			return fmt.Errorf("%w: overlaps booking id=%d", ErrSlotConflict, conflict.ID)
		}

		// 3.7. Обновляем время и статус, сбрасываем отметку о напоминании
		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, interval.Start, interval.End, domain.StatusRescheduled); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			return fmt.Errorf("%w: update schedule: %v", ErrInternal, err)
		}

		booking.StartTime = interval.Start
		booking.EndTime = interval.End
		booking.Status = domain.StatusRescheduled
		booking.ReminderSentAt = nil
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RescheduleBooking: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("RescheduleBooking: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s", result.ID,
		result.StartTime.In(uc.location).Format(time.RFC3339))

	// 4. Публикуем событие после коммита
	event := domain.NewBookingEvent(domain.EventBookingRescheduled, result, now)
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingRescheduled, event); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		FacilityID: result.FacilityID,
		CourtID:    result.CourtID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
	}, nil
}

// finish пишет метрику исхода и закрывает span
func (uc *UseCase) finish(span trace.Span, err error) {
	switch {
	case err == nil:
		uc.metrics.IncBookingOperation(operation, metrics.OutcomeSuccess)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncBookingOperation(operation, metrics.OutcomeError)
	default:
		uc.metrics.IncBookingOperation(operation, metrics.OutcomeRejected)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
