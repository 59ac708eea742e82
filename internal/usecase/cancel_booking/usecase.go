package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const operation = "cancel"

var tracer = otel.Tracer("github.com/m04kA/SMC-CourtBooking/internal/usecase/cancel_booking")

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	requestRepo  EquipmentRequestRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	requestRepo EquipmentRequestRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		requestRepo:  requestRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет бронирование и закрывает его открытые заявки на инвентарь.
// Инвентарь при этом не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "CancelBooking")
	defer func() {
		outcome := metrics.OutcomeSuccess
		if errors.Is(err, ErrInternal) {
			outcome = metrics.OutcomeError
		} else if err != nil {
			outcome = metrics.OutcomeRejected
		}
		uc.metrics.IncBookingOperation(operation, outcome)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// 1. Проверяем пользователя
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.Int64("user.id", req.Actor.UserID), attribute.Int64("booking.id", req.BookingID))

	uc.logger.Info("CancelBooking: user=%d, booking=%d", req.Actor.UserID, req.BookingID)

	now := uc.timeProvider.Now()
	var (
		result *domain.Booking
		closed int64
	)

	// 2. Проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку бронирования
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// 2.2. Отменить может только владелец
		if !booking.IsOwnedBy(req.Actor.UserID) {
			return fmt.Errorf("%w: booking id=%d", ErrForbidden, booking.ID)
		}
		if booking.IsCancelled() {
			return fmt.Errorf("%w: booking id=%d", ErrBookingCancelled, booking.ID)
		}

		// 2.3. Окно изменения
		if !booking.CanBeModified(now) {
			return fmt.Errorf("%w: booking id=%d starts at %s", ErrModificationWindowClosed, booking.ID,
				booking.StartTime.Format(time.RFC3339))
		}

		// 2.4. Отменяем бронирование
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now); err != nil {
			return fmt.Errorf("%w: cancel booking: %v", ErrInternal, err)
		}

		// 2.5. Закрываем pending/approved заявки без движения инвентаря
		closed, err = uc.requestRepo.CloseOpenByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: close equipment requests: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelBooking: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("CancelBooking: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, %d equipment requests closed", result.ID, closed)

	// 3. Публикуем событие после коммита
	event := domain.NewBookingEvent(domain.EventBookingCancelled, result, now)
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingCancelled, event); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:             result.ID,
		Status:         string(result.Status),
		CancelledAt:    now,
		ClosedRequests: closed,
	}, nil
}
