package create_booking

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
	"github.com/m04kA/SMC-CourtBooking/internal/service/limits"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const operation = "create"

var tracer = otel.Tracer("github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking")

// UseCase use case для создания бронирования
type UseCase struct {
	facilityRepo  FacilityRepository
	courtRepo     CourtRepository
	resolver      CourtResolver
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	requestRepo   EquipmentRequestRepository
	limits        LimitChecker
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       Metrics
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	courtRepo CourtRepository,
	resolver CourtResolver,
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	requestRepo EquipmentRequestRepository,
	limits LimitChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:  facilityRepo,
		courtRepo:     courtRepo,
		resolver:      resolver,
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		limits:        limits,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Все проверки и запись выполняются в одной транзакции; перед поиском пересечений
// блокируются строки всех одноимённых кортов связанных площадок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "CreateBooking")
	defer func() {
		uc.finish(span, resp, err)
	}()

	// 1. Проверяем пользователя
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}
	span.SetAttributes(
		attribute.Int64("user.id", req.Actor.UserID),
		attribute.Int64("facility.id", req.FacilityID),
		attribute.Int64("court.id", req.CourtID),
	)

	uc.logger.Info("CreateBooking: user=%d, facility=%d, court=%d, date=%s, time=%s-%s, equipment=%v",
		req.Actor.UserID, req.FacilityID, req.CourtID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.EquipmentIDs)

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	interval, err := resolveInterval(req, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	equipmentIDs := uniqueIDs(req.EquipmentIDs)

	var (
		result    *domain.Booking
		requestID *int64
		duplicate bool
	)

	// 3. Выполняем проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем площадку
		facility, err := uc.facilityRepo.GetByID(txCtx, req.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: get facility: %v", ErrInternal, err)
		}
		if !facility.IsActive {
			return fmt.Errorf("%w: facility id=%d is inactive", ErrFacilityNotFound, facility.ID)
		}

		// 3.2. Время в будущем и внутри часов работы
		if err := validateSchedule(facility, interval, now); err != nil {
			return err
		}

		// 3.3. Разрешаем связанные площадки; корт должен быть активным кортом этой площадки
		resolution, err := uc.resolver.Resolve(txCtx, facility)
		if err != nil {
			return fmt.Errorf("%w: resolve shared courts: %v", ErrInternal, err)
		}
		court := resolution.Court(req.CourtID)
		if court == nil {
			return fmt.Errorf("%w: court id=%d in facility id=%d", ErrCourtNotFound, req.CourtID, facility.ID)
		}

		// 3.4. Блокируем строки одноимённых кортов (по возрастанию ID)
		equivalentIDs := resolution.EquivalentCourtIDs(court)
		if err := uc.courtRepo.LockByIDs(txCtx, equivalentIDs); err != nil {
			return fmt.Errorf("%w: lock courts %v: %v", ErrInternal, equivalentIDs, err)
		}

		// 3.5. Повторная отправка того же бронирования возвращает существующее
		existing, err := uc.bookingRepo.FindActiveDuplicate(txCtx, req.Actor.UserID, facility.ID, court.ID, interval.Start)
		if err == nil {
			result = existing
			duplicate = true
			return nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: find duplicate: %v", ErrInternal, err)
		}

		// 3.6. Лимиты пользователя
		if err := uc.limits.CheckBookingLimit(txCtx, req.Actor.UserID, interval.Start); err != nil {
			if errors.Is(err, limits.ErrQuotaExceeded) {
				return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
			}
			return fmt.Errorf("%w: check booking limit: %v", ErrInternal, err)
		}

		// 3.7. Пересечения со всеми активными бронированиями одноимённых кортов
		bookings, err := uc.bookingRepo.GetActiveByCourts(txCtx, equivalentIDs, interval.Start, interval.End)
		if err != nil {
			return fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
		}
		if conflict := scheduling.FindConflict(interval, bookings, 0); conflict != nil {
			return fmt.Errorf("%w: overlaps booking id=%d (%s-%s)", ErrSlotConflict, conflict.ID,
				conflict.StartTime.In(uc.location).Format(domain.TimeFormat),
				conflict.EndTime.In(uc.location).Format(domain.TimeFormat))
		}

		// 3.8. Проверяем выбранный инвентарь
		if len(equipmentIDs) > 0 {
			if err := uc.checkEquipment(txCtx, facility.ID, equipmentIDs); err != nil {
				return err
			}
		}

		// 3.9. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:     req.Actor.UserID,
			FacilityID: facility.ID,
			CourtID:    court.ID,
			StartTime:  interval.Start,
			EndTime:    interval.End,
			Status:     domain.StatusConfirmed,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}
		result = created

		// 3.10. Заявка на инвентарь, по одной единице каждой позиции
		if len(equipmentIDs) > 0 {
			id, err := uc.createEquipmentRequest(txCtx, created.ID, equipmentIDs)
			if err != nil {
				return err
			}
			requestID = &id
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: user=%d: %v", req.Actor.UserID, err)
		} else {
			uc.logger.Warn("CreateBooking: user=%d: %v", req.Actor.UserID, err)
		}
		return nil, err
	}

	if duplicate {
		uc.logger.Info("CreateBooking: booking id=%d already exists, returning it", result.ID)
		return newResponse(result, nil, true), nil
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 4. Публикуем событие после коммита
	event := domain.NewBookingEvent(domain.EventBookingCreated, result, now)
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingCreated, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return newResponse(result, requestID, false), nil
}

func (uc *UseCase) checkEquipment(ctx context.Context, facilityID int64, ids []int64) error {
	items, err := uc.equipmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: get equipment: %v", ErrInternal, err)
	}

	found := make(map[int64]*domain.Equipment, len(items))
	for _, e := range items {
		found[e.ID] = e
	}
	for _, id := range ids {
		e, ok := found[id]
		if !ok || e.FacilityID != facilityID {
			return fmt.Errorf("%w: equipment id=%d in facility id=%d", ErrEquipmentNotFound, id, facilityID)
		}
	}
	return nil
}

func (uc *UseCase) createEquipmentRequest(ctx context.Context, bookingID int64, ids []int64) (int64, error) {
	request, err := uc.requestRepo.CreateRequest(ctx, &domain.EquipmentRequest{
		BookingID: bookingID,
		Status:    domain.RequestPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: create equipment request: %v", ErrInternal, err)
	}

	for _, id := range ids {
		if _, err := uc.requestRepo.CreateItem(ctx, &domain.EquipmentRequestItem{
			RequestID:   request.ID,
			EquipmentID: id,
			Qty:         1,
		}); err != nil {
			return 0, fmt.Errorf("%w: create equipment request item: %v", ErrInternal, err)
		}
	}

	return request.ID, nil
}

// finish пишет метрику исхода и закрывает span
func (uc *UseCase) finish(span trace.Span, resp *Response, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil && resp != nil && resp.Duplicate:
		outcome = metrics.OutcomeDuplicate
	case errors.Is(err, ErrInternal):
		outcome = metrics.OutcomeError
	case err != nil:
		outcome = metrics.OutcomeRejected
	}
	uc.metrics.IncBookingOperation(operation, outcome)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
