package return_equipment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipmentrequest"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const operation = "return"

var tracer = otel.Tracer("github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment")

// UseCase use case для приёма возврата инвентаря
type UseCase struct {
	requestRepo   EquipmentRequestRepository
	equipmentRepo EquipmentRepository
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo EquipmentRequestRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute принимает возврат по строке заявки.
// good возвращает единицы в доступные, lost уменьшает общее количество,
// damaged и not_returned остатки не меняют.
// Когда все строки заявки закрыты, заявка переходит в done.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "ReturnEquipment")
	defer func() {
		outcome := metrics.OutcomeSuccess
		if errors.Is(err, ErrInternal) {
			outcome = metrics.OutcomeError
		} else if err != nil {
			outcome = metrics.OutcomeRejected
		}
		uc.metrics.IncEquipmentOperation(operation, outcome)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// 1. Принимать возврат может только сотрудник
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}
	if !req.Actor.IsStaff() {
		uc.logger.Warn("ReturnEquipment: user=%d with role=%s is not staff", req.Actor.UserID, req.Actor.Role)
		return nil, ErrForbidden
	}
	span.SetAttributes(attribute.Int64("user.id", req.Actor.UserID), attribute.Int64("item.id", req.ItemID))

	uc.logger.Info("ReturnEquipment: staff=%d, item=%d, qty=%d, condition=%s",
		req.Actor.UserID, req.ItemID, req.Qty, req.Condition)

	// 2. Валидация входных данных
	condition, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReturnEquipment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var (
		result  *domain.EquipmentRequestItem
		request *domain.EquipmentRequest
	)

	// 3. Проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Порядок блокировок: заявка, строка, инвентарь
		located, err := uc.requestRepo.GetItemByID(txCtx, req.ItemID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrItemNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("%w: get item: %v", ErrInternal, err)
		}

		request, err = uc.requestRepo.GetRequestByIDForUpdate(txCtx, located.RequestID)
		if err != nil {
			return fmt.Errorf("%w: get request id=%d: %v", ErrInternal, located.RequestID, err)
		}
		if request.Status == domain.RequestDenied {
			return fmt.Errorf("%w: request id=%d is denied", ErrRequestClosed, request.ID)
		}

		item, err := uc.requestRepo.GetItemByIDForUpdate(txCtx, req.ItemID)
		if err != nil {
			return fmt.Errorf("%w: lock item: %v", ErrInternal, err)
		}

		// 3.2. Нельзя вернуть больше, чем выдано и ещё не возвращено
		if outstanding := item.Outstanding(); req.Qty > outstanding {
			return fmt.Errorf("%w: qty=%d, outstanding=%d", ErrQuantityOutOfRange, req.Qty, outstanding)
		}

		stock, err := uc.equipmentRepo.LockByIDs(txCtx, []int64{item.EquipmentID})
		if err != nil {
			return fmt.Errorf("%w: lock equipment: %v", ErrInternal, err)
		}
		if len(stock) == 0 {
			return fmt.Errorf("%w: equipment id=%d", ErrEquipmentNotFound, item.EquipmentID)
		}

		// 3.3. Движение остатков в зависимости от состояния
		switch condition {
		case domain.ConditionGood:
			err = uc.equipmentRepo.IncrementAvailable(txCtx, item.EquipmentID, req.Qty)
		case domain.ConditionLost:
			err = uc.equipmentRepo.DecrementTotal(txCtx, item.EquipmentID, req.Qty)
		}
		if err != nil {
			return fmt.Errorf("%w: update equipment id=%d: %v", ErrInternal, item.EquipmentID, err)
		}

		// 3.4. Сохраняем возврат по строке
		item.RecordReturn(req.Qty, condition, req.Dismiss)
		if req.Notes != nil {
			item.DamageNotes = req.Notes
		}
		if err := uc.requestRepo.UpdateItemReturn(txCtx, item); err != nil {
			return fmt.Errorf("%w: update item: %v", ErrInternal, err)
		}
		result = item

		// 3.5. Закрываем заявку, если закрыты все строки
		items, err := uc.requestRepo.GetItemsByRequest(txCtx, request.ID)
		if err != nil {
			return fmt.Errorf("%w: get request items: %v", ErrInternal, err)
		}
		if request.Status != domain.RequestDone && domain.AllResolved(items) {
			if err := uc.requestRepo.MarkDone(txCtx, request.ID, &now); err != nil {
				return fmt.Errorf("%w: mark request done: %v", ErrInternal, err)
			}
			request.Status = domain.RequestDone
			request.ReturnedAt = &now
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ReturnEquipment: item id=%d: %v", req.ItemID, err)
		} else {
			uc.logger.Warn("ReturnEquipment: item id=%d: %v", req.ItemID, err)
		}
		return nil, err
	}

	uc.logger.Info("ReturnEquipment: item id=%d returned %d/%d, request id=%d is %s",
		result.ID, result.QtyReturned, result.Qty, request.ID, request.Status)

	// 4. Публикуем событие после коммита
	event := domain.EquipmentEvent{
		Type:          domain.EventEquipmentReturned,
		RequestID:     request.ID,
		BookingID:     request.BookingID,
		ActorID:       req.Actor.UserID,
		RequestStatus: string(request.Status),
		Lines:         []domain.EquipmentLine{{EquipmentID: result.EquipmentID, Qty: req.Qty, Condition: string(condition)}},
		OccurredAt:    now,
	}
	if err := uc.publisher.PublishJSON(ctx, domain.EventEquipmentReturned, event); err != nil {
		uc.logger.Warn("ReturnEquipment: failed to publish event for item id=%d: %v", result.ID, err)
	}

	return &Response{
		ItemID:        result.ID,
		RequestID:     request.ID,
		EquipmentID:   result.EquipmentID,
		Qty:           result.Qty,
		QtyReturned:   result.QtyReturned,
		Condition:     string(*result.Condition),
		Dismissed:     result.Dismissed,
		RequestStatus: string(request.Status),
		ReturnedAt:    request.ReturnedAt,
	}, nil
}
