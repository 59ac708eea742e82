package issue_equipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipment"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipmentrequest"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const operation = "issue"

var tracer = otel.Tracer("github.com/m04kA/SMC-CourtBooking/internal/usecase/issue_equipment")

// UseCase use case для выдачи инвентаря по заявке
type UseCase struct {
	requestRepo   EquipmentRequestRepository
	bookingRepo   BookingRepository
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
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		bookingRepo:   bookingRepo,
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

// issuePlan изменение одной строки заявки
type issuePlan struct {
	line  Line
	item  *domain.EquipmentRequestItem // nil, если строки ещё нет
	delta int
}

// Execute выдаёт инвентарь по заявке. Количество в строке задаёт итоговое выданное
// количество: со склада списывается только разница с уже выданным, поэтому
// повторная выдача того же количества не меняет остатки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "IssueEquipment")
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

	// 1. Выдавать может только сотрудник
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}
	if !req.Actor.IsStaff() {
		uc.logger.Warn("IssueEquipment: user=%d with role=%s is not staff", req.Actor.UserID, req.Actor.Role)
		return nil, ErrForbidden
	}
	span.SetAttributes(attribute.Int64("user.id", req.Actor.UserID), attribute.Int64("request.id", req.RequestID))

	uc.logger.Info("IssueEquipment: staff=%d, request=%d, lines=%d", req.Actor.UserID, req.RequestID, len(req.Lines))

	// 2. Валидация и схлопывание повторов
	if req.RequestID <= 0 {
		return nil, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}
	lines, err := normalizeLines(req.Lines)
	if err != nil {
		uc.logger.Warn("IssueEquipment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var (
		request *domain.EquipmentRequest
		items   []*domain.EquipmentRequestItem
		issued  []domain.EquipmentLine
	)

	// 3. Проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем заявку
		current, err := uc.requestRepo.GetRequestByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: get request: %v", ErrInternal, err)
		}
		if !current.IsOpen() {
			return fmt.Errorf("%w: request id=%d is %s", ErrRequestClosed, current.ID, current.Status)
		}

		// Заявка без бронирования нарушает внешний ключ, это внутренняя ошибка
		booking, err := uc.bookingRepo.GetByID(txCtx, current.BookingID)
		if err != nil {
			return fmt.Errorf("%w: get booking id=%d: %v", ErrInternal, current.BookingID, err)
		}

		// 3.2. Блокируем строки инвентаря по возрастанию ID
		ids := make([]int64, len(lines))
		for i, l := range lines {
			ids[i] = l.EquipmentID
		}
		stock, err := uc.equipmentRepo.LockByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: lock equipment: %v", ErrInternal, err)
		}
		byID := make(map[int64]*domain.Equipment, len(stock))
		for _, e := range stock {
			byID[e.ID] = e
		}

		// 3.3. Считаем разницу с уже выданным, все проверки до первой записи
		existing, err := uc.requestRepo.GetItemsByRequest(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: get request items: %v", ErrInternal, err)
		}
		plans, err := buildPlans(lines, existing, byID, booking.FacilityID)
		if err != nil {
			return err
		}

		// 3.4. Списываем со склада и сохраняем строки
		for _, p := range plans {
			if p.delta > 0 {
				if err := uc.equipmentRepo.DecrementAvailable(txCtx, p.line.EquipmentID, p.delta); err != nil {
					if errors.Is(err, equipmentRepo.ErrInsufficientStock) {
						return fmt.Errorf("%w: equipment id=%d", ErrInsufficientStock, p.line.EquipmentID)
					}
					return fmt.Errorf("%w: decrement equipment id=%d: %v", ErrInternal, p.line.EquipmentID, err)
				}
				issued = append(issued, domain.EquipmentLine{EquipmentID: p.line.EquipmentID, Qty: p.delta})
			}

			if p.item == nil {
				if _, err := uc.requestRepo.CreateItem(txCtx, &domain.EquipmentRequestItem{
					RequestID:   current.ID,
					EquipmentID: p.line.EquipmentID,
					Qty:         p.line.Qty,
					IssuedAt:    &now,
				}); err != nil {
					return fmt.Errorf("%w: create item: %v", ErrInternal, err)
				}
				continue
			}
			if err := uc.requestRepo.UpdateItemIssue(txCtx, p.item.ID, p.line.Qty, now); err != nil {
				return fmt.Errorf("%w: update item id=%d: %v", ErrInternal, p.item.ID, err)
			}
		}

		// 3.5. Заявка остаётся approved, решение фиксируется один раз
		if err := uc.requestRepo.UpdateDecision(txCtx, current.ID, domain.RequestApproved, req.Actor.UserID, now); err != nil {
			return fmt.Errorf("%w: update decision: %v", ErrInternal, err)
		}

		request, err = uc.requestRepo.GetRequestByID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: reload request: %v", ErrInternal, err)
		}
		items, err = uc.requestRepo.GetItemsByRequest(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: reload items: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("IssueEquipment: request id=%d: %v", req.RequestID, err)
		} else {
			uc.logger.Warn("IssueEquipment: request id=%d: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.logger.Info("IssueEquipment: request id=%d, %d lines changed stock", request.ID, len(issued))

	// 4. Публикуем событие, только если со склада что-то списано
	if len(issued) > 0 {
		uc.publish(ctx, request, req.Actor.UserID, issued, now)
	}

	return newResponse(request, items), nil
}

// buildPlans сопоставляет позиции со строками заявки и проверяет,
// что выдача не уменьшает количество и хватает остатка
func buildPlans(
	lines []Line,
	existing []*domain.EquipmentRequestItem,
	stock map[int64]*domain.Equipment,
	facilityID int64,
) ([]issuePlan, error) {
	byEquipment := make(map[int64]*domain.EquipmentRequestItem, len(existing))
	for _, item := range existing {
		byEquipment[item.EquipmentID] = item
	}

	plans := make([]issuePlan, 0, len(lines))
	for _, l := range lines {
		e, ok := stock[l.EquipmentID]
		if !ok || e.FacilityID != facilityID {
			return nil, fmt.Errorf("%w: equipment id=%d in facility id=%d", ErrEquipmentNotFound, l.EquipmentID, facilityID)
		}

		item := byEquipment[l.EquipmentID]
		previous := 0
		if item != nil {
			previous = item.IssuedQty()
		}

		delta := l.Qty - previous
		if delta < 0 {
			return nil, fmt.Errorf("%w: equipment id=%d already issued %d, requested %d",
				ErrIllegalQuantityReduction, l.EquipmentID, previous, l.Qty)
		}
		if delta > e.QtyAvailable {
			return nil, fmt.Errorf("%w: equipment id=%d needs %d, available %d",
				ErrInsufficientStock, l.EquipmentID, delta, e.QtyAvailable)
		}

		plans = append(plans, issuePlan{line: l, item: item, delta: delta})
	}
	return plans, nil
}

func (uc *UseCase) publish(ctx context.Context, r *domain.EquipmentRequest, actorID int64, lines []domain.EquipmentLine, at time.Time) {
	event := domain.EquipmentEvent{
		Type:          domain.EventEquipmentIssued,
		RequestID:     r.ID,
		BookingID:     r.BookingID,
		ActorID:       actorID,
		RequestStatus: string(r.Status),
		Lines:         lines,
		OccurredAt:    at,
	}
	if err := uc.publisher.PublishJSON(ctx, domain.EventEquipmentIssued, event); err != nil {
		uc.logger.Warn("IssueEquipment: failed to publish event for request id=%d: %v", r.ID, err)
	}
}
