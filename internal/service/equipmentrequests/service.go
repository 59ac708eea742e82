package equipmentrequests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipmentrequest"
	"github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests/models"
)

// Service сервис ручного согласования заявок на инвентарь
type Service struct {
	requestRepo  EquipmentRequestRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo EquipmentRequestRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		requestRepo:  requestRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Decide одобряет или отклоняет заявку в статусе pending
// Доступно только staff и admin. Отклонение терминально.
func (s *Service) Decide(
	ctx context.Context,
	actor *domain.Actor,
	requestID int64,
	req *models.DecisionRequest,
) (*models.RequestResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsStaff() {
		s.logger.Warn("Decide: user=%d with role=%s is not staff", actor.UserID, actor.Role)
		return nil, ErrForbidden
	}

	var status domain.RequestStatus
	switch req.Decision {
	case models.DecisionApprove:
		status = domain.RequestApproved
	case models.DecisionDeny:
		status = domain.RequestDenied
	default:
		return nil, fmt.Errorf("%w: decision must be %q or %q", ErrInvalidInput, models.DecisionApprove, models.DecisionDeny)
	}

	s.logger.Info("Decide: request id=%d, decision=%s by user=%d", requestID, req.Decision, actor.UserID)

	var result *domain.EquipmentRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetRequestByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Decide - get request: %v", ErrInternal, err)
		}

		if request.Status != domain.RequestPending {
			return fmt.Errorf("%w: status=%s", ErrRequestClosed, request.Status)
		}

		if err := s.requestRepo.UpdateDecision(txCtx, requestID, status, actor.UserID, s.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: Decide - update decision: %v", ErrInternal, err)
		}

		result, err = s.requestRepo.GetRequestByID(txCtx, requestID)
		if err != nil {
			return fmt.Errorf("%w: Decide - reload request: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Decide: request id=%d: %v", requestID, err)
		} else {
			s.logger.Warn("Decide: request id=%d: %v", requestID, err)
		}
		return nil, err
	}

	s.logger.Info("Decide: request id=%d is now %s", requestID, result.Status)
	return models.FromDomainRequest(result), nil
}
