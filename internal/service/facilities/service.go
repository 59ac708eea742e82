package facilities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
)

// Service сервис администрирования площадок, кортов и инвентаря
type Service struct {
	facilityRepo  FacilityRepository
	courtRepo     CourtRepository
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	facilityRepo FacilityRepository,
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo:  facilityRepo,
		courtRepo:     courtRepo,
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает площадку и её корты
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, actor *domain.Actor, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	if err := s.checkAdmin(actor, "Create"); err != nil {
		return nil, err
	}
	s.logger.Info("Create: creating facility name=%q, sport=%s by user=%d", req.Name, req.SportType, actor.UserID)

	// 1. Валидируем входные данные
	facility, err := buildFacility(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var courts []*domain.Court

	// 2. Создаем площадку и синхронизируем корты в одной сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := s.facilityRepo.Create(txCtx, facility)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		facility = created

		courts, err = s.syncCourts(txCtx, facility.ID, facility.CourtCount)
		return err
	})
	if err != nil {
		s.logger.Error("Create: failed to create facility: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created facility id=%d with %d courts", facility.ID, facility.CourtCount)
	return models.FromDomainFacility(facility, courts), nil
}

// GetByID получает площадку с кортами
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	courts, err := s.courtRepo.GetByFacility(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get courts for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get courts: %v", ErrInternal, err)
	}

	return models.FromDomainFacility(facility, courts), nil
}

// Update обновляет площадку и синхронизирует количество кортов
// Доступно только администраторам
func (s *Service) Update(
	ctx context.Context,
	actor *domain.Actor,
	id int64,
	req *models.UpdateFacilityRequest,
) (*models.FacilityResponse, error) {
	if err := s.checkAdmin(actor, "Update"); err != nil {
		return nil, err
	}
	s.logger.Info("Update: updating facility id=%d by user=%d", id, actor.UserID)

	var (
		result *domain.Facility
		courts []*domain.Court
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем текущее состояние
		existing, err := s.facilityRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: Update - get facility: %v", ErrInternal, err)
		}

		// 2. Применяем изменения и валидируем результат целиком
		updated, err := buildFacility(req.ApplyTo(existing))
		if err != nil {
			return err
		}
		updated.ID = existing.ID

		// 3. Сохраняем
		result, err = s.facilityRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// 4. Приводим корты к желаемому количеству
		courts, err = s.syncCourts(txCtx, id, result.CourtCount)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: facility id=%d: %v", id, err)
		} else {
			s.logger.Error("Update: failed to update facility id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated facility id=%d", id)
	return models.FromDomainFacility(result, courts), nil
}

// Delete удаляет площадку, если на неё нет ни одного бронирования
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := s.checkAdmin(actor, "Delete"); err != nil {
		return err
	}
	s.logger.Info("Delete: deleting facility id=%d by user=%d", id, actor.UserID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.bookingRepo.CountByFacility(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %d bookings reference facility id=%d", ErrFacilityInUse, count, id)
		}

		if err := s.facilityRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Delete: failed to delete facility id=%d: %v", id, err)
		} else {
			s.logger.Warn("Delete: facility id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: successfully deleted facility id=%d", id)
	return nil
}

// AddEquipment добавляет вид инвентаря площадке; всё количество сразу доступно
// Доступно только администраторам
func (s *Service) AddEquipment(
	ctx context.Context,
	actor *domain.Actor,
	facilityID int64,
	req *models.AddEquipmentRequest,
) (*models.EquipmentResponse, error) {
	if err := s.checkAdmin(actor, "AddEquipment"); err != nil {
		return nil, err
	}

	if err := validateEquipment(req); err != nil {
		s.logger.Warn("AddEquipment: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.facilityRepo.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("AddEquipment: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("AddEquipment: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: AddEquipment - get facility: %v", ErrInternal, err)
	}

	created, err := s.equipmentRepo.Create(ctx, &domain.Equipment{
		FacilityID:   facilityID,
		Name:         strings.TrimSpace(req.Name),
		QtyTotal:     req.Qty,
		QtyAvailable: req.Qty,
	})
	if err != nil {
		s.logger.Error("AddEquipment: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddEquipment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddEquipment: created equipment id=%d, facility=%d, qty=%d", created.ID, facilityID, created.QtyTotal)
	resp := models.FromDomainEquipment(created)
	return &resp, nil
}

// ListEquipment возвращает инвентарь площадки
// Публичный метод - доступен всем
func (s *Service) ListEquipment(ctx context.Context, facilityID int64) (*models.EquipmentListResponse, error) {
	if _, err := s.facilityRepo.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("%w: ListEquipment - get facility: %v", ErrInternal, err)
	}

	items, err := s.equipmentRepo.GetByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("ListEquipment: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: ListEquipment - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEquipmentList(items), nil
}

// syncCourts приводит корты площадки к desired активным. Корты не удаляются.
func (s *Service) syncCourts(ctx context.Context, facilityID int64, desired int) ([]*domain.Court, error) {
	existing, err := s.courtRepo.GetByFacility(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: syncCourts - get courts: %v", ErrInternal, err)
	}

	plan := domain.PlanCourtSync(existing, desired)
	if plan.IsEmpty() {
		return existing, nil
	}

	if err := s.courtRepo.SetActive(ctx, plan.Activate, true); err != nil {
		return nil, fmt.Errorf("%w: syncCourts - activate: %v", ErrInternal, err)
	}
	if err := s.courtRepo.SetActive(ctx, plan.Deactivate, false); err != nil {
		return nil, fmt.Errorf("%w: syncCourts - deactivate: %v", ErrInternal, err)
	}
	for _, name := range plan.Create {
		if _, err := s.courtRepo.Create(ctx, &domain.Court{FacilityID: facilityID, Name: name, IsActive: true}); err != nil {
			return nil, fmt.Errorf("%w: syncCourts - create %q: %v", ErrInternal, name, err)
		}
	}

	s.logger.Info("syncCourts: facility id=%d, activated=%d, deactivated=%d, created=%d",
		facilityID, len(plan.Activate), len(plan.Deactivate), len(plan.Create))

	courts, err := s.courtRepo.GetByFacility(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: syncCourts - reload courts: %v", ErrInternal, err)
	}
	return courts, nil
}

func (s *Service) checkAdmin(actor *domain.Actor, method string) error {
	if actor == nil {
		s.logger.Warn("%s: no authenticated user", method)
		return ErrUnauthorized
	}
	if !actor.IsAdmin() {
		s.logger.Warn("%s: user=%d with role=%s is not an admin", method, actor.UserID, actor.Role)
		return ErrForbidden
	}
	return nil
}
