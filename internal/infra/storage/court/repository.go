package court

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"facility_id",
	"name",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с кортами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает корт
func (r *Repository) Create(ctx context.Context, c *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("courts").
		Columns("facility_id", "name", "is_active").
		Values(c.FacilityID, c.Name, c.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает корт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Court
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FacilityID,
		&c.Name,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// GetByFacility возвращает все корты площадки (включая неактивные), отсортированные по ID
func (r *Repository) GetByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error) {
	return r.list(ctx, "GetByFacility", squirrel.Eq{"facility_id": facilityID})
}

// GetActiveByFacilities возвращает активные корты набора площадок
func (r *Repository) GetActiveByFacilities(ctx context.Context, facilityIDs []int64) ([]*domain.Court, error) {
	if len(facilityIDs) == 0 {
		return []*domain.Court{}, nil
	}
	return r.list(ctx, "GetActiveByFacilities", squirrel.And{
		squirrel.Eq{"facility_id": facilityIDs},
		squirrel.Eq{"is_active": true},
	})
}

// LockByIDs блокирует строки кортов (SELECT ... FOR UPDATE) в порядке возрастания ID.
// Единый порядок захвата исключает взаимоблокировки между конкурирующими бронированиями.
// Вызывать только внутри транзакции.
func (r *Repository) LockByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("courts").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: LockByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("%w: LockByIDs - scan id: %v", ErrScanRow, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: LockByIDs - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// SetActive меняет флаг активности набора кортов
func (r *Repository) SetActive(ctx context.Context, ids []int64, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("courts").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) list(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("courts").
		Where(where).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		var c domain.Court
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&c.ID, &c.FacilityID, &c.Name, &c.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		courts = append(courts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return courts, nil
}
