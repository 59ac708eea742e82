package equipment

import (
	"context"
	"database/sql"
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
	"qty_total",
	"qty_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с инвентарём площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет вид инвентаря
func (r *Repository) Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment").
		Columns("facility_id", "name", "qty_total", "qty_available").
		Values(e.FacilityID, e.Name, e.QtyTotal, e.QtyAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByFacility возвращает инвентарь площадки
func (r *Repository) GetByFacility(ctx context.Context, facilityID int64) ([]*domain.Equipment, error) {
	return r.list(ctx, "GetByFacility", squirrel.Eq{"facility_id": facilityID}, false)
}

// GetByIDs возвращает инвентарь по набору ID, отсортированный по ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error) {
	if len(ids) == 0 {
		return []*domain.Equipment{}, nil
	}
	return r.list(ctx, "GetByIDs", squirrel.Eq{"id": ids}, false)
}

// LockByIDs получает инвентарь с блокировкой строк (FOR UPDATE) в порядке возрастания ID.
// Отсутствующие ID просто не попадают в результат.
func (r *Repository) LockByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error) {
	if len(ids) == 0 {
		return []*domain.Equipment{}, nil
	}
	return r.list(ctx, "LockByIDs", squirrel.Eq{"id": ids}, dbmetrics.IsInTransaction(ctx))
}

// DecrementAvailable атомарно списывает qty единиц из доступных.
// Условие qty_available >= qty проверяется в самом UPDATE, поэтому конкурентная
// выдача не может увести остаток в минус.
func (r *Repository) DecrementAvailable(ctx context.Context, id int64, qty int) error {
	query, args, err := psqlbuilder.Update("equipment").
		Set("qty_available", squirrel.Expr("qty_available - ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"qty_available": qty}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementAvailable - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "DecrementAvailable", id, query, args)
}

// IncrementAvailable возвращает qty единиц в доступные
func (r *Repository) IncrementAvailable(ctx context.Context, id int64, qty int) error {
	query, args, err := psqlbuilder.Update("equipment").
		Set("qty_available", squirrel.Expr("qty_available + ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementAvailable - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "IncrementAvailable", id, query, args)
}

// DecrementTotal уменьшает общее количество (потеря инвентаря), доступное не меняется
func (r *Repository) DecrementTotal(ctx context.Context, id int64, qty int) error {
	query, args, err := psqlbuilder.Update("equipment").
		Set("qty_total", squirrel.Expr("qty_total - ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"qty_total": qty}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementTotal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "DecrementTotal", id, query, args)
}

// execGuarded выполняет UPDATE одной строки; 0 затронутых строк означает,
// что строки нет или не выполнилось условие на остаток
func (r *Repository) execGuarded(ctx context.Context, method string, id int64, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		if _, err := r.getByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: equipment id=%d", ErrInsufficientStock, id)
	}

	return nil
}

func (r *Repository) getByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	list, err := r.list(ctx, "getByID", squirrel.Eq{"id": id}, false)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrEquipmentNotFound
	}
	return list[0], nil
}

func (r *Repository) list(ctx context.Context, method string, where squirrel.Sqlizer, forUpdate bool) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("equipment").
		Where(where).
		OrderBy("id ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	items := make([]*domain.Equipment, 0)
	for rows.Next() {
		var e domain.Equipment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&e.ID, &e.FacilityID, &e.Name, &e.QtyTotal, &e.QtyAvailable, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		e.CreatedAt = createdAt.Time
		e.UpdatedAt = updatedAt.Time
		items = append(items, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return items, nil
}
