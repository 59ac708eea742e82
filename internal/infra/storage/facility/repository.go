package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"sport_type",
	"is_active",
	"open_time",
	"close_time",
	"shared_sports",
	"is_multi_sport",
	"rules",
	"court_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку
func (r *Repository) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"name",
			"sport_type",
			"is_active",
			"open_time",
			"close_time",
			"shared_sports",
			"is_multi_sport",
			"rules",
			"court_count",
		).
		Values(
			f.Name,
			f.SportType,
			f.IsActive,
			f.OpenTime,
			f.CloseTime,
			pq.Array(sportsToStrings(f.SharedSports)),
			f.IsMultiSport,
			pq.Array(nonNil(f.Rules)),
			f.CourtCount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// List возвращает площадки, отсортированные по ID
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("facilities").
		OrderBy("id ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFacilities(rows)
}

// GetLinkedCandidates возвращает площадку target и все площадки, которые могут
// делить с ней корты: у них вид спорта target в shared_sports, либо их вид спорта
// входит в shared_sports target. Окончательная фильтрация выполняется в scheduling.
func (r *Repository) GetLinkedCandidates(ctx context.Context, target *domain.Facility) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.Or{
		squirrel.Eq{"id": target.ID},
		squirrel.Expr("? = ANY(shared_sports)", string(target.SportType)),
	}
	if len(target.SharedSports) > 0 {
		conditions = append(conditions, squirrel.Eq{"sport_type": sportsToStrings(target.SharedSports)})
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("facilities").
		Where(conditions).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLinkedCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLinkedCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFacilities(rows)
}

// Update обновляет площадку целиком
func (r *Repository) Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", f.Name).
		Set("sport_type", f.SportType).
		Set("is_active", f.IsActive).
		Set("open_time", f.OpenTime).
		Set("close_time", f.CloseTime).
		Set("shared_sports", pq.Array(sportsToStrings(f.SharedSports))).
		Set("is_multi_sport", f.IsMultiSport).
		Set("rules", pq.Array(nonNil(f.Rules))).
		Set("court_count", f.CourtCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// Delete удаляет площадку (корты и инвентарь удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var sharedSports, rules []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.SportType,
		&f.IsActive,
		&f.OpenTime,
		&f.CloseTime,
		pq.Array(&sharedSports),
		&f.IsMultiSport,
		pq.Array(&rules),
		&f.CourtCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.SharedSports = make([]domain.SportType, 0, len(sharedSports))
	for _, s := range sharedSports {
		f.SharedSports = append(f.SharedSports, domain.SportType(s))
	}
	f.Rules = nonNil(rules)
	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

func scanFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	facilities := make([]*domain.Facility, 0)

	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanFacilities - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFacilities - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

func sportsToStrings(sports []domain.SportType) []string {
	result := make([]string, len(sports))
	for i, s := range sports {
		result[i] = string(s)
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
