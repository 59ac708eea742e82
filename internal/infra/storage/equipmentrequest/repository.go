package equipmentrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"booking_id",
	"status",
	"decided_by",
	"decided_at",
	"returned_at",
	"created_at",
	"updated_at",
}

var itemColumns = []string{
	"id",
	"request_id",
	"equipment_id",
	"qty",
	"qty_returned",
	"issued_at",
	"condition",
	"dismissed",
	"damage_notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на инвентарь и их строк
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRequest создает заявку на инвентарь для бронирования
func (r *Repository) CreateRequest(ctx context.Context, req *domain.EquipmentRequest) (*domain.EquipmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment_requests").
		Columns("booking_id", "status").
		Values(req.BookingID, req.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRequest - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateRequest - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// CreateItem создает строку заявки
func (r *Repository) CreateItem(ctx context.Context, item *domain.EquipmentRequestItem) (*domain.EquipmentRequestItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment_request_items").
		Columns("request_id", "equipment_id", "qty", "qty_returned", "issued_at").
		Values(item.RequestID, item.EquipmentID, item.Qty, item.QtyReturned, item.IssuedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateItem - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateItem - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// GetRequestByID получает заявку по ID
func (r *Repository) GetRequestByID(ctx context.Context, id int64) (*domain.EquipmentRequest, error) {
	return r.getRequest(ctx, "GetRequestByID", id, false)
}

// GetRequestByIDForUpdate получает заявку с блокировкой строки
func (r *Repository) GetRequestByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequest, error) {
	return r.getRequest(ctx, "GetRequestByIDForUpdate", id, true)
}

// GetRequestsByBooking возвращает заявки бронирования
func (r *Repository) GetRequestsByBooking(ctx context.Context, bookingID int64) ([]*domain.EquipmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("equipment_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRequestsByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRequestsByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.EquipmentRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRequestsByBooking - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRequestsByBooking - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// GetItemsByRequest возвращает строки заявки, отсортированные по ID
func (r *Repository) GetItemsByRequest(ctx context.Context, requestID int64) ([]*domain.EquipmentRequestItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("equipment_request_items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetItemsByRequest - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemsByRequest - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.EquipmentRequestItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetItemsByRequest - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetItemsByRequest - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// GetItemByID получает строку заявки по ID
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*domain.EquipmentRequestItem, error) {
	return r.getItem(ctx, "GetItemByID", id, false)
}

// GetItemByIDForUpdate получает строку заявки с блокировкой
func (r *Repository) GetItemByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequestItem, error) {
	return r.getItem(ctx, "GetItemByIDForUpdate", id, true)
}

// UpdateItemIssue сохраняет выданное количество. issued_at проставляется только один раз.
func (r *Repository) UpdateItemIssue(ctx context.Context, id int64, qty int, issuedAt time.Time) error {
	query, args, err := psqlbuilder.Update("equipment_request_items").
		Set("qty", qty).
		Set("issued_at", squirrel.Expr("COALESCE(issued_at, ?)", issuedAt)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateItemIssue - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateItemIssue", query, args, ErrItemNotFound)
}

// UpdateItemReturn сохраняет результат возврата строки
func (r *Repository) UpdateItemReturn(ctx context.Context, item *domain.EquipmentRequestItem) error {
	query, args, err := psqlbuilder.Update("equipment_request_items").
		Set("qty_returned", item.QtyReturned).
		Set("condition", item.Condition).
		Set("dismissed", item.Dismissed).
		Set("damage_notes", item.DamageNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateItemReturn - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateItemReturn", query, args, ErrItemNotFound)
}

// UpdateDecision меняет статус заявки; кто и когда принял решение фиксируется только при первом решении
func (r *Repository) UpdateDecision(
	ctx context.Context,
	id int64,
	status domain.RequestStatus,
	decidedBy int64,
	decidedAt time.Time,
) error {
	query, args, err := psqlbuilder.Update("equipment_requests").
		Set("status", status).
		Set("decided_by", squirrel.Expr("COALESCE(decided_by, ?)", decidedBy)).
		Set("decided_at", squirrel.Expr("COALESCE(decided_at, ?)", decidedAt)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateDecision", query, args, ErrRequestNotFound)
}

// MarkDone закрывает заявку. returnedAt проставляется, если инвентарь полностью возвращён.
func (r *Repository) MarkDone(ctx context.Context, id int64, returnedAt *time.Time) error {
	query, args, err := psqlbuilder.Update("equipment_requests").
		Set("status", domain.RequestDone).
		Set("returned_at", returnedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDone - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkDone", query, args, ErrRequestNotFound)
}

// CloseOpenByBooking переводит все pending/approved заявки бронирования в done.
// Инвентарь не трогается. Возвращает количество закрытых заявок.
func (r *Repository) CloseOpenByBooking(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.OpenRequestStatuses))
	for i, s := range domain.OpenRequestStatuses {
		statuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("equipment_requests").
		Set("status", domain.RequestDone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": statuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CloseOpenByBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CloseOpenByBooking - execute update: %v", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CloseOpenByBooking - get rows affected: %v", ErrExecQuery, err)
	}

	return n, nil
}

func (r *Repository) getRequest(ctx context.Context, method string, id int64, forUpdate bool) (*domain.EquipmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("equipment_requests").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan request: %v", ErrScanRow, method, err)
	}

	return req, nil
}

func (r *Repository) getItem(ctx context.Context, method string, id int64, forUpdate bool) (*domain.EquipmentRequestItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(itemColumns...).
		From("equipment_request_items").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	item, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan item: %v", ErrScanRow, method, err)
	}

	return item, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}, notFound error) error {
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
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.EquipmentRequest, error) {
	var req domain.EquipmentRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.BookingID,
		&req.Status,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.ReturnedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func scanItem(row rowScanner) (*domain.EquipmentRequestItem, error) {
	var item domain.EquipmentRequestItem
	var condition sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.RequestID,
		&item.EquipmentID,
		&item.Qty,
		&item.QtyReturned,
		&item.IssuedAt,
		&condition,
		&item.Dismissed,
		&item.DamageNotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if condition.Valid {
		c := domain.ReturnCondition(condition.String)
		item.Condition = &c
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}
