package return_equipment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

const facilityID = 100

var now = time.Date(2025, 6, 10, 20, 0, 0, 0, domain.LocalZone(domain.DefaultTimezoneOffsetHours))

var staff = &domain.Actor{UserID: 5, Role: domain.RoleStaff}

type env struct {
	store     *testfixtures.Store
	repos     *testfixtures.Repositories
	publisher *testfixtures.RecordingPublisher
	uc        *UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	publisher := &testfixtures.RecordingPublisher{}

	uc := NewUseCase(
		repos.Requests,
		repos.Equipment,
		testfixtures.NewTxManager(store),
		publisher,
		testfixtures.NopMetrics{},
		logger.Nop(),
	).WithTimeProvider(testfixtures.NewClock(now))

	return &env{store: store, repos: repos, publisher: publisher, uc: uc}
}

// issued заводит инвентарь total штук и строку заявки, по которой выдано qty
func (e *env) issued(t *testing.T, total, qty int) (*domain.Equipment, *domain.EquipmentRequest, *domain.EquipmentRequestItem) {
	t.Helper()

	eq := e.store.SeedEquipment(facilityID, "Racket", total)
	require.NoError(t, e.repos.Equipment.DecrementAvailable(context.Background(), eq.ID, qty))

	request, items := e.store.SeedRequest(
		domain.EquipmentRequest{BookingID: 1, Status: domain.RequestApproved},
		domain.EquipmentRequestItem{EquipmentID: eq.ID, Qty: qty, IssuedAt: ptr.Ptr(now.Add(-2 * time.Hour))},
	)
	return eq, request, items[0]
}

func giveBack(itemID int64, qty int, condition domain.ReturnCondition) *Request {
	return &Request{Actor: staff, ItemID: itemID, Qty: qty, Condition: string(condition)}
}

func TestExecute_StockConservation(t *testing.T) {
	tests := []struct {
		name          string
		condition     domain.ReturnCondition
		wantAvailable int
		wantTotal     int
	}{
		{name: "good returns to available", condition: domain.ConditionGood, wantAvailable: 10, wantTotal: 10},
		{name: "lost shrinks total", condition: domain.ConditionLost, wantAvailable: 6, wantTotal: 6},
		{name: "damaged changes nothing", condition: domain.ConditionDamaged, wantAvailable: 6, wantTotal: 10},
		{name: "not returned changes nothing", condition: domain.ConditionNotReturned, wantAvailable: 6, wantTotal: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			eq, request, item := e.issued(t, 10, 4)
			require.Equal(t, 6, e.store.Equipment(eq.ID).QtyAvailable)

			resp, err := e.uc.Execute(context.Background(), giveBack(item.ID, 4, tt.condition))

			require.NoError(t, err)
			stored := e.store.Equipment(eq.ID)
			assert.Equal(t, tt.wantAvailable, stored.QtyAvailable)
			assert.Equal(t, tt.wantTotal, stored.QtyTotal)

			assert.Equal(t, 4, resp.QtyReturned)
			assert.Equal(t, string(domain.RequestDone), resp.RequestStatus)
			require.NotNil(t, resp.ReturnedAt)
			assert.Equal(t, now, *resp.ReturnedAt)

			storedItem := e.store.Item(item.ID)
			require.NotNil(t, storedItem.Condition)
			assert.Equal(t, tt.condition, *storedItem.Condition)
			assert.Equal(t, domain.RequestDone, e.store.Request(request.ID).Status)
			assert.Equal(t, []string{domain.EventEquipmentReturned}, e.publisher.Keys())
		})
	}
}

func TestExecute_PartialReturnKeepsRequestOpen(t *testing.T) {
	e := newEnv(t)
	eq, request, item := e.issued(t, 10, 4)

	resp, err := e.uc.Execute(context.Background(), giveBack(item.ID, 2, domain.ConditionGood))
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestApproved), resp.RequestStatus)
	assert.Nil(t, resp.ReturnedAt)
	assert.Equal(t, 8, e.store.Equipment(eq.ID).QtyAvailable)

	_, err = e.uc.Execute(context.Background(), giveBack(item.ID, 3, domain.ConditionGood))
	require.ErrorIs(t, err, ErrQuantityOutOfRange)

	resp, err = e.uc.Execute(context.Background(), giveBack(item.ID, 2, domain.ConditionGood))
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestDone), resp.RequestStatus)
	assert.Equal(t, 10, e.store.Equipment(eq.ID).QtyAvailable)
	assert.Equal(t, domain.RequestDone, e.store.Request(request.ID).Status)
}

func TestExecute_LostItemResolvesRequest(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	ball := e.store.SeedEquipment(facilityID, "Ball", 10)
	issuedAt := ptr.Ptr(now.Add(-2 * time.Hour))

	request, items := e.store.SeedRequest(
		domain.EquipmentRequest{BookingID: 1, Status: domain.RequestApproved},
		domain.EquipmentRequestItem{EquipmentID: racket.ID, Qty: 2, IssuedAt: issuedAt},
		domain.EquipmentRequestItem{EquipmentID: ball.ID, Qty: 3, IssuedAt: issuedAt},
	)

	resp, err := e.uc.Execute(context.Background(), giveBack(items[0].ID, 2, domain.ConditionGood))
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestApproved), resp.RequestStatus)

	resp, err = e.uc.Execute(context.Background(), giveBack(items[1].ID, 1, domain.ConditionLost))
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestDone), resp.RequestStatus)

	stored := e.store.Item(items[1].ID)
	assert.Equal(t, 1, stored.QtyReturned)
	assert.Less(t, stored.QtyReturned, stored.Qty)
	assert.Equal(t, domain.RequestDone, e.store.Request(request.ID).Status)
	assert.Equal(t, 9, e.store.Equipment(ball.ID).QtyTotal)
}

func TestExecute_LostConditionIsKept(t *testing.T) {
	tests := []struct {
		name          string
		next          domain.ReturnCondition
		wantAvailable int
		wantTotal     int
	}{
		{name: "good after lost", next: domain.ConditionGood, wantAvailable: 7, wantTotal: 9},
		{name: "damaged after lost", next: domain.ConditionDamaged, wantAvailable: 6, wantTotal: 9},
		{name: "not returned after lost", next: domain.ConditionNotReturned, wantAvailable: 6, wantTotal: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			eq, request, item := e.issued(t, 10, 4)

			resp, err := e.uc.Execute(context.Background(), giveBack(item.ID, 1, domain.ConditionLost))
			require.NoError(t, err)
			require.Equal(t, string(domain.RequestDone), resp.RequestStatus)
			returnedAt := *resp.ReturnedAt

			resp, err = e.uc.Execute(context.Background(), giveBack(item.ID, 1, tt.next))
			require.NoError(t, err)
			assert.Equal(t, string(domain.ConditionLost), resp.Condition)
			assert.Equal(t, 2, resp.QtyReturned)
			assert.Equal(t, string(domain.RequestDone), resp.RequestStatus)
			require.NotNil(t, resp.ReturnedAt)
			assert.Equal(t, returnedAt, *resp.ReturnedAt)

			stored := e.store.Item(item.ID)
			require.NotNil(t, stored.Condition)
			assert.Equal(t, domain.ConditionLost, *stored.Condition)
			assert.True(t, stored.IsResolved())
			assert.Equal(t, domain.RequestDone, e.store.Request(request.ID).Status)

			stock := e.store.Equipment(eq.ID)
			assert.Equal(t, tt.wantAvailable, stock.QtyAvailable)
			assert.Equal(t, tt.wantTotal, stock.QtyTotal)
		})
	}
}

func TestExecute_DismissShortfall(t *testing.T) {
	tests := []struct {
		name          string
		condition     domain.ReturnCondition
		dismiss       bool
		wantErr       error
		wantDismissed bool
	}{
		{name: "not returned dismissed", condition: domain.ConditionNotReturned, dismiss: true, wantDismissed: true},
		{name: "not returned kept", condition: domain.ConditionNotReturned},
		{name: "dismiss with good", condition: domain.ConditionGood, dismiss: true, wantErr: ErrInvalidInput},
		{name: "dismiss with lost", condition: domain.ConditionLost, dismiss: true, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, _, item := e.issued(t, 10, 2)

			req := giveBack(item.ID, 1, tt.condition)
			req.Dismiss = tt.dismiss

			resp, err := e.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, e.store.Item(item.ID).Dismissed)
				assert.Equal(t, 0, e.store.Item(item.ID).QtyReturned)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDismissed, resp.Dismissed)
			assert.Equal(t, tt.wantDismissed, e.store.Item(item.ID).Dismissed)
			// Списание не закрывает строку: остаток всё ещё числится за клиентом
			assert.Equal(t, string(domain.RequestApproved), resp.RequestStatus)
		})
	}
}

func TestExecute_NotesAreStored(t *testing.T) {
	e := newEnv(t)
	_, _, item := e.issued(t, 10, 1)

	req := giveBack(item.ID, 1, domain.ConditionDamaged)
	req.Notes = ptr.Ptr("  torn strings ")

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	stored := e.store.Item(item.ID)
	require.NotNil(t, stored.DamageNotes)
	assert.Equal(t, "torn strings", *stored.DamageNotes)
}

func TestExecute_Preconditions(t *testing.T) {
	e := newEnv(t)
	eq, _, item := e.issued(t, 10, 2)

	_, unissued := e.store.SeedRequest(
		domain.EquipmentRequest{BookingID: 1, Status: domain.RequestPending},
		domain.EquipmentRequestItem{EquipmentID: eq.ID, Qty: 1},
	)
	_, deniedItems := e.store.SeedRequest(
		domain.EquipmentRequest{BookingID: 1, Status: domain.RequestDenied},
		domain.EquipmentRequestItem{EquipmentID: eq.ID, Qty: 1, IssuedAt: ptr.Ptr(now)},
	)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no actor", req: &Request{ItemID: item.ID, Qty: 1, Condition: "good"}, wantErr: ErrUnauthorized},
		{
			name:    "regular user",
			req:     &Request{Actor: &domain.Actor{UserID: 1, Role: domain.RoleUser}, ItemID: item.ID, Qty: 1, Condition: "good"},
			wantErr: ErrForbidden,
		},
		{name: "zero quantity", req: giveBack(item.ID, 0, domain.ConditionGood), wantErr: ErrQuantityOutOfRange},
		{name: "more than outstanding", req: giveBack(item.ID, 3, domain.ConditionGood), wantErr: ErrQuantityOutOfRange},
		{name: "never issued", req: giveBack(unissued[0].ID, 1, domain.ConditionGood), wantErr: ErrQuantityOutOfRange},
		{name: "unknown condition", req: giveBack(item.ID, 1, "broken"), wantErr: ErrInvalidInput},
		{name: "unknown item", req: giveBack(999, 1, domain.ConditionGood), wantErr: ErrItemNotFound},
		{name: "denied request", req: giveBack(deniedItems[0].ID, 1, domain.ConditionGood), wantErr: ErrRequestClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 8, e.store.Equipment(eq.ID).QtyAvailable)
	assert.Equal(t, 0, e.store.Item(item.ID).QtyReturned)
}
