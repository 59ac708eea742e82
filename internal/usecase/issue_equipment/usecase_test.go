package issue_equipment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

const facilityID = 100

var now = time.Date(2025, 6, 10, 17, 45, 0, 0, domain.LocalZone(domain.DefaultTimezoneOffsetHours))

var staff = &domain.Actor{UserID: 5, Role: domain.RoleStaff}

type env struct {
	store     *testfixtures.Store
	clock     *testfixtures.Clock
	publisher *testfixtures.RecordingPublisher
	uc        *UseCase
	booking   *domain.Booking
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	clock := testfixtures.NewClock(now)
	publisher := &testfixtures.RecordingPublisher{}

	booking := store.SeedBooking(domain.Booking{
		UserID:     1,
		FacilityID: facilityID,
		CourtID:    1,
		StartTime:  now.Add(15 * time.Minute),
		EndTime:    now.Add(75 * time.Minute),
	})

	uc := NewUseCase(
		repos.Requests,
		repos.Bookings,
		repos.Equipment,
		testfixtures.NewTxManager(store),
		publisher,
		testfixtures.NopMetrics{},
		logger.Nop(),
	).WithTimeProvider(clock)

	return &env{store: store, clock: clock, publisher: publisher, uc: uc, booking: booking}
}

func (e *env) seedRequest(status domain.RequestStatus, items ...domain.EquipmentRequestItem) (*domain.EquipmentRequest, []*domain.EquipmentRequestItem) {
	return e.store.SeedRequest(domain.EquipmentRequest{BookingID: e.booking.ID, Status: status}, items...)
}

func issue(requestID int64, lines ...Line) *Request {
	return &Request{Actor: staff, RequestID: requestID, Lines: lines}
}

func TestExecute_IssueIsIdempotent(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, _ := e.seedRequest(domain.RequestApproved)

	first, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 3}))
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	issuedAt := first.Items[0].IssuedAt
	require.NotNil(t, issuedAt)

	e.clock.Advance(time.Minute)
	second, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 3}))
	require.NoError(t, err)

	assert.Equal(t, 7, e.store.Equipment(racket.ID).QtyAvailable)
	assert.Equal(t, 10, e.store.Equipment(racket.ID).QtyTotal)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 3, second.Items[0].Qty)
	assert.Equal(t, *issuedAt, *second.Items[0].IssuedAt)
	assert.Equal(t, []string{domain.EventEquipmentIssued}, e.publisher.Keys())
}

func TestExecute_IssuesItemCreatedWithBooking(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, items := e.seedRequest(domain.RequestPending, domain.EquipmentRequestItem{EquipmentID: racket.ID, Qty: 1})

	resp, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 3}))

	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestApproved), resp.Status)
	assert.Equal(t, 7, e.store.Equipment(racket.ID).QtyAvailable)

	item := e.store.Item(items[0].ID)
	assert.Equal(t, 3, item.Qty)
	require.NotNil(t, item.IssuedAt)
	assert.Equal(t, now, *item.IssuedAt)
}

func TestExecute_IncreaseIssuesOnlyDelta(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, _ := e.seedRequest(domain.RequestApproved)

	_, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 2}))
	require.NoError(t, err)
	_, err = e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 5}))
	require.NoError(t, err)

	assert.Equal(t, 5, e.store.Equipment(racket.ID).QtyAvailable)
}

func TestExecute_DuplicateLinesKeepMaximum(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, _ := e.seedRequest(domain.RequestApproved)

	resp, err := e.uc.Execute(context.Background(), issue(request.ID,
		Line{EquipmentID: racket.ID, Qty: 2},
		Line{EquipmentID: racket.ID, Qty: 4},
		Line{EquipmentID: racket.ID, Qty: 1},
	))

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Qty)
	assert.Equal(t, 6, e.store.Equipment(racket.ID).QtyAvailable)
}

func TestExecute_ReductionRejected(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, _ := e.seedRequest(domain.RequestApproved)

	_, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 3}))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 2}))
	require.ErrorIs(t, err, ErrIllegalQuantityReduction)
	assert.Equal(t, 7, e.store.Equipment(racket.ID).QtyAvailable)
}

func TestExecute_InsufficientStockWritesNothing(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	ball := e.store.SeedEquipment(facilityID, "Ball", 2)
	request, _ := e.seedRequest(domain.RequestPending)

	_, err := e.uc.Execute(context.Background(), issue(request.ID,
		Line{EquipmentID: racket.ID, Qty: 1},
		Line{EquipmentID: ball.ID, Qty: 3},
	))

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, e.store.Equipment(racket.ID).QtyAvailable)
	assert.Equal(t, 2, e.store.Equipment(ball.ID).QtyAvailable)
	assert.Empty(t, e.store.Items(request.ID))
	assert.Equal(t, domain.RequestPending, e.store.Request(request.ID).Status)
	assert.Empty(t, e.publisher.Keys())
}

func TestExecute_DecisionStampedOnce(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	request, _ := e.seedRequest(domain.RequestPending)

	_, err := e.uc.Execute(context.Background(), issue(request.ID, Line{EquipmentID: racket.ID, Qty: 1}))
	require.NoError(t, err)

	e.clock.Advance(10 * time.Minute)
	other := &Request{Actor: &domain.Actor{UserID: 6, Role: domain.RoleAdmin}, RequestID: request.ID,
		Lines: []Line{{EquipmentID: racket.ID, Qty: 2}}}
	_, err = e.uc.Execute(context.Background(), other)
	require.NoError(t, err)

	stored := e.store.Request(request.ID)
	assert.Equal(t, domain.RequestApproved, stored.Status)
	require.NotNil(t, stored.DecidedBy)
	assert.Equal(t, int64(5), *stored.DecidedBy)
	require.NotNil(t, stored.DecidedAt)
	assert.Equal(t, now, *stored.DecidedAt)
}

func TestExecute_Preconditions(t *testing.T) {
	e := newEnv(t)
	racket := e.store.SeedEquipment(facilityID, "Racket", 10)
	foreign := e.store.SeedEquipment(facilityID+1, "Racket", 10)
	open, _ := e.seedRequest(domain.RequestApproved)
	done, _ := e.seedRequest(domain.RequestDone)
	denied, _ := e.seedRequest(domain.RequestDenied)

	line := Line{EquipmentID: racket.ID, Qty: 1}

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no actor", req: &Request{RequestID: open.ID, Lines: []Line{line}}, wantErr: ErrUnauthorized},
		{
			name:    "regular user",
			req:     &Request{Actor: &domain.Actor{UserID: 1, Role: domain.RoleUser}, RequestID: open.ID, Lines: []Line{line}},
			wantErr: ErrForbidden,
		},
		{name: "no lines", req: issue(open.ID), wantErr: ErrInvalidInput},
		{name: "zero quantity", req: issue(open.ID, Line{EquipmentID: racket.ID}), wantErr: ErrInvalidInput},
		{name: "unknown request", req: issue(999, line), wantErr: ErrRequestNotFound},
		{name: "done request", req: issue(done.ID, line), wantErr: ErrRequestClosed},
		{name: "denied request", req: issue(denied.ID, line), wantErr: ErrRequestClosed},
		{name: "equipment of another facility", req: issue(open.ID, Line{EquipmentID: foreign.ID, Qty: 1}), wantErr: ErrEquipmentNotFound},
		{name: "unknown equipment", req: issue(open.ID, Line{EquipmentID: 999, Qty: 1}), wantErr: ErrEquipmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 10, e.store.Equipment(racket.ID).QtyAvailable)
}
