package equipmentrequests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests/models"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, domain.LocalZone(domain.DefaultTimezoneOffsetHours))

var staff = &domain.Actor{UserID: 5, Role: domain.RoleStaff}

func newService(t *testing.T) (*Service, *testfixtures.Store, *testfixtures.Clock) {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	clock := testfixtures.NewClock(now)
	svc := NewService(repos.Requests, testfixtures.NewTxManager(store), logger.Nop()).WithTimeProvider(clock)
	return svc, store, clock
}

func pending(store *testfixtures.Store) *domain.EquipmentRequest {
	r, _ := store.SeedRequest(
		domain.EquipmentRequest{BookingID: 1, Status: domain.RequestPending},
		domain.EquipmentRequestItem{EquipmentID: 2, Qty: 1},
	)
	return r
}

func TestService_Decide(t *testing.T) {
	tests := []struct {
		decision string
		want     domain.RequestStatus
	}{
		{models.DecisionApprove, domain.RequestApproved},
		{models.DecisionDeny, domain.RequestDenied},
	}

	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			svc, store, _ := newService(t)
			request := pending(store)

			resp, err := svc.Decide(context.Background(), staff, request.ID, &models.DecisionRequest{Decision: tt.decision})
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
			require.NotNil(t, resp.DecidedBy)
			assert.Equal(t, staff.UserID, *resp.DecidedBy)
			require.NotNil(t, resp.DecidedAt)
			assert.True(t, now.Equal(*resp.DecidedAt))

			assert.Equal(t, tt.want, store.Request(request.ID).Status)
		})
	}
}

func TestService_Decide_ClosedRequest(t *testing.T) {
	svc, store, clock := newService(t)
	ctx := context.Background()
	request := pending(store)

	_, err := svc.Decide(ctx, staff, request.ID, &models.DecisionRequest{Decision: models.DecisionDeny})
	require.NoError(t, err)

	// Отклонение терминально, решение не перезаписывается
	clock.Advance(time.Hour)
	admin := &domain.Actor{UserID: 6, Role: domain.RoleAdmin}
	_, err = svc.Decide(ctx, admin, request.ID, &models.DecisionRequest{Decision: models.DecisionApprove})
	assert.ErrorIs(t, err, ErrRequestClosed)

	stored := store.Request(request.ID)
	assert.Equal(t, domain.RequestDenied, stored.Status)
	assert.Equal(t, staff.UserID, *stored.DecidedBy)
	assert.True(t, now.Equal(*stored.DecidedAt))

	approved, _ := store.SeedRequest(domain.EquipmentRequest{BookingID: 1, Status: domain.RequestApproved})
	_, err = svc.Decide(ctx, staff, approved.ID, &models.DecisionRequest{Decision: models.DecisionDeny})
	assert.ErrorIs(t, err, ErrRequestClosed)
}

func TestService_Decide_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		actor    *domain.Actor
		decision string
		missing  bool
		wantErr  error
	}{
		{"anonymous", nil, models.DecisionApprove, false, ErrUnauthorized},
		{"regular user", &domain.Actor{UserID: 10, Role: domain.RoleUser}, models.DecisionApprove, false, ErrForbidden},
		{"unknown decision", staff, "maybe", false, ErrInvalidInput},
		{"unknown request", staff, models.DecisionApprove, true, ErrRequestNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newService(t)
			request := pending(store)

			id := request.ID
			if tt.missing {
				id = 999
			}

			_, err := svc.Decide(context.Background(), tt.actor, id, &models.DecisionRequest{Decision: tt.decision})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.RequestPending, store.Request(request.ID).Status)
		})
	}
}
