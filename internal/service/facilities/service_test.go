package facilities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

var (
	admin = &domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	staff = &domain.Actor{UserID: 2, Role: domain.RoleStaff}
)

func newService(t *testing.T) (*Service, *testfixtures.Store, *testfixtures.Repositories) {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	svc := NewService(
		repos.Facilities,
		repos.Courts,
		repos.Bookings,
		repos.Equipment,
		testfixtures.NewTxManager(store),
		logger.Nop(),
	)
	return svc, store, repos
}

func badmintonHall(courts int) *models.CreateFacilityRequest {
	return &models.CreateFacilityRequest{
		Name:       "  Main Hall ",
		SportType:  "badminton",
		OpenTime:   "08:00",
		CloseTime:  "22:00",
		Rules:      []string{"indoor shoes only", "  "},
		CourtCount: courts,
	}
}

func courtNames(courts []models.CourtResponse, active bool) []string {
	names := []string{}
	for _, c := range courts {
		if c.IsActive == active {
			names = append(names, c.Name)
		}
	}
	return names
}

func TestService_Create(t *testing.T) {
	svc, _, repos := newService(t)
	ctx := context.Background()

	req := badmintonHall(3)
	req.SharedSports = []string{"badminton", "futsal", "futsal"}

	resp, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)

	assert.Equal(t, "Main Hall", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Equal(t, []string{"futsal"}, resp.SharedSports)
	assert.True(t, resp.IsMultiSport)
	assert.Equal(t, []string{"indoor shoes only"}, resp.Rules)
	assert.Equal(t, []string{"Court 1", "Court 2", "Court 3"}, courtNames(resp.Courts, true))

	stored, err := repos.Courts.GetByFacility(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateFacilityRequest)
	}{
		{"empty name", func(r *models.CreateFacilityRequest) { r.Name = "   " }},
		{"unknown sport", func(r *models.CreateFacilityRequest) { r.SportType = "curling" }},
		{"unknown shared sport", func(r *models.CreateFacilityRequest) { r.SharedSports = []string{"chess"} }},
		{"bad open time", func(r *models.CreateFacilityRequest) { r.OpenTime = "8am" }},
		{"open equals close", func(r *models.CreateFacilityRequest) { r.CloseTime = "08:00" }},
		{"open after close", func(r *models.CreateFacilityRequest) { r.OpenTime = "23:00" }},
		{"negative courts", func(r *models.CreateFacilityRequest) { r.CourtCount = -1 }},
		{"too many courts", func(r *models.CreateFacilityRequest) { r.CourtCount = domain.MaxCourtsPerFacility + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)
			req := badmintonHall(2)
			tt.mutate(req)

			_, err := svc.Create(context.Background(), admin, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_AdminOnly(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	facility, _ := store.SeedFacility(domain.Facility{Name: "Hall", SportType: domain.SportBadminton}, "Court 1")

	tests := []struct {
		name    string
		actor   *domain.Actor
		wantErr error
	}{
		{"anonymous", nil, ErrUnauthorized},
		{"staff", staff, ErrForbidden},
		{"user", &domain.Actor{UserID: 3, Role: domain.RoleUser}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.actor, badmintonHall(1))
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = svc.Update(ctx, tt.actor, facility.ID, &models.UpdateFacilityRequest{Name: ptr.Ptr("x")})
			assert.ErrorIs(t, err, tt.wantErr)

			assert.ErrorIs(t, svc.Delete(ctx, tt.actor, facility.ID), tt.wantErr)

			_, err = svc.AddEquipment(ctx, tt.actor, facility.ID, &models.AddEquipmentRequest{Name: "Racket", Qty: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Update_SyncsCourts(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, badmintonHall(3))
	require.NoError(t, err)

	// Уменьшение: лишние корты деактивируются, но не удаляются
	resp, err := svc.Update(ctx, admin, created.ID, &models.UpdateFacilityRequest{CourtCount: ptr.Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CourtCount)
	assert.Equal(t, []string{"Court 1"}, courtNames(resp.Courts, true))
	assert.Equal(t, []string{"Court 2", "Court 3"}, courtNames(resp.Courts, false))
	assert.Equal(t, "Main Hall", resp.Name)

	// Увеличение: сначала реактивируются старые корты, затем создаются новые
	resp, err = svc.Update(ctx, admin, created.ID, &models.UpdateFacilityRequest{CourtCount: ptr.Ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Court 1", "Court 2", "Court 3", "Court 4"}, courtNames(resp.Courts, true))
	assert.Empty(t, courtNames(resp.Courts, false))
	assert.Len(t, resp.Courts, 4)
}

func TestService_Update_PartialFields(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, badmintonHall(2))
	require.NoError(t, err)

	resp, err := svc.Update(ctx, admin, created.ID, &models.UpdateFacilityRequest{
		CloseTime: ptr.Ptr("20:00"),
		IsActive:  ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.OpenTime)
	assert.Equal(t, "20:00", resp.CloseTime)
	assert.False(t, resp.IsActive)
	assert.Len(t, courtNames(resp.Courts, true), 2)

	// Невалидные часы проверяются по итоговому состоянию
	_, err = svc.Update(ctx, admin, created.ID, &models.UpdateFacilityRequest{OpenTime: ptr.Ptr("21:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, admin, 999, &models.UpdateFacilityRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	busy, courts := store.SeedFacility(domain.Facility{Name: "Busy", SportType: domain.SportTennis}, "Court 1")
	start := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)
	store.SeedBooking(domain.Booking{
		UserID:     7,
		FacilityID: busy.ID,
		CourtID:    courts[0].ID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.StatusCancelled,
	})
	free, _ := store.SeedFacility(domain.Facility{Name: "Free", SportType: domain.SportTennis}, "Court 1")

	// Любое бронирование, даже отмененное, блокирует удаление
	err := svc.Delete(ctx, admin, busy.ID)
	assert.ErrorIs(t, err, ErrFacilityInUse)
	_, err = svc.GetByID(ctx, busy.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, free.ID))
	_, err = svc.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, admin, 999), ErrFacilityNotFound)
}

func TestService_Equipment(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	facility, _ := store.SeedFacility(domain.Facility{Name: "Hall", SportType: domain.SportBadminton}, "Court 1")

	created, err := svc.AddEquipment(ctx, admin, facility.ID, &models.AddEquipmentRequest{Name: " Racket ", Qty: 6})
	require.NoError(t, err)
	assert.Equal(t, "Racket", created.Name)
	assert.Equal(t, 6, created.QtyTotal)
	assert.Equal(t, 6, created.QtyAvailable)

	_, err = svc.AddEquipment(ctx, admin, facility.ID, &models.AddEquipmentRequest{Name: "Shuttle tube", Qty: 0})
	require.NoError(t, err)

	list, err := svc.ListEquipment(ctx, facility.ID)
	require.NoError(t, err)
	require.Len(t, list.Equipment, 2)
	assert.Equal(t, "Racket", list.Equipment[0].Name)
	assert.Equal(t, 0, list.Equipment[1].QtyTotal)

	_, err = svc.AddEquipment(ctx, admin, facility.ID, &models.AddEquipmentRequest{Name: "Net", Qty: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddEquipment(ctx, admin, facility.ID, &models.AddEquipmentRequest{Name: "", Qty: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddEquipment(ctx, admin, 999, &models.AddEquipmentRequest{Name: "Net", Qty: 1})
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = svc.ListEquipment(ctx, 999)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
