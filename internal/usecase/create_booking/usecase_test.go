package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/limits"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sharedcourts"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var loc = domain.LocalZone(domain.DefaultTimezoneOffsetHours)

var bookingDay = time.Date(2025, 6, 10, 0, 0, 0, 0, loc)

type env struct {
	store     *testfixtures.Store
	clock     *testfixtures.Clock
	publisher *testfixtures.RecordingPublisher
	uc        *UseCase
}

func newEnv(t *testing.T, policy limits.Policy) *env {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	clock := testfixtures.NewClock(bookingDay.Add(8 * time.Hour))
	publisher := &testfixtures.RecordingPublisher{}
	log := logger.Nop()

	limitService := limits.NewService(policy, repos.Bookings, loc, log).WithTimeProvider(clock)
	resolver := sharedcourts.NewResolver(repos.Facilities, repos.Courts)

	uc := NewUseCase(
		repos.Facilities,
		repos.Courts,
		resolver,
		repos.Bookings,
		repos.Equipment,
		repos.Requests,
		limitService,
		testfixtures.NewTxManager(store),
		publisher,
		testfixtures.NopMetrics{},
		loc,
		log,
	).WithTimeProvider(clock)

	return &env{store: store, clock: clock, publisher: publisher, uc: uc}
}

func (e *env) seedFacility(sport domain.SportType, shared []domain.SportType, courts ...string) (*domain.Facility, []*domain.Court) {
	return e.store.SeedFacility(domain.Facility{
		Name:         string(sport) + " hall",
		SportType:    sport,
		IsActive:     true,
		OpenTime:     types.MustTimeString("07:00"),
		CloseTime:    types.MustTimeString("22:00"),
		SharedSports: shared,
		IsMultiSport: len(shared) > 0,
	}, courts...)
}

func request(userID, facilityID, courtID int64, start, end string) *Request {
	return &Request{
		Actor:      &domain.Actor{UserID: userID, Role: domain.RoleUser},
		FacilityID: facilityID,
		CourtID:    courtID,
		Date:       bookingDay,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
	}
}

func onDate(req *Request, date time.Time) *Request {
	req.Date = date
	return req
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")

	resp, err := e.uc.Execute(context.Background(), request(1, facility.ID, courts[0].ID, "18:00", "19:00"))

	require.NoError(t, err)
	assert.False(t, resp.Duplicate)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, time.Date(2025, 6, 10, 18, 0, 0, 0, loc), resp.StartTime)
	assert.Equal(t, time.Date(2025, 6, 10, 19, 0, 0, 0, loc), resp.EndTime)
	assert.Nil(t, resp.EquipmentRequestID)
	assert.Equal(t, []string{domain.EventBookingCreated}, e.publisher.Keys())
	assert.Equal(t, [][]int64{{courts[0].ID}}, e.store.LockedCourts())
}

func TestExecute_DefaultsToOneSlot(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")

	req := request(1, facility.ID, courts[0].ID, "09:00", "10:00")
	req.EndTime = ""

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, time.Hour, resp.EndTime.Sub(resp.StartTime))
}

func TestExecute_TouchingIntervalsDoNotConflict(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")

	_, err := e.uc.Execute(context.Background(), request(1, facility.ID, courts[0].ID, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(2, facility.ID, courts[0].ID, "10:00", "11:00"))
	require.NoError(t, err)

	assert.Len(t, e.store.Bookings(), 2)
}

func TestExecute_OverlapIsSlotConflict(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")

	_, err := e.uc.Execute(context.Background(), request(1, facility.ID, courts[0].ID, "09:00", "11:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(2, facility.ID, courts[0].ID, "10:00", "11:00"))
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, e.store.Bookings(), 1)
}

func TestExecute_DuplicateReturnsExisting(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")
	req := request(1, facility.ID, courts[0].ID, "18:00", "19:00")

	first, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Duplicate)
	assert.Len(t, e.store.Bookings(), 1)
	assert.Equal(t, []string{domain.EventBookingCreated}, e.publisher.Keys())
}

func TestExecute_DuplicateSkipsQuota(t *testing.T) {
	e := newEnv(t, limits.Policy{MaxActiveBookings: 1})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")
	req := request(1, facility.ID, courts[0].ID, "18:00", "19:00")

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Duplicate)
}

func TestExecute_SharedCourtExclusivity(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	basketball, basketballCourts := e.seedFacility(domain.SportBasketball, []domain.SportType{domain.SportVolleyball}, "Court 1")
	volleyball, volleyballCourts := e.seedFacility(domain.SportVolleyball, nil, "Court 1")

	_, err := e.uc.Execute(context.Background(), request(1, basketball.ID, basketballCourts[0].ID, "18:00", "19:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(2, volleyball.ID, volleyballCourts[0].ID, "18:00", "19:00"))
	require.ErrorIs(t, err, ErrSlotConflict)

	// и в обратную сторону
	_, err = e.uc.Execute(context.Background(), request(2, volleyball.ID, volleyballCourts[0].ID, "19:00", "20:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(3, basketball.ID, basketballCourts[0].ID, "19:30", "20:30"))
	require.ErrorIs(t, err, ErrSlotConflict)

	locked := e.store.LockedCourts()
	require.NotEmpty(t, locked)
	assert.Equal(t, []int64{basketballCourts[0].ID, volleyballCourts[0].ID}, locked[0])
}

func TestExecute_UnlinkedFacilitiesAreIndependent(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	tennis, tennisCourts := e.seedFacility(domain.SportTennis, nil, "Court 1")
	futsal, futsalCourts := e.seedFacility(domain.SportFutsal, nil, "Court 1")

	_, err := e.uc.Execute(context.Background(), request(1, tennis.ID, tennisCourts[0].ID, "18:00", "19:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(2, futsal.ID, futsalCourts[0].ID, "18:00", "19:00"))
	require.NoError(t, err)
}

func TestExecute_ConcurrentCreatesOneWins(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1")

	const callers = 8
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Execute(context.Background(), request(int64(i+1), facility.ID, courts[0].ID, "18:00", "19:00"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, e.store.Bookings(), 1)

	locked := e.store.LockedCourts()
	require.Len(t, locked, callers)
	for _, ids := range locked {
		assert.Equal(t, []int64{courts[0].ID}, ids)
	}
}

func TestExecute_ConcurrentSharedCreatesLockInOrder(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	basketball, basketballCourts := e.seedFacility(domain.SportBasketball, []domain.SportType{domain.SportVolleyball}, "Court 1")
	volleyball, volleyballCourts := e.seedFacility(domain.SportVolleyball, nil, "Court 1")

	targets := []struct {
		facilityID int64
		courtID    int64
	}{
		{basketball.ID, basketballCourts[0].ID},
		{volleyball.ID, volleyballCourts[0].ID},
	}

	const callers = 6
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := targets[i%len(targets)]
			_, errs[i] = e.uc.Execute(context.Background(), request(int64(i+1), target.facilityID, target.courtID, "18:00", "19:00"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}
	assert.Equal(t, 1, succeeded)

	// Каждая попытка блокирует один и тот же набор кортов по возрастанию ID
	want := []int64{basketballCourts[0].ID, volleyballCourts[0].ID}
	require.Less(t, want[0], want[1])
	locked := e.store.LockedCourts()
	require.Len(t, locked, callers)
	for _, ids := range locked {
		assert.Equal(t, want, ids)
	}
}

func TestExecute_WithEquipmentCreatesPendingRequest(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportBadminton, nil, "Court 1")
	racket := e.store.SeedEquipment(facility.ID, "Racket", 10)
	shuttle := e.store.SeedEquipment(facility.ID, "Shuttle", 20)

	req := request(1, facility.ID, courts[0].ID, "18:00", "19:00")
	req.EquipmentIDs = []int64{shuttle.ID, racket.ID, shuttle.ID}

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.EquipmentRequestID)

	equipmentRequest := e.store.Request(*resp.EquipmentRequestID)
	require.NotNil(t, equipmentRequest)
	assert.Equal(t, domain.RequestPending, equipmentRequest.Status)
	assert.Equal(t, resp.ID, equipmentRequest.BookingID)

	items := e.store.Items(equipmentRequest.ID)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 1, item.Qty)
		assert.Nil(t, item.IssuedAt)
	}
	assert.Equal(t, 10, e.store.Equipment(racket.ID).QtyAvailable)
}

func TestExecute_ForeignEquipmentRollsBack(t *testing.T) {
	e := newEnv(t, limits.Policy{})
	facility, courts := e.seedFacility(domain.SportBadminton, nil, "Court 1")
	other, _ := e.seedFacility(domain.SportTennis, nil, "Court 1")
	foreign := e.store.SeedEquipment(other.ID, "Racket", 10)

	req := request(1, facility.ID, courts[0].ID, "18:00", "19:00")
	req.EquipmentIDs = []int64{foreign.ID}

	_, err := e.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrEquipmentNotFound)
	assert.Empty(t, e.store.Bookings())
	assert.Empty(t, e.publisher.Keys())
}

func TestExecute_Preconditions(t *testing.T) {
	e := newEnv(t, limits.Policy{MaxActiveBookings: 1})
	facility, courts := e.seedFacility(domain.SportTennis, nil, "Court 1", "Court 2")
	inactive, inactiveCourts := e.store.SeedFacility(domain.Facility{
		Name:      "Closed",
		SportType: domain.SportFutsal,
		OpenTime:  types.MustTimeString("07:00"),
		CloseTime: types.MustTimeString("22:00"),
	}, "Court 1")

	_, err := e.uc.Execute(context.Background(), request(9, facility.ID, courts[1].ID, "20:00", "21:00"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "no actor",
			req:     &Request{FacilityID: facility.ID, CourtID: courts[0].ID},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "end before start",
			req:     request(1, facility.ID, courts[0].ID, "11:00", "10:00"),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "start in the past",
			req:     request(1, facility.ID, courts[0].ID, "07:00", "08:00"),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "before opening",
			req:     onDate(request(1, facility.ID, courts[0].ID, "06:00", "07:00"), bookingDay.AddDate(0, 0, 1)),
			wantErr: ErrOutsideOpeningHours,
		},
		{
			name:    "after closing",
			req:     request(1, facility.ID, courts[0].ID, "21:00", "22:30"),
			wantErr: ErrOutsideOpeningHours,
		},
		{
			name:    "unknown facility",
			req:     request(1, 999, courts[0].ID, "10:00", "11:00"),
			wantErr: ErrFacilityNotFound,
		},
		{
			name:    "inactive facility",
			req:     request(1, inactive.ID, inactiveCourts[0].ID, "10:00", "11:00"),
			wantErr: ErrFacilityNotFound,
		},
		{
			name:    "court of another facility",
			req:     request(1, facility.ID, inactiveCourts[0].ID, "10:00", "11:00"),
			wantErr: ErrCourtNotFound,
		},
		{
			name:    "quota exceeded",
			req:     request(9, facility.ID, courts[0].ID, "10:00", "11:00"),
			wantErr: ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Len(t, e.store.Bookings(), 1)
}
