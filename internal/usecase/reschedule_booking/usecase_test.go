package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sharedcourts"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var loc = domain.LocalZone(domain.DefaultTimezoneOffsetHours)

var day = time.Date(2025, 6, 10, 0, 0, 0, 0, loc)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type env struct {
	store     *testfixtures.Store
	clock     *testfixtures.Clock
	publisher *testfixtures.RecordingPublisher
	uc        *UseCase

	facility *domain.Facility
	court    *domain.Court
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)
	clock := testfixtures.NewClock(at(8, 0))
	publisher := &testfixtures.RecordingPublisher{}

	facility, courts := store.SeedFacility(domain.Facility{
		Name:         "Basketball hall",
		SportType:    domain.SportBasketball,
		IsActive:     true,
		OpenTime:     types.MustTimeString("07:00"),
		CloseTime:    types.MustTimeString("22:00"),
		SharedSports: []domain.SportType{domain.SportVolleyball},
		IsMultiSport: true,
	}, "Court 1")

	uc := NewUseCase(
		repos.Bookings,
		repos.Facilities,
		repos.Courts,
		sharedcourts.NewResolver(repos.Facilities, repos.Courts),
		testfixtures.NewTxManager(store),
		publisher,
		testfixtures.NopMetrics{},
		loc,
		logger.Nop(),
	).WithTimeProvider(clock)

	return &env{store: store, clock: clock, publisher: publisher, uc: uc, facility: facility, court: courts[0]}
}

func (e *env) seedBooking(userID int64, start, end time.Time) *domain.Booking {
	reminded := start.Add(-24 * time.Hour)
	return e.store.SeedBooking(domain.Booking{
		UserID:         userID,
		FacilityID:     e.facility.ID,
		CourtID:        e.court.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.StatusConfirmed,
		ReminderSentAt: &reminded,
	})
}

func reschedule(userID, bookingID int64, start string) *Request {
	return &Request{
		Actor:     &domain.Actor{UserID: userID, Role: domain.RoleUser},
		BookingID: bookingID,
		Date:      day,
		StartTime: types.MustTimeString(start),
	}
}

func TestExecute_PreservesDuration(t *testing.T) {
	e := newEnv(t)
	booking := e.seedBooking(1, at(10, 0), at(12, 0))

	resp, err := e.uc.Execute(context.Background(), reschedule(1, booking.ID, "14:00"))

	require.NoError(t, err)
	assert.Equal(t, at(14, 0), resp.StartTime)
	assert.Equal(t, 2*time.Hour, resp.EndTime.Sub(resp.StartTime))
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)

	stored := e.store.Booking(booking.ID)
	assert.Equal(t, at(14, 0), stored.StartTime)
	assert.Equal(t, at(16, 0), stored.EndTime)
	assert.Equal(t, domain.StatusRescheduled, stored.Status)
	assert.Nil(t, stored.ReminderSentAt)
	assert.Equal(t, []string{domain.EventBookingRescheduled}, e.publisher.Keys())
}

func TestExecute_MayOverlapItsOwnOldSlot(t *testing.T) {
	e := newEnv(t)
	booking := e.seedBooking(1, at(10, 0), at(12, 0))

	resp, err := e.uc.Execute(context.Background(), reschedule(1, booking.ID, "11:00"))

	require.NoError(t, err)
	assert.Equal(t, at(13, 0), resp.EndTime)
}

func TestExecute_ModificationWindow(t *testing.T) {
	tests := []struct {
		name    string
		before  time.Duration
		wantErr error
	}{
		{name: "31 minutes before start", before: 31 * time.Minute},
		{name: "exactly 30 minutes before start", before: 30 * time.Minute, wantErr: ErrModificationWindowClosed},
		{name: "29 minutes before start", before: 29 * time.Minute, wantErr: ErrModificationWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			booking := e.seedBooking(1, at(10, 0), at(11, 0))
			e.clock.Set(at(10, 0).Add(-tt.before))

			_, err := e.uc.Execute(context.Background(), reschedule(1, booking.ID, "15:00"))

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, at(10, 0), e.store.Booking(booking.ID).StartTime)
		})
	}
}

func TestExecute_ConflictOnSharedCourt(t *testing.T) {
	e := newEnv(t)
	_, volleyballCourts := e.store.SeedFacility(domain.Facility{
		Name:      "Volleyball hall",
		SportType: domain.SportVolleyball,
		IsActive:  true,
		OpenTime:  types.MustTimeString("07:00"),
		CloseTime: types.MustTimeString("22:00"),
	}, "Court 1")

	booking := e.seedBooking(1, at(10, 0), at(11, 0))
	e.store.SeedBooking(domain.Booking{
		UserID:     2,
		CourtID:    volleyballCourts[0].ID,
		FacilityID: volleyballCourts[0].FacilityID,
		StartTime:  at(18, 0),
		EndTime:    at(19, 0),
		Status:     domain.StatusRescheduled,
	})

	_, err := e.uc.Execute(context.Background(), reschedule(1, booking.ID, "18:00"))

	require.ErrorIs(t, err, ErrSlotConflict)
	stored := e.store.Booking(booking.ID)
	assert.Equal(t, at(10, 0), stored.StartTime)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Empty(t, e.publisher.Keys())
}

func TestExecute_Preconditions(t *testing.T) {
	e := newEnv(t)
	booking := e.seedBooking(1, at(10, 0), at(11, 0))
	cancelled := e.store.SeedBooking(domain.Booking{
		UserID:     1,
		FacilityID: e.facility.ID,
		CourtID:    e.court.ID,
		StartTime:  at(15, 0),
		EndTime:    at(16, 0),
		Status:     domain.StatusCancelled,
	})

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no actor", req: &Request{BookingID: booking.ID}, wantErr: ErrUnauthorized},
		{name: "missing booking id", req: reschedule(1, 0, "12:00"), wantErr: ErrInvalidInput},
		{name: "unknown booking", req: reschedule(1, 999, "12:00"), wantErr: ErrBookingNotFound},
		{name: "another user", req: reschedule(2, booking.ID, "12:00"), wantErr: ErrForbidden},
		{name: "cancelled booking", req: reschedule(1, cancelled.ID, "12:00"), wantErr: ErrBookingCancelled},
		{name: "new start in the past", req: reschedule(1, booking.ID, "07:00"), wantErr: ErrInvalidInput},
		{name: "ends after closing", req: reschedule(1, booking.ID, "21:30"), wantErr: ErrOutsideOpeningHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, at(10, 0), e.store.Booking(booking.ID).StartTime)
}

func TestExecute_StaffCannotRescheduleForeignBooking(t *testing.T) {
	e := newEnv(t)
	booking := e.seedBooking(1, at(10, 0), at(11, 0))

	req := reschedule(7, booking.ID, "12:00")
	req.Actor.Role = domain.RoleStaff

	_, err := e.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrForbidden)
}
