package limits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeCounter struct {
	upcoming int
	perDay   int
	from, to time.Time
}

func (f *fakeCounter) CountUpcomingByUser(context.Context, int64, time.Time) (int, error) {
	return f.upcoming, nil
}

func (f *fakeCounter) CountByUserInRange(_ context.Context, _ int64, from, to time.Time) (int, error) {
	f.from, f.to = from, to
	return f.perDay, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestCheckBookingLimit(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
	start := time.Date(2025, 6, 11, 18, 0, 0, 0, loc)

	tests := []struct {
		name    string
		policy  Policy
		counter *fakeCounter
		start   time.Time
		wantErr bool
	}{
		{name: "unlimited", counter: &fakeCounter{upcoming: 100, perDay: 100}, start: start},
		{name: "below active limit", policy: Policy{MaxActiveBookings: 3}, counter: &fakeCounter{upcoming: 2}, start: start},
		{name: "active limit reached", policy: Policy{MaxActiveBookings: 3}, counter: &fakeCounter{upcoming: 3}, start: start, wantErr: true},
		{name: "daily limit reached", policy: Policy{MaxBookingsPerDay: 1}, counter: &fakeCounter{perDay: 1}, start: start, wantErr: true},
		{name: "within horizon", policy: Policy{AdvanceBookingDays: 1}, counter: &fakeCounter{}, start: start},
		{name: "beyond horizon", policy: Policy{AdvanceBookingDays: 1}, counter: &fakeCounter{}, start: start.AddDate(0, 0, 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.policy, tt.counter, loc, logger.Nop()).WithTimeProvider(fixedTime{now})

			err := svc.CheckBookingLimit(context.Background(), 1, tt.start)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrQuotaExceeded)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckBookingLimit_DailyWindowUsesLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	counter := &fakeCounter{}
	svc := NewService(Policy{MaxBookingsPerDay: 2}, counter, loc, logger.Nop()).
		WithTimeProvider(fixedTime{time.Date(2025, 6, 1, 0, 0, 0, 0, loc)})

	// 2025-06-10 17:00 UTC = 2025-06-11 01:00 UTC+8
	require.NoError(t, svc.CheckBookingLimit(context.Background(), 1, time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)))

	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, loc), counter.from)
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, loc), counter.to)
}
