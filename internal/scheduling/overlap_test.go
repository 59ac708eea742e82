package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var loc = domain.LocalZone(domain.DefaultTimezoneOffsetHours)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 10, hour, minute, 0, 0, loc)
}

func booking(id int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, CourtID: 1, StartTime: start, EndTime: end, Status: status}
}

func TestFindConflict(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, at(9, 0), at(10, 0), domain.StatusConfirmed),
		booking(2, at(12, 0), at(13, 0), domain.StatusCancelled),
		booking(3, at(15, 0), at(17, 0), domain.StatusRescheduled),
	}

	tests := []struct {
		name      string
		candidate domain.Interval
		exclude   int64
		wantID    int64
	}{
		{name: "touching end", candidate: domain.Interval{Start: at(10, 0), End: at(11, 0)}},
		{name: "touching start", candidate: domain.Interval{Start: at(8, 0), End: at(9, 0)}},
		{name: "partial overlap", candidate: domain.Interval{Start: at(9, 30), End: at(10, 30)}, wantID: 1},
		{name: "cancelled ignored", candidate: domain.Interval{Start: at(12, 0), End: at(13, 0)}},
		{name: "rescheduled counts", candidate: domain.Interval{Start: at(16, 0), End: at(17, 0)}, wantID: 3},
		{name: "contained", candidate: domain.Interval{Start: at(15, 0), End: at(18, 0)}, wantID: 3},
		{name: "self excluded", candidate: domain.Interval{Start: at(15, 0), End: at(17, 0)}, exclude: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict(tt.candidate, existing, tt.exclude)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestIsElapsed(t *testing.T) {
	now := at(12, 0)
	assert.True(t, IsElapsed(at(11, 0), now))
	assert.True(t, IsElapsed(at(12, 0), now))
	assert.False(t, IsElapsed(at(13, 0), now))
}

func TestFreeStartTimes(t *testing.T) {
	date := at(0, 0)
	starts, err := GenerateStartTimes("07:00", "22:00", 60, 60)
	require.NoError(t, err)

	t.Run("empty day has every slot", func(t *testing.T) {
		free := FreeStartTimes(date, starts, 60, nil, date.AddDate(0, 0, -1))
		assert.Len(t, free, 15)
	})

	t.Run("booked slot removed", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, at(18, 0), at(19, 0), domain.StatusConfirmed)}
		free := FreeStartTimes(date, starts, 60, bookings, date.AddDate(0, 0, -1))
		assert.Len(t, free, 14)
		assert.NotContains(t, free, types.TimeString("18:00"))
		assert.Contains(t, free, types.TimeString("17:00"))
		assert.Contains(t, free, types.TimeString("19:00"))
	})

	t.Run("elapsed slots on the current day removed", func(t *testing.T) {
		free := FreeStartTimes(date, starts, 60, nil, at(10, 15))
		require.NotEmpty(t, free)
		assert.Equal(t, types.TimeString("11:00"), free[0])
		assert.Len(t, free, 11)
	})
}
