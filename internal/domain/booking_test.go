package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanBeModified(t *testing.T) {
	start := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, EndTime: start.Add(time.Hour), Status: StatusConfirmed}

	assert.True(t, b.CanBeModified(start.Add(-31*time.Minute)))
	assert.False(t, b.CanBeModified(start.Add(-30*time.Minute)))
	assert.False(t, b.CanBeModified(start.Add(-29*time.Minute)))
	assert.False(t, b.CanBeModified(start.Add(time.Hour)))
}

func TestBooking_DisplayStatus(t *testing.T) {
	start := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name   string
		status BookingStatus
		now    time.Time
		want   BookingStatus
	}{
		{name: "upcoming", status: StatusConfirmed, now: start, want: StatusConfirmed},
		{name: "ended exactly now", status: StatusConfirmed, now: end, want: StatusCompleted},
		{name: "rescheduled in past", status: StatusRescheduled, now: end.Add(time.Minute), want: StatusCompleted},
		{name: "cancelled stays cancelled", status: StatusCancelled, now: end.Add(time.Hour), want: StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{StartTime: start, EndTime: end, Status: tt.status}
			assert.Equal(t, tt.want, b.DisplayStatus(tt.now))
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("rescheduled")
	assert.NoError(t, err)
	assert.Equal(t, StatusRescheduled, s)

	_, err = ParseBookingStatus("completed")
	assert.ErrorIs(t, err, ErrUnknownBookingStatus)
}

func TestInterval_Overlaps(t *testing.T) {
	base := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	a := Interval{Start: base, End: base.Add(time.Hour)}

	assert.False(t, a.Overlaps(Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}))
	assert.False(t, a.Overlaps(Interval{Start: base.Add(-time.Hour), End: base}))
	assert.True(t, a.Overlaps(Interval{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}))
	assert.True(t, a.Overlaps(a))
}
