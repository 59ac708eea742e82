package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

func TestGenerateStartTimes(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		step     int
		duration int
		want     []types.TimeString
		count    int
	}{
		{
			name: "hourly 07-22", open: "07:00", close: "22:00", step: 60, duration: 60,
			count: 15,
		},
		{
			name: "half hour legacy", open: "09:00", close: "11:00", step: 30, duration: 30,
			want: []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name: "last slot ends exactly at close", open: "20:00", close: "22:00", step: 60, duration: 60,
			want: []types.TimeString{"20:00", "21:00"},
		},
		{
			name: "duration longer than opening", open: "20:00", close: "21:00", step: 60, duration: 120,
			want: []types.TimeString{},
		},
		{
			name: "open until midnight", open: "22:00", close: "24:00", step: 60, duration: 60,
			want: []types.TimeString{"22:00", "23:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateStartTimes(types.MustTimeString(tt.open), types.MustTimeString(tt.close), tt.step, tt.duration)
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
				return
			}
			require.Len(t, got, tt.count)
			assert.Equal(t, types.TimeString("07:00"), got[0])
			assert.Equal(t, types.TimeString("21:00"), got[len(got)-1])
		})
	}
}

func TestGenerateStartTimes_InvalidStep(t *testing.T) {
	_, err := GenerateStartTimes("07:00", "22:00", 0, 60)
	assert.ErrorIs(t, err, ErrInvalidStep)
}
