package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	start, end := DayBounds(date, loc)

	assert.Equal(t, time.Date(2025, 6, 9, 16, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestLocalDate(t *testing.T) {
	// 2025-06-09 17:30 UTC это уже 2025-06-10 в UTC+8
	instant := time.Date(2025, 6, 9, 17, 30, 0, 0, time.UTC)

	got := LocalDate(instant, loc)

	assert.Equal(t, "2025-06-10", got.Format("2006-01-02"))
	assert.True(t, got.Equal(LocalDate(at(9, 0), loc)))
}
