package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSportType(t *testing.T) {
	st, err := ParseSportType("Table Tennis")
	require.NoError(t, err)
	assert.Equal(t, SportTableTennis, st)

	_, err = ParseSportType("chess")
	assert.ErrorIs(t, err, ErrUnknownSportType)
}

func TestFacility_ValidateHours(t *testing.T) {
	assert.NoError(t, (&Facility{OpenTime: "07:00", CloseTime: "22:00"}).ValidateHours())
	assert.ErrorIs(t, (&Facility{OpenTime: "22:00", CloseTime: "07:00"}).ValidateHours(), ErrInvalidOpeningHours)
	assert.ErrorIs(t, (&Facility{OpenTime: "10:00", CloseTime: "10:00"}).ValidateHours(), ErrInvalidOpeningHours)
}

func TestFacility_IsLinkedTo(t *testing.T) {
	a := &Facility{ID: 1, SportType: SportBasketball, SharedSports: []SportType{SportVolleyball}}
	b := &Facility{ID: 2, SportType: SportVolleyball}
	c := &Facility{ID: 3, SportType: SportTennis}

	assert.True(t, a.IsLinkedTo(b))
	assert.True(t, b.IsLinkedTo(a))
	assert.False(t, a.IsLinkedTo(c))
	assert.True(t, c.IsLinkedTo(c))
}

func TestPlanCourtSync(t *testing.T) {
	existing := []*Court{
		{ID: 1, Name: "Court 1", IsActive: true},
		{ID: 2, Name: "Court 2", IsActive: false},
		{ID: 3, Name: "Court 3", IsActive: true},
	}

	t.Run("shrink deactivates tail", func(t *testing.T) {
		plan := PlanCourtSync(existing, 1)
		assert.Empty(t, plan.Activate)
		assert.Equal(t, []int64{3}, plan.Deactivate)
		assert.Empty(t, plan.Create)
	})

	t.Run("grow reactivates and creates", func(t *testing.T) {
		plan := PlanCourtSync(existing, 5)
		assert.Equal(t, []int64{2}, plan.Activate)
		assert.Empty(t, plan.Deactivate)
		assert.Equal(t, []string{"Court 4", "Court 5"}, plan.Create)
	})

	t.Run("already in sync", func(t *testing.T) {
		plan := PlanCourtSync([]*Court{{ID: 1, Name: "Court 1", IsActive: true}}, 1)
		assert.True(t, plan.IsEmpty())
	})
}
