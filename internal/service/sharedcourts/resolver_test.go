package sharedcourts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/testfixtures"
)

func TestResolution_Court(t *testing.T) {
	store := testfixtures.NewStore()
	repos := testfixtures.NewRepositories(store)

	basketball, basketballCourts := store.SeedFacility(domain.Facility{
		Name:         "Arena",
		SportType:    domain.SportBasketball,
		IsActive:     true,
		SharedSports: []domain.SportType{domain.SportVolleyball},
		IsMultiSport: true,
	}, "Court 1", "Court 2")
	_, volleyballCourts := store.SeedFacility(domain.Facility{
		Name:      "Arena volleyball",
		SportType: domain.SportVolleyball,
		IsActive:  true,
	}, "Court 1")
	inactive := store.SeedCourt(domain.Court{FacilityID: basketball.ID, Name: "Court 3"})

	resolution, err := NewResolver(repos.Facilities, repos.Courts).Resolve(context.Background(), basketball)
	require.NoError(t, err)

	tests := []struct {
		name    string
		courtID int64
		found   bool
	}{
		{name: "own court", courtID: basketballCourts[1].ID, found: true},
		{name: "linked facility court", courtID: volleyballCourts[0].ID},
		{name: "inactive court", courtID: inactive.ID},
		{name: "unknown court", courtID: 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			court := resolution.Court(tt.courtID)
			if !tt.found {
				assert.Nil(t, court)
				return
			}
			require.NotNil(t, court)
			assert.Equal(t, tt.courtID, court.ID)
		})
	}

	ids := resolution.EquivalentCourtIDs(resolution.Court(basketballCourts[0].ID))
	assert.Equal(t, []int64{basketballCourts[0].ID, volleyballCourts[0].ID}, ids)
}
