package services

import (
	"math"
	"testing"

	"github.com/foodbridge-dev/foodbridge-backend/internal/geo"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatedDonation(title string, lat, lon float64, status models.DonationStatus) models.Donation {
	return models.Donation{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		Latitude:  &lat,
		Longitude: &lon,
		Donor:     models.User{Name: "Asha", Phone: "555-0101", Organization: "Asha Kitchen"},
	}
}

func TestRankByDistance_FiltersByRadius(t *testing.T) {
	donations := []models.Donation{
		locatedDonation("at origin", 0, 0, models.DonationApproved),
		locatedDonation("one degree east", 0, 1, models.DonationApproved),
	}

	got := rankByDistance(donations, 0, 0, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "at origin", got[0].Title)
	assert.Zero(t, got[0].DistanceKm)
}

func TestRankByDistance_SortsAscending(t *testing.T) {
	donations := []models.Donation{
		locatedDonation("far", 0, 0.5, models.DonationApproved),
		locatedDonation("near", 0, 0.1, models.DonationApproved),
		locatedDonation("mid", 0, 0.3, models.DonationApproved),
	}

	got := rankByDistance(donations, 0, 0, 100)

	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Title)
	assert.Equal(t, "mid", got[1].Title)
	assert.Equal(t, "far", got[2].Title)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	assert.Less(t, got[1].DistanceKm, got[2].DistanceKm)
}

func TestRankByDistance_RadiusBoundIsInclusive(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km after rounding.
	donations := []models.Donation{
		locatedDonation("on the boundary", 0, 1, models.DonationApproved),
	}

	got := rankByDistance(donations, 0, 0, 111.19)

	require.Len(t, got, 1)
	assert.InDelta(t, 111.19, got[0].DistanceKm, 0.001)
}

func TestRankByDistance_RoundsToTwoDecimals(t *testing.T) {
	donations := []models.Donation{
		locatedDonation("nearby", 0.01, 0.01, models.DonationApproved),
	}

	got := rankByDistance(donations, 0, 0, 10)

	require.Len(t, got, 1)
	raw, err := geo.Distance(0, 0, 0.01, 0.01)
	require.NoError(t, err)
	assert.Equal(t, math.Round(raw*100)/100, got[0].DistanceKm)
}

func TestRankByDistance_SkipsUnlocatedDonations(t *testing.T) {
	located := locatedDonation("located", 0, 0, models.DonationApproved)
	unlocated := models.Donation{ID: uuid.New(), Title: "no coords", Status: models.DonationApproved}

	got := rankByDistance([]models.Donation{unlocated, located}, 0, 0, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "located", got[0].Title)
}

func TestRankByDistance_OnlyApprovedDonations(t *testing.T) {
	donations := []models.Donation{
		locatedDonation("approved", 0, 0, models.DonationApproved),
		locatedDonation("pending", 0, 0, models.DonationPending),
		locatedDonation("claimed", 0, 0, models.DonationClaimed),
		locatedDonation("rejected", 0, 0, models.DonationRejected),
		locatedDonation("completed", 0, 0, models.DonationCompleted),
	}

	got := rankByDistance(donations, 0, 0, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "approved", got[0].Title)
}

func TestRankByDistance_CarriesDonorContact(t *testing.T) {
	got := rankByDistance([]models.Donation{
		locatedDonation("with donor", 0, 0, models.DonationApproved),
	}, 0, 0, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].DonorName)
	assert.Equal(t, "555-0101", got[0].DonorPhone)
	assert.Equal(t, "Asha Kitchen", got[0].DonorOrg)
}
