package services

import (
	"math"
	"sort"

	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/geo"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
)

// rankByDistance annotates each located donation with its great-circle
// distance from the requester, keeps those inside the radius (inclusive
// bound), and sorts ascending. Donations without coordinates are skipped.
func rankByDistance(donations []models.Donation, lat, lon, radiusKm float64) []dto.NearbyDonationResponse {
	result := make([]dto.NearbyDonationResponse, 0, len(donations))

	for i := range donations {
		d := &donations[i]
		if d.Status != models.DonationApproved {
			continue
		}
		if !d.HasLocation() {
			continue
		}

		km, err := geo.Distance(lat, lon, *d.Latitude, *d.Longitude)
		if err != nil {
			// Stored coordinates are validated at submission; a bad pair
			// here is data corruption, not a search miss.
			continue
		}

		km = math.Round(km*100) / 100
		if km > radiusKm {
			continue
		}

		result = append(result, dto.NearbyDonationResponse{
			DonationResponse: mapDonationToResponse(d),
			DistanceKm:       km,
			DonorName:        d.Donor.Name,
			DonorPhone:       d.Donor.Phone,
			DonorOrg:         d.Donor.Organization,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return result
}
