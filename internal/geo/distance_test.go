package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	d, err := Distance(12.9716, 77.5946, 12.9716, 77.5946)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistance_Symmetric(t *testing.T) {
	ab, err := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	require.NoError(t, err)
	ba, err := Distance(13.0827, 80.2707, 12.9716, 77.5946)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistance_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	d, err := Distance(0, 0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 111.19, d, 0.01)
}

func TestDistance_KnownCityPair(t *testing.T) {
	// Bengaluru to Chennai, roughly 290 km great-circle.
	d, err := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	require.NoError(t, err)
	assert.InDelta(t, 290, d, 5)
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   error
	}{
		{"latitude too high", 91, 0, 0, 0, ErrInvalidLatitude},
		{"latitude too low", 0, 0, -90.5, 0, ErrInvalidLatitude},
		{"longitude too high", 0, 180.1, 0, 0, ErrInvalidLongitude},
		{"longitude too low", 0, 0, 0, -181, ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_BoundaryValuesAllowed(t *testing.T) {
	assert.NoError(t, Validate(90, 180))
	assert.NoError(t, Validate(-90, -180))
}
