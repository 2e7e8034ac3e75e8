package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationCanTransitionTo(t *testing.T) {
	tests := []struct {
		from DonationStatus
		to   DonationStatus
		want bool
	}{
		{DonationPending, DonationApproved, true},
		{DonationPending, DonationRejected, true},
		{DonationPending, DonationClaimed, false},
		{DonationApproved, DonationClaimed, true},
		{DonationApproved, DonationCompleted, false},
		{DonationApproved, DonationRejected, false},
		{DonationClaimed, DonationApproved, true},
		{DonationClaimed, DonationCompleted, true},
		{DonationClaimed, DonationRejected, false},
		{DonationRejected, DonationApproved, false},
		{DonationRejected, DonationPending, false},
		{DonationCompleted, DonationApproved, false},
		{DonationCompleted, DonationClaimed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			d := &Donation{Status: tt.from}
			assert.Equal(t, tt.want, d.CanTransitionTo(tt.to))
		})
	}
}

func TestDonationTerminalStates(t *testing.T) {
	assert.True(t, (&Donation{Status: DonationRejected}).Terminal())
	assert.True(t, (&Donation{Status: DonationCompleted}).Terminal())
	assert.False(t, (&Donation{Status: DonationPending}).Terminal())
	assert.False(t, (&Donation{Status: DonationApproved}).Terminal())
	assert.False(t, (&Donation{Status: DonationClaimed}).Terminal())
}

func TestDonationHasLocation(t *testing.T) {
	lat, lon := 12.9716, 77.5946

	assert.True(t, (&Donation{Latitude: &lat, Longitude: &lon}).HasLocation())
	assert.False(t, (&Donation{Latitude: &lat}).HasLocation())
	assert.False(t, (&Donation{Longitude: &lon}).HasLocation())
	assert.False(t, (&Donation{}).HasLocation())
}

func TestClaimCanTransitionTo(t *testing.T) {
	tests := []struct {
		from ClaimStatus
		to   ClaimStatus
		want bool
	}{
		{ClaimPending, ClaimConfirmed, true},
		{ClaimPending, ClaimCancelled, true},
		{ClaimPending, ClaimPickedUp, false},
		{ClaimPending, ClaimCompleted, false},
		{ClaimConfirmed, ClaimPickedUp, true},
		{ClaimConfirmed, ClaimCancelled, true},
		{ClaimConfirmed, ClaimCompleted, false},
		{ClaimPickedUp, ClaimCompleted, true},
		{ClaimPickedUp, ClaimCancelled, false},
		{ClaimCompleted, ClaimCancelled, false},
		{ClaimCancelled, ClaimConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			c := &Claim{Status: tt.from}
			assert.Equal(t, tt.want, c.CanTransitionTo(tt.to))
		})
	}
}

func TestClaimTerminalStates(t *testing.T) {
	assert.True(t, (&Claim{Status: ClaimCompleted}).Terminal())
	assert.True(t, (&Claim{Status: ClaimCancelled}).Terminal())
	assert.False(t, (&Claim{Status: ClaimPending}).Terminal())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleDonor))
	assert.True(t, ValidRole(RoleNGO))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
