package models

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus tracks pickup progress for a claimed donation.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimConfirmed ClaimStatus = "confirmed"
	ClaimPickedUp  ClaimStatus = "picked_up"
	ClaimCompleted ClaimStatus = "completed"
	ClaimCancelled ClaimStatus = "cancelled"
)

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimPending:   {ClaimConfirmed, ClaimCancelled},
	ClaimConfirmed: {ClaimPickedUp, ClaimCancelled},
	ClaimPickedUp:  {ClaimCompleted},
}

// Claim is an NGO's reservation of one donation. A donation carries at
// most one active claim; the approved->claimed compare-and-swap enforces
// that at the store level.
type Claim struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"donation_id"`
	NgoID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"ngo_id"`
	PickupTime *time.Time  `json:"pickup_time,omitempty"`
	Status     ClaimStatus `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	Donation Donation `gorm:"foreignKey:DonationID" json:"-"`
	Ngo      User     `gorm:"foreignKey:NgoID" json:"-"`
}

// CanTransitionTo reports whether moving to next is a legal claim step.
func (c *Claim) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range claimTransitions[c.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the claim is closed.
func (c *Claim) Terminal() bool {
	return len(claimTransitions[c.Status]) == 0
}

func (Claim) TableName() string {
	return "donation_claims"
}
