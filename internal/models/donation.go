package models

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatus is the lifecycle state of a food donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationApproved  DonationStatus = "approved"
	DonationRejected  DonationStatus = "rejected"
	DonationClaimed   DonationStatus = "claimed"
	DonationCompleted DonationStatus = "completed"
)

// donationTransitions is the legal transition table. rejected and
// completed are terminal.
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:  {DonationApproved, DonationRejected},
	DonationApproved: {DonationClaimed},
	DonationClaimed:  {DonationApproved, DonationCompleted},
}

// Donation is a single offered batch of prepared food. Records are never
// physically deleted; terminal states close them out.
type Donation struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonorID          uuid.UUID `gorm:"type:uuid;not null;index" json:"donor_id"`
	Title            string    `gorm:"not null;size:255" json:"title"`
	Description      string    `gorm:"size:1000" json:"description,omitempty"`
	FoodType         string    `gorm:"size:20;not null" json:"food_type"`
	Quantity         int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Unit             string    `gorm:"size:50;default:'plates'" json:"unit"`
	PreparationTime  time.Time `gorm:"not null" json:"preparation_time"`
	StorageCondition string    `gorm:"size:50;not null" json:"storage_condition"`
	Location         string    `gorm:"size:500" json:"location"`
	Latitude         *float64  `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude        *float64  `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	ImagePath        string    `gorm:"type:text" json:"image_path"`

	// Assessment fields, written exactly once by the scoring engine and
	// null until it completes.
	SafetyScore       *int     `json:"safety_score,omitempty"`
	SafetyStatus      string   `gorm:"size:30" json:"safety_status,omitempty"`
	SafetyConfidence  *float64 `json:"safety_confidence,omitempty"`
	SafetyExplanation string   `gorm:"type:text" json:"safety_explanation,omitempty"`
	SafetyVerified    bool     `gorm:"default:false" json:"safety_verified"`

	Status    DonationStatus `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Donor User `gorm:"foreignKey:DonorID" json:"-"`
}

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
func (d *Donation) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range donationTransitions[d.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the donation can never change state again.
func (d *Donation) Terminal() bool {
	return len(donationTransitions[d.Status]) == 0
}

// HasLocation reports whether the donation carries coordinates and is
// therefore eligible for proximity search.
func (d *Donation) HasLocation() bool {
	return d.Latitude != nil && d.Longitude != nil
}

func (Donation) TableName() string {
	return "food_donations"
}

// HygieneChecklist records the donor's submission-time hygiene
// confirmation for one donation.
type HygieneChecklist struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonationID     uuid.UUID `gorm:"type:uuid;not null;index" json:"donation_id"`
	CookedSafeTime bool      `gorm:"not null" json:"cooked_safe_time"`
	StoredCovered  bool      `gorm:"not null" json:"stored_covered"`
	NoHumanContact bool      `gorm:"not null" json:"no_human_contact"`
	CreatedAt      time.Time `json:"created_at"`

	Donation Donation `gorm:"foreignKey:DonationID" json:"-"`
}

func (HygieneChecklist) TableName() string {
	return "hygiene_checklists"
}
