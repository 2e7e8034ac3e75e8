package models

import (
	"time"

	"github.com/google/uuid"
)

// SafetyFeedback is a recipient's post-pickup quality report.
type SafetyFeedback struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonationID    uuid.UUID `gorm:"type:uuid;not null;index" json:"donation_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QualityRating int       `gorm:"not null;check:quality_rating >= 1 AND quality_rating <= 5" json:"quality_rating"`
	Feedback      string    `gorm:"size:2000" json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Donation Donation `gorm:"foreignKey:DonationID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

func (SafetyFeedback) TableName() string {
	return "food_safety_feedback"
}
