package dto

import (
	"time"

	"github.com/foodbridge-dev/foodbridge-backend/internal/safety"
	"github.com/google/uuid"
)

// CreateDonationRequest carries the multipart form fields accompanying the
// food image upload.
type CreateDonationRequest struct {
	Title            string   `form:"title" json:"title"`
	Description      string   `form:"description" json:"description"`
	FoodType         string   `form:"food_type" json:"food_type"`
	Quantity         int      `form:"quantity" json:"quantity"`
	Unit             string   `form:"unit" json:"unit"`
	PreparationTime  string   `form:"preparation_time" json:"preparation_time"` // RFC3339
	StorageCondition string   `form:"storage_condition" json:"storage_condition"`
	Location         string   `form:"location" json:"location"`
	Latitude         *float64 `form:"latitude" json:"latitude"`
	Longitude        *float64 `form:"longitude" json:"longitude"`
	HygieneChecked   bool     `form:"hygiene_checked" json:"hygiene_checked"`
}

type DonationResponse struct {
	ID                uuid.UUID `json:"id"`
	DonorID           uuid.UUID `json:"donor_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	FoodType          string    `json:"food_type"`
	Quantity          int       `json:"quantity"`
	Unit              string    `json:"unit"`
	PreparationTime   time.Time `json:"preparation_time"`
	StorageCondition  string    `json:"storage_condition"`
	Location          string    `json:"location,omitempty"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	ImagePath         string    `json:"image_path"`
	Status            string    `json:"status"`
	SafetyScore       *int      `json:"safety_score,omitempty"`
	SafetyStatus      string    `json:"safety_status,omitempty"`
	SafetyConfidence  *float64  `json:"safety_confidence,omitempty"`
	SafetyExplanation string    `json:"safety_explanation,omitempty"`
	CreatedAt         string    `json:"created_at"`
}

// CreateDonationResponse is the submission result. Assessment is nil when
// the scoring step failed; the donation was still accepted.
type CreateDonationResponse struct {
	Message    string             `json:"message"`
	Donation   DonationResponse   `json:"donation"`
	Assessment *safety.Assessment `json:"ai_analysis,omitempty"`
}

// NearbyDonationResponse is a donation annotated with its distance from
// the requester, in kilometers rounded to 2 decimals.
type NearbyDonationResponse struct {
	DonationResponse
	DistanceKm float64 `json:"distance_km"`
	DonorName  string  `json:"donor_name,omitempty"`
	DonorPhone string  `json:"donor_phone,omitempty"`
	DonorOrg   string  `json:"donor_organization,omitempty"`
}

type NearbyDonationsResponse struct {
	Donations []NearbyDonationResponse `json:"donations"`
}

type DonationListResponse struct {
	Donations []DonationResponse `json:"donations"`
}

type CreateFeedbackRequest struct {
	QualityRating int    `json:"quality_rating"`
	Feedback      string `json:"feedback"`
}

type AnalyticsResponse struct {
	TotalDonations int64 `json:"total_donations"`
	SafeDonations  int64 `json:"safe_donations"`
	TotalClaims    int64 `json:"total_claims"`
	MealsSaved     int64 `json:"meals_saved"`
}
