package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	PickupTime string `json:"pickup_time"` // RFC3339, optional
}

type UpdateClaimStatusRequest struct {
	Status string `json:"status"`
}

type ClaimResponse struct {
	ID         uuid.UUID  `json:"id"`
	DonationID uuid.UUID  `json:"donation_id"`
	NgoID      uuid.UUID  `json:"ngo_id"`
	PickupTime *time.Time `json:"pickup_time,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  string     `json:"created_at"`
}

// SheetSyncRequest is the flattened summary pushed to the external
// spreadsheet webhook.
type SheetSyncRequest struct {
	DonorName    string `json:"donorName"`
	FoodType     string `json:"foodType"`
	Quantity     int    `json:"quantity"`
	ImageURL     string `json:"imageUrl"`
	SafetyScore  int    `json:"safetyScore"`
	SafetyStatus string `json:"safetyStatus"`
	NgoName      string `json:"ngoName"`
	PickupStatus string `json:"pickupStatus"`
}
