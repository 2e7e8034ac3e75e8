package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/foodbridge-dev/foodbridge-backend/internal/config"
	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSyncNotConfigured = errors.New("spreadsheet sync is not configured")

// SheetSyncService pushes flattened donation summaries to an external
// spreadsheet webhook. Sync is best-effort everywhere it is called from
// the donation flow; only the manual re-sync endpoint surfaces failures.
type SheetSyncService struct {
	db     *gorm.DB
	cfg    *config.Config
	client *http.Client
}

func NewSheetSyncService(db *gorm.DB, cfg *config.Config) *SheetSyncService {
	return &SheetSyncService{
		db:     db,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.SheetSyncTimeout},
	}
}

// SyncDonation loads the donation with its donor and active claim and
// pushes the flattened row.
func (s *SheetSyncService) SyncDonation(donationID uuid.UUID) error {
	if s.cfg.SheetSyncURL == "" {
		return ErrSyncNotConfigured
	}

	var donation models.Donation
	if err := s.db.Preload("Donor").First(&donation, "id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("failed to load donation: %w", err)
	}

	ngoName := ""
	pickupStatus := "pending"
	var claim models.Claim
	err := s.db.Preload("Ngo").
		Where("donation_id = ? AND status <> ?", donationID, models.ClaimCancelled).
		Order("created_at DESC").
		First(&claim).Error
	if err == nil {
		ngoName = claim.Ngo.Organization
		if ngoName == "" {
			ngoName = claim.Ngo.Name
		}
		pickupStatus = string(claim.Status)
	}

	score := 0
	if donation.SafetyScore != nil {
		score = *donation.SafetyScore
	}
	status := donation.SafetyStatus
	if status == "" {
		status = "Unknown"
	}

	return s.push(&dto.SheetSyncRequest{
		DonorName:    donation.Donor.Name,
		FoodType:     donation.FoodType,
		Quantity:     donation.Quantity,
		ImageURL:     s.cfg.PublicBaseURL + donation.ImagePath,
		SafetyScore:  score,
		SafetyStatus: status,
		NgoName:      ngoName,
		PickupStatus: pickupStatus,
	})
}

func (s *SheetSyncService) push(row *dto.SheetSyncRequest) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	resp, err := s.client.Post(s.cfg.SheetSyncURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheet webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheet webhook returned status %d", resp.StatusCode)
	}
	return nil
}
