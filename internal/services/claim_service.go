package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/events"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClaimNotFound          = errors.New("claim not found")
	ErrClaimNotYours          = errors.New("claim belongs to another organization")
	ErrDonationConflict       = errors.New("donation is no longer available")
	ErrIllegalClaimTransition = errors.New("illegal claim status transition")
	ErrInvalidPickupTime      = errors.New("pickup time must be RFC3339")
)

type ClaimService struct {
	db  *gorm.DB
	bus events.Publisher
}

func NewClaimService(db *gorm.DB, bus events.Publisher) *ClaimService {
	return &ClaimService{db: db, bus: bus}
}

// Create reserves an approved donation for an NGO. The approved->claimed
// flip is a conditioned update inside the claim-insert transaction, so two
// concurrent attempts resolve to exactly one winner; the loser sees
// ErrDonationConflict and should refresh its donation list.
func (s *ClaimService) Create(ngoID, donationID uuid.UUID, req *dto.CreateClaimRequest) (*dto.ClaimResponse, error) {
	var pickupTime *time.Time
	if req.PickupTime != "" {
		t, err := time.Parse(time.RFC3339, req.PickupTime)
		if err != nil {
			return nil, ErrInvalidPickupTime
		}
		pickupTime = &t
	}

	claim := models.Claim{
		ID:         uuid.New(),
		DonationID: donationID,
		NgoID:      ngoID,
		PickupTime: pickupTime,
		Status:     models.ClaimPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", donationID, models.DonationApproved).
			Update("status", models.DonationClaimed)
		if result.Error != nil {
			return fmt.Errorf("failed to claim donation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var donation models.Donation
			if err := tx.First(&donation, "id = ?", donationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDonationNotFound
				}
				return err
			}
			return ErrDonationConflict
		}

		return tx.Create(&claim).Error
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Name: events.DonationClaimed,
		Payload: map[string]any{
			"donation_id": donationID.String(),
			"claim_id":    claim.ID.String(),
		},
	})

	return mapClaimToResponse(&claim), nil
}

// UpdateStatus advances the claim state machine. Completing a claim closes
// the donation; cancelling one returns the donation to the approved pool.
// Only the claiming NGO (or an admin) may drive the claim forward.
func (s *ClaimService) UpdateStatus(actorID uuid.UUID, actorRole string, claimID uuid.UUID, next models.ClaimStatus) (*dto.ClaimResponse, error) {
	var claim models.Claim

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&claim, "id = ?", claimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClaimNotFound
			}
			return err
		}

		if claim.NgoID != actorID && actorRole != models.RoleAdmin {
			return ErrClaimNotYours
		}
		if !claim.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalClaimTransition, claim.Status, next)
		}

		result := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claimID, claim.Status).
			Update("status", next)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDonationConflict
		}

		switch next {
		case models.ClaimCancelled:
			return s.transitionDonation(tx, claim.DonationID, models.DonationClaimed, models.DonationApproved)
		case models.ClaimCompleted:
			return s.transitionDonation(tx, claim.DonationID, models.DonationClaimed, models.DonationCompleted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	claim.Status = next
	return mapClaimToResponse(&claim), nil
}

// ListForNgo returns the NGO's claims, newest first.
func (s *ClaimService) ListForNgo(ngoID uuid.UUID) ([]dto.ClaimResponse, error) {
	var claims []models.Claim
	if err := s.db.Where("ngo_id = ?", ngoID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch claims: %w", err)
	}

	resp := make([]dto.ClaimResponse, len(claims))
	for i := range claims {
		resp[i] = *mapClaimToResponse(&claims[i])
	}
	return resp, nil
}

func (s *ClaimService) transitionDonation(tx *gorm.DB, donationID uuid.UUID, from, to models.DonationStatus) error {
	result := tx.Model(&models.Donation{}).
		Where("id = ? AND status = ?", donationID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonationConflict
	}
	return nil
}

func mapClaimToResponse(c *models.Claim) *dto.ClaimResponse {
	return &dto.ClaimResponse{
		ID:         c.ID,
		DonationID: c.DonationID,
		NgoID:      c.NgoID,
		PickupTime: c.PickupTime,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}
