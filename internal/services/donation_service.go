package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/events"
	"github.com/foodbridge-dev/foodbridge-backend/internal/geo"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
	"github.com/foodbridge-dev/foodbridge-backend/internal/safety"
	"github.com/foodbridge-dev/foodbridge-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDonationNotFound       = errors.New("donation not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidFoodType        = errors.New("food type must be veg or non-veg")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrInvalidPreparationTime = errors.New("preparation time is required (RFC3339)")
	ErrHygieneNotConfirmed    = errors.New("hygiene checklist must be completed")
	ErrImageRequired          = errors.New("food image is required")
	ErrIncompleteCoordinates  = errors.New("latitude and longitude must be provided together")
	ErrInvalidRadius          = errors.New("radius must be a positive number of kilometers")
	ErrInvalidRating          = errors.New("quality rating must be between 1 and 5")
)

type DonationService struct {
	db       *gorm.DB
	analyzer *safety.Analyzer
	bus      events.Publisher
	sheets   *SheetSyncService
	images   storage.ImageStore
}

func NewDonationService(db *gorm.DB, analyzer *safety.Analyzer, bus events.Publisher, sheets *SheetSyncService, images storage.ImageStore) *DonationService {
	return &DonationService{
		db:       db,
		analyzer: analyzer,
		bus:      bus,
		sheets:   sheets,
		images:   images,
	}
}

// Create validates and persists a donation, stores its image, then runs
// the safety assessment. The donation is accepted even when the assessment
// fails; it simply stays pending without an assessment. Once accepted, the
// assessment always runs to a verdict; there is no cancellation path that
// could leave an assessed donation unrecorded.
func (s *DonationService) Create(donorID uuid.UUID, req *dto.CreateDonationRequest, imageName string, imageData []byte) (*dto.CreateDonationResponse, error) {
	prepTime, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}
	if len(imageData) == 0 {
		return nil, ErrImageRequired
	}

	imagePath, err := s.images.Save(imageName, imageData)
	if err != nil {
		return nil, err
	}

	donation := models.Donation{
		ID:               uuid.New(),
		DonorID:          donorID,
		Title:            req.Title,
		Description:      req.Description,
		FoodType:         req.FoodType,
		Quantity:         req.Quantity,
		Unit:             unitOrDefault(req.Unit),
		PreparationTime:  prepTime,
		StorageCondition: req.StorageCondition,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		ImagePath:        imagePath,
		Status:           models.DonationPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return fmt.Errorf("failed to create donation: %w", err)
		}
		checklist := models.HygieneChecklist{
			ID:             uuid.New(),
			DonationID:     donation.ID,
			CookedSafeTime: true,
			StoredCovered:  true,
			NoHumanContact: true,
		}
		return tx.Create(&checklist).Error
	})
	if err != nil {
		return nil, err
	}

	assessment, err := s.analyzer.Evaluate(safety.Input{
		FoodType:         safety.FoodType(req.FoodType),
		PreparationTime:  prepTime,
		StorageCondition: req.StorageCondition,
	})
	if err != nil {
		// Degraded acceptance: the donation stays pending without an
		// assessment rather than silently vanishing.
		slog.Error("safety assessment failed", "donation_id", donation.ID.String(), "error", err)
		return &dto.CreateDonationResponse{
			Message:  "Donation created, safety assessment failed",
			Donation: mapDonationToResponse(&donation),
		}, nil
	}

	if err := s.applyAssessment(&donation, assessment); err != nil {
		return nil, err
	}

	if donation.Status == models.DonationApproved {
		s.bus.Publish(events.Event{
			Name: events.NewDonation,
			Payload: map[string]any{
				"donation_id":  donation.ID.String(),
				"title":        donation.Title,
				"location":     donation.Location,
				"safety_score": assessment.Score,
			},
		})

		// Best-effort spreadsheet sync; never blocks or fails the response.
		go func(id uuid.UUID) {
			if err := s.sheets.SyncDonation(id); err != nil {
				slog.Warn("sheet sync failed", "donation_id", id.String(), "error", err)
			}
		}(donation.ID)
	}

	return &dto.CreateDonationResponse{
		Message:    "Donation created successfully",
		Donation:   mapDonationToResponse(&donation),
		Assessment: assessment,
	}, nil
}

// applyAssessment writes the assessment fields exactly once and moves the
// donation out of pending. The conditioned update keeps a concurrent
// re-assessment from overwriting a settled record.
func (s *DonationService) applyAssessment(donation *models.Donation, assessment *safety.Assessment) error {
	next := models.DonationApproved
	if assessment.Score < 50 {
		next = models.DonationRejected
	}
	if !donation.CanTransitionTo(next) {
		return fmt.Errorf("illegal transition %s -> %s", donation.Status, next)
	}

	result := s.db.Model(&models.Donation{}).
		Where("id = ? AND status = ?", donation.ID, models.DonationPending).
		Updates(map[string]interface{}{
			"safety_score":       assessment.Score,
			"safety_status":      string(assessment.Status),
			"safety_confidence":  assessment.Confidence,
			"safety_explanation": assessment.Explanation,
			"safety_verified":    assessment.Score >= 50,
			"status":             next,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record assessment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("donation %s already assessed", donation.ID)
	}

	score := assessment.Score
	confidence := assessment.Confidence
	donation.SafetyScore = &score
	donation.SafetyStatus = string(assessment.Status)
	donation.SafetyConfidence = &confidence
	donation.SafetyExplanation = assessment.Explanation
	donation.SafetyVerified = score >= 50
	donation.Status = next
	return nil
}

// Nearby returns approved donations within radiusKm of the requester,
// closest first. Donations without recorded coordinates are left out; they
// remain reachable through the owner listing.
func (s *DonationService) Nearby(lat, lon, radiusKm float64) (*dto.NearbyDonationsResponse, error) {
	if err := geo.Validate(lat, lon); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, ErrInvalidRadius
	}

	var donations []models.Donation
	if err := s.db.Preload("Donor").
		Where("status = ?", models.DonationApproved).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return &dto.NearbyDonationsResponse{
		Donations: rankByDistance(donations, lat, lon, radiusKm),
	}, nil
}

// ListOwn returns every donation the donor has submitted, newest first,
// regardless of state or location.
func (s *DonationService) ListOwn(donorID uuid.UUID) (*dto.DonationListResponse, error) {
	var donations []models.Donation
	if err := s.db.Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	resp := &dto.DonationListResponse{Donations: make([]dto.DonationResponse, len(donations))}
	for i := range donations {
		resp.Donations[i] = mapDonationToResponse(&donations[i])
	}
	return resp, nil
}

func (s *DonationService) AddFeedback(userID, donationID uuid.UUID, req *dto.CreateFeedbackRequest) error {
	if req.QualityRating < 1 || req.QualityRating > 5 {
		return ErrInvalidRating
	}

	var donation models.Donation
	if err := s.db.First(&donation, "id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return err
	}

	feedback := models.SafetyFeedback{
		ID:            uuid.New(),
		DonationID:    donationID,
		UserID:        userID,
		QualityRating: req.QualityRating,
		Feedback:      req.Feedback,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// Stats aggregates platform-wide counters for the admin dashboard.
func (s *DonationService) Stats() (*dto.AnalyticsResponse, error) {
	var resp dto.AnalyticsResponse

	if err := s.db.Model(&models.Donation{}).Count(&resp.TotalDonations).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Donation{}).Where("safety_verified = true").Count(&resp.SafeDonations).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Claim{}).Count(&resp.TotalClaims).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Donation{}).
		Where("status = ?", models.DonationCompleted).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&resp.MealsSaved).Error; err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *DonationService) validateCreate(req *dto.CreateDonationRequest) (time.Time, error) {
	if req.Title == "" {
		return time.Time{}, ErrTitleRequired
	}
	if req.FoodType != string(safety.FoodTypeVeg) && req.FoodType != string(safety.FoodTypeNonVeg) {
		return time.Time{}, ErrInvalidFoodType
	}
	if req.Quantity <= 0 {
		return time.Time{}, ErrInvalidQuantity
	}
	if !req.HygieneChecked {
		return time.Time{}, ErrHygieneNotConfirmed
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return time.Time{}, ErrIncompleteCoordinates
	}
	if req.Latitude != nil {
		if err := geo.Validate(*req.Latitude, *req.Longitude); err != nil {
			return time.Time{}, err
		}
	}

	prepTime, err := time.Parse(time.RFC3339, req.PreparationTime)
	if err != nil {
		return time.Time{}, ErrInvalidPreparationTime
	}
	return prepTime, nil
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "plates"
	}
	return unit
}

func mapDonationToResponse(d *models.Donation) dto.DonationResponse {
	return dto.DonationResponse{
		ID:                d.ID,
		DonorID:           d.DonorID,
		Title:             d.Title,
		Description:       d.Description,
		FoodType:          d.FoodType,
		Quantity:          d.Quantity,
		Unit:              d.Unit,
		PreparationTime:   d.PreparationTime,
		StorageCondition:  d.StorageCondition,
		Location:          d.Location,
		Latitude:          d.Latitude,
		Longitude:         d.Longitude,
		ImagePath:         d.ImagePath,
		Status:            string(d.Status),
		SafetyScore:       d.SafetyScore,
		SafetyStatus:      d.SafetyStatus,
		SafetyConfidence:  d.SafetyConfidence,
		SafetyExplanation: d.SafetyExplanation,
		CreatedAt:         d.CreatedAt.Format(time.RFC3339),
	}
}
