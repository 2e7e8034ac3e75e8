package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/geo"
	"github.com/foodbridge-dev/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-dev/foodbridge-backend/internal/services"
	"github.com/foodbridge-dev/foodbridge-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create accepts a multipart form: donation metadata plus a "foodImage"
// file part.
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	donorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	fileHeader, err := c.FormFile("foodImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrImageRequired.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read uploaded image",
		})
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read uploaded image",
		})
	}

	resp, err := h.donationService.Create(donorID, &req, fileHeader.Filename, imageData)
	if err != nil {
		if isDonationValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create donation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *DonationHandler) Nearby(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Location coordinates required",
		})
	}
	radius, err := strconv.ParseFloat(c.Query("radius", "10"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrInvalidRadius.Error(),
		})
	}

	resp, err := h.donationService.Nearby(lat, lon, radius)
	if err != nil {
		if errors.Is(err, geo.ErrInvalidLatitude) || errors.Is(err, geo.ErrInvalidLongitude) ||
			errors.Is(err, services.ErrInvalidRadius) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch donations",
		})
	}

	return c.JSON(resp)
}

func (h *DonationHandler) ListOwn(c *fiber.Ctx) error {
	donorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.donationService.ListOwn(donorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch donations",
		})
	}

	return c.JSON(resp)
}

func (h *DonationHandler) AddFeedback(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid donation ID",
		})
	}

	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.donationService.AddFeedback(userID, donationID, &req); err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Feedback recorded"})
}

func isDonationValidationError(err error) bool {
	return errors.Is(err, services.ErrTitleRequired) ||
		errors.Is(err, services.ErrInvalidFoodType) ||
		errors.Is(err, services.ErrInvalidQuantity) ||
		errors.Is(err, services.ErrInvalidPreparationTime) ||
		errors.Is(err, services.ErrHygieneNotConfirmed) ||
		errors.Is(err, services.ErrImageRequired) ||
		errors.Is(err, services.ErrIncompleteCoordinates) ||
		errors.Is(err, geo.ErrInvalidLatitude) ||
		errors.Is(err, geo.ErrInvalidLongitude) ||
		errors.Is(err, storage.ErrUnsupportedImageType)
}
