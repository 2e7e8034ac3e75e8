package handlers

import (
	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	donationService *services.DonationService
}

func NewAnalyticsHandler(donationService *services.DonationService) *AnalyticsHandler {
	return &AnalyticsHandler{donationService: donationService}
}

func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.donationService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute analytics",
		})
	}
	return c.JSON(stats)
}
