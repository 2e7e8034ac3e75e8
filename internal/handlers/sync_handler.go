package handlers

import (
	"errors"

	"github.com/foodbridge-dev/foodbridge-backend/internal/dto"
	"github.com/foodbridge-dev/foodbridge-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SyncHandler struct {
	sheetSync *services.SheetSyncService
}

func NewSyncHandler(sheetSync *services.SheetSyncService) *SyncHandler {
	return &SyncHandler{sheetSync: sheetSync}
}

// Resync re-pushes a single donation row to the spreadsheet webhook.
// Unlike the automatic sync after approval, failures here are surfaced so
// an operator can see why the row did not land.
func (h *SyncHandler) Resync(c *fiber.Ctx) error {
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid donation ID",
		})
	}

	if err := h.sheetSync.SyncDonation(donationID); err != nil {
		switch {
		case errors.Is(err, services.ErrSyncNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrDonationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Donation synced"})
}
