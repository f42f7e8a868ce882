package handlers

import (
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SetAvailabilitiesRequest struct {
	AvailabilityIDs []string `json:"availability_ids"`
}

// GetMyAvailabilities returns the caller's weekly grid, creating unticked
// cells on first access.
func GetMyAvailabilities(c *fiber.Ctx) error {
	grid, err := services.AvailabilityGrid(database.DB, currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availabilities"})
	}
	return c.JSON(fiber.Map{"days": grid})
}

// SetMyAvailabilities replaces the caller's ticks with the submitted set.
func SetMyAvailabilities(c *fiber.Ctx) error {
	var req SetAvailabilitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	ids := make([]uuid.UUID, 0, len(req.AvailabilityIDs))
	for _, s := range req.AvailabilityIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availability id"})
		}
		ids = append(ids, id)
	}

	if err := services.SetAvailabilities(database.DB, currentUserID(c), ids); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availabilities"})
	}
	return c.JSON(fiber.Map{"message": "Availabilities updated"})
}
