package handlers

import (
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Admin editor for a place's weekly template: who covers which cell by
// default, with each cell annotated with the users who declared
// themselves available for it.

func GetPlaceRoster(c *fiber.Ctx) error {
	var place models.Place
	if err := database.DB.First(&place, "id = ?", c.Params("placeId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Place not found"})
	}

	var timeslots []models.Timeslot
	err := database.DB.Preload("TimeRange").Preload("DefaultUser").
		Joins("JOIN time_ranges ON time_ranges.id = timeslots.time_range_id").
		Where("place_id = ?", place.ID).
		Order("timeslots.weekday, time_ranges.start_time").
		Find(&timeslots).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch timeslots"})
	}

	available, err := services.AvailableUserIDs(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch availabilities"})
	}

	type slotView struct {
		models.Timeslot
		AvailableUserIDs []uuid.UUID `json:"available_user_ids"`
	}
	views := make([]slotView, 0, len(timeslots))
	for _, ts := range timeslots {
		views = append(views, slotView{
			Timeslot:         ts,
			AvailableUserIDs: available[ts.Weekday][ts.TimeRangeID],
		})
	}

	var users []models.User
	database.DB.Where("is_active = ?", true).Order("username").Find(&users)

	return c.JSON(fiber.Map{
		"place":     place,
		"timeslots": views,
		"users":     users,
	})
}

type TimeslotAssignment struct {
	TimeslotID    string  `json:"timeslot_id" validate:"required,uuid"`
	DefaultUserID *string `json:"default_user_id" validate:"omitempty,uuid"`
}

type UpdatePlaceRosterRequest struct {
	Assignments []TimeslotAssignment `json:"assignments" validate:"required,dive"`
}

// UpdatePlaceRoster rewires default assignees for the place's timeslots.
// Unchanged assignments are skipped; existing duties keep their owner.
func UpdatePlaceRoster(c *fiber.Ctx) error {
	placeID := c.Params("placeId")

	var req UpdatePlaceRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	for _, a := range req.Assignments {
		var timeslot models.Timeslot
		if err := database.DB.First(&timeslot, "id = ? AND place_id = ?", a.TimeslotID, placeID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timeslot not found for this place"})
		}

		var newDefault *uuid.UUID
		if a.DefaultUserID != nil && *a.DefaultUserID != "" {
			parsed, err := uuid.Parse(*a.DefaultUserID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid default user"})
			}
			newDefault = &parsed
		}

		if uuidPtrEqual(timeslot.DefaultUserID, newDefault) {
			continue
		}
		if err := database.DB.Model(&timeslot).Update("default_user_id", newDefault).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update timeslot"})
		}
	}

	return c.JSON(fiber.Map{"message": "Default assignments updated"})
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
