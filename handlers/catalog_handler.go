package handlers

import (
	"time"

	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Admin CRUD for the reference data the generator reads: places, the
// time-range catalog, and the weekly timeslot templates.

type PlaceRequest struct {
	Name string `json:"name" validate:"required"`
}

func ListPlaces(c *fiber.Ctx) error {
	var places []models.Place
	database.DB.Order("name").Find(&places)
	return c.JSON(places)
}

func CreatePlace(c *fiber.Ctx) error {
	var req PlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	place := models.Place{Name: req.Name}
	if err := database.DB.Create(&place).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Place already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(place)
}

func UpdatePlace(c *fiber.Ctx) error {
	var req PlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var place models.Place
	if err := database.DB.First(&place, "id = ?", c.Params("placeId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Place not found"})
	}
	place.Name = req.Name
	if err := database.DB.Save(&place).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update place"})
	}
	return c.JSON(place)
}

func DeletePlace(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Place{}, "id = ?", c.Params("placeId")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete place"})
	}
	return c.JSON(fiber.Map{"message": "Place deleted"})
}

type TimeRangeRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

func ListTimeRanges(c *fiber.Ctx) error {
	var ranges []models.TimeRange
	database.DB.Order("start_time").Find(&ranges)
	return c.JSON(ranges)
}

func CreateTimeRange(c *fiber.Ctx) error {
	var req TimeRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
	}

	tr := models.TimeRange{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := database.DB.Create(&tr).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create time range"})
	}
	return c.Status(fiber.StatusCreated).JSON(tr)
}

func DeleteTimeRange(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.TimeRange{}, "id = ?", c.Params("timeRangeId")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete time range"})
	}
	return c.JSON(fiber.Map{"message": "Time range deleted"})
}

type TimeslotRequest struct {
	PlaceID       string  `json:"place_id" validate:"required,uuid"`
	Weekday       int     `json:"weekday" validate:"min=0,max=6"`
	TimeRangeID   string  `json:"time_range_id" validate:"required,uuid"`
	DefaultUserID *string `json:"default_user_id,omitempty" validate:"omitempty,uuid"`
	MCOnly        bool    `json:"mc_only"`
}

func ListTimeslots(c *fiber.Ctx) error {
	query := database.DB.Preload("Place").Preload("TimeRange").Preload("DefaultUser")
	if placeID := c.Query("place_id"); placeID != "" {
		query = query.Where("place_id = ?", placeID)
	}

	var timeslots []models.Timeslot
	if err := query.Find(&timeslots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch timeslots"})
	}
	return c.JSON(timeslots)
}

func CreateTimeslot(c *fiber.Ctx) error {
	var req TimeslotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	placeID, _ := uuid.Parse(req.PlaceID)
	timeRangeID, _ := uuid.Parse(req.TimeRangeID)
	timeslot := models.Timeslot{
		PlaceID:     placeID,
		Weekday:     time.Weekday(req.Weekday),
		TimeRangeID: timeRangeID,
		MCOnly:      req.MCOnly,
	}
	if req.DefaultUserID != nil {
		defaultUserID, err := uuid.Parse(*req.DefaultUserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid default user"})
		}
		timeslot.DefaultUserID = &defaultUserID
	}

	if err := database.DB.Create(&timeslot).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A timeslot for this place, weekday and time range already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(timeslot)
}

func DeleteTimeslot(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Timeslot{}, "id = ?", c.Params("timeslotId")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete timeslot"})
	}
	return c.JSON(fiber.Map{"message": "Timeslot deleted"})
}
