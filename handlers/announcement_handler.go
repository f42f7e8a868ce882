package handlers

import (
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/gofiber/fiber/v2"
)

type AnnouncementRequest struct {
	Subject string `json:"subject" validate:"required"`
	Details string `json:"details"`
}

func ListAnnouncements(c *fiber.Ctx) error {
	var announcements []models.Announcement
	database.DB.Order("created_at desc").Limit(3).Find(&announcements)
	return c.JSON(announcements)
}

func GetAnnouncement(c *fiber.Ctx) error {
	var announcement models.Announcement
	if err := database.DB.First(&announcement, "id = ?", c.Params("announcementId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	}
	return c.JSON(announcement)
}

func CreateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	announcement := models.Announcement{Subject: req.Subject, Details: req.Details}
	if err := database.DB.Create(&announcement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create announcement"})
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

func UpdateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var announcement models.Announcement
	if err := database.DB.First(&announcement, "id = ?", c.Params("announcementId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	}
	announcement.Subject = req.Subject
	announcement.Details = req.Details
	if err := database.DB.Save(&announcement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update announcement"})
	}
	return c.JSON(announcement)
}

func DeleteAnnouncement(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Announcement{}, "id = ?", c.Params("announcementId")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete announcement"})
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}
