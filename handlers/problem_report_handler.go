package handlers

import (
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/notifications"
	"github.com/gofiber/fiber/v2"
)

type ProblemReportRequest struct {
	Details string `json:"details" validate:"required"`
}

type ProblemReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}

// CreateProblemReport logs an equipment problem and alerts the technical
// cell by email.
func CreateProblemReport(c *fiber.Ctx) error {
	var req ProblemReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report := models.ProblemReport{
		Details:        req.Details,
		ReporterUserID: currentUserID(c),
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create problem report"})
	}

	go notifyTechnicalCell(&report)

	return c.Status(fiber.StatusCreated).JSON(report)
}

func ListProblemReports(c *fiber.Ctx) error {
	query := database.DB.Preload("ReporterUser").Preload("LastUpdateUser").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.ProblemReport
	if err := query.Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch problem reports"})
	}
	return c.JSON(reports)
}

func UpdateProblemReportStatus(c *fiber.Ctx) error {
	var req ProblemReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var report models.ProblemReport
	if err := database.DB.First(&report, "id = ?", c.Params("reportId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Problem report not found"})
	}

	actorID := currentUserID(c)
	report.Status = req.Status
	report.LastUpdateUserID = &actorID
	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update problem report"})
	}
	return c.JSON(report)
}

func notifyTechnicalCell(report *models.ProblemReport) {
	var technicians []models.User
	err := database.DB.Where("cell = ? AND receive_email = ?", "technical", true).Find(&technicians).Error
	if err != nil {
		return
	}
	for _, user := range technicians {
		go notifications.SendEmail(user.Username, user.Email, "New computer problem",
			"<h1>New problem reported</h1><p>"+report.Details+"</p>")
	}
}
