package handlers

import (
	"errors"
	"fmt"
	"time"

	config "github.com/anjiri1684/duty_roster/configs"
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/notifications"
	"github.com/anjiri1684/duty_roster/services"
	"github.com/anjiri1684/duty_roster/utils"
	"github.com/anjiri1684/duty_roster/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerateDutiesRequest struct {
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NumWeeks  int    `json:"num_weeks" validate:"required,min=1"`
}

type GrabDutiesRequest struct {
	DutyIDs []string `json:"duty_ids" validate:"required"`
}

type DropDutiesRequest struct {
	DutyIDs      []string `json:"duty_ids" validate:"required"`
	TargetUserID string   `json:"user_id,omitempty"`
}

// GetDuties renders one week of the roster plus the announcement board.
func GetDuties(c *fiber.Ctx) error {
	startDate := utils.BeginningOfWeek(time.Now())
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		startDate = parsed
	}

	rows, err := services.WeekRoster(database.DB, startDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build roster"})
	}

	var announcements []models.Announcement
	database.DB.Order("created_at desc").Limit(3).Find(&announcements)

	return c.JSON(fiber.Map{
		"start_date":    startDate,
		"end_date":      startDate.AddDate(0, 0, 6),
		"rows":          rows,
		"announcements": announcements,
	})
}

func GenerateDuties(c *fiber.Ctx) error {
	var actor models.User
	if err := database.DB.First(&actor, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}
	if !services.Can(&actor, "manage", "duties") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to generate duties"})
	}

	var req GenerateDutiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate := utils.BeginningOfWeek(time.Now())
	if req.StartDate != "" {
		parsed, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		startDate = parsed
	}
	endDate := startDate.AddDate(0, 0, req.NumWeeks*7-1)

	created, err := services.GenerateDuties(database.DB, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate duties"})
	}

	websocket.Broadcast <- &websocket.DutyEvent{Type: "generated", ActorID: actor.ID}

	return c.JSON(fiber.Map{
		"message":    "Duties successfully generated!",
		"created":    created,
		"start_date": startDate,
		"end_date":   endDate,
	})
}

func GrabDuties(c *fiber.Ctx) error {
	actorID := currentUserID(c)

	var req GrabDutiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	dutyIDs, err := parseDutyIDs(req.DutyIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid duties to grab"})
	}

	grabbed, err := services.GrabDuties(database.DB, actorID, dutyIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid duties to grab"})
		case errors.Is(err, services.ErrNotGrabable):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid duties to grab"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Duty not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grab duties"})
	}

	websocket.Broadcast <- &websocket.DutyEvent{Type: "grabbed", ActorID: actorID, DutyIDs: dutyIDs}

	return c.JSON(fiber.Map{"message": "Duty successfully grabbed!", "duties": grabbed})
}

func DropDuties(c *fiber.Ctx) error {
	actorID := currentUserID(c)

	var req DropDutiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	dutyIDs, err := parseDutyIDs(req.DutyIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid duties to drop"})
	}

	// "0" or absent means dropped to anyone.
	targetUserID := uuid.Nil
	if req.TargetUserID != "" && req.TargetUserID != "0" {
		targetUserID, err = uuid.Parse(req.TargetUserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid target user"})
		}
	}

	leadWindow := time.Duration(config.DropLeadHours()) * time.Hour
	dropped, recipients, err := services.DropDuties(database.DB, actorID, dutyIDs, targetUserID, time.Now(), leadWindow)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid duties to drop"})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid duties to drop"})
		case errors.Is(err, services.ErrDropTooLate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("You can only drop your duty at most %d hours before it starts", config.DropLeadHours()),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Duty not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to drop duties"})
	}

	go notifications.NotifyDutiesDropped(database.DB, dropped, recipients)
	websocket.Broadcast <- &websocket.DutyEvent{Type: "dropped", ActorID: actorID, DutyIDs: dutyIDs}

	return c.JSON(fiber.Map{"message": "Duty successfully dropped!", "duties": dropped})
}

func GetGrabableDuties(c *fiber.Ctx) error {
	duties, err := services.GrabableDuties(database.DB, currentUserID(c), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch grabable duties"})
	}
	return c.JSON(duties)
}

func parseDutyIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
