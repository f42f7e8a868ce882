package routes

import (
	"github.com/anjiri1684/duty_roster/handlers"
	"github.com/anjiri1684/duty_roster/middleware"
	"github.com/gofiber/fiber/v2"
)

func AnnouncementRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	announcements := api.Group("/announcements", middleware.Protected())
	announcements.Get("", handlers.ListAnnouncements)
	announcements.Get("/:announcementId", handlers.GetAnnouncement)

	adminAnnouncements := announcements.Group("", middleware.AdminRequired())
	adminAnnouncements.Post("", handlers.CreateAnnouncement)
	adminAnnouncements.Put("/:announcementId", handlers.UpdateAnnouncement)
	adminAnnouncements.Delete("/:announcementId", handlers.DeleteAnnouncement)

	reports := api.Group("/problem-reports", middleware.Protected())
	reports.Post("", handlers.CreateProblemReport)
}
