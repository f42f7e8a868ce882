package routes

import (
	"github.com/anjiri1684/duty_roster/handlers"
	"github.com/anjiri1684/duty_roster/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	places := admin.Group("/places")
	places.Get("", handlers.ListPlaces)
	places.Post("", handlers.CreatePlace)
	places.Put("/:placeId", handlers.UpdatePlace)
	places.Delete("/:placeId", handlers.DeletePlace)
	places.Get("/:placeId/roster", handlers.GetPlaceRoster)
	places.Put("/:placeId/roster", handlers.UpdatePlaceRoster)

	timeRanges := admin.Group("/time-ranges")
	timeRanges.Get("", handlers.ListTimeRanges)
	timeRanges.Post("", handlers.CreateTimeRange)
	timeRanges.Delete("/:timeRangeId", handlers.DeleteTimeRange)

	timeslots := admin.Group("/timeslots")
	timeslots.Get("", handlers.ListTimeslots)
	timeslots.Post("", handlers.CreateTimeslot)
	timeslots.Delete("/:timeslotId", handlers.DeleteTimeslot)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/flags", handlers.UpdateUserFlags)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	reports := admin.Group("/problem-reports")
	reports.Get("", handlers.ListProblemReports)
	reports.Put("/:reportId/status", handlers.UpdateProblemReportStatus)
}
