package routes

import (
	"github.com/anjiri1684/duty_roster/handlers"
	"github.com/anjiri1684/duty_roster/middleware"
	"github.com/gofiber/fiber/v2"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	availabilities := api.Group("/availabilities", middleware.Protected())
	availabilities.Get("/me", handlers.GetMyAvailabilities)
	availabilities.Put("/me", handlers.SetMyAvailabilities)
}
