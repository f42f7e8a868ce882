package routes

import (
	"github.com/anjiri1684/duty_roster/handlers"
	"github.com/anjiri1684/duty_roster/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func DutyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	duties := api.Group("/duties", middleware.Protected())
	duties.Get("", handlers.GetDuties)
	duties.Get("/grabable", handlers.GetGrabableDuties)
	duties.Post("/generate", handlers.GenerateDuties)
	duties.Post("/grab", handlers.GrabDuties)
	duties.Post("/drop", handlers.DropDuties)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
