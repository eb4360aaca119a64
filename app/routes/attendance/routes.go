package attendance

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance", auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetStatsAPI(c, config.GetDB())
	})

	api.Post("/stats", auth.RequireRole("admin", "bursar"), func(c *fiber.Ctx) error {
		return UpsertStatsAPI(c, config.GetDB())
	})
}
