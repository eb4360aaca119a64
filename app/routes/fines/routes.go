package fines

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/routes/auth"
)

func SetupFineRoutes(app *fiber.App) {
	api := app.Group("/api/fines", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetFinesAPI(c, config.GetDB())
	})
	api.Get("/pending-total", func(c *fiber.Ctx) error {
		return GetPendingTotalAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetFineAPI(c, config.GetDB())
	})

	write := api.Group("", auth.RequireRole("admin", "bursar"))
	write.Post("/", func(c *fiber.Ctx) error {
		return CreateFineAPI(c, config.GetDB())
	})
	write.Post("/:id/toggle", func(c *fiber.Ctx) error {
		return ToggleFineStatusAPI(c, config.GetDB())
	})
	write.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteFineAPI(c, config.GetDB())
	})
}
