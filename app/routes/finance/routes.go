package finance

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/routes/auth"
)

func SetupFinanceRoutes(app *fiber.App) {
	api := app.Group("/api/finance", auth.AuthMiddleware)

	api.Get("/transactions", func(c *fiber.Ctx) error {
		return GetTransactionsAPI(c, config.GetDB())
	})
	api.Get("/transactions/export", func(c *fiber.Ctx) error {
		return ExportTransactionsAPI(c, config.GetDB())
	})
	api.Get("/transactions/:id", func(c *fiber.Ctx) error {
		return GetTransactionAPI(c, config.GetDB())
	})
	api.Get("/summary", func(c *fiber.Ctx) error {
		return GetSummaryAPI(c, config.GetDB())
	})
	api.Get("/categories", func(c *fiber.Ctx) error {
		return GetCategoryBreakdownAPI(c, config.GetDB())
	})
	api.Get("/report", func(c *fiber.Ctx) error {
		return GetReportAPI(c, config.GetDB())
	})

	// Mutations are restricted to finance staff.
	write := api.Group("", auth.RequireRole("admin", "bursar"))
	write.Post("/transactions", func(c *fiber.Ctx) error {
		return PostTransactionAPI(c, config.GetDB())
	})
	write.Put("/transactions/:id", func(c *fiber.Ctx) error {
		return EditTransactionAPI(c, config.GetDB())
	})
	write.Post("/transactions/:id/void", func(c *fiber.Ctx) error {
		return VoidTransactionAPI(c, config.GetDB())
	})
}
