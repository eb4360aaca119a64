package payroll

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/routes/auth"
)

func SetupPayrollRoutes(app *fiber.App) {
	api := app.Group("/api/payroll", auth.AuthMiddleware)

	api.Get("/staff", func(c *fiber.Ctx) error {
		return GetStaffListAPI(c, config.GetDB())
	})
	api.Get("/staff/:id", func(c *fiber.Ctx) error {
		return GetStaffAPI(c, config.GetDB())
	})
	api.Get("/staff/:id/quote", func(c *fiber.Ctx) error {
		return QuotePayrollAPI(c, config.GetDB())
	})
	api.Get("/staff/:id/payments/:period", func(c *fiber.Ctx) error {
		return GetSalaryPaymentAPI(c, config.GetDB())
	})
	api.Get("/history", func(c *fiber.Ctx) error {
		return GetSalaryHistoryAPI(c, config.GetDB())
	})
	api.Get("/history/export", func(c *fiber.Ctx) error {
		return ExportSalaryHistoryAPI(c, config.GetDB())
	})

	write := api.Group("", auth.RequireRole("admin", "bursar"))
	write.Post("/staff", func(c *fiber.Ctx) error {
		return CreateStaffAPI(c, config.GetDB())
	})
	write.Put("/staff/:id", func(c *fiber.Ctx) error {
		return UpdateStaffAPI(c, config.GetDB())
	})
	write.Delete("/staff/:id", func(c *fiber.Ctx) error {
		return DeleteStaffAPI(c, config.GetDB())
	})
	write.Post("/disburse", func(c *fiber.Ctx) error {
		return DisburseSalaryAPI(c, config.GetDB())
	})
}
