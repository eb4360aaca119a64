package vouchers

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/routes/auth"
)

func SetupVoucherRoutes(app *fiber.App) {
	api := app.Group("/api/vouchers", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetVouchersAPI(c, config.GetDB())
	})
	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetVoucherStatsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetVoucherAPI(c, config.GetDB())
	})

	write := api.Group("", auth.RequireRole("admin", "bursar"))
	write.Post("/", func(c *fiber.Ctx) error {
		return CreateVoucherAPI(c, config.GetDB())
	})
	write.Post("/:id/collect", func(c *fiber.Ctx) error {
		return CollectPaymentAPI(c, config.GetDB())
	})
	write.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteVoucherAPI(c, config.GetDB())
	})
}
