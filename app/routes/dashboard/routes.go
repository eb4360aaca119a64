package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", auth.AuthMiddleware, ShowDashboard)
}

// ShowDashboard renders the financial overview: ledger rollup, voucher
// statistics and the most recent transactions.
func ShowDashboard(c *fiber.Ctx) error {
	db := config.GetDB()

	revenue, err := database.SumByKind(db, models.EntryCredit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	expenses, err := database.SumByKind(db, models.EntryDebit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	voucherStats, err := database.VoucherStats(db, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	monthStart := time.Now().AddDate(0, -1, 0)
	recent, err := database.ListEntries(db, &models.LedgerFilter{From: &monthStart})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":        "Dashboard - EduPro Institute",
		"ActorName":    auth.ActorName(c),
		"Revenue":      revenue,
		"Expenses":     expenses,
		"NetProfit":    revenue - expenses,
		"VoucherStats": voucherStats,
		"Recent":       recent,
	}, "layouts/main")
}
