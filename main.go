package main

import (
	"encoding/json"
	"log"
	"time"

	"edupro-lms/app/config"
	"edupro-lms/app/database"
	"edupro-lms/app/routes/attendance"
	"edupro-lms/app/routes/auth"
	"edupro-lms/app/routes/dashboard"
	"edupro-lms/app/routes/finance"
	"edupro-lms/app/routes/fines"
	"edupro-lms/app/routes/payroll"
	"edupro-lms/app/routes/vouchers"
	"edupro-lms/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler renders web errors as templates and API errors as JSON.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title": "Page Not Found - EduPro Institute",
		})
	case 401:
		return c.Redirect("/auth/login")
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - EduPro Institute",
			"ErrorCode":    code,
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// All voucher due dates and payroll periods are school-local.
	loc, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		log.Printf("Warning: failed to load Asia/Karachi location, falling back to UTC+5: %v", err)
		time.Local = time.FixedZone("PKT", 5*60*60)
	} else {
		time.Local = loc
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start the nightly reconciliation audit
	services.StartScheduler(config.GetDB())

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	finance.SetupFinanceRoutes(app)
	fines.SetupFineRoutes(app)
	vouchers.SetupVoucherRoutes(app)
	payroll.SetupPayrollRoutes(app)
	attendance.SetupAttendanceRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
