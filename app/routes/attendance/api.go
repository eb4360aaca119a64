package attendance

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/utils"
)

// UpsertStatsAPI records or replaces the attendance counters for one staff
// member and period. Payroll reads these when quoting and disbursing.
func UpsertStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	var stats models.AttendanceStats
	if err := c.BodyParser(&stats); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if stats.StaffID == "" || stats.Period == "" {
		return fiber.NewError(fiber.StatusBadRequest, "staff_id and period are required")
	}
	if stats.PresentDays < 0 || stats.Absences < 0 || stats.Lates < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "attendance counters cannot be negative")
	}

	if err := database.UpsertAttendanceStats(db, &stats); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, stats)
}

// GetStatsAPI returns the counters for one staff member and period. A missing
// row reads as all zeroes.
func GetStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	staffID := c.Query("staff_id")
	period := c.Query("period")
	if staffID == "" || period == "" {
		return fiber.NewError(fiber.StatusBadRequest, "staff_id and period are required")
	}

	stats, err := database.GetAttendanceStats(db, staffID, period)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, stats)
}
