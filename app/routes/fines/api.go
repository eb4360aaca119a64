package fines

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/utils"
)

// CreateFineAPI registers a new penalty against a student. Fines always start
// pending.
func CreateFineAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		StudentID string  `json:"student_id"`
		Reason    string  `json:"reason"`
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		Date      string  `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fine := &models.Fine{
		StudentID: req.StudentID,
		Reason:    req.Reason,
		Category:  req.Category,
		Amount:    req.Amount,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		fine.Date = date
	}

	if err := database.AddFine(db, fine); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fine)
}

// GetFinesAPI lists fines, optionally scoped to one student via ?student_id=.
func GetFinesAPI(c *fiber.Ctx, db *sql.DB) error {
	var (
		list []*models.Fine
		err  error
	)
	if studentID := c.Query("student_id"); studentID != "" {
		list, err = database.GetStudentFines(db, studentID)
	} else {
		list, err = database.GetAllFines(db)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fines")
	}
	return utils.Success(c, list)
}

func GetFineAPI(c *fiber.Ctx, db *sql.DB) error {
	fine, err := database.GetFineByID(db, c.Params("id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fine)
}

// ToggleFineStatusAPI flips a fine between pending and paid. Manual correction
// path; voucher collection settles linked fines on its own.
func ToggleFineStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	fine, err := database.ToggleFineStatus(db, c.Params("id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fine)
}

func DeleteFineAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteFine(db, c.Params("id")); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"deleted": c.Params("id")})
}

// GetPendingTotalAPI returns the sum of a student's pending fines.
func GetPendingTotalAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Query("student_id")
	if studentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	total, err := database.PendingFineTotal(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute pending total")
	}
	return utils.Success(c, fiber.Map{
		"student_id":    studentID,
		"pending_total": total,
	})
}
