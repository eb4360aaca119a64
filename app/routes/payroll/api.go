package payroll

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/config"
	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/routes/auth"
	"edupro-lms/app/utils"
)

func deductionRates() models.DeductionRates {
	return models.DeductionRates{
		AbsentPenalty: config.AppConfig.AbsentPenalty,
		LatePenalty:   config.AppConfig.LatePenalty,
	}
}

// CreateStaffAPI registers a new employee on the payroll.
func CreateStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	var staff models.StaffMember
	if err := c.BodyParser(&staff); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := database.CreateStaff(db, &staff); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, staff)
}

func GetStaffListAPI(c *fiber.Ctx, db *sql.DB) error {
	list, err := database.GetAllStaff(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch staff")
	}
	return utils.Success(c, list)
}

func GetStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	staff, err := database.GetStaffByID(db, c.Params("id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, staff)
}

func UpdateStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	var staff models.StaffMember
	if err := c.BodyParser(&staff); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	staff.ID = c.Params("id")

	if err := database.UpdateStaff(db, &staff); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, staff)
}

// DeleteStaffAPI removes the employee record. Past salary payments survive and
// keep their staff_id reference.
func DeleteStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteStaff(db, c.Params("id")); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"deleted": c.Params("id")})
}

// QuotePayrollAPI previews the payout for one staff member and period without
// recording anything.
func QuotePayrollAPI(c *fiber.Ctx, db *sql.DB) error {
	period := c.Query("period")
	if period == "" {
		return fiber.NewError(fiber.StatusBadRequest, "period is required")
	}

	quote, err := database.QuotePayroll(db, c.Params("id"), period, deductionRates())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, quote)
}

// DisburseSalaryAPI pays one staff member for one period. Write-once per
// (staff, period); the matching ledger debit is posted in the same
// transaction.
func DisburseSalaryAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		StaffID   string `json:"staff_id"`
		Period    string `json:"period"`
		Method    string `json:"method"`
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.StaffID == "" || req.Period == "" {
		return fiber.NewError(fiber.StatusBadRequest, "staff_id and period are required")
	}

	payment, err := database.DisburseSalary(db, req.StaffID, req.Period, req.Method, req.Reference, auth.ActorName(c), deductionRates())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, payment)
}

// GetSalaryPaymentAPI returns the disbursement record for one staff member
// and period.
func GetSalaryPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	payment, err := database.GetSalaryPayment(db, c.Params("id"), c.Params("period"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, payment)
}

// GetSalaryHistoryAPI lists disbursements, optionally for one staff member.
func GetSalaryHistoryAPI(c *fiber.Ctx, db *sql.DB) error {
	history, err := database.GetSalaryHistory(db, c.Query("staff_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch salary history")
	}
	return utils.Success(c, history)
}

// ExportSalaryHistoryAPI streams the disbursement history as CSV.
func ExportSalaryHistoryAPI(c *fiber.Ctx, db *sql.DB) error {
	history, err := database.GetSalaryHistory(db, c.Query("staff_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch salary history")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"StaffID", "Period", "Gross", "Deduction", "Net", "Method", "Reference", "Date", "PaidBy"})
	for _, p := range history {
		_ = w.Write([]string{
			p.StaffID,
			p.Period,
			fmt.Sprintf("%.2f", p.GrossAmount),
			fmt.Sprintf("%.2f", p.Deduction),
			fmt.Sprintf("%.2f", p.NetAmount),
			p.Method,
			p.Reference,
			p.Date.Format("2006-01-02"),
			p.PaidBy,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build CSV")
	}

	filename := fmt.Sprintf("salary_history_%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
