package vouchers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/routes/auth"
	"edupro-lms/app/utils"
)

// CreateVoucherAPI issues a fee voucher. Linked fines are validated to be
// pending and their amounts snapshotted into the total.
func CreateVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req models.NewVoucher
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	voucher, err := database.CreateVoucher(db, &req, auth.ActorName(c))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, voucher)
}

// GetVouchersAPI lists vouchers, optionally scoped to one student.
func GetVouchersAPI(c *fiber.Ctx, db *sql.DB) error {
	var (
		list []*models.FeeVoucher
		err  error
	)
	if studentID := c.Query("student_id"); studentID != "" {
		list, err = database.GetStudentVouchers(db, studentID)
	} else {
		list, err = database.GetAllVouchers(db)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch vouchers")
	}
	return utils.Success(c, list)
}

func GetVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	voucher, err := database.GetVoucherByID(db, c.Params("id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, voucher)
}

// CollectPaymentAPI records a payment against a voucher. When the voucher
// transitions to paid, linked fines are settled and one ledger credit of the
// full voucher total is posted, all in the same transaction.
func CollectPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	voucher, err := database.CollectVoucherPayment(db, c.Params("id"), req.Amount, req.Method, auth.ActorName(c))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, voucher)
}

// DeleteVoucherAPI removes a voucher and its lines. Ledger entries already
// posted for it stay untouched.
func DeleteVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteVoucher(db, c.Params("id")); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"deleted": c.Params("id")})
}

// GetVoucherStatsAPI returns the voucher rollup, optionally per student.
func GetVoucherStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.VoucherStats(db, c.Query("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute voucher statistics")
	}
	return utils.Success(c, stats)
}
