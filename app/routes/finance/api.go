package finance

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/routes/auth"
	"edupro-lms/app/utils"
)

// PostTransactionAPI appends a ledger entry (credit = income, debit = expense).
func PostTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	var entry models.NewLedgerEntry
	if err := c.BodyParser(&entry); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	posted, err := database.PostEntry(db, &entry, auth.ActorName(c))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, posted)
}

// GetTransactionsAPI lists ledger entries with optional filters.
func GetTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	filter := &models.LedgerFilter{
		Kind:        models.EntryKind(c.Query("kind")),
		Category:    c.Query("category"),
		IncludeVoid: c.Query("include_void") == "true",
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid from date")
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid to date")
		}
		filter.To = &t
	}

	entries, err := database.ListEntries(db, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}
	return utils.Success(c, entries)
}

// GetTransactionAPI returns a single ledger entry by id, void or not.
func GetTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	entry, err := database.GetEntryByID(db, c.Params("id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, entry)
}

// EditTransactionAPI overwrites the mutable fields of an active entry.
func EditTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	var edit models.LedgerEntryEdit
	if err := c.BodyParser(&edit); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	entry, err := database.EditEntry(db, c.Params("id"), &edit)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, entry)
}

// VoidTransactionAPI soft-deletes an entry from the aggregates while keeping
// it queryable for audit.
func VoidTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.VoidEntry(db, c.Params("id")); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"voided": c.Params("id")})
}

// GetSummaryAPI returns the revenue/expense/net rollup over active entries.
func GetSummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	revenue, err := database.SumByKind(db, models.EntryCredit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute revenue")
	}
	expenses, err := database.SumByKind(db, models.EntryDebit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute expenses")
	}

	return utils.Success(c, fiber.Map{
		"revenue":    revenue,
		"expenses":   expenses,
		"net_profit": revenue - expenses,
	})
}

// GetCategoryBreakdownAPI returns per-category totals for one kind.
func GetCategoryBreakdownAPI(c *fiber.Ctx, db *sql.DB) error {
	kind := models.EntryKind(c.Query("kind", string(models.EntryDebit)))
	if kind != models.EntryCredit && kind != models.EntryDebit {
		return fiber.NewError(fiber.StatusBadRequest, "kind must be credit or debit")
	}

	totals, err := database.AggregateByCategory(db, kind)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate categories")
	}
	return utils.Success(c, totals)
}

// GetReportAPI builds a ranged financial report (daily, monthly, yearly or a
// custom range) with income/expense/net totals over active entries.
func GetReportAPI(c *fiber.Ctx, db *sql.DB) error {
	from, to, err := reportRange(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filter := &models.LedgerFilter{From: &from, To: &to, IncludeVoid: true}
	entries, err := database.ListEntries(db, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch report entries")
	}

	income, err := database.SumByKindAndRange(db, models.EntryCredit, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute report totals")
	}
	expense, err := database.SumByKindAndRange(db, models.EntryDebit, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute report totals")
	}

	return utils.Success(c, fiber.Map{
		"from":          from.Format("2006-01-02"),
		"to":            to.Format("2006-01-02"),
		"total_income":  income,
		"total_expense": expense,
		"net_profit":    income - expense,
		"count":         len(entries),
		"transactions":  entries,
	})
}

// ExportTransactionsAPI streams the ledger as CSV.
func ExportTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	entries, err := database.ListEntries(db, &models.LedgerFilter{IncludeVoid: true})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Date", "Kind", "Category", "Description", "Method", "Amount", "Status"})
	for _, e := range entries {
		_ = w.Write([]string{
			e.ID,
			e.Date.Format("2006-01-02"),
			string(e.Kind),
			e.Category,
			e.Description,
			e.Method,
			fmt.Sprintf("%.2f", e.Amount),
			string(e.Status),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build CSV")
	}

	filename := fmt.Sprintf("finance_report_%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// reportRange resolves the report type query parameters into a date window.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	switch c.Query("type", "monthly") {
	case "daily":
		day, err := time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("daily report needs date=YYYY-MM-DD")
		}
		return day, day, nil
	case "monthly":
		month, err := time.Parse("2006-01", c.Query("month"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("monthly report needs month=YYYY-MM")
		}
		return month, month.AddDate(0, 1, -1), nil
	case "yearly":
		year, err := time.Parse("2006", c.Query("year"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("yearly report needs year=YYYY")
		}
		return year, year.AddDate(1, 0, -1), nil
	case "custom":
		start, err := time.Parse("2006-01-02", c.Query("start"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("custom report needs start=YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", c.Query("end"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("custom report needs end=YYYY-MM-DD")
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown report type")
	}
}
