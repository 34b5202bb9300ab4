package sheets

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/sqlite"
	"stocktake/models"
	"stocktake/reconcile"
)

func numberPrefix(kind string) string {
	if kind == models.SheetKindReceipt {
		return "MK"
	}
	return "SAY"
}

// CreateSheet inserts a sheet with its lines, assigning the next sequential
// document number for the kind inside the same write transaction.
func CreateSheet(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, input CreateInput) (int64, error) {
	if input.Kind != models.SheetKindCount && input.Kind != models.SheetKindReceipt {
		return 0, fmt.Errorf("invalid sheet kind: %s", input.Kind)
	}
	if len(input.Lines) == 0 {
		return 0, fmt.Errorf("sheet needs at least one line")
	}
	for _, line := range input.Lines {
		if line.ExpectedQty <= 0 {
			return 0, fmt.Errorf("expected qty must be greater than 0 for %s", line.Code)
		}
	}

	var sheetID int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var existing int64
		if err := tx.NewRaw(`SELECT COUNT(*) FROM sheets WHERE kind = ?`, input.Kind).Scan(ctx, &existing); err != nil {
			return err
		}

		now := time.Now()
		sheet := models.Sheet{
			Kind:         input.Kind,
			Number:       fmt.Sprintf("%s%03d", numberPrefix(input.Kind), existing+1),
			Title:        strings.TrimSpace(input.Title),
			SupplierName: strings.TrimSpace(input.SupplierName),
			Note:         strings.TrimSpace(input.Note),
			Status:       models.SheetStatusPending,
			CreatedBy:    input.CreatedBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := tx.NewInsert().Model(&sheet).Exec(ctx); err != nil {
			return err
		}
		sheetID = sheet.ID

		lines := make([]models.SheetLine, 0, len(input.Lines))
		for _, in := range input.Lines {
			lines = append(lines, models.SheetLine{
				SheetID:     sheet.ID,
				Code:        strings.TrimSpace(in.Code),
				ProductName: in.ProductName,
				ExpectedQty: in.ExpectedQty,
				CreatedAt:   now,
			})
		}
		if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
			return err
		}

		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, userID, "sheet.create", "sheet", sheet.Number, nil, sheet)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sheetID, nil
}

// ListSheets returns rows for one kind, optionally filtered by a search term
// against number and title/supplier.
func ListSheets(ctx context.Context, db *sqlite.DB, kind, search string) ([]SheetRow, error) {
	rows := make([]SheetRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := `
SELECT sh.id, sh.number, sh.title, sh.supplier_name, sh.status, sh.created_by,
       strftime('%d/%m/%Y %H:%M', sh.created_at) AS created_at,
       COALESCE(strftime('%d/%m/%Y %H:%M', sh.completed_at), '') AS completed_at,
       COUNT(sl.id) AS line_count,
       COALESCE(SUM(CASE WHEN sl.counted_qty IS NOT NULL THEN 1 ELSE 0 END), 0) AS counted_lines
FROM sheets sh
LEFT JOIN sheet_lines sl ON sl.sheet_id = sh.id
WHERE sh.kind = ?`
		args := []any{kind}
		if s := strings.TrimSpace(search); s != "" {
			q += ` AND (sh.number LIKE ? OR sh.title LIKE ? OR sh.supplier_name LIKE ?)`
			like := "%" + s + "%"
			args = append(args, like, like, like)
		}
		q += ` GROUP BY sh.id ORDER BY sh.id DESC`
		return tx.NewRaw(q, args...).Scan(ctx, &rows)
	})
	return rows, err
}

// ListByStatus returns rows of one kind and status, newest first.
func ListByStatus(ctx context.Context, db *sqlite.DB, kind, status string) ([]SheetRow, error) {
	rows := make([]SheetRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT sh.id, sh.number, sh.title, sh.supplier_name, sh.status, sh.created_by,
       strftime('%d/%m/%Y %H:%M', sh.created_at) AS created_at,
       COALESCE(strftime('%d/%m/%Y %H:%M', sh.completed_at), '') AS completed_at,
       COUNT(sl.id) AS line_count,
       COALESCE(SUM(CASE WHEN sl.counted_qty IS NOT NULL THEN 1 ELSE 0 END), 0) AS counted_lines
FROM sheets sh
LEFT JOIN sheet_lines sl ON sl.sheet_id = sh.id
WHERE sh.kind = ? AND sh.status = ?
GROUP BY sh.id
ORDER BY sh.id DESC`, kind, status).Scan(ctx, &rows)
	})
	return rows, err
}

// LoadSheet returns the sheet with its lines in creation order.
func LoadSheet(ctx context.Context, db *sqlite.DB, sheetID int64) (models.Sheet, error) {
	var sheet models.Sheet
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sheet).
			Relation("Lines", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.OrderExpr("sl.id ASC")
			}).
			Where("sh.id = ?", sheetID).
			Limit(1).
			Scan(ctx)
	})
	return sheet, err
}

func loadSheetForUpdate(ctx context.Context, tx bun.Tx, sheetID int64) (models.Sheet, error) {
	var sheet models.Sheet
	err := tx.NewSelect().
		Model(&sheet).
		Relation("Lines", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("sl.id ASC")
		}).
		Where("sh.id = ?", sheetID).
		Limit(1).
		Scan(ctx)
	return sheet, err
}

// RecordScan matches one scan against the sheet and persists the updated
// line. Returns the scan outcome for UI feedback. The sheet is untouched on
// any error.
func RecordScan(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, sheetID int64, code string, scanQty int64) (reconcile.Outcome, error) {
	var out reconcile.Outcome
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		sheet, err := loadSheetForUpdate(ctx, tx, sheetID)
		if err != nil {
			return err
		}
		if sheet.Completed() {
			return reconcile.ErrAlreadyCompleted
		}

		idx, outcome, err := reconcile.ApplyScan(sheet.Lines, code, scanQty, time.Now())
		if err != nil {
			return err
		}
		out = outcome

		if _, err := tx.NewUpdate().
			Model(&sheet.Lines[idx]).
			Column("counted_qty", "last_scan_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model(&sheet).
			Set("updated_at = CURRENT_TIMESTAMP").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, userID, "sheet.scan", "sheet", sheet.Number, nil, outcome)
		}
		return nil
	})
	if err != nil {
		return reconcile.Outcome{}, err
	}
	return out, nil
}

// CompleteSheet stamps the sheet completed, enforcing the coverage policy for
// its kind. The status check runs inside the write transaction, so two racing
// completions cannot both succeed.
func CompleteSheet(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, sheetID int64, completedBy string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		sheet, err := loadSheetForUpdate(ctx, tx, sheetID)
		if err != nil {
			return err
		}
		before := sheet

		if err := reconcile.Complete(&sheet, sheet.Lines, completedBy, time.Now(), reconcile.RequireAllCounted(sheet.Kind)); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model(&sheet).
			Column("status", "completed_by", "completed_at").
			Set("updated_at = CURRENT_TIMESTAMP").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, userID, "sheet.complete", "sheet", sheet.Number,
				map[string]string{"status": before.Status}, map[string]string{"status": sheet.Status, "completed_by": completedBy})
		}
		return nil
	})
}

// LoadProductOptions lists catalog products for the creation form.
func LoadProductOptions(ctx context.Context, db *sqlite.DB) ([]ProductOption, error) {
	options := make([]ProductOption, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT code, name, COALESCE(unit, '') AS unit FROM products ORDER BY code ASC`).
			Scan(ctx, &options)
	})
	return options, err
}

// ResolveProductNames maps codes to current catalog names, snapshotting them
// onto new sheet lines.
func ResolveProductNames(ctx context.Context, db *sqlite.DB, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	type row struct {
		Code string `bun:"code"`
		Name string `bun:"name"`
	}
	rows := make([]row, 0, len(codes))
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			TableExpr("products").
			Column("code", "name").
			Where("code IN (?)", bun.In(codes)).
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[r.Code] = r.Name
	}
	return names, nil
}

// IsNotFound reports whether err is the no-rows marker.
func IsNotFound(err error) bool {
	return err == sql.ErrNoRows
}
