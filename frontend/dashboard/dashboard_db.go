package dashboard

import (
	"context"

	"github.com/uptrace/bun"

	"stocktake/frontend/sheets"
	"stocktake/infrastructure/sqlite"
)

// LoadCounts returns the dashboard tile numbers in one query.
func LoadCounts(ctx context.Context, db *sqlite.DB) (Counts, error) {
	var counts Counts
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT
  (SELECT COUNT(*) FROM products) AS products,
  (SELECT COUNT(*) FROM sheets WHERE kind = 'count' AND status = 'pending') AS pending_counts,
  (SELECT COUNT(*) FROM sheets WHERE kind = 'receipt' AND status = 'pending') AS pending_receipts,
  (SELECT COUNT(*) FROM sheets WHERE kind = 'count' AND status = 'completed') AS completed_counts,
  (SELECT COUNT(*) FROM sheets WHERE kind = 'receipt' AND status = 'completed') AS completed_receipts`).
			Scan(ctx, &counts)
	})
	return counts, err
}

// LoadRecentSheets returns the newest sheets of both kinds for the manager
// dashboard.
func LoadRecentSheets(ctx context.Context, db *sqlite.DB, limit int) ([]sheets.SheetRow, error) {
	rows := make([]sheets.SheetRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT sh.id, sh.number, sh.title, sh.supplier_name, sh.status, sh.created_by,
       strftime('%d/%m/%Y %H:%M', sh.created_at) AS created_at,
       COALESCE(strftime('%d/%m/%Y %H:%M', sh.completed_at), '') AS completed_at,
       COUNT(sl.id) AS line_count,
       COALESCE(SUM(CASE WHEN sl.counted_qty IS NOT NULL THEN 1 ELSE 0 END), 0) AS counted_lines
FROM sheets sh
LEFT JOIN sheet_lines sl ON sl.sheet_id = sh.id
GROUP BY sh.id
ORDER BY sh.id DESC
LIMIT ?`, limit).Scan(ctx, &rows)
	})
	return rows, err
}
