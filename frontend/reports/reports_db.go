package reports

import (
	"context"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

// LoadCompletedSheets returns completed sheets with their lines, newest
// completion first. Line order within each sheet is creation order.
func LoadCompletedSheets(ctx context.Context, db *sqlite.DB) ([]models.Sheet, error) {
	sheets := make([]models.Sheet, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sheets).
			Relation("Lines", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.OrderExpr("sl.id ASC")
			}).
			Where("sh.status = ?", models.SheetStatusCompleted).
			OrderExpr("sh.completed_at DESC, sh.id DESC").
			Scan(ctx)
	})
	return sheets, err
}

// LoadCompletedSheet returns one completed sheet with lines for export.
func LoadCompletedSheet(ctx context.Context, db *sqlite.DB, id int64) (models.Sheet, error) {
	var sheet models.Sheet
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sheet).
			Relation("Lines", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.OrderExpr("sl.id ASC")
			}).
			Where("sh.id = ? AND sh.status = ?", id, models.SheetStatusCompleted).
			Limit(1).
			Scan(ctx)
	})
	return sheet, err
}
