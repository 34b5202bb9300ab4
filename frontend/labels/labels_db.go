package labels

import (
	"context"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
)

// LoadProductLabels returns catalog entries ordered by code, optionally
// restricted to the given codes.
func LoadProductLabels(ctx context.Context, db *sqlite.DB, codes []string) ([]ProductLabelData, error) {
	products := make([]ProductLabelData, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().
			TableExpr("products").
			ColumnExpr("code, name, COALESCE(unit, '') AS unit").
			OrderExpr("code COLLATE NOCASE ASC")
		if len(codes) > 0 {
			q = q.Where("code IN (?)", bun.In(codes))
		}
		return q.Scan(ctx, &products)
	})
	return products, err
}
