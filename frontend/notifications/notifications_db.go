package notifications

import (
	"context"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

// UnreadCount returns the number of unread feed entries. Used by the top nav
// badge on every page.
func UnreadCount(ctx context.Context, db *sqlite.DB) (int, error) {
	var count int
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(ctx, &count)
	})
	return count, err
}

// List returns the feed newest first. The refresher caps the table, so no
// limit is applied here.
func List(ctx context.Context, db *sqlite.DB) ([]models.Notification, error) {
	items := make([]models.Notification, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&items).
			OrderExpr("happened_at DESC, id ASC").
			Scan(ctx)
	})
	return items, err
}

// MarkRead flags one entry as read. Unknown ids are a no-op.
func MarkRead(ctx context.Context, db *sqlite.DB, id string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Notification)(nil)).
			Set("read = 1").
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

// MarkAllRead flags the whole feed as read.
func MarkAllRead(ctx context.Context, db *sqlite.DB) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Notification)(nil)).
			Set("read = 1").
			Where("read = 0").
			Exec(ctx)
		return err
	})
}
