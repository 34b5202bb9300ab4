// Package notify derives the advisory feed from sheet activity. Entries carry
// deterministic ids, so re-deriving the feed never duplicates an entry and
// never disturbs read flags on entries that survive.
package notify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
	"stocktake/models"
	"stocktake/reconcile"
)

// Window is how far back sheet events still generate new feed entries. It
// does not evict anything: once in the feed, an entry stays until the cap
// pushes it out.
const Window = 24 * time.Hour

// Cap is the maximum feed size. Oldest entries fall off first.
const Cap = 50

func sheetLabel(sheet models.Sheet) string {
	if sheet.Kind == models.SheetKindReceipt {
		return fmt.Sprintf("%s (%s)", sheet.Number, sheet.SupplierName)
	}
	return fmt.Sprintf("%s (%s)", sheet.Number, sheet.Title)
}

func kindNoun(kind string) string {
	if kind == models.SheetKindReceipt {
		return "goods receipt"
	}
	return "count sheet"
}

// Derive computes the feed for the given sheets at time now. Existing entries
// are carried through unchanged, read flags included, no matter how old their
// event is; only candidates for NEW entries are gated by Window. The merged
// result is newest first and truncated to Cap, so old entries leave the feed
// only when newer ones push them past the cap.
func Derive(sheets []models.Sheet, existing []models.Notification, now time.Time) []models.Notification {
	seen := make(map[string]bool, len(existing))
	derived := make([]models.Notification, 0, len(existing)+len(sheets)*2)
	for _, n := range existing {
		seen[n.ID] = true
		derived = append(derived, n)
	}

	cutoff := now.Add(-Window)
	add := func(id, kind, message string, happenedAt time.Time, target string) {
		if seen[id] || !happenedAt.After(cutoff) {
			return
		}
		seen[id] = true
		derived = append(derived, models.Notification{
			ID:         id,
			Kind:       kind,
			Message:    message,
			HappenedAt: happenedAt,
			TargetURL:  target,
		})
	}

	for _, sheet := range sheets {
		target := fmt.Sprintf("/app/sheets/%d", sheet.ID)
		add(fmt.Sprintf("new-%d", sheet.ID), models.NotificationNewSheet,
			fmt.Sprintf("New %s %s", kindNoun(sheet.Kind), sheetLabel(sheet)),
			sheet.CreatedAt, target)

		if !sheet.Completed() || sheet.CompletedAt == nil {
			continue
		}
		completedAt := *sheet.CompletedAt
		add(fmt.Sprintf("completed-%d", sheet.ID), models.NotificationCompleted,
			fmt.Sprintf("%s completed", sheetLabel(sheet)),
			completedAt, target)

		summary := reconcile.Summarize(sheet.Lines)
		if summary.Short > 0 {
			add(fmt.Sprintf("short-%d", sheet.ID), models.NotificationShortage,
				fmt.Sprintf("%s has %d short line(s)", sheetLabel(sheet), summary.Short),
				completedAt, target)
		}
		if summary.Over > 0 {
			add(fmt.Sprintf("over-%d", sheet.ID), models.NotificationOverage,
				fmt.Sprintf("%s has %d over line(s)", sheetLabel(sheet), summary.Over),
				completedAt, target)
		}
	}

	sort.SliceStable(derived, func(i, j int) bool {
		if !derived[i].HappenedAt.Equal(derived[j].HappenedAt) {
			return derived[i].HappenedAt.After(derived[j].HappenedAt)
		}
		return derived[i].ID < derived[j].ID
	})
	if len(derived) > Cap {
		derived = derived[:Cap]
	}
	return derived
}

// Refresh re-derives the feed from current sheet state and reconciles the
// notifications table: unseen entries are inserted, entries pushed past the
// cap are deleted, surviving rows are left alone so their read flags persist.
// Only sheets with activity inside Window are loaded; older events can no
// longer generate entries, and their existing rows survive regardless.
func Refresh(ctx context.Context, db *sqlite.DB) error {
	now := time.Now()
	cutoff := now.Add(-Window)

	sheets := make([]models.Sheet, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sheets).
			Relation("Lines").
			Where("sh.created_at > ? OR sh.completed_at > ?", cutoff, cutoff).
			Scan(ctx)
	})
	if err != nil {
		return err
	}

	existing := make([]models.Notification, 0)
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&existing).Scan(ctx)
	})
	if err != nil {
		return err
	}

	derived := Derive(sheets, existing, now)

	known := make(map[string]bool, len(existing))
	for _, n := range existing {
		known[n.ID] = true
	}
	wanted := make([]string, 0, len(derived))
	inserts := make([]models.Notification, 0)
	for _, n := range derived {
		wanted = append(wanted, n.ID)
		if !known[n.ID] {
			n.CreatedAt = now
			inserts = append(inserts, n)
		}
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if len(inserts) > 0 {
			if _, err := tx.NewInsert().
				Model(&inserts).
				On("CONFLICT (id) DO NOTHING").
				Exec(ctx); err != nil {
				return err
			}
		}
		del := tx.NewDelete().Model((*models.Notification)(nil))
		if len(wanted) > 0 {
			del = del.Where("id NOT IN (?)", bun.In(wanted))
		} else {
			del = del.Where("1 = 1")
		}
		_, err := del.Exec(ctx)
		return err
	})
}
