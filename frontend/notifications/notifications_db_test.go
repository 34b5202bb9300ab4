package notifications

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

func openNotificationsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "notifications-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func seedNotification(t *testing.T, db *sqlite.DB, id string, happenedAt time.Time, read bool) {
	t.Helper()
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		n := models.Notification{
			ID:         id,
			Kind:       models.NotificationNewSheet,
			Message:    "New count sheet SAY001 (weekly)",
			HappenedAt: happenedAt,
			Read:       read,
			TargetURL:  "/app/sheets/1",
		}
		_, err := tx.NewInsert().Model(&n).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("seed notification %s: %v", id, err)
	}
}

func TestUnreadCount(t *testing.T) {
	db := openNotificationsTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seedNotification(t, db, "new-1", now.Add(-time.Hour), false)
	seedNotification(t, db, "new-2", now.Add(-2*time.Hour), false)
	seedNotification(t, db, "new-3", now.Add(-3*time.Hour), true)

	count, err := UnreadCount(ctx, db)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := openNotificationsTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seedNotification(t, db, "new-1", now.Add(-3*time.Hour), false)
	seedNotification(t, db, "new-2", now.Add(-time.Hour), false)

	items, err := List(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "new-2" {
		t.Fatalf("expected newest first, got %s", items[0].ID)
	}
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	db := openNotificationsTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seedNotification(t, db, "new-1", now.Add(-time.Hour), false)
	seedNotification(t, db, "new-2", now.Add(-2*time.Hour), false)

	if err := MarkRead(ctx, db, "new-1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, _ := UnreadCount(ctx, db)
	if count != 1 {
		t.Fatalf("expected 1 unread after single mark, got %d", count)
	}

	// Unknown id is a no-op.
	if err := MarkRead(ctx, db, "new-999"); err != nil {
		t.Fatalf("mark read unknown: %v", err)
	}

	if err := MarkAllRead(ctx, db); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	count, _ = UnreadCount(ctx, db)
	if count != 0 {
		t.Fatalf("expected 0 unread after mark all, got %d", count)
	}
}
