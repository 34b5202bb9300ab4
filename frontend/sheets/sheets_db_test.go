package sheets

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
	"stocktake/models"
	"stocktake/reconcile"
)

func openSheetsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sheets-test.db")
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

	err = db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, role, created_at, updated_at) VALUES (1, 'manager', 'hash', 'manager', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO products (code, name, unit, created_at, updated_at) VALUES
('URN-001', 'Ayran 1L', 'piece', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
('URN-002', 'Bulgur 5kg', 'bag', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func createTestSheet(t *testing.T, db *sqlite.DB, kind string) int64 {
	t.Helper()
	id, err := CreateSheet(context.Background(), db, nil, 1, CreateInput{
		Kind:         kind,
		Title:        "weekly",
		SupplierName: "Acme Supply",
		CreatedBy:    "manager",
		Lines: []LineInput{
			{Code: "URN-001", ProductName: "Ayran 1L", ExpectedQty: 10},
			{Code: "URN-002", ProductName: "Bulgur 5kg", ExpectedQty: 4},
		},
	})
	if err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	return id
}

func TestCreateSheet_AssignsSequentialNumbersPerKind(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()

	first := createTestSheet(t, db, models.SheetKindCount)
	second := createTestSheet(t, db, models.SheetKindCount)
	receipt := createTestSheet(t, db, models.SheetKindReceipt)

	s1, err := LoadSheet(ctx, db, first)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s2, _ := LoadSheet(ctx, db, second)
	r1, _ := LoadSheet(ctx, db, receipt)

	if s1.Number != "SAY001" || s2.Number != "SAY002" {
		t.Fatalf("expected SAY001/SAY002, got %s/%s", s1.Number, s2.Number)
	}
	if r1.Number != "MK001" {
		t.Fatalf("expected MK001, got %s", r1.Number)
	}
	if len(s1.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(s1.Lines))
	}
	if s1.Status != models.SheetStatusPending {
		t.Fatalf("expected pending, got %s", s1.Status)
	}
}

func TestCreateSheet_RejectsEmptyLinesAndBadQty(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()

	if _, err := CreateSheet(ctx, db, nil, 1, CreateInput{Kind: models.SheetKindCount, Title: "x"}); err == nil {
		t.Fatalf("expected error for empty lines")
	}
	_, err := CreateSheet(ctx, db, nil, 1, CreateInput{
		Kind:  models.SheetKindCount,
		Title: "x",
		Lines: []LineInput{{Code: "URN-001", ProductName: "Ayran 1L", ExpectedQty: 0}},
	})
	if err == nil {
		t.Fatalf("expected error for zero expected qty")
	}
}

func TestRecordScan_AccumulatesAcrossScans(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindCount)

	out, err := RecordScan(ctx, db, nil, 1, id, "URN-001", 4)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if out.Added != 4 || out.Total != 4 || out.Expected != 10 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	out, err = RecordScan(ctx, db, nil, 1, id, "URN-001", 7)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if out.Total != 11 {
		t.Fatalf("expected running total 11, got %d", out.Total)
	}

	sheet, err := LoadSheet(ctx, db, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sheet.Lines[0].Counted() != 11 {
		t.Fatalf("expected persisted total 11, got %d", sheet.Lines[0].Counted())
	}
	if sheet.Lines[0].LastScanAt == nil {
		t.Fatalf("expected last scan timestamp")
	}
	if sheet.Lines[1].CountedQty != nil {
		t.Fatalf("other line must stay uncounted")
	}
}

func TestRecordScan_UnknownCodeLeavesSheetUntouched(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindCount)

	if _, err := RecordScan(ctx, db, nil, 1, id, "NOPE", 1); !errors.Is(err, reconcile.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}

	sheet, _ := LoadSheet(ctx, db, id)
	for _, line := range sheet.Lines {
		if line.CountedQty != nil {
			t.Fatalf("no line should be counted after a missed scan")
		}
	}
}

func TestRecordScan_RejectedOnCompletedSheet(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindCount)

	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := RecordScan(ctx, db, nil, 1, id, "URN-001", 1); !errors.Is(err, reconcile.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestCompleteSheet_CountSheetAllowsGaps(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindCount)

	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); err != nil {
		t.Fatalf("complete count sheet with gaps: %v", err)
	}

	sheet, _ := LoadSheet(ctx, db, id)
	if !sheet.Completed() {
		t.Fatalf("expected completed status")
	}
	if sheet.CompletedAt == nil || sheet.CompletedBy != "worker" {
		t.Fatalf("completion stamp missing: %+v", sheet)
	}
}

func TestCompleteSheet_ReceiptRequiresFullCoverage(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindReceipt)

	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); !errors.Is(err, reconcile.ErrIncompleteLines) {
		t.Fatalf("expected ErrIncompleteLines, got %v", err)
	}

	if _, err := RecordScan(ctx, db, nil, 1, id, "URN-001", 10); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := RecordScan(ctx, db, nil, 1, id, "URN-002", 4); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); err != nil {
		t.Fatalf("complete after full coverage: %v", err)
	}
}

func TestCompleteSheet_SecondCompletionRejected(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	id := createTestSheet(t, db, models.SheetKindCount)

	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := CompleteSheet(ctx, db, nil, 1, id, "worker"); !errors.Is(err, reconcile.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestListSheets_FiltersByKindAndSearch(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	createTestSheet(t, db, models.SheetKindCount)
	createTestSheet(t, db, models.SheetKindReceipt)

	counts, err := ListSheets(ctx, db, models.SheetKindCount, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(counts) != 1 || counts[0].Number != "SAY001" {
		t.Fatalf("unexpected count sheets: %+v", counts)
	}

	hits, err := ListSheets(ctx, db, models.SheetKindReceipt, "Acme")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected one receipt matching Acme, got %d", len(hits))
	}

	misses, err := ListSheets(ctx, db, models.SheetKindReceipt, "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(misses) != 0 {
		t.Fatalf("expected no matches, got %d", len(misses))
	}
}

func TestListByStatus_SplitsPendingAndCompleted(t *testing.T) {
	db := openSheetsTestDB(t)
	ctx := context.Background()
	first := createTestSheet(t, db, models.SheetKindCount)
	createTestSheet(t, db, models.SheetKindCount)

	if err := CompleteSheet(ctx, db, nil, 1, first, "worker"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := ListByStatus(ctx, db, models.SheetKindCount, models.SheetStatusPending)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	completed, err := ListByStatus(ctx, db, models.SheetKindCount, models.SheetStatusCompleted)
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(pending) != 1 || len(completed) != 1 {
		t.Fatalf("expected 1/1, got %d/%d", len(pending), len(completed))
	}
	if completed[0].Number != "SAY001" {
		t.Fatalf("expected SAY001 completed, got %s", completed[0].Number)
	}
}
