package products

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/sqlite"
)

func openProductsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "products-test.db")
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

func TestCreateAndListProducts(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-002", Name: "Bulgur 5kg", Unit: "bag"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Ayran 1L", Unit: "piece"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := ListProducts(ctx, db, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Code != "URN-001" {
		t.Fatalf("expected code order, got %s first", rows[0].Code)
	}

	hits, err := ListProducts(ctx, db, "Ayran")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Code != "URN-001" {
		t.Fatalf("unexpected search result: %+v", hits)
	}
}

func TestCreateProduct_RejectsMissingFieldsAndDuplicateCode(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: " ", Name: "x"}); err == nil {
		t.Fatalf("expected error for empty code")
	}
	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Ayran 1L"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Duplicate"}); err == nil {
		t.Fatalf("expected unique violation")
	}
}

func TestUpdateProduct_KeepsCode(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Ayran 1L"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, _ := ListProducts(ctx, db, "")
	if err := UpdateProduct(ctx, db, nil, 1, UpdateInput{ID: rows[0].ID, Name: "Ayran 1L Fresh", Unit: "piece"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, _ = ListProducts(ctx, db, "")
	if rows[0].Code != "URN-001" || rows[0].Name != "Ayran 1L Fresh" {
		t.Fatalf("unexpected row after update: %+v", rows[0])
	}
}

func TestDeleteProduct_RefusedWhenReferencedBySheetLine(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Ayran 1L"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, role, created_at, updated_at) VALUES (1, 'manager', 'hash', 'manager', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO sheets (kind, number, title, status, created_by, created_at, updated_at) VALUES ('count', 'SAY001', 'weekly', 'pending', 'manager', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO sheet_lines (sheet_id, code, product_name, expected_qty, created_at) VALUES (1, 'URN-001', 'Ayran 1L', 5, CURRENT_TIMESTAMP)`)
		return err
	})
	if err != nil {
		t.Fatalf("seed sheet line: %v", err)
	}

	rows, _ := ListProducts(ctx, db, "")
	if err := DeleteProduct(ctx, db, nil, 1, rows[0].ID); err == nil {
		t.Fatalf("expected delete refusal for referenced product")
	}
}

func TestDeleteProduct_RemovesUnreferencedEntry(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	if err := CreateProduct(ctx, db, nil, 1, CreateInput{Code: "URN-001", Name: "Ayran 1L"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, _ := ListProducts(ctx, db, "")
	if err := DeleteProduct(ctx, db, nil, 1, rows[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ = ListProducts(ctx, db, "")
	if len(rows) != 0 {
		t.Fatalf("expected empty catalog, got %d rows", len(rows))
	}
}

func TestImportCSV_InvalidHeader(t *testing.T) {
	db := openProductsTestDB(t)

	_, err := ImportCSV(context.Background(), db, nil, 1, strings.NewReader("sku,description\nA,Alpha\n"))
	if err == nil {
		t.Fatalf("expected invalid header error")
	}
	if !strings.Contains(err.Error(), "invalid CSV header") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestImportCSV_InsertUpdateAndErrorCounts(t *testing.T) {
	db := openProductsTestDB(t)
	ctx := context.Background()

	summary, err := ImportCSV(ctx, db, nil, 1, strings.NewReader("code,name,unit\nURN-001,Ayran 1L,piece\nURN-002,Bulgur 5kg,bag\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Inserted != 2 || summary.Updated != 0 || summary.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	summary, err = ImportCSV(ctx, db, nil, 1, strings.NewReader("code,name\nURN-001,Ayran 1L Fresh\n,missing code\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Inserted != 0 || summary.Updated != 1 || summary.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rows, _ := ListProducts(ctx, db, "Fresh")
	if len(rows) != 1 {
		t.Fatalf("expected updated name to be searchable")
	}
}
