package products

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

// ListProducts returns the catalog ordered by code, optionally filtered by a
// search term against code and name.
func ListProducts(ctx context.Context, db *sqlite.DB, search string) ([]ProductRow, error) {
	rows := make([]ProductRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := `
SELECT id, code, name, COALESCE(unit, '') AS unit, COALESCE(description, '') AS description,
       strftime('%d/%m/%Y %H:%M', created_at) AS created_at,
       strftime('%d/%m/%Y %H:%M', updated_at) AS updated_at
FROM products`
		args := []any{}
		if s := strings.TrimSpace(search); s != "" {
			q += ` WHERE code LIKE ? OR name LIKE ?`
			like := "%" + s + "%"
			args = append(args, like, like)
		}
		q += ` ORDER BY code COLLATE NOCASE ASC`
		return tx.NewRaw(q, args...).Scan(ctx, &rows)
	})
	return rows, err
}

// CreateProduct inserts one catalog entry. Codes are unique.
func CreateProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, input CreateInput) error {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return fmt.Errorf("code and name are required")
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		product := models.Product{
			Code:        code,
			Name:        name,
			Unit:        strings.TrimSpace(input.Unit),
			Description: strings.TrimSpace(input.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := tx.NewInsert().Model(&product).Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, userID, "product.create", "product", code, nil, product)
		}
		return nil
	})
}

// UpdateProduct edits name, unit and description of one entry. Existing sheet
// lines keep their snapshotted names.
func UpdateProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, input UpdateInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Product
		if err := tx.NewSelect().Model(&before).Where("pr.id = ?", input.ID).Limit(1).Scan(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.Product)(nil)).
			Set("name = ?", name).
			Set("unit = ?", strings.TrimSpace(input.Unit)).
			Set("description = ?", strings.TrimSpace(input.Description)).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("id = ?", input.ID).
			Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			after := map[string]string{"name": name, "unit": input.Unit, "description": input.Description}
			return auditSvc.Write(ctx, tx, userID, "product.update", "product", before.Code, before, after)
		}
		return nil
	})
}

// DeleteProduct removes one catalog entry. Entries referenced by sheet lines
// are refused so completed documents stay explainable.
func DeleteProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, id int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var product models.Product
		if err := tx.NewSelect().Model(&product).Where("pr.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return err
		}

		var inUse int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM sheet_lines WHERE code = ?`, product.Code).Scan(ctx, &inUse); err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("product %s is used on %d sheet line(s)", product.Code, inUse)
		}

		if _, err := tx.NewDelete().
			Model((*models.Product)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, userID, "product.delete", "product", product.Code, product, nil)
		}
		return nil
	})
}

// ImportCSV upserts catalog entries from a code,name,unit,description CSV.
// Malformed rows are counted, not fatal.
func ImportCSV(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, reader io.Reader) (ImportSummary, error) {
	summary := ImportSummary{}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "code") || !strings.EqualFold(strings.TrimSpace(header[1]), "name") {
		return summary, fmt.Errorf("invalid CSV header; expected code,name[,unit,description]")
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				summary.Errors++
				continue
			}
			if len(record) < 2 {
				summary.Errors++
				continue
			}
			code := strings.TrimSpace(record[0])
			name := strings.TrimSpace(record[1])
			if code == "" || name == "" {
				summary.Errors++
				continue
			}
			unit := ""
			if len(record) > 2 {
				unit = strings.TrimSpace(record[2])
			}
			description := ""
			if len(record) > 3 {
				description = strings.TrimSpace(record[3])
			}

			var exists int
			if err := tx.NewRaw(`SELECT COUNT(1) FROM products WHERE code = ?`, code).Scan(ctx, &exists); err != nil {
				return err
			}
			if exists > 0 {
				summary.Updated++
			} else {
				summary.Inserted++
			}

			if _, err := tx.ExecContext(ctx, `
INSERT INTO products (code, name, unit, description, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT(code) DO UPDATE SET
  name = excluded.name,
  unit = excluded.unit,
  description = excluded.description,
  updated_at = CURRENT_TIMESTAMP`, code, name, unit, description); err != nil {
				summary.Errors++
			}
		}

		if auditSvc != nil {
			after := map[string]any{"inserted": summary.Inserted, "updated": summary.Updated, "errors": summary.Errors}
			return auditSvc.Write(ctx, tx, userID, "product.import", "product", "csv", nil, after)
		}
		return nil
	})
	return summary, err
}
