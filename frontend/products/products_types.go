package products

import "stocktake/frontend/shared/nav"

// ProductRow is one catalog entry on the list page.
type ProductRow struct {
	ID          int64  `bun:"id"`
	Code        string `bun:"code"`
	Name        string `bun:"name"`
	Unit        string `bun:"unit"`
	Description string `bun:"description"`
	CreatedAt   string `bun:"created_at"`
	UpdatedAt   string `bun:"updated_at"`
}

// CreateInput carries a new catalog entry.
type CreateInput struct {
	Code        string
	Name        string
	Unit        string
	Description string
}

// UpdateInput carries edits to an existing entry. The code is immutable; sheet
// lines reference products by code.
type UpdateInput struct {
	ID          int64
	Name        string
	Unit        string
	Description string
}

// ImportSummary reports a CSV import run.
type ImportSummary struct {
	Inserted int
	Updated  int
	Errors   int
}

// PageData drives the catalog page.
type PageData struct {
	Nav     nav.TopNavData
	Message string
	Search  string
	Rows    []ProductRow
}
