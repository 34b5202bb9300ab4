package sheets

import (
	"time"

	"stocktake/frontend/shared/nav"
	"stocktake/reconcile"
)

// LineInput is one product line picked during sheet creation.
type LineInput struct {
	Code        string
	ProductName string
	ExpectedQty int64
}

// CreateInput carries a new count or receipt sheet.
type CreateInput struct {
	Kind         string
	Title        string
	SupplierName string
	Note         string
	CreatedBy    string
	Lines        []LineInput
}

// SheetRow is one entry on the manager list page.
type SheetRow struct {
	ID           int64  `bun:"id"`
	Number       string `bun:"number"`
	Title        string `bun:"title"`
	SupplierName string `bun:"supplier_name"`
	Status       string `bun:"status"`
	CreatedBy    string `bun:"created_by"`
	CreatedAt    string `bun:"created_at"`
	CompletedAt  string `bun:"completed_at"`
	LineCount    int64  `bun:"line_count"`
	CountedLines int64  `bun:"counted_lines"`
}

// LineView is one classified line for detail and counting screens.
type LineView struct {
	Code        string
	ProductName string
	ExpectedQty int64
	CountedQty  *int64
	LastScanAt  *time.Time
	Status      reconcile.Status
}

// ListPageData drives the manager sheet list.
type ListPageData struct {
	Nav     nav.TopNavData
	Kind    string
	Search  string
	Message string
	Rows    []SheetRow
}

// NewSheetPageData drives the creation form.
type NewSheetPageData struct {
	Nav      nav.TopNavData
	Kind     string
	Message  string
	Products []ProductOption
}

// ProductOption is one selectable catalog product.
type ProductOption struct {
	Code string
	Name string
	Unit string
}

// DetailPageData drives the read-only sheet detail / report view.
type DetailPageData struct {
	Nav          nav.TopNavData
	ID           int64
	Kind         string
	Number       string
	Title        string
	SupplierName string
	Note         string
	Status       string
	CreatedBy    string
	CreatedAt    time.Time
	CompletedBy  string
	CompletedAt  *time.Time
	Summary      reconcile.Summary
	Lines        []LineView
}

// CountPageData drives the worker counting screen.
type CountPageData struct {
	ID           int64
	Kind         string
	Number       string
	Title        string
	SupplierName string
	Status       string
	Nav          nav.TopNavData
	Message      string
	MessageKind  string
	Summary      reconcile.Summary
	Lines        []LineView
}
