package reports

import (
	"stocktake/frontend/shared/nav"
	"stocktake/reconcile"
)

// SheetSummaryRow is one completed sheet on the reports page.
type SheetSummaryRow struct {
	ID          int64
	Kind        string
	Number      string
	Heading     string
	CompletedAt string
	Summary     reconcile.Summary
}

// PageData drives the reports page.
type PageData struct {
	Nav   nav.TopNavData
	Stats Stats
	Rows  []SheetSummaryRow
}
