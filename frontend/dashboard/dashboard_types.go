package dashboard

import (
	"stocktake/frontend/shared/nav"
	"stocktake/frontend/sheets"
)

// Counts is the tile row on the manager dashboard.
type Counts struct {
	Products          int `bun:"products"`
	PendingCounts     int `bun:"pending_counts"`
	PendingReceipts   int `bun:"pending_receipts"`
	CompletedCounts   int `bun:"completed_counts"`
	CompletedReceipts int `bun:"completed_receipts"`
}

// ManagerPageData drives the manager dashboard.
type ManagerPageData struct {
	Nav             nav.TopNavData
	Counts          Counts
	RecentlyCreated []sheets.SheetRow
}

// WorkerPageData drives the worker home and list pages.
type WorkerPageData struct {
	Nav      nav.TopNavData
	Kind     string
	Heading  string
	Counts   Counts
	Rows     []sheets.SheetRow
	ShowOpen bool
}
