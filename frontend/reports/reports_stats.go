package reports

import (
	"stocktake/models"
	"stocktake/reconcile"
)

// ProductVariance is a product with the number of short or over lines it
// produced across completed sheets.
type ProductVariance struct {
	Code  string
	Name  string
	Lines int
}

// Stats aggregates reconciliation results across completed sheets.
type Stats struct {
	CompletedSheets int
	TotalLines      int
	Exact           int
	Short           int
	Over            int
	Uncounted       int
	AccuracyPct     float64
	MostShort       *ProductVariance
	MostOver        *ProductVariance
}

// ComputeStats folds completed sheets into cross-sheet statistics. Pending
// sheets are ignored. Accuracy is the share of exact lines over all lines,
// zero when there are no lines. The most-short and most-over products are
// picked by how many short or over lines they produced, not by quantity; on
// a tie the product seen first wins.
func ComputeStats(sheets []models.Sheet) Stats {
	stats := Stats{}
	type acc struct {
		name  string
		short int
		over  int
	}
	variance := make(map[string]*acc)
	order := make([]string, 0)

	for _, sheet := range sheets {
		if !sheet.Completed() {
			continue
		}
		stats.CompletedSheets++
		for _, line := range sheet.Lines {
			stats.TotalLines++
			v, ok := variance[line.Code]
			if !ok {
				v = &acc{name: line.ProductName}
				variance[line.Code] = v
				order = append(order, line.Code)
			}
			switch reconcile.Classify(line) {
			case reconcile.StatusExact:
				stats.Exact++
			case reconcile.StatusShort:
				stats.Short++
				v.short++
			case reconcile.StatusOver:
				stats.Over++
				v.over++
			case reconcile.StatusUncounted:
				stats.Uncounted++
			}
		}
	}

	if stats.TotalLines > 0 {
		stats.AccuracyPct = float64(stats.Exact) / float64(stats.TotalLines) * 100
	}

	for _, code := range order {
		v := variance[code]
		if v.short > 0 && (stats.MostShort == nil || v.short > stats.MostShort.Lines) {
			stats.MostShort = &ProductVariance{Code: code, Name: v.name, Lines: v.short}
		}
		if v.over > 0 && (stats.MostOver == nil || v.over > stats.MostOver.Lines) {
			stats.MostOver = &ProductVariance{Code: code, Name: v.name, Lines: v.over}
		}
	}
	return stats
}
