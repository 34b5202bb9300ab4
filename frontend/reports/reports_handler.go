package reports

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/sqlite"
	"stocktake/models"
	"stocktake/reconcile"
)

// ReportsPageQueryHandler renders cross-sheet statistics plus the list of
// completed sheets with per-sheet summaries.
func ReportsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		sheets, err := LoadCompletedSheets(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load completed sheets", http.StatusInternalServerError)
			return
		}

		rows := make([]SheetSummaryRow, 0, len(sheets))
		for _, sheet := range sheets {
			heading := sheet.Title
			if sheet.Kind == models.SheetKindReceipt {
				heading = sheet.SupplierName
			}
			row := SheetSummaryRow{
				ID:      sheet.ID,
				Kind:    sheet.Kind,
				Number:  sheet.Number,
				Heading: heading,
				Summary: reconcile.Summarize(sheet.Lines),
			}
			if sheet.CompletedAt != nil {
				row.CompletedAt = sheet.CompletedAt.Format("02/01/2006 15:04")
			}
			rows = append(rows, row)
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := PageData{
			Nav:   nav.BuildTopNavData(session, unread),
			Stats: ComputeStats(sheets),
			Rows:  rows,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReportsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render reports page", http.StatusInternalServerError)
			return
		}
	}
}

func lineRecord(sheet models.Sheet, line models.SheetLine) []string {
	counted := ""
	if line.CountedQty != nil {
		counted = strconv.FormatInt(*line.CountedQty, 10)
	}
	return []string{
		sheet.Number,
		sheet.Kind,
		line.Code,
		line.ProductName,
		strconv.FormatInt(line.ExpectedQty, 10),
		counted,
		string(reconcile.Classify(line)),
	}
}

var csvHeader = []string{"number", "kind", "code", "product", "expected_qty", "counted_qty", "status"}

// ResultsExportCSVHandler streams all completed sheet lines as one CSV.
func ResultsExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheets, err := LoadCompletedSheets(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load completed sheets", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write(csvHeader)
		for _, sheet := range sheets {
			for _, line := range sheet.Lines {
				_ = cw.Write(lineRecord(sheet, line))
			}
		}
		cw.Flush()
	}
}

// SheetExportCSVHandler streams one completed sheet as CSV.
func SheetExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid sheet id", http.StatusBadRequest)
			return
		}

		sheet, err := LoadCompletedSheet(r.Context(), db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "completed sheet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to load sheet", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, sheet.Number))

		cw := csv.NewWriter(w)
		_ = cw.Write(csvHeader)
		for _, line := range sheet.Lines {
			_ = cw.Write(lineRecord(sheet, line))
		}
		cw.Flush()
	}
}
