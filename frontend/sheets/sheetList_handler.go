package sheets

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/sqlite"
	"stocktake/reconcile"
)

// SheetsPageQueryHandler renders the manager list for one sheet kind.
func SheetsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		kind := normalizeKind(r.URL.Query().Get("kind"))
		search := r.URL.Query().Get("q")

		rows, err := ListSheets(r.Context(), db, kind, search)
		if err != nil {
			http.Error(w, "failed to load sheets", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := ListPageData{
			Nav:     nav.BuildTopNavData(session, unread),
			Kind:    kind,
			Search:  search,
			Message: r.URL.Query().Get("status"),
			Rows:    rows,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SheetsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render sheet list", http.StatusInternalServerError)
			return
		}
	}
}

// SheetDetailQueryHandler renders the read-only sheet view with per-line
// classifications and the summary.
func SheetDetailQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseSheetID(r)
		if err != nil {
			http.Error(w, "invalid sheet id", http.StatusBadRequest)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		sheet, err := LoadSheet(r.Context(), db, id)
		if err != nil {
			if IsNotFound(err) {
				http.Error(w, "sheet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to load sheet", http.StatusInternalServerError)
			return
		}

		lines := make([]LineView, 0, len(sheet.Lines))
		for _, line := range sheet.Lines {
			lines = append(lines, LineView{
				Code:        line.Code,
				ProductName: line.ProductName,
				ExpectedQty: line.ExpectedQty,
				CountedQty:  line.CountedQty,
				LastScanAt:  line.LastScanAt,
				Status:      reconcile.Classify(line),
			})
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := DetailPageData{
			Nav:          nav.BuildTopNavData(session, unread),
			ID:           sheet.ID,
			Kind:         sheet.Kind,
			Number:       sheet.Number,
			Title:        sheet.Title,
			SupplierName: sheet.SupplierName,
			Note:         sheet.Note,
			Status:       sheet.Status,
			CreatedBy:    sheet.CreatedBy,
			CreatedAt:    sheet.CreatedAt,
			CompletedBy:  sheet.CompletedBy,
			CompletedAt:  sheet.CompletedAt,
			Summary:      reconcile.Summarize(sheet.Lines),
			Lines:        lines,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SheetDetailPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render sheet detail", http.StatusInternalServerError)
			return
		}
	}
}

func parseSheetID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
