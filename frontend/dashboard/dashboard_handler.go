package dashboard

import (
	"net/http"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/frontend/sheets"
	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

func normalizeKind(raw string) string {
	if raw == models.SheetKindReceipt {
		return models.SheetKindReceipt
	}
	return models.SheetKindCount
}

func kindHeading(kind, status string) string {
	switch {
	case kind == models.SheetKindReceipt && status == models.SheetStatusPending:
		return "Pending Goods Receipts"
	case kind == models.SheetKindReceipt:
		return "Completed Goods Receipts"
	case status == models.SheetStatusPending:
		return "Pending Count Sheets"
	default:
		return "Completed Count Sheets"
	}
}

// ManagerDashboardHandler renders tiles and recent sheets for managers.
func ManagerDashboardHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		counts, err := LoadCounts(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load dashboard counts", http.StatusInternalServerError)
			return
		}
		recent, err := LoadRecentSheets(r.Context(), db, 10)
		if err != nil {
			http.Error(w, "failed to load recent sheets", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := ManagerPageData{
			Nav:             nav.BuildTopNavData(session, unread),
			Counts:          counts,
			RecentlyCreated: recent,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ManagerDashboardPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
}

// WorkerHomeHandler renders the worker landing page with pending work counts.
func WorkerHomeHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		counts, err := LoadCounts(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load counts", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := WorkerPageData{
			Nav:    nav.BuildTopNavData(session, unread),
			Counts: counts,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := WorkerHomePage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render worker home", http.StatusInternalServerError)
			return
		}
	}
}

func workerListHandler(db *sqlite.DB, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		kind := normalizeKind(r.URL.Query().Get("kind"))

		rows, err := sheets.ListByStatus(r.Context(), db, kind, status)
		if err != nil {
			http.Error(w, "failed to load sheets", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := WorkerPageData{
			Nav:      nav.BuildTopNavData(session, unread),
			Kind:     kind,
			Heading:  kindHeading(kind, status),
			Rows:     rows,
			ShowOpen: status == models.SheetStatusPending,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := WorkerSheetListPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render worker list", http.StatusInternalServerError)
			return
		}
	}
}

// WorkerPendingHandler lists pending sheets of one kind for counting.
func WorkerPendingHandler(db *sqlite.DB) http.HandlerFunc {
	return workerListHandler(db, models.SheetStatusPending)
}

// WorkerCompletedHandler lists completed sheets of one kind, read-only.
func WorkerCompletedHandler(db *sqlite.DB) http.HandlerFunc {
	return workerListHandler(db, models.SheetStatusCompleted)
}
