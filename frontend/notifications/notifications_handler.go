package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/sqlite"
)

// FeedPageQueryHandler renders the notification feed.
func FeedPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		items, err := List(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load notifications", http.StatusInternalServerError)
			return
		}
		unread := 0
		for _, item := range items {
			if !item.Read {
				unread++
			}
		}

		data := FeedPageData{
			Nav:   nav.BuildTopNavData(session, unread),
			Items: items,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := FeedPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render notifications", http.StatusInternalServerError)
			return
		}
	}
}

// MarkReadCommandHandler flags one entry read, then follows the entry's
// target link when it has one.
func MarkReadCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "missing notification id", http.StatusBadRequest)
			return
		}
		if err := MarkRead(r.Context(), db, id); err != nil {
			http.Error(w, "failed to mark notification read", http.StatusInternalServerError)
			return
		}
		target := r.FormValue("target")
		if target == "" || target[0] != '/' {
			target = "/app/notifications"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// MarkAllReadCommandHandler flags the whole feed read.
func MarkAllReadCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := MarkAllRead(r.Context(), db); err != nil {
			http.Error(w, "failed to mark notifications read", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/app/notifications", http.StatusSeeOther)
	}
}
