package sheets

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/rbac"
	"stocktake/infrastructure/sqlite"
	"stocktake/models"
)

func normalizeKind(raw string) string {
	if raw == models.SheetKindReceipt {
		return models.SheetKindReceipt
	}
	return models.SheetKindCount
}

// NewSheetPageQueryHandler renders the sheet creation form with the catalog.
func NewSheetPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if session.User.Role != rbac.RoleManager {
			http.Redirect(w, r, "/app/worker", http.StatusSeeOther)
			return
		}

		kind := normalizeKind(r.URL.Query().Get("kind"))
		options, err := LoadProductOptions(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := NewSheetPageData{
			Nav:      nav.BuildTopNavData(session, unread),
			Kind:     kind,
			Message:  strings.TrimSpace(r.URL.Query().Get("error")),
			Products: options,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := NewSheetPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render sheet form", http.StatusInternalServerError)
			return
		}
	}
}

// CreateSheetCommandHandler creates a count or receipt sheet from the picked
// catalog lines.
func CreateSheetCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/sheets/new?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		kind := normalizeKind(r.FormValue("kind"))
		formURL := "/app/sheets/new?kind=" + kind
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		title := strings.TrimSpace(r.FormValue("title"))
		supplier := strings.TrimSpace(r.FormValue("supplier_name"))
		if kind == models.SheetKindCount && title == "" {
			http.Redirect(w, r, formURL+"&error="+url.QueryEscape("sheet name is required"), http.StatusSeeOther)
			return
		}
		if kind == models.SheetKindReceipt && supplier == "" {
			http.Redirect(w, r, formURL+"&error="+url.QueryEscape("supplier name is required"), http.StatusSeeOther)
			return
		}

		codes := r.Form["code"]
		if len(codes) == 0 {
			http.Redirect(w, r, formURL+"&error="+url.QueryEscape("pick at least one product"), http.StatusSeeOther)
			return
		}
		names, err := ResolveProductNames(r.Context(), db, codes)
		if err != nil {
			http.Redirect(w, r, formURL+"&error="+url.QueryEscape("failed to load products"), http.StatusSeeOther)
			return
		}

		lines := make([]LineInput, 0, len(codes))
		for _, code := range codes {
			name, ok := names[code]
			if !ok {
				http.Redirect(w, r, formURL+"&error="+url.QueryEscape("unknown product: "+code), http.StatusSeeOther)
				return
			}
			qty, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("qty_"+code)), 10, 64)
			if err != nil || qty <= 0 {
				http.Redirect(w, r, formURL+"&error="+url.QueryEscape("expected qty must be greater than 0 for "+code), http.StatusSeeOther)
				return
			}
			lines = append(lines, LineInput{Code: code, ProductName: name, ExpectedQty: qty})
		}

		id, err := CreateSheet(r.Context(), db, auditSvc, session.UserID, CreateInput{
			Kind:         kind,
			Title:        title,
			SupplierName: supplier,
			Note:         r.FormValue("note"),
			CreatedBy:    session.User.Username,
			Lines:        lines,
		})
		if err != nil {
			http.Redirect(w, r, formURL+"&error="+url.QueryEscape("failed to create sheet"), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/app/sheets/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
	}
}
