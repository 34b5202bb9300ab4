package products

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/sqlite"
)

// ProductsPageQueryHandler renders the catalog with inline create and edit
// forms.
func ProductsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		search := r.URL.Query().Get("q")

		rows, err := ListProducts(r.Context(), db, search)
		if err != nil {
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := PageData{
			Nav:     nav.BuildTopNavData(session, unread),
			Message: r.URL.Query().Get("status"),
			Search:  search,
			Rows:    rows,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render products page", http.StatusInternalServerError)
			return
		}
	}
}

func redirectStatus(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/app/products?status="+url.QueryEscape(msg), http.StatusSeeOther)
}

// CreateProductCommandHandler adds one catalog entry.
func CreateProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectStatus(w, r, "Error: invalid form")
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		err := CreateProduct(r.Context(), db, auditSvc, session.UserID, CreateInput{
			Code:        r.FormValue("code"),
			Name:        r.FormValue("name"),
			Unit:        r.FormValue("unit"),
			Description: r.FormValue("description"),
		})
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				redirectStatus(w, r, "Error: code already exists")
				return
			}
			redirectStatus(w, r, "Error: "+err.Error())
			return
		}
		redirectStatus(w, r, "Product created")
	}
}

// UpdateProductCommandHandler edits name, unit and description.
func UpdateProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			redirectStatus(w, r, "Error: invalid product id")
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectStatus(w, r, "Error: invalid form")
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		err = UpdateProduct(r.Context(), db, auditSvc, session.UserID, UpdateInput{
			ID:          id,
			Name:        r.FormValue("name"),
			Unit:        r.FormValue("unit"),
			Description: r.FormValue("description"),
		})
		if err != nil {
			redirectStatus(w, r, "Error: "+err.Error())
			return
		}
		redirectStatus(w, r, "Product updated")
	}
}

// DeleteProductCommandHandler removes one unused catalog entry.
func DeleteProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			redirectStatus(w, r, "Error: invalid product id")
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		if err := DeleteProduct(r.Context(), db, auditSvc, session.UserID, id); err != nil {
			redirectStatus(w, r, "Error: "+err.Error())
			return
		}
		redirectStatus(w, r, "Product deleted")
	}
}

// ImportProductsCommandHandler upserts catalog entries from an uploaded CSV.
func ImportProductsCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			redirectStatus(w, r, "Error: invalid upload")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			redirectStatus(w, r, "Error: file is required")
			return
		}
		defer file.Close()

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		summary, err := ImportCSV(r.Context(), db, auditSvc, session.UserID, file)
		if err != nil {
			redirectStatus(w, r, "Error: "+err.Error())
			return
		}
		redirectStatus(w, r, fmt.Sprintf("Imported: %d inserted, %d updated, %d errors",
			summary.Inserted, summary.Updated, summary.Errors))
	}
}
