package labels

import (
	"net/http"
	"time"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/sqlite"
)

// ProductLabelsPageQueryHandler renders the label picker.
func ProductLabelsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		products, err := LoadProductLabels(r.Context(), db, nil)
		if err != nil {
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		unread, _ := notifications.UnreadCount(r.Context(), db)
		data := PageData{
			Nav:      nav.BuildTopNavData(session, unread),
			Message:  r.URL.Query().Get("status"),
			Products: products,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductLabelsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render labels page", http.StatusInternalServerError)
			return
		}
	}
}

// ProductLabelsPDFHandler streams barcode labels for the selected products,
// or the whole catalog when nothing is selected.
func ProductLabelsPDFHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes := r.URL.Query()["code"]

		products, err := LoadProductLabels(r.Context(), db, codes)
		if err != nil {
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}
		if len(products) == 0 {
			http.Error(w, "no products to print", http.StatusNotFound)
			return
		}

		pdf, err := renderProductLabelsPDF(products, time.Now())
		if err != nil {
			http.Error(w, "failed to render labels", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="product-labels.pdf"`)
		_, _ = w.Write(pdf)
	}
}
