package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stocktake/frontend/notifications"
	sessioncontext "stocktake/frontend/shared/context"
	"stocktake/frontend/shared/nav"
	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/sqlite"
	"stocktake/reconcile"
)

// CountPageQueryHandler renders the worker counting screen. Completed sheets
// redirect to the read-only detail view.
func CountPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
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
		if sheet.Completed() {
			http.Redirect(w, r, "/app/sheets/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
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
		data := CountPageData{
			ID:           sheet.ID,
			Kind:         sheet.Kind,
			Number:       sheet.Number,
			Title:        sheet.Title,
			SupplierName: sheet.SupplierName,
			Status:       sheet.Status,
			Nav:          nav.BuildTopNavData(session, unread),
			Message:      r.URL.Query().Get("msg"),
			MessageKind:  r.URL.Query().Get("kind_msg"),
			Summary:      reconcile.Summarize(sheet.Lines),
			Lines:        lines,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CountPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render count page", http.StatusInternalServerError)
			return
		}
	}
}

// ScanCommandHandler applies one scan to the sheet and redirects back with
// the outcome. An unmatched code leaves the sheet untouched.
func ScanCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseSheetID(r)
		if err != nil {
			http.Error(w, "invalid sheet id", http.StatusBadRequest)
			return
		}
		countURL := "/app/sheets/" + strconv.FormatInt(id, 10) + "/count"
		if err := r.ParseForm(); err != nil {
			redirectMessage(w, r, countURL, "error", "invalid form")
			return
		}

		code := strings.TrimSpace(r.FormValue("code"))
		if code == "" {
			redirectMessage(w, r, countURL, "error", "scan or type a code")
			return
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(defaultOne(r.FormValue("qty"))), 10, 64)
		if err != nil || qty <= 0 {
			redirectMessage(w, r, countURL, "error", "qty must be greater than 0")
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		outcome, err := RecordScan(r.Context(), db, auditSvc, session.UserID, id, code, qty)
		switch {
		case err == nil:
			redirectMessage(w, r, countURL, "ok",
				fmt.Sprintf("%s - %s counted (%d added, total %d/%d)",
					outcome.Code, outcome.ProductName, outcome.Added, outcome.Total, outcome.Expected))
		case errors.Is(err, reconcile.ErrCodeNotFound):
			redirectMessage(w, r, countURL, "error", "code not found: "+code)
		case errors.Is(err, reconcile.ErrAlreadyCompleted):
			http.Redirect(w, r, "/app/sheets/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		case IsNotFound(err):
			http.Error(w, "sheet not found", http.StatusNotFound)
		default:
			redirectMessage(w, r, countURL, "error", "failed to record scan")
		}
	}
}

// CompleteSheetCommandHandler finalizes the sheet. Receipts with uncounted
// lines are rejected; completing twice is rejected.
func CompleteSheetCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseSheetID(r)
		if err != nil {
			http.Error(w, "invalid sheet id", http.StatusBadRequest)
			return
		}
		countURL := "/app/sheets/" + strconv.FormatInt(id, 10) + "/count"

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		err = CompleteSheet(r.Context(), db, auditSvc, session.UserID, id, session.User.Username)
		switch {
		case err == nil:
			http.Redirect(w, r, "/app/sheets/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		case errors.Is(err, reconcile.ErrIncompleteLines):
			redirectMessage(w, r, countURL, "error", "all lines must be counted before completion")
		case errors.Is(err, reconcile.ErrAlreadyCompleted):
			http.Redirect(w, r, "/app/sheets/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		case IsNotFound(err):
			http.Error(w, "sheet not found", http.StatusNotFound)
		default:
			redirectMessage(w, r, countURL, "error", "failed to complete sheet")
		}
	}
}

func redirectMessage(w http.ResponseWriter, r *http.Request, base, kind, msg string) {
	http.Redirect(w, r, base+"?kind_msg="+kind+"&msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func defaultOne(v string) string {
	if strings.TrimSpace(v) == "" {
		return "1"
	}
	return v
}
