package http

import (
	"net/http"

	"stocktake/frontend/dashboard"
	"stocktake/frontend/labels"
	"stocktake/frontend/login"
	"stocktake/frontend/notifications"
	"stocktake/frontend/products"
	"stocktake/frontend/reports"
	"stocktake/frontend/sheets"
	"stocktake/frontend/users"
	"stocktake/infrastructure/rbac"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterManagerRoutes registers the manager-only pages: catalog, sheet
// creation, reports, labels and user administration.
func (s *Server) RegisterManagerRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleManager, "DASHBOARD_VIEW", http.MethodGet, "/app/dashboard")
	r.Get("/dashboard", dashboard.ManagerDashboardHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "PRODUCTS_LIST_VIEW", http.MethodGet, "/app/products")
	r.Get("/products", products.ProductsPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleManager, "PRODUCTS_CREATE", http.MethodPost, "/app/products")
	r.Post("/products", products.CreateProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleManager, "PRODUCTS_EDIT", http.MethodPost, "/app/products/*")
	r.Post("/products/{id}", products.UpdateProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleManager, "PRODUCTS_DELETE", http.MethodPost, "/app/products/*/delete")
	r.Post("/products/{id}/delete", products.DeleteProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleManager, "PRODUCTS_IMPORT", http.MethodPost, "/app/products/import")
	r.Post("/products/import", products.ImportProductsCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleManager, "SHEETS_NEW_VIEW", http.MethodGet, "/app/sheets/new")
	r.Get("/sheets/new", sheets.NewSheetPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleManager, "SHEETS_CREATE", http.MethodPost, "/app/sheets")
	r.Post("/sheets", sheets.CreateSheetCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleManager, "SHEETS_LIST_VIEW", http.MethodGet, "/app/sheets")
	r.Get("/sheets", sheets.SheetsPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "REPORTS_VIEW", http.MethodGet, "/app/reports")
	r.Get("/reports", reports.ReportsPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleManager, "REPORTS_EXPORT_RESULTS", http.MethodGet, "/app/reports/results.csv")
	r.Get("/reports/results.csv", reports.ResultsExportCSVHandler(s.DB))
	s.Rbac.Add(rbac.RoleManager, "REPORTS_EXPORT_SHEET", http.MethodGet, "/app/reports/sheet/*")
	r.Get("/reports/sheet/{id}.csv", reports.SheetExportCSVHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "LABELS_VIEW", http.MethodGet, "/app/labels")
	r.Get("/labels", labels.ProductLabelsPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleManager, "LABELS_PDF", http.MethodGet, "/app/labels/products.pdf")
	r.Get("/labels/products.pdf", labels.ProductLabelsPDFHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/app/admin/users")
	r.Get("/admin/users", users.UsersPageQueryHandler(s.DB, s.UserCache))
	s.Rbac.Add(rbac.RoleManager, "ADMIN_USERS_CREATE", http.MethodPost, "/app/admin/users")
	r.Post("/admin/users", users.CreateUserCommandHandler(s.DB, s.UserCache))
	return r
}

// RegisterWorkerRoutes registers the counting screens.
func (s *Server) RegisterWorkerRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleWorker, "WORKER_HOME_VIEW", http.MethodGet, "/app/worker")
	r.Get("/worker", dashboard.WorkerHomeHandler(s.DB))
	s.Rbac.Add(rbac.RoleWorker, "WORKER_PENDING_VIEW", http.MethodGet, "/app/worker/pending")
	r.Get("/worker/pending", dashboard.WorkerPendingHandler(s.DB))
	s.Rbac.Add(rbac.RoleWorker, "WORKER_COMPLETED_VIEW", http.MethodGet, "/app/worker/completed")
	r.Get("/worker/completed", dashboard.WorkerCompletedHandler(s.DB))

	s.Rbac.Add(rbac.RoleWorker, "SHEET_COUNT_VIEW", http.MethodGet, "/app/sheets/*/count")
	s.Rbac.Add(rbac.RoleManager, "SHEET_COUNT_VIEW", http.MethodGet, "/app/sheets/*/count")
	r.Get("/sheets/{id}/count", sheets.CountPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleWorker, "SHEET_SCAN", http.MethodPost, "/app/api/sheets/*/scan")
	s.Rbac.Add(rbac.RoleManager, "SHEET_SCAN", http.MethodPost, "/app/api/sheets/*/scan")
	r.Post("/api/sheets/{id}/scan", sheets.ScanCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleWorker, "SHEET_COMPLETE", http.MethodPost, "/app/api/sheets/*/complete")
	s.Rbac.Add(rbac.RoleManager, "SHEET_COMPLETE", http.MethodPost, "/app/api/sheets/*/complete")
	r.Post("/api/sheets/{id}/complete", sheets.CompleteSheetCommandHandler(s.DB, s.Audit))
	return r
}

// RegisterSharedRoutes registers pages both roles can reach.
func (s *Server) RegisterSharedRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleManager, "SHEET_DETAIL_VIEW", http.MethodGet, "/app/sheets/*")
	s.Rbac.Add(rbac.RoleWorker, "SHEET_DETAIL_VIEW", http.MethodGet, "/app/sheets/*")
	r.Get("/sheets/{id}", sheets.SheetDetailQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "NOTIFICATIONS_VIEW", http.MethodGet, "/app/notifications")
	s.Rbac.Add(rbac.RoleWorker, "NOTIFICATIONS_VIEW", http.MethodGet, "/app/notifications")
	r.Get("/notifications", notifications.FeedPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "NOTIFICATIONS_READ", http.MethodPost, "/app/api/notifications/*/read")
	s.Rbac.Add(rbac.RoleWorker, "NOTIFICATIONS_READ", http.MethodPost, "/app/api/notifications/*/read")
	r.Post("/api/notifications/{id}/read", notifications.MarkReadCommandHandler(s.DB))

	s.Rbac.Add(rbac.RoleManager, "NOTIFICATIONS_READ_ALL", http.MethodPost, "/app/api/notifications/read-all")
	s.Rbac.Add(rbac.RoleWorker, "NOTIFICATIONS_READ_ALL", http.MethodPost, "/app/api/notifications/read-all")
	r.Post("/api/notifications/read-all", notifications.MarkAllReadCommandHandler(s.DB))
	return r
}
