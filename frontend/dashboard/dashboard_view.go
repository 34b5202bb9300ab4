package dashboard

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
	"stocktake/frontend/sheets"
	"stocktake/models"
)

func tile(num, label string) string {
	return `<div class="tile"><span class="tile-num">` + num + `</span><span class="tile-label">` + label + `</span></div>`
}

func sheetTable(rows []sheets.SheetRow, linkCount bool) string {
	if len(rows) == 0 {
		return `<p class="muted">Nothing here yet.</p>`
	}
	var b strings.Builder
	b.WriteString(`<table><thead><tr><th>Number</th><th>Name</th><th>Status</th><th>Progress</th><th>Created</th></tr></thead><tbody>`)
	for _, row := range rows {
		heading := row.Title
		if row.SupplierName != "" {
			heading = row.SupplierName
		}
		href := fmt.Sprintf("/app/sheets/%d", row.ID)
		if linkCount && row.Status == models.SheetStatusPending {
			href = fmt.Sprintf("/app/sheets/%d/count", row.ID)
		}
		statusLabel := "Pending"
		if row.Status == models.SheetStatusCompleted {
			statusLabel = "Completed"
		}
		b.WriteString(fmt.Sprintf(
			`<tr><td><a href="%s">%s</a></td><td>%s</td><td><span class="pill pill-%s">%s</span></td><td>%d/%d</td><td>%s</td></tr>`,
			href,
			templ.EscapeString(row.Number),
			templ.EscapeString(heading),
			row.Status, statusLabel,
			row.CountedLines, row.LineCount,
			templ.EscapeString(row.CreatedAt)))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// ManagerDashboardPage renders the manager landing page.
func ManagerDashboardPage(data ManagerPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><h1>Dashboard</h1>`)
	b.WriteString(`<div class="tiles">`)
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.Products), "Products"))
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.PendingCounts), "Pending counts"))
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.PendingReceipts), "Pending receipts"))
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.CompletedCounts), "Completed counts"))
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.CompletedReceipts), "Completed receipts"))
	b.WriteString(`</div>`)

	b.WriteString(`<div class="actions">`)
	b.WriteString(`<a class="btn btn-primary" href="/app/sheets/new?kind=count">New count sheet</a>`)
	b.WriteString(`<a class="btn btn-primary" href="/app/sheets/new?kind=receipt">New goods receipt</a>`)
	b.WriteString(`<a class="btn" href="/app/reports">Reports</a>`)
	b.WriteString(`</div>`)

	b.WriteString(`<h2>Recent sheets</h2>`)
	b.WriteString(sheetTable(data.RecentlyCreated, false))
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Dashboard", body)
}

// WorkerHomePage renders the worker landing page.
func WorkerHomePage(data WorkerPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><h1>Counting</h1>`)
	b.WriteString(`<div class="tiles">`)
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.PendingCounts), "Pending counts"))
	b.WriteString(tile(fmt.Sprintf("%d", data.Counts.PendingReceipts), "Pending receipts"))
	b.WriteString(`</div>`)

	b.WriteString(`<div class="actions">`)
	b.WriteString(`<a class="btn btn-primary" href="/app/worker/pending?kind=count">Count sheets</a>`)
	b.WriteString(`<a class="btn btn-primary" href="/app/worker/pending?kind=receipt">Goods receipts</a>`)
	b.WriteString(`<a class="btn" href="/app/worker/completed">Completed</a>`)
	b.WriteString(`</div></section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Counting", body)
}

// WorkerSheetListPage renders pending or completed sheets for workers.
func WorkerSheetListPage(data WorkerPageData) templ.Component {
	var b strings.Builder

	other := models.SheetKindReceipt
	otherLabel := "Goods receipts"
	if data.Kind == models.SheetKindReceipt {
		other = models.SheetKindCount
		otherLabel = "Count sheets"
	}
	base := "/app/worker/completed"
	if data.ShowOpen {
		base = "/app/worker/pending"
	}

	b.WriteString(`<section class="card"><div class="card-head"><h1>` + data.Heading + `</h1>`)
	b.WriteString(`<a class="btn" href="` + base + `?kind=` + other + `">` + otherLabel + `</a></div>`)
	b.WriteString(sheetTable(data.Rows, data.ShowOpen))
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page(data.Heading, body)
}
