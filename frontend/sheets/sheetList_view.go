package sheets

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/models"
)

func kindTitle(kind string) string {
	if kind == models.SheetKindReceipt {
		return "Goods Receipts"
	}
	return "Count Sheets"
}

func statusPill(status string) string {
	label := "Pending"
	if status == models.SheetStatusCompleted {
		label = "Completed"
	}
	return `<span class="pill pill-` + status + `">` + label + `</span>`
}

func sheetHeading(row SheetRow) string {
	if row.SupplierName != "" {
		return row.SupplierName
	}
	return row.Title
}

// SheetsPage renders the manager list for one kind with the search box.
func SheetsPage(data ListPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><div class="card-head"><h1>` + kindTitle(data.Kind) + `</h1>`)
	b.WriteString(`<a class="btn btn-primary" href="/app/sheets/new?kind=` + data.Kind + `">New</a></div>`)

	b.WriteString(`<form method="GET" action="/app/sheets" class="search-form">`)
	b.WriteString(`<input type="hidden" name="kind" value="` + data.Kind + `">`)
	b.WriteString(`<input type="search" name="q" placeholder="Search number or name" value="` +
		templ.EscapeString(data.Search) + `">`)
	b.WriteString(`<button class="btn" type="submit">Search</button></form>`)

	if len(data.Rows) == 0 {
		b.WriteString(`<p class="muted">Nothing here yet.</p>`)
	} else {
		b.WriteString(`<table><thead><tr><th>Number</th><th>Name</th><th>Status</th><th>Progress</th>` +
			`<th>Created</th><th>Completed</th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			b.WriteString(fmt.Sprintf(
				`<tr><td><a href="/app/sheets/%d">%s</a></td><td>%s</td><td>%s</td><td>%d/%d</td><td>%s</td><td>%s</td></tr>`,
				row.ID,
				templ.EscapeString(row.Number),
				templ.EscapeString(sheetHeading(row)),
				statusPill(row.Status),
				row.CountedLines, row.LineCount,
				templ.EscapeString(row.CreatedAt),
				templ.EscapeString(row.CompletedAt)))
		}
		b.WriteString(`</tbody></table>`)
	}
	b.WriteString(`</section>`)

	return pageWithNav(kindTitle(data.Kind), data.Nav, b.String())
}
