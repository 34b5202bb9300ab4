package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/a-h/templ"

	"stocktake/models"
	"stocktake/reconcile"
)

func lineStatusPill(status reconcile.Status) string {
	labels := map[reconcile.Status]string{
		reconcile.StatusExact:     "Exact",
		reconcile.StatusShort:     "Short",
		reconcile.StatusOver:      "Over",
		reconcile.StatusUncounted: "Uncounted",
	}
	return `<span class="pill pill-` + string(status) + `">` + labels[status] + `</span>`
}

func countedCell(counted *int64) string {
	if counted == nil {
		return `<span class="muted">-</span>`
	}
	return fmt.Sprintf("%d", *counted)
}

func summaryTiles(s reconcile.Summary) string {
	return fmt.Sprintf(
		`<div class="tiles">`+
			`<div class="tile"><span class="tile-num">%d</span><span class="tile-label">Lines</span></div>`+
			`<div class="tile tile-exact"><span class="tile-num">%d</span><span class="tile-label">Exact</span></div>`+
			`<div class="tile tile-short"><span class="tile-num">%d</span><span class="tile-label">Short</span></div>`+
			`<div class="tile tile-over"><span class="tile-num">%d</span><span class="tile-label">Over</span></div>`+
			`<div class="tile tile-uncounted"><span class="tile-num">%d</span><span class="tile-label">Uncounted</span></div>`+
			`</div>`,
		s.Total, s.Exact, s.Short, s.Over, s.Uncounted)
}

func linesTable(lines []LineView, showScanTime bool) string {
	var b strings.Builder
	b.WriteString(`<table><thead><tr><th>Code</th><th>Product</th><th>Expected</th><th>Counted</th><th>Status</th>`)
	if showScanTime {
		b.WriteString(`<th>Last scan</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, line := range lines {
		b.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td>`,
			templ.EscapeString(line.Code),
			templ.EscapeString(line.ProductName),
			line.ExpectedQty,
			countedCell(line.CountedQty),
			lineStatusPill(line.Status)))
		if showScanTime {
			if line.LastScanAt != nil {
				b.WriteString(`<td>` + line.LastScanAt.Format("02/01/2006 15:04") + `</td>`)
			} else {
				b.WriteString(`<td class="muted">-</td>`)
			}
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// SheetDetailPage renders the read-only sheet view with the reconciliation
// summary and classified lines.
func SheetDetailPage(data DetailPageData) templ.Component {
	var b strings.Builder

	heading := data.Title
	if data.Kind == models.SheetKindReceipt {
		heading = data.SupplierName
	}

	b.WriteString(`<section class="card"><div class="card-head"><h1>` +
		templ.EscapeString(data.Number) + ` - ` + templ.EscapeString(heading) + `</h1>` +
		statusPill(data.Status) + `</div>`)

	b.WriteString(`<dl class="meta">`)
	b.WriteString(`<div><dt>Created by</dt><dd>` + templ.EscapeString(data.CreatedBy) + `</dd></div>`)
	b.WriteString(`<div><dt>Created at</dt><dd>` + data.CreatedAt.Format("02/01/2006 15:04") + `</dd></div>`)
	if data.CompletedAt != nil {
		b.WriteString(`<div><dt>Completed by</dt><dd>` + templ.EscapeString(data.CompletedBy) + `</dd></div>`)
		b.WriteString(`<div><dt>Completed at</dt><dd>` + data.CompletedAt.In(time.Local).Format("02/01/2006 15:04") + `</dd></div>`)
	}
	if data.Note != "" {
		b.WriteString(`<div><dt>Note</dt><dd>` + templ.EscapeString(data.Note) + `</dd></div>`)
	}
	b.WriteString(`</dl>`)

	b.WriteString(summaryTiles(data.Summary))
	b.WriteString(linesTable(data.Lines, true))

	if data.Status == models.SheetStatusPending {
		b.WriteString(fmt.Sprintf(`<a class="btn btn-primary" href="/app/sheets/%d/count">Open counting</a>`, data.ID))
	} else {
		b.WriteString(fmt.Sprintf(`<a class="btn" href="/app/reports/sheet/%d.csv">Download CSV</a>`, data.ID))
	}
	b.WriteString(`</section>`)

	return pageWithNav(data.Number, data.Nav, b.String())
}
