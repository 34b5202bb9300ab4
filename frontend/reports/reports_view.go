package reports

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
)

func varianceCell(v *ProductVariance) string {
	if v == nil {
		return `<span class="muted">-</span>`
	}
	return fmt.Sprintf("%s %s (%d line(s))",
		templ.EscapeString(v.Code), templ.EscapeString(v.Name), v.Lines)
}

// ReportsPage renders the statistics tiles and the completed sheet table with
// export links.
func ReportsPage(data PageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><div class="card-head"><h1>Reports</h1>`)
	b.WriteString(`<a class="btn" href="/app/reports/results.csv">Download all results</a></div>`)

	s := data.Stats
	b.WriteString(fmt.Sprintf(
		`<div class="tiles">`+
			`<div class="tile"><span class="tile-num">%d</span><span class="tile-label">Completed sheets</span></div>`+
			`<div class="tile"><span class="tile-num">%d</span><span class="tile-label">Lines</span></div>`+
			`<div class="tile tile-exact"><span class="tile-num">%d</span><span class="tile-label">Exact</span></div>`+
			`<div class="tile tile-short"><span class="tile-num">%d</span><span class="tile-label">Short</span></div>`+
			`<div class="tile tile-over"><span class="tile-num">%d</span><span class="tile-label">Over</span></div>`+
			`<div class="tile"><span class="tile-num">%.1f%%</span><span class="tile-label">Accuracy</span></div>`+
			`</div>`,
		s.CompletedSheets, s.TotalLines, s.Exact, s.Short, s.Over, s.AccuracyPct))

	b.WriteString(`<dl class="meta">`)
	b.WriteString(`<div><dt>Most short product</dt><dd>` + varianceCell(s.MostShort) + `</dd></div>`)
	b.WriteString(`<div><dt>Most over product</dt><dd>` + varianceCell(s.MostOver) + `</dd></div>`)
	b.WriteString(`</dl>`)

	if len(data.Rows) == 0 {
		b.WriteString(`<p class="muted">No completed sheets yet.</p>`)
	} else {
		b.WriteString(`<table><thead><tr><th>Number</th><th>Name</th><th>Completed</th>` +
			`<th>Exact</th><th>Short</th><th>Over</th><th>Uncounted</th><th></th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			b.WriteString(fmt.Sprintf(
				`<tr><td><a href="/app/sheets/%d">%s</a></td><td>%s</td><td>%s</td>`+
					`<td>%d</td><td>%d</td><td>%d</td><td>%d</td>`+
					`<td><a class="btn btn-small" href="/app/reports/sheet/%d.csv">CSV</a></td></tr>`,
				row.ID,
				templ.EscapeString(row.Number),
				templ.EscapeString(row.Heading),
				templ.EscapeString(row.CompletedAt),
				row.Summary.Exact, row.Summary.Short, row.Summary.Over, row.Summary.Uncounted,
				row.ID))
		}
		b.WriteString(`</tbody></table>`)
	}
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Reports", body)
}
