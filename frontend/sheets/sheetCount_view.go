package sheets

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/models"
)

// CountPage renders the worker counting screen: scan form first, then the
// running summary and line statuses. The code input keeps focus so a USB
// barcode scanner can fire scans back to back.
func CountPage(data CountPageData) templ.Component {
	var b strings.Builder

	heading := data.Title
	if data.Kind == models.SheetKindReceipt {
		heading = data.SupplierName
	}
	detailURL := fmt.Sprintf("/app/sheets/%d", data.ID)

	b.WriteString(`<section class="card"><div class="card-head"><h1>` +
		templ.EscapeString(data.Number) + ` - ` + templ.EscapeString(heading) + `</h1>` +
		statusPill(data.Status) + `</div>`)

	if data.Message != "" {
		cls := "alert-error"
		if data.MessageKind == "ok" {
			cls = "alert-ok"
		}
		b.WriteString(`<div class="alert ` + cls + `">` + templ.EscapeString(data.Message) + `</div>`)
	}

	b.WriteString(fmt.Sprintf(`<form method="POST" action="/app/api/sheets/%d/scan" class="scan-form">`, data.ID))
	b.WriteString(`<input type="text" name="code" id="scan-code" placeholder="Scan or type a code" autofocus autocomplete="off">`)
	b.WriteString(`<input type="number" name="qty" min="1" value="1" class="qty-input">`)
	b.WriteString(`<button class="btn btn-primary" type="submit">Count</button></form>`)

	b.WriteString(summaryTiles(data.Summary))
	b.WriteString(linesTable(data.Lines, true))

	b.WriteString(`<div class="actions">`)
	b.WriteString(fmt.Sprintf(
		`<form method="POST" action="/app/api/sheets/%d/complete" onsubmit="return confirm('Complete this sheet?');">`+
			`<button class="btn btn-primary" type="submit">Complete</button></form>`, data.ID))
	b.WriteString(`<a class="btn" href="` + detailURL + `">Detail</a></div>`)
	b.WriteString(`</section>`)

	// Re-focus after each redirect so consecutive scans need no clicks.
	b.WriteString(`<script>document.getElementById("scan-code").focus();</script>`)

	return pageWithNav(data.Number, data.Nav, b.String())
}
