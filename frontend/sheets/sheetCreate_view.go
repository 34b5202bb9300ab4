package sheets

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
	"stocktake/models"
)

// NewSheetPage renders the creation form: document fields plus a catalog
// picker with per-product expected quantities.
func NewSheetPage(data NewSheetPageData) templ.Component {
	var b strings.Builder

	kindLabel := "Count Sheet"
	if data.Kind == models.SheetKindReceipt {
		kindLabel = "Goods Receipt"
	}

	b.WriteString(`<section class="card"><h1>New ` + kindLabel + `</h1>`)
	if data.Message != "" {
		b.WriteString(`<div class="alert alert-error">` + templ.EscapeString(data.Message) + `</div>`)
	}
	b.WriteString(`<form method="POST" action="/app/sheets" class="stack">`)
	b.WriteString(`<input type="hidden" name="kind" value="` + data.Kind + `">`)
	if data.Kind == models.SheetKindReceipt {
		b.WriteString(`<label>Supplier<input type="text" name="supplier_name" required></label>`)
	} else {
		b.WriteString(`<label>Sheet name<input type="text" name="title" required></label>`)
	}
	b.WriteString(`<label>Note<textarea name="note" rows="2"></textarea></label>`)

	if len(data.Products) == 0 {
		b.WriteString(`<p class="muted">No products in the catalog yet. <a href="/app/products">Add products</a> first.</p>`)
	} else {
		b.WriteString(`<table><thead><tr><th></th><th>Code</th><th>Name</th><th>Unit</th><th>Expected qty</th></tr></thead><tbody>`)
		for _, p := range data.Products {
			code := templ.EscapeString(p.Code)
			b.WriteString(fmt.Sprintf(
				`<tr><td><input type="checkbox" name="code" value="%s"></td><td>%s</td><td>%s</td><td>%s</td>`+
					`<td><input type="number" name="qty_%s" min="1" value="1" class="qty-input"></td></tr>`,
				code, code, templ.EscapeString(p.Name), templ.EscapeString(p.Unit), code))
		}
		b.WriteString(`</tbody></table>`)
		b.WriteString(`<button class="btn btn-primary" type="submit">Create sheet</button>`)
	}
	b.WriteString(`</form></section>`)

	return pageWithNav(kindLabel, data.Nav, b.String())
}

func pageWithNav(title string, top nav.TopNavData, body string) templ.Component {
	return html.Page(title, templ.Join(nav.TopNav(top), html.Raw(`<main class="page">`+body+`</main>`)))
}
