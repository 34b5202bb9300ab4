package labels

import (
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
)

// ProductLabelsPage renders the picker: check products, download the PDF.
func ProductLabelsPage(data PageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><h1>Barcode Labels</h1>`)
	if data.Message != "" {
		b.WriteString(`<div class="alert alert-error">` + templ.EscapeString(data.Message) + `</div>`)
	}

	if len(data.Products) == 0 {
		b.WriteString(`<p class="muted">No products in the catalog yet.</p>`)
	} else {
		b.WriteString(`<form method="GET" action="/app/labels/products.pdf" class="stack">`)
		b.WriteString(`<table><thead><tr><th></th><th>Code</th><th>Name</th><th>Unit</th></tr></thead><tbody>`)
		for _, p := range data.Products {
			code := templ.EscapeString(p.Code)
			b.WriteString(`<tr><td><input type="checkbox" name="code" value="` + code + `"></td>`)
			b.WriteString(`<td>` + code + `</td><td>` + templ.EscapeString(p.Name) + `</td><td>` +
				templ.EscapeString(p.Unit) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		b.WriteString(`<button class="btn btn-primary" type="submit">Download labels</button>`)
		b.WriteString(`<span class="muted">Nothing checked prints the whole catalog.</span>`)
		b.WriteString(`</form>`)
	}
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Barcode Labels", body)
}
