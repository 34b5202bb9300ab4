package products

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
)

// ProductsPage renders the catalog: create form, CSV import and the table
// with inline edit/delete per row.
func ProductsPage(data PageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><h1>Products</h1>`)
	if data.Message != "" {
		cls := "alert-ok"
		if strings.HasPrefix(data.Message, "Error") {
			cls = "alert-error"
		}
		b.WriteString(`<div class="alert ` + cls + `">` + templ.EscapeString(data.Message) + `</div>`)
	}

	b.WriteString(`<form method="POST" action="/app/products" class="inline-form">`)
	b.WriteString(`<input type="text" name="code" placeholder="Code" required>`)
	b.WriteString(`<input type="text" name="name" placeholder="Name" required>`)
	b.WriteString(`<input type="text" name="unit" placeholder="Unit">`)
	b.WriteString(`<input type="text" name="description" placeholder="Description">`)
	b.WriteString(`<button class="btn btn-primary" type="submit">Add</button></form>`)

	b.WriteString(`<form method="POST" action="/app/products/import" enctype="multipart/form-data" class="inline-form">`)
	b.WriteString(`<input type="file" name="file" accept=".csv" required>`)
	b.WriteString(`<button class="btn" type="submit">Import CSV</button>`)
	b.WriteString(`<span class="muted">Header: code,name,unit,description</span></form>`)

	b.WriteString(`<form method="GET" action="/app/products" class="search-form">`)
	b.WriteString(`<input type="search" name="q" placeholder="Search code or name" value="` +
		templ.EscapeString(data.Search) + `">`)
	b.WriteString(`<button class="btn" type="submit">Search</button></form>`)

	if len(data.Rows) == 0 {
		b.WriteString(`<p class="muted">No products yet.</p>`)
	} else {
		b.WriteString(`<table><thead><tr><th>Code</th><th>Name</th><th>Unit</th><th>Description</th><th>Updated</th><th></th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			b.WriteString(`<tr><td>` + templ.EscapeString(row.Code) + `</td>`)
			b.WriteString(fmt.Sprintf(`<td colspan="3"><form method="POST" action="/app/products/%d" class="inline-form">`, row.ID))
			b.WriteString(`<input type="text" name="name" value="` + templ.EscapeString(row.Name) + `" required>`)
			b.WriteString(`<input type="text" name="unit" value="` + templ.EscapeString(row.Unit) + `">`)
			b.WriteString(`<input type="text" name="description" value="` + templ.EscapeString(row.Description) + `">`)
			b.WriteString(`<button class="btn btn-small" type="submit">Save</button></form></td>`)
			b.WriteString(`<td>` + templ.EscapeString(row.UpdatedAt) + `</td>`)
			b.WriteString(fmt.Sprintf(
				`<td><form method="POST" action="/app/products/%d/delete" onsubmit="return confirm('Delete %s?');">`+
					`<button class="btn btn-small btn-danger" type="submit">Delete</button></form></td></tr>`,
				row.ID, templ.EscapeString(row.Code)))
		}
		b.WriteString(`</tbody></table>`)
	}
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Products", body)
}
