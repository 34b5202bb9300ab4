package users

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
)

// UsersListPage renders accounts plus the create form.
func UsersListPage(data PageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><h1>Users</h1>`)
	if data.ErrorMessage != "" {
		b.WriteString(`<div class="alert alert-error">` + templ.EscapeString(data.ErrorMessage) + `</div>`)
	}
	if data.Status != "" {
		b.WriteString(`<div class="alert alert-ok">` + templ.EscapeString(data.Status) + `</div>`)
	}

	b.WriteString(`<form method="POST" action="/app/admin/users" class="inline-form">`)
	b.WriteString(`<input type="text" name="username" placeholder="Username" required>`)
	b.WriteString(`<input type="password" name="password" placeholder="Password" required>`)
	b.WriteString(`<select name="role"><option value="worker">worker</option><option value="manager">manager</option></select>`)
	b.WriteString(`<button class="btn btn-primary" type="submit">Create</button></form>`)

	if len(data.Users) == 0 {
		b.WriteString(`<p class="muted">No users.</p>`)
	} else {
		b.WriteString(`<table><thead><tr><th>ID</th><th>Username</th><th>Role</th><th>Created</th></tr></thead><tbody>`)
		for _, u := range data.Users {
			b.WriteString(`<tr><td>` + strconv.FormatInt(u.ID, 10) + `</td><td>` +
				templ.EscapeString(u.Username) + `</td><td>` +
				templ.EscapeString(u.Role) + `</td><td>` +
				templ.EscapeString(u.CreatedAt) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
	}
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Users", body)
}
