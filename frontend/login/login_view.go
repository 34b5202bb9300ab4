package login

import (
	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
)

// GetLoginScreen renders the credential form with an optional error banner.
func GetLoginScreen(errorMessage string) templ.Component {
	body := `<div class="login-wrap"><div class="card login-card">` +
		`<h1>Stocktake</h1><p class="muted">Warehouse counting</p>`
	if errorMessage != "" {
		body += `<div class="alert alert-error">` + templ.EscapeString(errorMessage) + `</div>`
	}
	body += `<form method="POST" action="/login" class="stack">` +
		`<label>Username<input type="text" name="username" autocomplete="username" autofocus required></label>` +
		`<label>Password<input type="password" name="password" autocomplete="current-password" required></label>` +
		`<button class="btn btn-primary" type="submit">Sign in</button>` +
		`</form></div></div>`
	return html.Page("Sign in", html.Raw(body))
}
