package nav

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stocktake/infrastructure/rbac"
	"stocktake/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username    string
	Role        string
	UnreadCount int
	Active      string
}

type link struct {
	Href  string
	Label string
	Key   string
}

var managerLinks = []link{
	{Href: "/app/dashboard", Label: "Dashboard", Key: "dashboard"},
	{Href: "/app/products", Label: "Products", Key: "products"},
	{Href: "/app/sheets?kind=count", Label: "Count Sheets", Key: "counts"},
	{Href: "/app/sheets?kind=receipt", Label: "Goods Receipt", Key: "receipts"},
	{Href: "/app/reports", Label: "Reports", Key: "reports"},
	{Href: "/app/admin/users", Label: "Users", Key: "users"},
}

var workerLinks = []link{
	{Href: "/app/worker", Label: "Home", Key: "home"},
	{Href: "/app/worker/pending?kind=count", Label: "Pending Counts", Key: "counts"},
	{Href: "/app/worker/pending?kind=receipt", Label: "Goods Receipt", Key: "receipts"},
	{Href: "/app/worker/completed", Label: "Completed", Key: "completed"},
}

// BuildTopNavData assembles the nav model from the session.
func BuildTopNavData(session models.Session, unread int) TopNavData {
	return TopNavData{
		Username:    session.User.Username,
		Role:        session.User.Role,
		UnreadCount: unread,
	}
}

// TopNav renders the role-aware navigation bar with the unread
// notification badge.
func TopNav(data TopNavData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links := workerLinks
		if data.Role == rbac.RoleManager {
			links = managerLinks
		}

		out := `<header class="topnav"><span class="brand">Stocktake</span><nav>`
		for _, l := range links {
			cls := "nav-link"
			if l.Key == data.Active {
				cls = "nav-link active"
			}
			out += fmt.Sprintf(`<a class="%s" href="%s">%s</a>`, cls, l.Href, templ.EscapeString(l.Label))
		}
		out += `</nav><div class="nav-right">`
		badge := ""
		if data.UnreadCount > 0 {
			badge = fmt.Sprintf(`<span class="badge">%d</span>`, data.UnreadCount)
		}
		out += fmt.Sprintf(`<a class="nav-link" href="/app/notifications">Notifications%s</a>`, badge)
		out += fmt.Sprintf(`<span class="nav-user">%s (%s)</span>`,
			templ.EscapeString(data.Username), templ.EscapeString(data.Role))
		out += `<form method="POST" action="/logout" class="inline"><button class="btn btn-ghost" type="submit">Logout</button></form>`
		out += `</div></header>`
		_, err := io.WriteString(w, out)
		return err
	})
}
