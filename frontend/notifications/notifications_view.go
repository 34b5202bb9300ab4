package notifications

import (
	"strings"

	"github.com/a-h/templ"

	"stocktake/frontend/shared/html"
	"stocktake/frontend/shared/nav"
	"stocktake/models"
)

// FeedPageData drives the notification feed page.
type FeedPageData struct {
	Nav   nav.TopNavData
	Items []models.Notification
}

func kindBadge(kind string) string {
	labels := map[string]string{
		models.NotificationNewSheet:  "New",
		models.NotificationCompleted: "Completed",
		models.NotificationShortage:  "Shortage",
		models.NotificationOverage:   "Overage",
	}
	label, ok := labels[kind]
	if !ok {
		label = kind
	}
	return `<span class="pill pill-` + templ.EscapeString(kind) + `">` + templ.EscapeString(label) + `</span>`
}

// FeedPage renders the feed newest first with per-entry and mark-all actions.
func FeedPage(data FeedPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section class="card"><div class="card-head"><h1>Notifications</h1>`)
	b.WriteString(`<form method="POST" action="/app/api/notifications/read-all">` +
		`<button class="btn" type="submit">Mark all read</button></form></div>`)

	if len(data.Items) == 0 {
		b.WriteString(`<p class="muted">No notifications.</p>`)
	} else {
		b.WriteString(`<ul class="feed">`)
		for _, item := range data.Items {
			cls := "feed-item"
			if !item.Read {
				cls += " feed-unread"
			}
			b.WriteString(`<li class="` + cls + `">`)
			b.WriteString(kindBadge(item.Kind))
			b.WriteString(`<span class="feed-msg">` + templ.EscapeString(item.Message) + `</span>`)
			b.WriteString(`<span class="feed-time">` + item.HappenedAt.Format("02/01/2006 15:04") + `</span>`)
			b.WriteString(`<form method="POST" action="/app/api/notifications/` + templ.EscapeString(item.ID) + `/read">`)
			if item.TargetURL != "" {
				b.WriteString(`<input type="hidden" name="target" value="` + templ.EscapeString(item.TargetURL) + `">`)
			}
			b.WriteString(`<button class="btn btn-small" type="submit">Open</button></form>`)
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)

	body := templ.Join(nav.TopNav(data.Nav), html.Raw(`<main class="page">`+b.String()+`</main>`))
	return html.Page("Notifications", body)
}
