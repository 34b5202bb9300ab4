package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page wraps a body component in the shared document chrome. The CSRF helper
// script is appended so plain POST forms pick up the token cookie.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + ` - Stocktake</title>` +
			`<link rel="stylesheet" href="/assets/app.css"></head><body>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, CSRFFormScript()+`</body></html>`)
		return err
	})
}

// Raw adapts a prebuilt markup string into a component. Callers are
// responsible for escaping anything user-provided.
func Raw(markup string) templ.Component {
	return templ.Raw(markup)
}
