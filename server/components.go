package server

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// view is what a page render produced, read back from the document.
type view struct {
	Title       string
	HeaderTitle string
	Header      string
	Nav         string
	Main        string
}

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// shellPage renders the full document: the four slots with their content.
func shellPage(v view) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w,
			`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(v.Title), `</title>`,
			`<script src="`, htmxScript, `"></script>`,
			`</head><body hx-boost="true" hx-target="#`, mainTarget, `" hx-swap="innerHTML">`,
			`<header class="header-app" id="header">`, v.Header, `</header>`,
			`<nav class="nav-app" id="nav">`, v.Nav, `</nav>`,
			`<main class="main" id="`, mainTarget, `">`, v.Main, `</main>`,
			`<div class="loader" hidden></div>`,
			`</body></html>`,
		)
	})
}

// mainPartial renders the main slot content plus out-of-band updates for
// the header title and the navigation's active link.
func mainPartial(v view) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w,
			`<title>`, templ.EscapeString(v.Title), `</title>`,
			v.Main,
			`<h1 id="page-title" class="header-title" hx-swap-oob="true">`, templ.EscapeString(v.HeaderTitle), `</h1>`,
			`<nav class="nav-app" id="nav" hx-swap-oob="true">`, v.Nav, `</nav>`,
		)
	})
}

func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
