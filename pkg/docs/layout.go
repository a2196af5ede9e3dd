package docs

import (
	"github.com/a11ykit/a11ydocs/pkg/vdom"
	"github.com/a11ykit/a11ydocs/pkg/webcomponents"
)

// ClientScriptPath is where the server and static builds expose the thin
// client.
const ClientScriptPath = "/assets/client.js"

// LivePath is the WebSocket endpoint the thin client connects to.
const LivePath = "/live"

const layoutCSS = `body { font-family: system-ui, sans-serif; margin: 0; display: grid; grid-template-columns: 16rem 1fr; }
header { grid-column: 1 / -1; padding: 1rem 2rem; border-bottom: 1px solid #ddd; }
nav { padding: 1rem 2rem; }
nav a[aria-current] { font-weight: bold; }
main { padding: 1rem 2rem; max-width: 48rem; }`

// layout wraps a page body in the site chrome.
func layout(site *Manifest, page *Page, body string, live bool) *vdom.VNode {
	title := vdom.Text(page.Title)
	if site.Title != "" && site.Title != page.Title {
		title = vdom.Textf("%s · %s", page.Title, site.Title)
	}
	description := page.Description
	if description == "" {
		description = site.Description
	}

	mode := vdom.Data("static", "true")
	if live {
		mode = vdom.Data("live", LivePath)
	}

	return vdom.Fragment(
		vdom.Raw("<!DOCTYPE html>\n"),
		vdom.Html(vdom.Lang("en"),
			vdom.Head(
				vdom.Meta(vdom.Charset("utf-8")),
				vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
				vdom.Title(title),
				vdom.If(description != "", vdom.Meta(vdom.Name("description"), vdom.Content(description))),
				vdom.StyleEl(vdom.Text(layoutCSS)),
				webcomponents.Script(),
				vdom.Script(vdom.Type("module"), vdom.Src(ClientScriptPath)),
			),
			vdom.Body(vdom.Data("page", page.Path), mode,
				vdom.Header(vdom.A(vdom.Href("/"), vdom.Text(siteTitle(site)))),
				navigation(site, page.Path),
				vdom.Main(vdom.Article(vdom.Raw(body))),
			),
		),
	)
}

func navigation(site *Manifest, current string) *vdom.VNode {
	return vdom.Nav(vdom.AriaLabel("Documentation"),
		vdom.Ul(vdom.Range(site.Pages, func(e Entry, _ int) *vdom.VNode {
			return vdom.Li(vdom.A(
				vdom.Href(e.Path),
				vdom.When(e.Path == current, vdom.AriaCurrent("page")),
				vdom.Text(entryTitle(e)),
			))
		})),
	)
}

func siteTitle(site *Manifest) string {
	if site.Title == "" {
		return "Documentation"
	}
	return site.Title
}

func entryTitle(e Entry) string {
	if e.Title == "" {
		return e.Path
	}
	return e.Title
}
