// Package templates scaffolds new documentation sites.
//
// # Available Templates
//
//   - minimal: a config file, a manifest and one page with a widget
//   - hiding: a tour of the common hiding techniques, one widget each
//
// # Usage
//
//	tmpl, err := templates.Get("hiding")
//	if err != nil {
//	    return err
//	}
//	files, err := tmpl.Create(dir, templates.Config{SiteName: "Design system"})
//
// # Template Variables
//
//	{{.SiteName}}    - site title shown in the page header
//	{{.Description}} - one line under the title
//	{{.Bucket}}      - optional publish bucket
//
// The json function quotes a value for a11ydocs.json.
package templates
