// Package build exports a documentation site as static files.
//
// Every page is rendered in its static form: widgets carry both state
// snapshots and the thin client toggles between them without a server.
//
// # Usage
//
//	builder := build.New(cfg, site, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Built %d pages in %s\n", len(result.Pages), result.Duration)
//
// # Output Structure
//
//	dist/
//	├── index.html
//	├── docs/
//	│   └── visibility/
//	│       └── index.html
//	├── assets/
//	│   └── client.js
//	└── manifest.json
//
// # Manifest
//
// The manifest maps page paths to the files that serve them:
//
//	{
//	  "/": "index.html",
//	  "/docs/visibility": "docs/visibility/index.html"
//	}
package build
