// Package errors provides structured, actionable errors for a11ydocs.
//
// Every error carries a code (e.g., "E202") that maps to a short message, a
// longer explanation and a documentation link. Content errors can point at
// the offending line of a markdown page or of site.yaml.
//
// # Error Categories
//
//   - config: a11ydocs.json could not be read or holds invalid values
//   - content: site.yaml, markdown pages and widget markup
//   - protocol: live session frames and events
//   - storage: page cache and publishing targets
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("E201").
//	    WithLocation("content/site.yaml", 7, 0).
//	    WithSuggestion("Create content/visibility.md or fix the file entry")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E201: Page file missing
//	//
//	//   content/site.yaml:7
//	//
//	//        5 │ pages:
//	//        6 │   - title: Visibility
//	//     →  7 │     file: visibility.md
//	//
//	//   Hint: Create content/visibility.md or fix the file entry
//	//
//	//   Learn more: https://a11ykit.dev/docs/errors/E201
package errors
