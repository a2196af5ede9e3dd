package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://a11ykit.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config (E100-E119)

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No a11ydocs.json was found in the project directory or any of its parents.",
		DocURL:   docBase + "E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "a11ydocs.json is not valid JSON or has fields of the wrong type.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   docBase + "E102",
	},

	// Content (E200-E219)

	"E200": {
		Category: CategoryContent,
		Message:  "Invalid site manifest",
		Detail:   "site.yaml could not be parsed. It needs a title and a list of pages with title, path and file.",
		DocURL:   docBase + "E200",
	},
	"E201": {
		Category: CategoryContent,
		Message:  "Page file missing",
		Detail:   "A page listed in site.yaml points at a markdown file that does not exist.",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryContent,
		Message:  "Page not found",
		Detail:   "No page in the site is served at this path.",
		DocURL:   docBase + "E202",
	},
	"E203": {
		Category: CategoryContent,
		Message:  "Markdown conversion failed",
		Detail:   "The page could not be converted to HTML.",
		DocURL:   docBase + "E203",
	},
	"E204": {
		Category: CategoryContent,
		Message:  "Duplicate page path",
		Detail:   "Two pages in site.yaml are served at the same path.",
		DocURL:   docBase + "E204",
	},
	"E205": {
		Category: CategoryContent,
		Message:  "Invalid page path",
		Detail:   "Page paths must start with a slash and contain no query or fragment.",
		DocURL:   docBase + "E205",
	},

	// Protocol (E300-E319)

	"E300": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
		Detail:   "The client sent a frame that could not be decoded.",
		DocURL:   docBase + "E300",
	},
	"E301": {
		Category: CategoryProtocol,
		Message:  "Unsupported protocol version",
		Detail:   "The client speaks a protocol version this server does not support. Reload the page.",
		DocURL:   docBase + "E301",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Unknown widget",
		Detail:   "The event names a widget that does not exist on this page.",
		DocURL:   docBase + "E302",
	},
	"E303": {
		Category: CategoryProtocol,
		Message:  "Event queue full",
		Detail:   "The session received events faster than it could apply them.",
		DocURL:   docBase + "E303",
	},
	"E304": {
		Category: CategoryProtocol,
		Message:  "Session not started",
		Detail:   "The client sent an event before its Hello frame.",
		DocURL:   docBase + "E304",
	},
	"E305": {
		Category: CategoryProtocol,
		Message:  "Render too large",
		Detail:   "The widget content does not fit in a single frame; the click was undone.",
		DocURL:   docBase + "E305",
	},

	// Storage (E400-E419)

	"E400": {
		Category: CategoryStorage,
		Message:  "Page cache unavailable",
		Detail:   "The page cache could not be reached. Pages are rendered without it.",
		DocURL:   docBase + "E400",
	},
	"E401": {
		Category: CategoryStorage,
		Message:  "Upload failed",
		Detail:   "A built page could not be uploaded to the publish bucket.",
		DocURL:   docBase + "E401",
	},
	"E402": {
		Category: CategoryStorage,
		Message:  "Output directory not writable",
		Detail:   "The build output directory could not be created or written.",
		DocURL:   docBase + "E402",
	},
	"E403": {
		Category: CategoryStorage,
		Message:  "Publish target not configured",
		Detail:   "Publishing needs a bucket. Set publish.bucket in a11ydocs.json or A11YDOCS_S3_BUCKET.",
		DocURL:   docBase + "E403",
	},

	// CLI (E500-E519)

	"E500": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command-line flag has a value the command cannot use.",
		DocURL:   docBase + "E500",
	},
	"E501": {
		Category: CategoryCLI,
		Message:  "Unknown starter template",
		Detail:   "init was asked for a template that does not exist.",
		DocURL:   docBase + "E501",
	},
	"E502": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		Detail:   "The target directory already contains a11ydocs.json.",
		DocURL:   docBase + "E502",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
