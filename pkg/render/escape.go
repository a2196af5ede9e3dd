package render

import "strings"

// textEscaper escapes text content. Quotes are escaped too so the same
// output is safe inside attribute values produced by naive templates.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally encodes whitespace that would otherwise be
// normalised away by the HTML parser.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// EscapeHTML escapes text for safe inclusion in HTML content.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes text for safe inclusion in a double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeRawText guards raw text elements against premature termination.
// Only a closing tag sequence for the enclosing element can end it.
func escapeRawText(tag, s string) string {
	closing := "</" + tag
	if !strings.Contains(strings.ToLower(s), closing) {
		return s
	}
	var b strings.Builder
	lower := strings.ToLower(s)
	last := 0
	for {
		i := strings.Index(lower[last:], closing)
		if i < 0 {
			break
		}
		b.WriteString(s[last : last+i])
		b.WriteString(`<\/`)
		last += i + 2
	}
	b.WriteString(s[last:])
	return b.String()
}
