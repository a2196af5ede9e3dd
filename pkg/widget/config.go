package widget

import "strings"

// TagName is the element name host pages use to place a widget.
const TagName = "visibility-widget"

// Mount attributes read from the host element.
const (
	AttrOptionName        = "option-name"
	AttrClassesToToggle   = "classes-to-toggle"
	AttrAttributeToToggle = "attribute-to-toggle"
)

// DefaultOptionName labels a widget whose option-name is absent or empty.
const DefaultOptionName = "Feature"

// Attributes are the attribute values a host supplies for one widget tag,
// keyed by attribute name. An absent key means the attribute was not set.
type Attributes map[string]string

// Get returns the named attribute and whether it was set.
func (a Attributes) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[name]
	return v, ok
}

// Config is the immutable configuration of a widget.
type Config struct {
	// OptionName is the human-readable label of the demonstrated technique.
	OptionName string

	// ClassesToToggle holds zero or more space-separated class names
	// applied to the target only while toggled on.
	ClassesToToggle string

	// AttributeToToggle is a boolean-style attribute applied to the target
	// only while toggled on. Empty means no attribute is ever applied.
	AttributeToToggle string
}

// ConfigFromAttributes applies the mount defaults to attrs. It never fails:
// an absent or empty option-name becomes DefaultOptionName, absent classes
// become the empty list, and an absent or unusable attribute name disables
// attribute toggling. The attribute name is trimmed and lowercased; class,
// on* event handlers and names with characters outside [a-z0-9_.:-] are
// refused.
func ConfigFromAttributes(attrs Attributes) Config {
	cfg := Config{OptionName: DefaultOptionName}

	if name, _ := attrs.Get(AttrOptionName); name != "" {
		cfg.OptionName = name
	}
	if classes, ok := attrs.Get(AttrClassesToToggle); ok {
		cfg.ClassesToToggle = strings.Join(strings.Fields(classes), " ")
	}
	if attr, ok := attrs.Get(AttrAttributeToToggle); ok {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if validAttributeName(attr) {
			cfg.AttributeToToggle = attr
		}
	}
	return cfg
}

// Attributes returns the mount attributes that reproduce cfg.
func (c Config) Attributes() Attributes {
	attrs := Attributes{AttrOptionName: c.OptionName}
	if c.ClassesToToggle != "" {
		attrs[AttrClassesToToggle] = c.ClassesToToggle
	}
	if c.AttributeToToggle != "" {
		attrs[AttrAttributeToToggle] = c.AttributeToToggle
	}
	return attrs
}

// Classes returns the individual class names to toggle.
func (c Config) Classes() []string {
	return strings.Fields(c.ClassesToToggle)
}

// validAttributeName accepts plain attribute names. Event handler
// attributes and class are refused since toggling them would inject script
// or clobber the class list.
func validAttributeName(name string) bool {
	if name == "" || name == "class" || strings.HasPrefix(name, "on") {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.' || r == ':'):
		default:
			return false
		}
	}
	return true
}
