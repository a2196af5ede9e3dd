package widget

// Technique describes how a hiding technique affects layout and assistive
// technology.
type Technique struct {
	Name string

	// Visible is false when sighted users can no longer see the target.
	Visible bool

	// KeepsLayout is true when the target still occupies space.
	KeepsLayout bool

	// Announced is true when screen readers still expose the target.
	Announced bool
}

var knownClasses = map[string]Technique{
	"sr-only":   {Name: "sr-only", Visible: false, KeepsLayout: false, Announced: true},
	"invisible": {Name: "invisible", Visible: false, KeepsLayout: true, Announced: false},
	"hidden":    {Name: "hidden", Visible: false, KeepsLayout: false, Announced: false},
	"opacity-0": {Name: "opacity-0", Visible: false, KeepsLayout: true, Announced: true},
}

var knownAttributes = map[string]Technique{
	"hidden":      {Name: "hidden attribute", Visible: false, KeepsLayout: false, Announced: false},
	"aria-hidden": {Name: "aria-hidden", Visible: true, KeepsLayout: true, Announced: false},
	"inert":       {Name: "inert", Visible: true, KeepsLayout: true, Announced: false},
}

// Techniques returns what toggling c on does to the target, one entry per
// recognised class or attribute. Unknown names are skipped.
func (c Config) Techniques() []Technique {
	var out []Technique
	for _, class := range c.Classes() {
		if t, ok := knownClasses[class]; ok {
			out = append(out, t)
		}
	}
	if t, ok := knownAttributes[c.AttributeToToggle]; ok {
		out = append(out, t)
	}
	return out
}
