package widget

// stylesheet is scoped to the widget's shadow root. The utility classes
// mirror the ones the docs teach so the demo shows their real effect.
const stylesheet = `
figure {
  margin: 1.5rem 0;
}
button {
  border: 2px solid black;
  background: black;
  color: white;
  border-radius: 0.375rem;
  padding: 0.5rem;
  box-shadow: inset 0 1px 2px rgba(0,0,0,0.6);
  margin-right: 0.5rem;
  min-width: 220px;
  cursor: pointer;
}
a {
  text-decoration: underline;
}
.playground {
  background: white;
  display: flex;
  align-items: center;
  gap: 1rem;
  padding: 1rem;
}
.sr-only {
  position: absolute;
  width: 1px;
  height: 1px;
  padding: 0;
  margin: -1px;
  overflow: hidden;
  clip: rect(0, 0, 0, 0);
  white-space: nowrap;
  border-width: 0;
}
.invisible {
  visibility: hidden;
}
.hidden {
  display: none;
}
.opacity-0 {
  opacity: 0;
}
`

// Stylesheet returns the widget's scoped style rules.
func Stylesheet() string {
	return stylesheet
}
