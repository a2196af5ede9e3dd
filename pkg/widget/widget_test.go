package widget

import (
	"strings"
	"testing"

	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/vdom"
)

func mounted(attrs Attributes) *Widget {
	w := New("w0")
	w.Configure(attrs)
	w.Mount()
	return w
}

func TestConfigFromAttributesDefaults(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  Config
	}{
		{"nil", nil, Config{OptionName: "Feature"}},
		{"empty option name", Attributes{AttrOptionName: ""}, Config{OptionName: "Feature"}},
		{"all set", Attributes{
			AttrOptionName:        "Visibility",
			AttrClassesToToggle:   "invisible",
			AttrAttributeToToggle: "aria-hidden",
		}, Config{OptionName: "Visibility", ClassesToToggle: "invisible", AttributeToToggle: "aria-hidden"}},
		{"classes normalised", Attributes{AttrClassesToToggle: "  sr-only\topacity-0 "},
			Config{OptionName: "Feature", ClassesToToggle: "sr-only opacity-0"}},
		{"attribute lowercased", Attributes{AttrAttributeToToggle: " Hidden "},
			Config{OptionName: "Feature", AttributeToToggle: "hidden"}},
		{"event attribute refused", Attributes{AttrAttributeToToggle: "onclick"},
			Config{OptionName: "Feature"}},
		{"class attribute refused", Attributes{AttrAttributeToToggle: "class"},
			Config{OptionName: "Feature"}},
		{"malformed attribute refused", Attributes{AttrAttributeToToggle: `x" onload="y`},
			Config{OptionName: "Feature"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfigFromAttributes(tt.attrs); got != tt.want {
				t.Errorf("ConfigFromAttributes() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfigureReadsAttributesOnce(t *testing.T) {
	w := New("w0")
	w.Configure(Attributes{AttrOptionName: "First"})
	w.Configure(Attributes{AttrOptionName: "Second"})

	if got := w.Config().OptionName; got != "First" {
		t.Errorf("OptionName = %q, want %q", got, "First")
	}
}

func TestMountWithoutConfigureUsesDefaults(t *testing.T) {
	w := New("w0")
	w.Mount()

	if !w.Mounted() {
		t.Fatal("Mounted() = false after Mount")
	}
	if !strings.Contains(w.HTML(), "Feature") {
		t.Errorf("HTML should contain default label, got %s", w.HTML())
	}
	if w.IsToggled() {
		t.Error("new widget should start untoggled")
	}
}

func TestMountTwiceRendersOnce(t *testing.T) {
	w := mounted(nil)
	w.Mount()

	if w.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", w.Renders())
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	w := mounted(Attributes{AttrOptionName: "Opacity", AttrClassesToToggle: "opacity-0"})

	for _, state := range []string{"off", "on"} {
		first := render.String(w.Render())
		second := render.String(w.Render())
		if first != second {
			t.Errorf("%s: renders differ:\n%s\n%s", state, first, second)
		}
		if first != w.HTML() {
			t.Errorf("%s: Render() differs from last rendered HTML", state)
		}
		w.Toggle()
	}
}

func TestToggleInvolution(t *testing.T) {
	w := mounted(Attributes{AttrClassesToToggle: "sr-only", AttrAttributeToToggle: "aria-hidden"})
	initial := w.HTML()

	w.Toggle()
	if !w.IsToggled() {
		t.Fatal("IsToggled() = false after one toggle")
	}
	if w.HTML() == initial {
		t.Error("HTML should change after one toggle")
	}

	w.Toggle()
	if w.IsToggled() {
		t.Error("IsToggled() = true after two toggles")
	}
	if w.HTML() != initial {
		t.Errorf("HTML after two toggles differs:\n%s\n%s", w.HTML(), initial)
	}
}

func TestDefaultsNeverTouchTarget(t *testing.T) {
	w := mounted(nil)

	for i := 0; i < 2; i++ {
		target := Target(w.Content())
		if target == nil {
			t.Fatal("target not found")
		}
		if len(target.Props) != 0 {
			t.Errorf("state %s: target props = %v, want none", w.State(), target.Props)
		}
		w.Toggle()
	}
}

func TestClassGating(t *testing.T) {
	w := mounted(Attributes{AttrClassesToToggle: "sr-only"})

	if Target(w.Content()).HasClass("sr-only") {
		t.Error("target has sr-only before toggle")
	}
	w.Toggle()
	if !Target(w.Content()).HasClass("sr-only") {
		t.Error("target lacks sr-only after one toggle")
	}
	if _, ok := Target(w.Content()).Attr("aria-hidden"); ok {
		t.Error("no attribute configured, but target gained aria-hidden")
	}
	w.Toggle()
	if Target(w.Content()).HasClass("sr-only") {
		t.Error("target has sr-only after second toggle")
	}
}

func TestAttributeGating(t *testing.T) {
	w := mounted(Attributes{AttrAttributeToToggle: "aria-hidden"})

	if _, ok := Target(w.Content()).Attr("aria-hidden"); ok {
		t.Error("target has aria-hidden before toggle")
	}
	w.Toggle()
	if got, ok := Target(w.Content()).Attr("aria-hidden"); !ok || got != "true" {
		t.Errorf("aria-hidden = %q, %v; want %q, true", got, ok, "true")
	}
	if !strings.Contains(w.HTML(), `aria-hidden="true"`) {
		t.Errorf("HTML lacks aria-hidden=\"true\": %s", w.HTML())
	}
	w.Toggle()
	if _, ok := Target(w.Content()).Attr("aria-hidden"); ok {
		t.Error("target has aria-hidden after second toggle")
	}
}

func TestLabelReflectsPendingAction(t *testing.T) {
	w := mounted(Attributes{AttrOptionName: "Display"})

	if got := ToggleButton(w.Content()).TextContent(); got != "Turn `Display` on" {
		t.Errorf("label = %q, want %q", got, "Turn `Display` on")
	}
	w.Toggle()
	if got := ToggleButton(w.Content()).TextContent(); got != "Turn `Display` off" {
		t.Errorf("label = %q, want %q", got, "Turn `Display` off")
	}
}

func TestVisibilityScenario(t *testing.T) {
	w := mounted(Attributes{AttrOptionName: "Visibility", AttrClassesToToggle: "invisible"})
	initial := w.HTML()

	if !strings.Contains(initial, "Turn `Visibility` on") {
		t.Errorf("initial render lacks on label: %s", initial)
	}
	if Target(w.Content()).HasClass("invisible") {
		t.Error("initial target has invisible class")
	}

	if !w.Activate() {
		t.Fatal("Activate() = false on mounted widget")
	}
	if !strings.Contains(w.HTML(), "Turn `Visibility` off") {
		t.Errorf("toggled render lacks off label: %s", w.HTML())
	}
	if !Target(w.Content()).HasClass("invisible") {
		t.Error("toggled target lacks invisible class")
	}

	w.Activate()
	if w.HTML() != initial {
		t.Errorf("second click did not restore initial output:\n%s\n%s", w.HTML(), initial)
	}
}

func TestActivateUsesLatestButton(t *testing.T) {
	w := mounted(nil)
	old := ToggleButton(w.Content())

	w.Activate()
	if ToggleButton(w.Content()) == old {
		t.Error("re-render should replace the button node")
	}
	w.Activate()
	if w.IsToggled() {
		t.Error("two activations should return to off")
	}
	if w.Renders() != 3 {
		t.Errorf("Renders() = %d, want 3", w.Renders())
	}
}

func TestActivateBeforeMount(t *testing.T) {
	w := New("w0")
	if w.Activate() {
		t.Error("Activate() = true before Mount")
	}
	if w.IsToggled() {
		t.Error("unmounted widget toggled")
	}
}

func TestOnRenderHook(t *testing.T) {
	var seen []string
	w := New("w0")
	w.OnRender(func(w *Widget) { seen = append(seen, w.State().String()) })
	w.Mount()
	w.Toggle()

	if strings.Join(seen, ",") != "off,on" {
		t.Errorf("OnRender states = %v, want [off on]", seen)
	}
}

func TestRenderedStructure(t *testing.T) {
	w := mounted(Attributes{AttrOptionName: "Screen reader", AttrClassesToToggle: "sr-only"})
	html := w.HTML()

	for _, want := range []string{
		"<style>",
		".sr-only {",
		`<tapsi-button part="toggle" style="margin-bottom: 1rem;" variant="brand" data-on-click="true">`,
		"<br>",
		`<div class="playground">`,
		`<tapsi-badge color="info" value="Target Element"></tapsi-badge>`,
		`<tapsi-badge class="ml-2" color="info" value="Content after target element"></tapsi-badge>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML lacks %q:\n%s", want, html)
		}
	}
}

func TestHostUsesShadowRoot(t *testing.T) {
	w := New("w3")
	w.Configure(Attributes{AttrOptionName: "Hidden", AttrClassesToToggle: "hidden"})
	html := render.String(w.Host())

	if !strings.HasPrefix(html, `<visibility-widget classes-to-toggle="hidden" data-widget-id="w3" option-name="Hidden">`) {
		t.Errorf("unexpected host element: %s", html)
	}
	if !strings.Contains(html, `<template shadowrootmode="open"><style>`) {
		t.Errorf("content should sit in a declarative shadow root: %s", html)
	}
}

func TestTargetOnForeignTree(t *testing.T) {
	if Target(vdom.Div()) != nil {
		t.Error("Target() on a tree without playground should be nil")
	}
}

func TestTechniques(t *testing.T) {
	cfg := ConfigFromAttributes(Attributes{
		AttrClassesToToggle:   "sr-only custom",
		AttrAttributeToToggle: "aria-hidden",
	})
	got := cfg.Techniques()

	if len(got) != 2 {
		t.Fatalf("len(Techniques()) = %d, want 2", len(got))
	}
	if got[0].Name != "sr-only" || !got[0].Announced || got[0].Visible {
		t.Errorf("sr-only technique = %+v", got[0])
	}
	if got[1].Name != "aria-hidden" || got[1].Announced || !got[1].Visible {
		t.Errorf("aria-hidden technique = %+v", got[1])
	}
}

func TestStateString(t *testing.T) {
	if On.String() != "on" || Off.String() != "off" {
		t.Errorf("State strings = %q/%q", On.String(), Off.String())
	}
}
