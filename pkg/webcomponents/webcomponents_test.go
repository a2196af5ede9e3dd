package webcomponents

import (
	"testing"

	"github.com/a11ykit/a11ydocs/pkg/render"
)

func TestRegisterAllIsIdempotent(t *testing.T) {
	RegisterAll()
	RegisterAll()

	if !Registered() {
		t.Fatal("Registered() = false after RegisterAll")
	}
	got := Tags()
	if len(got) != 2 || got[0] != BadgeTag || got[1] != ButtonTag {
		t.Errorf("Tags() = %v, want [%s %s]", got, BadgeTag, ButtonTag)
	}
}

func TestButton(t *testing.T) {
	html := render.String(Button("brand", "Click"))

	want := `<tapsi-button variant="brand">Click</tapsi-button>`
	if html != want {
		t.Errorf("Button() = %q, want %q", html, want)
	}
}

func TestBadge(t *testing.T) {
	html := render.String(Badge("info", "Target Element"))

	want := `<tapsi-badge color="info" value="Target Element"></tapsi-badge>`
	if html != want {
		t.Errorf("Badge() = %q, want %q", html, want)
	}
}

func TestScript(t *testing.T) {
	RegisterAll()
	SetLoaderURL("/assets/components.js")
	defer SetLoaderURL("")

	html := render.String(Script())
	want := `<script data-defines="tapsi-badge tapsi-button" src="/assets/components.js" type="module"></script>`
	if html != want {
		t.Errorf("Script() = %q, want %q", html, want)
	}
}

func TestScriptBeforeRegistration(t *testing.T) {
	mu.Lock()
	saved := registered
	registered = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		registered = saved
		mu.Unlock()
	}()

	if Script() != nil {
		t.Error("Script() should be nil before RegisterAll")
	}
}
