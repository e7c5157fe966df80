package theme

import (
	"testing"

	"github.com/odvcencio/gengui/pkg/ui/backend"
)

func TestThemesPopulated(t *testing.T) {
	for _, name := range Names() {
		th, ok := ByName(name)
		if !ok || th == nil {
			t.Fatalf("ByName(%q) failed", name)
		}
		if th.Name != name {
			t.Errorf("theme %q reports name %q", name, th.Name)
		}
		if th.ButtonFocus == th.Button {
			t.Errorf("theme %q: focused button is indistinguishable", name)
		}
		if th.MenuActive == th.MenuItem {
			t.Errorf("theme %q: active menu item is indistinguishable", name)
		}
	}
}

func TestByName_EmptyIsDefault(t *testing.T) {
	th, ok := ByName("")
	if !ok || th.Name != "default" {
		t.Fatalf("ByName(\"\") = %v, %v", th, ok)
	}
}

func TestByName_Unknown(t *testing.T) {
	if _, ok := ByName("solarized"); ok {
		t.Fatal("unknown theme should not resolve")
	}
}

func TestDarkUsesTrueColor(t *testing.T) {
	th := Dark()
	if !th.Window.BG().IsRGB() {
		t.Error("dark window background should be RGB")
	}
	if th.Accent.FG() == backend.ColorDefault {
		t.Error("dark accent should set a foreground")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}
