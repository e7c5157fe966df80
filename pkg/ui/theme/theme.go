// Package theme provides the visual styles toolkit widgets draw with.
package theme

import (
	"sort"

	"github.com/odvcencio/gengui/pkg/ui/backend"
)

// Theme defines the complete visual language for toolkit widgets.
type Theme struct {
	Name string

	// Surfaces
	Window  backend.Style // root and toplevel background
	Surface backend.Style // frames and panels
	Title   backend.Style // window title bars

	// Text
	Text     backend.Style
	Muted    backend.Style
	Disabled backend.Style

	// Interactive
	Button      backend.Style
	ButtonFocus backend.Style
	Field       backend.Style // entry, spinbox, combobox input area
	FieldFocus  backend.Style
	Selection   backend.Style
	Accent      backend.Style

	// Chrome
	Border      backend.Style
	BorderFocus backend.Style
	TabActive   backend.Style
	TabInactive backend.Style

	// Menus
	MenuBar    backend.Style
	MenuItem   backend.Style
	MenuActive backend.Style
}

// Default returns a palette-color theme that works on any terminal.
func Default() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name:        "default",
		Window:      base,
		Surface:     base,
		Title:       base.Reverse(true).Bold(true),
		Text:        base,
		Muted:       base.Dim(true),
		Disabled:    base.Foreground(backend.ColorBrightBlack),
		Button:      base.Bold(true),
		ButtonFocus: base.Reverse(true).Bold(true),
		Field:       base.Underline(true),
		FieldFocus:  base.Underline(true).Foreground(backend.ColorCyan),
		Selection:   base.Reverse(true),
		Accent:      base.Foreground(backend.ColorCyan),
		Border:      base.Foreground(backend.ColorBrightBlack),
		BorderFocus: base.Foreground(backend.ColorCyan),
		TabActive:   base.Bold(true).Underline(true),
		TabInactive: base.Dim(true),
		MenuBar:     base.Reverse(true),
		MenuItem:    base,
		MenuActive:  base.Reverse(true).Bold(true),
	}
}

// Dark returns a true-color theme with deep backgrounds and amber accents.
func Dark() *Theme {
	bg := backend.ColorRGB(18, 18, 24)
	raised := backend.ColorRGB(32, 32, 40)
	text := backend.ColorRGB(240, 238, 232)
	muted := backend.ColorRGB(110, 108, 100)
	amber := backend.ColorRGB(255, 183, 77)
	border := backend.ColorRGB(60, 60, 72)

	base := backend.DefaultStyle().Background(bg).Foreground(text)
	return &Theme{
		Name:        "dark",
		Window:      base,
		Surface:     base,
		Title:       base.Background(raised).Foreground(amber).Bold(true),
		Text:        base,
		Muted:       base.Foreground(muted),
		Disabled:    base.Foreground(muted).Dim(true),
		Button:      base.Background(raised),
		ButtonFocus: base.Background(amber).Foreground(bg).Bold(true),
		Field:       base.Background(raised),
		FieldFocus:  base.Background(raised).Foreground(amber),
		Selection:   base.Background(backend.ColorRGB(60, 60, 80)),
		Accent:      base.Foreground(amber),
		Border:      base.Foreground(border),
		BorderFocus: base.Foreground(amber),
		TabActive:   base.Foreground(amber).Bold(true),
		TabInactive: base.Foreground(muted),
		MenuBar:     base.Background(raised),
		MenuItem:    base.Background(raised),
		MenuActive:  base.Background(amber).Foreground(bg),
	}
}

// Mono returns a theme that uses only attributes, for terminals without color.
func Mono() *Theme {
	th := Default()
	th.Name = "mono"
	base := backend.DefaultStyle()
	th.Disabled = base.Dim(true)
	th.FieldFocus = base.Underline(true).Bold(true)
	th.Accent = base.Bold(true)
	th.Border = base
	th.BorderFocus = base.Bold(true)
	return th
}

var registry = map[string]func() *Theme{
	"default": Default,
	"dark":    Dark,
	"mono":    Mono,
}

// ByName returns the named theme. ok is false for unknown names.
func ByName(name string) (*Theme, bool) {
	if name == "" {
		return Default(), true
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names lists the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Symbols provides consistent iconography.
var Symbols = struct {
	CheckOn   string
	CheckOff  string
	RadioOn   string
	RadioOff  string
	Dropdown  string
	SpinUp    string
	SpinDown  string
	Expanded  string
	Collapsed string
	Knob      string
	Track     string
	Fill      string

	BorderTopLeft     string
	BorderTopRight    string
	BorderBottomLeft  string
	BorderBottomRight string
	BorderHorizontal  string
	BorderVertical    string
}{
	CheckOn:   "[x]",
	CheckOff:  "[ ]",
	RadioOn:   "(*)",
	RadioOff:  "( )",
	Dropdown:  "▾",
	SpinUp:    "▴",
	SpinDown:  "▾",
	Expanded:  "▾",
	Collapsed: "▸",
	Knob:      "●",
	Track:     "─",
	Fill:      "█",

	BorderTopLeft:     "╭",
	BorderTopRight:    "╮",
	BorderBottomLeft:  "╰",
	BorderBottomRight: "╯",
	BorderHorizontal:  "─",
	BorderVertical:    "│",
}
