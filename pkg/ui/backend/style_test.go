package backend

import "testing"

func TestStyle_Attributes(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true)
	if s.Attributes() != AttrBold|AttrUnderline {
		t.Fatalf("attrs = %b", s.Attributes())
	}
	s = s.Bold(false)
	if s.Attributes() != AttrUnderline {
		t.Fatalf("attrs after clear = %b", s.Attributes())
	}
}

func TestStyle_MergeKeepsUnsetColors(t *testing.T) {
	base := DefaultStyle().Foreground(ColorRed).Background(ColorBlue)
	over := DefaultStyle().Foreground(ColorGreen).Bold(true)

	got := base.Merge(over)
	if got.FG() != ColorGreen {
		t.Errorf("FG = %v, want green", got.FG())
	}
	if got.BG() != ColorBlue {
		t.Errorf("BG = %v, want blue (unset on overlay)", got.BG())
	}
	if got.Attributes()&AttrBold == 0 {
		t.Error("bold should carry over")
	}
}

func TestColorRGB(t *testing.T) {
	c := ColorRGB(10, 20, 30)
	if !c.IsRGB() {
		t.Fatal("expected RGB color")
	}
	r, g, b := c.RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("RGB() = %d,%d,%d", r, g, b)
	}
	if ColorDefault.IsRGB() || ColorRed.IsRGB() {
		t.Fatal("palette colors must not report RGB")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{"grey", ColorBrightBlack, true},
		{"#ff8000", ColorRGB(255, 128, 0), true},
		{"#FF8000", ColorRGB(255, 128, 0), true},
		{"#ff80", ColorDefault, false},
		{"#gg0000", ColorDefault, false},
		{"chartreuse", ColorDefault, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

type recordingSurface struct {
	w, h  int
	cells map[[2]int]rune
}

func (r *recordingSurface) Size() (int, int) { return r.w, r.h }
func (r *recordingSurface) SetContent(x, y int, mainc rune, _ []rune, _ Style) {
	r.cells[[2]int{x, y}] = mainc
}

func TestFlush_ClipsAndSkipsContinuations(t *testing.T) {
	s := &recordingSurface{w: 2, h: 1, cells: map[[2]int]rune{}}
	Flush(s, 3, 2, func(x, y int) (rune, Style) {
		if x == 1 {
			return 0, DefaultStyle()
		}
		return 'a' + rune(x), DefaultStyle()
	})
	if len(s.cells) != 1 || s.cells[[2]int{0, 0}] != 'a' {
		t.Fatalf("cells = %v", s.cells)
	}
}
