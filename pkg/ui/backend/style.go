package backend

// Color is a terminal color. Values 0-255 are palette entries; RGB colors
// carry a marker bit above the 24 color bits.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	ColorBrightBlack Color = 8
	ColorBrightWhite Color = 15
)

const rgbFlag = 0x01000000

// ColorRGB creates a true color.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b) | rgbFlag)
}

// IsRGB reports whether c is a true color.
func (c Color) IsRGB() bool {
	return c != ColorDefault && c&rgbFlag != 0
}

// RGB returns the components of a true color, or zeros for palette colors.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

// AttrMask is a set of text attributes.
type AttrMask uint32

const (
	AttrBold AttrMask = 1 << iota
	AttrBlink
	AttrReverse
	AttrUnderline
	AttrDim
	AttrItalic
	AttrStrikeThrough
)

// Style combines colors and attributes. The zero Style is not the default
// style; use DefaultStyle.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
	set   uint8
}

const (
	setFG uint8 = 1 << iota
	setBG
)

// DefaultStyle returns default colors with no attributes.
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	s.set |= setFG
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	s.set |= setBG
	return s
}

func (s Style) with(attr AttrMask, on bool) Style {
	if on {
		s.attrs |= attr
	} else {
		s.attrs &^= attr
	}
	return s
}

func (s Style) Bold(on bool) Style          { return s.with(AttrBold, on) }
func (s Style) Italic(on bool) Style        { return s.with(AttrItalic, on) }
func (s Style) Dim(on bool) Style           { return s.with(AttrDim, on) }
func (s Style) Underline(on bool) Style     { return s.with(AttrUnderline, on) }
func (s Style) Reverse(on bool) Style       { return s.with(AttrReverse, on) }
func (s Style) Blink(on bool) Style         { return s.with(AttrBlink, on) }
func (s Style) StrikeThrough(on bool) Style { return s.with(AttrStrikeThrough, on) }

// Merge layers over on top of s: colors explicitly set on over win and
// attributes are combined.
func (s Style) Merge(over Style) Style {
	if over.set&setFG != 0 {
		s.fg = over.fg
		s.set |= setFG
	}
	if over.set&setBG != 0 {
		s.bg = over.bg
		s.set |= setBG
	}
	s.attrs |= over.attrs
	return s
}

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground, background and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}

// ParseColor understands the color names and #rrggbb forms Tk accepts for
// -foreground and -background. ok is false for anything else.
func ParseColor(name string) (Color, bool) {
	if len(name) == 7 && name[0] == '#' {
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexDigit(name[1+2*i])
			lo, ok2 := hexDigit(name[2+2*i])
			if !ok1 || !ok2 {
				return ColorDefault, false
			}
			rgb[i] = hi<<4 | lo
		}
		return ColorRGB(rgb[0], rgb[1], rgb[2]), true
	}
	c, ok := namedColors[name]
	return c, ok
}

var namedColors = map[string]Color{
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
	"gray":    ColorBrightBlack,
	"grey":    ColorBrightBlack,
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
