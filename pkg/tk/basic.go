package tk

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gengui/pkg/ui/backend"
)

var (
	frameSpecs       = specs(commonOpts, classicLook, sizeOpts, padOpts)
	themedFrameSpecs = specs(commonOpts, themedLook, sizeOpts, paddingOpts, []optSpec{
		integer("borderwidth", 0),
		enum("relief", "flat", reliefs),
	})
	labelFrameSpecs       = specs(frameSpecs, []optSpec{str("text", ""), enum("labelanchor", "nw", anchors)})
	themedLabelFrameSpecs = specs(themedFrameSpecs, []optSpec{str("text", ""), enum("labelanchor", "nw", anchors)})

	labelSpecs       = specs(commonOpts, classicLook, sizeOpts, padOpts, textOpts, stateOpts)
	themedLabelSpecs = specs(commonOpts, themedLook, sizeOpts, paddingOpts, textOpts, stateOpts, []optSpec{
		colorOpt("background"),
		colorOpt("foreground"),
		integer("borderwidth", 0),
		enum("relief", "flat", reliefs),
	})
	messageSpecs = specs(commonOpts, classicLook, padOpts, []optSpec{
		str("text", ""),
		varOpt("textvariable"),
		enum("anchor", "center", anchors),
		enum("justify", "left", []string{"center", "left", "right"}),
		integer("width", 0),
		integer("aspect", 150),
	})
	separatorSpecs   = specs(commonOpts, themedLook, []optSpec{enum("orient", "horizontal", orients)})
	progressbarSpecs = specs(commonOpts, themedLook, []optSpec{
		enum("orient", "horizontal", orients),
		integer("length", 20),
		enum("mode", "determinate", []string{"determinate", "indeterminate"}),
		float("maximum", "100"),
		float("value", "0"),
		varOpt("variable"),
		integer("phase", 0),
	})
	canvasSpecs = specs(commonOpts, classicLook, padOpts, []optSpec{
		integer("width", 20),
		integer("height", 6),
		str("scrollregion", ""),
		boolean("confine", "1"),
		colorOpt("selectbackground"),
	})
)

// Frame is a plain container.
type Frame struct {
	core
}

// NewFrame creates a Frame.
func NewFrame(parent Widget, name string, opts Options) (*Frame, error) {
	return newFrame(parent, name, opts, "Frame", frameSpecs)
}

func newThemedFrame(parent Widget, name string, opts Options) (*Frame, error) {
	return newFrame(parent, name, opts, "TFrame", themedFrameSpecs)
}

func newFrame(parent Widget, name string, opts Options, class string, list []optSpec) (*Frame, error) {
	f := &Frame{}
	if err := f.init(f, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// LabelFrame is a container drawn with a border and a caption in it.
type LabelFrame struct {
	core
}

// NewLabelFrame creates a LabelFrame.
func NewLabelFrame(parent Widget, name string, opts Options) (*LabelFrame, error) {
	return newLabelFrame(parent, name, opts, "Labelframe", labelFrameSpecs)
}

func newThemedLabelFrame(parent Widget, name string, opts Options) (*LabelFrame, error) {
	return newLabelFrame(parent, name, opts, "TLabelframe", themedLabelFrameSpecs)
}

func newLabelFrame(parent Widget, name string, opts Options, class string, list []optSpec) (*LabelFrame, error) {
	f := &LabelFrame{}
	if err := f.init(f, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *LabelFrame) insets() (top, right, bottom, left int) {
	px, py := f.opts.getInt("padx"), f.opts.getInt("pady")
	p := f.opts.getInt("padding")
	return 1 + py + p, 1 + px + p, 1 + py + p, 1 + px + p
}

func (f *LabelFrame) natural() Size {
	s := f.sized(Size{})
	s.Width = max(s.Width, textWidth(f.opts.get("text"))+4)
	return s
}

func (f *LabelFrame) draw(buf *Buffer, dc *drawContext) {
	buf.Fill(f.bounds, ' ', f.style(dc.theme.Surface))
	buf.DrawBox(f.bounds, f.style(dc.theme.Border))
	if text := f.opts.get("text"); text != "" && f.bounds.Width > 4 {
		label := truncate(text, f.bounds.Width-4)
		x := f.bounds.X + 2
		switch f.opts.get("labelanchor") {
		case "n", "s":
			x = f.bounds.X + (f.bounds.Width-textWidth(label))/2
		case "ne", "se", "e", "en", "es":
			x = f.bounds.X + f.bounds.Width - 2 - textWidth(label)
		}
		y := f.bounds.Y
		if strings.HasPrefix(f.opts.get("labelanchor"), "s") {
			y = f.bounds.Y + f.bounds.Height - 1
		}
		buf.SetString(x, y, label, f.style(dc.theme.Text))
	}
	f.drawChildren(buf, dc)
}

// Label displays a line or block of text.
type Label struct {
	core
}

// NewLabel creates a Label.
func NewLabel(parent Widget, name string, opts Options) (*Label, error) {
	return newLabel(parent, name, opts, "Label", labelSpecs)
}

func newThemedLabel(parent Widget, name string, opts Options) (*Label, error) {
	return newLabel(parent, name, opts, "TLabel", themedLabelSpecs)
}

func newLabel(parent Widget, name string, opts Options, class string, list []optSpec) (*Label, error) {
	l := &Label{}
	if err := l.init(l, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	return l, nil
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.textOf() }

func (l *Label) lines() []string {
	text := l.textOf()
	if wl := l.opts.getInt("wraplength"); wl > 0 {
		return wrapText(text, wl)
	}
	return strings.Split(text, "\n")
}

func (l *Label) natural() Size {
	return l.sized(blockSize(l.lines()))
}

func (l *Label) draw(buf *Buffer, dc *drawContext) {
	l.drawSurface(buf, dc)
	drawLines(buf, l.content(), l.lines(), l.opts.get("anchor"), l.opts.get("justify"), l.style(dc.theme.Text))
}

// Message displays text wrapped to a width.
type Message struct {
	core
}

// NewMessage creates a Message.
func NewMessage(parent Widget, name string, opts Options) (*Message, error) {
	m := &Message{}
	if err := m.init(m, parent, "Message", name, messageSpecs, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// wrapWidth is the explicit width, or one derived from the aspect ratio
// (width*100/height, counting a cell as twice as tall as wide).
func (m *Message) wrapWidth() int {
	if w := m.opts.getInt("width"); w > 0 {
		return w
	}
	total := textWidth(strings.ReplaceAll(m.textOf(), "\n", " "))
	aspect := max(1, m.opts.getInt("aspect"))
	w := 1
	for w < total && w*100 < aspect*2*((total+w-1)/w) {
		w++
	}
	return w
}

func (m *Message) lines() []string {
	return wrapText(m.textOf(), m.wrapWidth())
}

func (m *Message) natural() Size {
	s := blockSize(m.lines())
	t, r, b, l := m.insets()
	return Size{Width: s.Width + l + r, Height: s.Height + t + b}
}

func (m *Message) draw(buf *Buffer, dc *drawContext) {
	m.drawSurface(buf, dc)
	drawLines(buf, m.content(), m.lines(), m.opts.get("anchor"), m.opts.get("justify"), m.style(dc.theme.Text))
}

// Separator draws a horizontal or vertical rule.
type Separator struct {
	core
}

func newSeparator(parent Widget, name string, opts Options) (*Separator, error) {
	s := &Separator{}
	if err := s.init(s, parent, "TSeparator", name, separatorSpecs, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Separator) natural() Size { return Size{Width: 1, Height: 1} }

func (s *Separator) draw(buf *Buffer, dc *drawContext) {
	b := s.bounds
	if s.opts.get("orient") == "vertical" {
		x := b.X + b.Width/2
		for y := b.Y; y < b.Y+b.Height; y++ {
			buf.Set(x, y, '│', dc.theme.Border)
		}
		return
	}
	y := b.Y + b.Height/2
	for x := b.X; x < b.X+b.Width; x++ {
		buf.Set(x, y, '─', dc.theme.Border)
	}
}

// Progressbar shows how far an operation has advanced.
type Progressbar struct {
	core
}

func newProgressbar(parent Widget, name string, opts Options) (*Progressbar, error) {
	p := &Progressbar{}
	if err := p.init(p, parent, "TProgressbar", name, progressbarSpecs, opts); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns the current value, read from the bound variable if any.
func (p *Progressbar) Value() float64 {
	if v, ok := p.vars["variable"]; ok {
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		return f
	}
	return p.opts.getFloat("value")
}

// SetValue stores f in the value option and the bound variable.
func (p *Progressbar) SetValue(f float64) {
	s := formatFloat(f)
	p.opts.values["value"] = s
	if v, ok := p.vars["variable"]; ok {
		v.SetString(s)
	}
}

// Step advances the value by amount, wrapping at maximum.
func (p *Progressbar) Step(amount float64) {
	next := p.Value() + amount
	if limit := p.opts.getFloat("maximum"); limit > 0 && next >= limit {
		next -= limit
	}
	p.SetValue(next)
}

func (p *Progressbar) natural() Size {
	n := max(1, p.opts.getInt("length"))
	if p.opts.get("orient") == "vertical" {
		return Size{Width: 1, Height: n}
	}
	return Size{Width: n, Height: 1}
}

func (p *Progressbar) ratio() float64 {
	limit := p.opts.getFloat("maximum")
	if limit <= 0 {
		return 0
	}
	return min(1, max(0, p.Value()/limit))
}

func (p *Progressbar) draw(buf *Buffer, dc *drawContext) {
	b := p.bounds
	vertical := p.opts.get("orient") == "vertical"
	n := b.Width
	if vertical {
		n = b.Height
	}
	fill := int(float64(n)*p.ratio() + 0.5)
	lo, hi := 0, fill
	if p.opts.get("mode") == "indeterminate" {
		// A block bouncing with the value.
		block := max(1, n/5)
		pos := int(p.Value()) % max(1, 2*(n-block))
		if pos > n-block {
			pos = 2*(n-block) - pos
		}
		lo, hi = pos, pos+block
	}
	for i := 0; i < n; i++ {
		ch, style := '░', dc.theme.Muted
		if i >= lo && i < hi {
			ch, style = '█', dc.theme.Accent
		}
		if vertical {
			buf.Set(b.X, b.Y+b.Height-1-i, ch, style)
		} else {
			buf.Set(b.X+i, b.Y, ch, style)
		}
	}
}

// CanvasItem is a shape drawn on a Canvas, in canvas-relative cells.
type CanvasItem struct {
	ID     int
	Kind   string // "text", "rectangle" or "line"
	X1, Y1 int
	X2, Y2 int
	Text   string
}

// Canvas is a drawing area holding text, rectangle and line items.
type Canvas struct {
	core
	items  []CanvasItem
	nextID int
}

// NewCanvas creates a Canvas.
func NewCanvas(parent Widget, name string, opts Options) (*Canvas, error) {
	c := &Canvas{}
	if err := c.init(c, parent, "Canvas", name, canvasSpecs, opts); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Canvas) add(item CanvasItem) int {
	c.nextID++
	item.ID = c.nextID
	c.items = append(c.items, item)
	return item.ID
}

// CreateText places text with its top-left corner at (x, y).
func (c *Canvas) CreateText(x, y int, text string) int {
	return c.add(CanvasItem{Kind: "text", X1: x, Y1: y, Text: text})
}

// CreateRectangle outlines the box with corners (x1, y1) and (x2, y2).
func (c *Canvas) CreateRectangle(x1, y1, x2, y2 int) int {
	return c.add(CanvasItem{Kind: "rectangle", X1: min(x1, x2), Y1: min(y1, y2), X2: max(x1, x2), Y2: max(y1, y2)})
}

// CreateLine draws a horizontal or vertical line. Diagonal lines are drawn
// as an L through (x2, y1).
func (c *Canvas) CreateLine(x1, y1, x2, y2 int) int {
	return c.add(CanvasItem{Kind: "line", X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// Delete removes the items with the given ids.
func (c *Canvas) Delete(ids ...int) {
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Items returns the items in drawing order.
func (c *Canvas) Items() []CanvasItem {
	out := make([]CanvasItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Canvas) draw(buf *Buffer, dc *drawContext) {
	c.drawSurface(buf, dc)
	area := c.content()
	view := buf.Clip(area)
	style := c.style(dc.theme.Text)
	for _, it := range c.items {
		x1, y1 := area.X+it.X1, area.Y+it.Y1
		x2, y2 := area.X+it.X2, area.Y+it.Y2
		switch it.Kind {
		case "text":
			view.SetString(x1, y1, it.Text, style)
		case "rectangle":
			view.DrawBox(Rect{X: x1, Y: y1, Width: x2 - x1 + 1, Height: y2 - y1 + 1}, style)
		case "line":
			for x := min(x1, x2); x <= max(x1, x2); x++ {
				view.Set(x, y1, '─', style)
			}
			for y := min(y1, y2); y <= max(y1, y2); y++ {
				if y != y1 {
					view.Set(x2, y, '│', style)
				}
			}
		}
	}
}

// blockSize measures a block of lines.
func blockSize(lines []string) Size {
	w := 0
	for _, l := range lines {
		w = max(w, textWidth(l))
	}
	if len(lines) == 1 && lines[0] == "" {
		return Size{}
	}
	return Size{Width: w, Height: len(lines)}
}

// drawLines places a text block in area. anchor positions the block;
// justify aligns lines within it.
func drawLines(buf *Buffer, area Rect, lines []string, anchor, justify string, style backend.Style) {
	size := blockSize(lines)
	bw, bh := min(size.Width, area.Width), min(size.Height, area.Height)
	x, y := area.X+(area.Width-bw)/2, area.Y+(area.Height-bh)/2
	if strings.Contains(anchor, "w") {
		x = area.X
	} else if strings.Contains(anchor, "e") {
		x = area.X + area.Width - bw
	}
	if strings.HasPrefix(anchor, "n") {
		y = area.Y
	} else if strings.HasPrefix(anchor, "s") {
		y = area.Y + area.Height - bh
	}
	for i := 0; i < bh; i++ {
		line := truncate(lines[i], bw)
		lx := x
		switch justify {
		case "center":
			lx = x + (bw-textWidth(line))/2
		case "right":
			lx = x + bw - textWidth(line)
		}
		buf.SetString(lx, y+i, line, style)
	}
}

// wrapText breaks text into lines of at most width cells, at spaces where
// possible.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		var line strings.Builder
		lineW := 0
		flush := func() {
			out = append(out, line.String())
			line.Reset()
			lineW = 0
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		for _, word := range words {
			ww := textWidth(word)
			if lineW > 0 && lineW+1+ww > width {
				flush()
			}
			for ww > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					break
				}
				if lineW > 0 {
					flush()
				}
				out = append(out, head)
				word = word[len(head):]
				ww = textWidth(word)
			}
			if lineW > 0 {
				line.WriteByte(' ')
				lineW++
			}
			line.WriteString(word)
			lineW += ww
		}
		flush()
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
