package tk

import (
	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
)

var notebookSpecs = specs(commonOpts, themedLook, sizeOpts, paddingOpts)

type tab struct {
	w    Widget
	text string
}

// Notebook shows one of several child panes at a time, chosen by a row of
// tabs on its top line.
type Notebook struct {
	core
	tabs     []tab
	selected int
}

func newNotebook(parent Widget, name string, opts Options) (*Notebook, error) {
	n := &Notebook{selected: -1}
	if err := n.init(n, parent, "TNotebook", name, notebookSpecs, opts); err != nil {
		return nil, err
	}
	return n, nil
}

// Add appends child as a tab labelled text. child must be a child of the
// notebook; it is removed from the notebook's grid. The first tab added is
// selected.
func (n *Notebook) Add(child Widget, text string) error {
	if child.Parent() != Widget(n) {
		return errors.Newf(errors.ErrCodeConfiguration, "can't add %q as slave of %q", child.Name(), n.name)
	}
	for _, t := range n.tabs {
		if t.w == child {
			return errors.Newf(errors.ErrCodeConfiguration, "%q is already managed by %q", child.Name(), n.name)
		}
	}
	child.base().GridForget()
	n.tabs = append(n.tabs, tab{w: child, text: text})
	if n.selected < 0 {
		n.selected = 0
	}
	return nil
}

// Forget removes tab i without destroying its widget.
func (n *Notebook) Forget(i int) error {
	if i < 0 || i >= len(n.tabs) {
		return errors.Newf(errors.ErrCodeInvalidInput, "tab index %d out of range", i)
	}
	n.tabs = append(n.tabs[:i:i], n.tabs[i+1:]...)
	switch {
	case len(n.tabs) == 0:
		n.selected = -1
	case n.selected >= len(n.tabs):
		n.selected = len(n.tabs) - 1
	case n.selected > i:
		n.selected--
	}
	return nil
}

func (n *Notebook) childDestroyed(w Widget) {
	for i, t := range n.tabs {
		if t.w == w {
			_ = n.Forget(i)
			return
		}
	}
}

// Select shows tab i.
func (n *Notebook) Select(i int) error {
	if i < 0 || i >= len(n.tabs) {
		return errors.Newf(errors.ErrCodeInvalidInput, "tab index %d out of range", i)
	}
	n.selected = i
	return nil
}

// Selected returns the index of the shown tab, or -1 when there are none.
func (n *Notebook) Selected() int { return n.selected }

// Tabs returns the tab widgets in order.
func (n *Notebook) Tabs() []Widget {
	out := make([]Widget, len(n.tabs))
	for i, t := range n.tabs {
		out[i] = t.w
	}
	return out
}

// TabText returns the label of tab i.
func (n *Notebook) TabText(i int) string {
	if i < 0 || i >= len(n.tabs) {
		return ""
	}
	return n.tabs[i].text
}

func (n *Notebook) insets() (top, right, bottom, left int) {
	t, r, b, l := n.core.insets()
	return t + 1, r, b, l
}

func (n *Notebook) natural() Size {
	var content Size
	for _, t := range n.tabs {
		req := requested(t.w)
		content.Width = max(content.Width, req.Width)
		content.Height = max(content.Height, req.Height)
	}
	s := n.sized(content)
	s.Width = max(s.Width, n.tabsWidth())
	return s
}

func (n *Notebook) tabsWidth() int {
	w := 0
	for _, t := range n.tabs {
		w += textWidth(t.text) + 3
	}
	return w
}

func (n *Notebook) layout(bounds Rect) {
	n.bounds = bounds
	area := n.content()
	for i, t := range n.tabs {
		if i == n.selected {
			t.w.layout(area)
			continue
		}
		t.w.layout(Rect{})
	}
	n.grid.arrange(area)
}

func (n *Notebook) visibleChildren() []Widget {
	out := n.grid.Slaves()
	if n.selected >= 0 {
		out = append(out, n.tabs[n.selected].w)
	}
	return out
}

func (n *Notebook) takesFocus() bool { return len(n.tabs) > 0 }

func (n *Notebook) handleKey(ev terminal.KeyEvent) bool {
	if len(n.tabs) == 0 {
		return false
	}
	switch ev.Key {
	case terminal.KeyLeft:
		n.selected = (n.selected - 1 + len(n.tabs)) % len(n.tabs)
	case terminal.KeyRight:
		n.selected = (n.selected + 1) % len(n.tabs)
	default:
		return false
	}
	return true
}

func (n *Notebook) handleClick(x, y int) bool {
	if y != 0 {
		return false
	}
	for i, r := range n.tabRects() {
		if x+n.bounds.X >= r.X && x+n.bounds.X < r.X+r.Width {
			n.selected = i
			return true
		}
	}
	return false
}

func (n *Notebook) tabRects() []Rect {
	out := make([]Rect, len(n.tabs))
	x := n.bounds.X
	for i, t := range n.tabs {
		w := textWidth(t.text) + 2
		out[i] = Rect{X: x, Y: n.bounds.Y, Width: w, Height: 1}
		x += w + 1
	}
	return out
}

func (n *Notebook) draw(buf *Buffer, dc *drawContext) {
	n.drawSurface(buf, dc)
	line := Rect{X: n.bounds.X, Y: n.bounds.Y, Width: n.bounds.Width, Height: 1}
	buf.Fill(line, '─', dc.theme.Border)
	for i, r := range n.tabRects() {
		style := dc.theme.TabInactive
		if i == n.selected {
			style = dc.theme.TabActive
			if n.hasFocus(dc) {
				style = style.Reverse(true)
			}
		}
		buf.SetString(r.X, r.Y, " "+n.tabs[i].text+" ", style)
	}
	n.drawChildren(buf, dc)
}
