package tk

import (
	"context"
	"fmt"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/backend"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

// window is implemented by Root and Toplevel: the widgets that own a focus.
type window interface {
	Widget
	focused() Widget
	setFocus(w Widget)
}

type windowState struct {
	focus Widget
}

func (s *windowState) focused() Widget { return s.focus }

func (s *windowState) setFocus(w Widget) { s.focus = w }

func isWindow(w Widget) bool {
	_, ok := w.(window)
	return ok
}

func windowOf(w Widget) window {
	for w != nil {
		if win, ok := w.(window); ok {
			return win
		}
		w = w.Parent()
	}
	return nil
}

// RootOf returns the Root at the top of w's hierarchy, or nil.
func RootOf(w Widget) *Root {
	for w != nil {
		if r, ok := w.(*Root); ok {
			return r
		}
		w = w.Parent()
	}
	return nil
}

var rootSpecs = specs(commonOpts, classicLook, sizeOpts, padOpts)

// Root is the main window. It owns the menu bar, the stack of toplevel
// windows and the variable namespace, and runs the event loop.
type Root struct {
	core
	windowState

	title     string
	theme     *theme.Theme
	menubar   *Menu
	toplevels []*Toplevel
	vars      map[string]Variable

	menus menuState
	quit  bool
	buf   *Buffer
}

// NewRoot creates a main window.
func NewRoot(title string) *Root {
	r := &Root{
		title: title,
		theme: theme.Default(),
		vars:  make(map[string]Variable),
		menus: menuState{bar: -1},
	}
	// Root options are all defaulted, so init cannot fail.
	_ = r.init(r, nil, "Tk", ".", rootSpecs, nil)
	return r
}

// Title returns the window title.
func (r *Root) Title() string { return r.title }

// SetTitle changes the window title.
func (r *Root) SetTitle(title string) { r.title = title }

// SetTheme changes the theme used for drawing. nil restores the default.
func (r *Root) SetTheme(th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	r.theme = th
}

// Menu returns the menu bar, if one is installed.
func (r *Root) Menu() *Menu { return r.menubar }

// SetMenu installs m as the menu bar.
func (r *Root) SetMenu(m *Menu) { r.menubar = m }

// Toplevels returns the open toplevel windows, bottom first.
func (r *Root) Toplevels() []*Toplevel {
	out := make([]*Toplevel, len(r.toplevels))
	copy(out, r.toplevels)
	return out
}

// FocusGet returns the widget holding keyboard focus in the active window.
func (r *Root) FocusGet() Widget {
	return r.active().focused()
}

// Quit ends the running main loop after the current event.
func (r *Root) Quit() { r.quit = true }

// Var returns the variable registered under name.
func (r *Root) Var(name string) (Variable, bool) {
	v, ok := r.vars[name]
	return v, ok
}

func (r *Root) registerVariable(v Variable) {
	r.vars[v.Name()] = v
}

// lookupVariable resolves a variable option value. Names unknown to the
// root create a StringVar, as Tcl does for a fresh global.
func lookupVariable(w Widget, name string) Variable {
	root := RootOf(w)
	if root != nil {
		if v, ok := root.vars[name]; ok {
			return v
		}
	}
	v := &StringVar{variable: newVariable(name, "")}
	if root != nil {
		root.registerVariable(v)
	}
	return v
}

// forget drops references to a destroyed widget.
func (r *Root) forget(w Widget) {
	if t, ok := w.(*Toplevel); ok {
		for i, x := range r.toplevels {
			if x == t {
				r.toplevels = append(r.toplevels[:i:i], r.toplevels[i+1:]...)
				break
			}
		}
	}
	if m, ok := w.(*Menu); ok {
		if r.menubar == m {
			r.menubar = nil
		}
		r.menus.close()
	}
	if r.focus == w {
		r.focus = nil
	}
	for _, t := range r.toplevels {
		if t.focus == w {
			t.focus = nil
		}
	}
}

func (r *Root) insets() (top, right, bottom, left int) {
	t, rt, b, l := r.core.insets()
	return t + 1, rt, b, l
}

// active returns the window receiving input: the newest toplevel, or the
// root when none is open.
func (r *Root) active() window {
	if n := len(r.toplevels); n > 0 {
		return r.toplevels[n-1]
	}
	return r
}

// Draw lays out and renders the whole window onto s.
func (r *Root) Draw(s backend.Surface) {
	w, h := s.Size()
	if r.buf == nil {
		r.buf = NewBuffer(w, h)
	} else if bw, bh := r.buf.Size(); bw != w || bh != h {
		r.buf = NewBuffer(w, h)
	}
	r.layout(Rect{Width: w, Height: h})
	for _, t := range r.toplevels {
		t.place(w, h)
	}
	r.ensureFocus()

	buf := r.buf
	dc := &drawContext{theme: r.theme, focus: r.active().focused()}
	buf.Clear()
	r.draw(buf, dc)
	r.drawBar(buf)
	for _, t := range r.toplevels {
		t.draw(buf.Clip(t.bounds), dc)
	}
	r.menus.draw(buf, r.theme)
	buf.Flush(s)
}

func (r *Root) drawSurface(buf *Buffer, dc *drawContext) {
	buf.Fill(r.bounds, ' ', r.style(dc.theme.Window))
}

func (r *Root) draw(buf *Buffer, dc *drawContext) {
	r.drawSurface(buf, dc)
	r.drawChildren(buf, dc)
}

// drawBar renders the top line: menu bar entries on the left, title on the
// right.
func (r *Root) drawBar(buf *Buffer) {
	width, _ := buf.Size()
	th := r.theme
	buf.Fill(Rect{Width: width, Height: 1}, ' ', th.MenuBar)
	end := 0
	if r.menubar != nil {
		for i, slot := range r.barSlots() {
			style := th.MenuBar
			if i == r.menus.bar {
				style = th.MenuActive
			}
			buf.SetString(slot.X, 0, " "+r.menubar.entries[i].Label+" ", style)
			end = slot.X + slot.Width
		}
	}
	title := truncate(r.title, max(0, width-end-2))
	x := width - textWidth(title) - 1
	if r.menubar == nil {
		x = (width - textWidth(title)) / 2
	}
	buf.SetString(x, 0, title, th.Title.Merge(th.MenuBar))
}

// barSlots returns the on-screen extent of each menu bar entry.
func (r *Root) barSlots() []Rect {
	if r.menubar == nil {
		return nil
	}
	var out []Rect
	x := 1
	for _, e := range r.menubar.entries {
		w := textWidth(e.Label) + 2
		out = append(out, Rect{X: x, Y: 0, Width: w, Height: 1})
		x += w + 1
	}
	return out
}

func (r *Root) ensureFocus() {
	win := r.active()
	if f := win.focused(); f != nil && focusable(f) && windowOf(f) == win {
		return
	}
	chain := focusChain(win)
	if len(chain) > 0 {
		win.setFocus(chain[0])
		return
	}
	win.setFocus(nil)
}

// focusChain lists the focusable widgets under win in traversal order.
func focusChain(win Widget) []Widget {
	var out []Widget
	var walk func(w Widget)
	walk = func(w Widget) {
		for _, child := range w.visibleChildren() {
			if focusable(child) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(win)
	return out
}

func (r *Root) traverse(step int) {
	win := r.active()
	chain := focusChain(win)
	if len(chain) == 0 {
		return
	}
	idx := -1
	for i, w := range chain {
		if w == win.focused() {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(chain) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(chain)) % len(chain)
	}
	win.setFocus(chain[idx])
}

// HandleEvent dispatches one input event. Windows must have been drawn at
// least once so widget bounds are known.
func (r *Root) HandleEvent(ev terminal.Event) {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		r.handleKeyEvent(e)
	case terminal.MouseEvent:
		if e.Action == terminal.MousePress && e.Button == terminal.MouseLeft {
			r.handleClickEvent(e.X, e.Y)
		}
	case terminal.PasteEvent:
		if f := r.FocusGet(); f != nil {
			for _, ch := range e.Text {
				f.handleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: ch})
			}
		}
	case terminal.InterruptEvent:
		if fn, ok := e.Data.(func()); ok {
			fn()
		}
	}
}

func (r *Root) handleKeyEvent(e terminal.KeyEvent) {
	if e.Key == terminal.KeyCtrlC {
		r.quit = true
		return
	}
	if r.menus.handleKey(r, e) {
		return
	}
	if e.Key == terminal.KeyF10 && r.menubar != nil && len(r.menubar.entries) > 0 {
		r.menus.activateBar(0)
		return
	}

	win := r.active()
	switch e.Key {
	case terminal.KeyTab:
		r.traverse(1)
		return
	case terminal.KeyBacktab:
		r.traverse(-1)
		return
	case terminal.KeyEscape:
		if t, ok := win.(*Toplevel); ok {
			t.Destroy()
		}
		return
	}

	f := win.focused()
	if f == nil {
		return
	}
	if f.handleKey(e) {
		return
	}
	if e.Key == terminal.KeyEnter || (e.Key == terminal.KeyRune && e.Rune == ' ') {
		if inv, ok := f.(interface{ Invoke() }); ok {
			inv.Invoke()
		}
	}
}

func (r *Root) handleClickEvent(x, y int) {
	if r.menus.handleClick(r, x, y) {
		return
	}
	if y == 0 {
		for i, slot := range r.barSlots() {
			if slot.Contains(x, y) {
				r.menus.activateBar(i)
				r.menus.openBarEntry(r, true)
				return
			}
		}
		return
	}

	win := r.active()
	if !win.Bounds().Contains(x, y) {
		return
	}
	target := hitTest(win, x, y)
	if target == nil {
		return
	}
	for w := target; w != nil && w != Widget(win); w = w.Parent() {
		if focusable(w) {
			win.setFocus(w)
			break
		}
	}
	for w := target; w != nil; w = w.Parent() {
		b := w.Bounds()
		if w.handleClick(x-b.X, y-b.Y) {
			return
		}
		if isWindow(w) {
			return
		}
	}
}

// hitTest returns the deepest visible widget under (x, y).
func hitTest(w Widget, x, y int) Widget {
	children := w.visibleChildren()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.Bounds().Contains(x, y) {
			return hitTest(c, x, y)
		}
	}
	return w
}

// Mainloop initializes b, renders the window and dispatches input until
// Quit, Ctrl-C or ctx is done. Returning via ctx yields ctx.Err().
func (r *Root) Mainloop(ctx context.Context, b backend.Backend) error {
	if err := b.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer b.Fini()
	if t, ok := b.(interface{ SetTitle(string) }); ok {
		t.SetTitle(r.title)
	}

	events := make(chan terminal.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := b.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	r.quit = false
	r.render(b)
	for !r.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if _, ok := ev.(terminal.ResizeEvent); ok {
				b.Sync()
			}
			r.HandleEvent(ev)
		}
		if !r.quit {
			r.render(b)
		}
	}
	return nil
}

func (r *Root) render(b backend.Backend) {
	r.Draw(b)
	if f := r.FocusGet(); f != nil {
		if cw, ok := f.(interface{ cursor() (int, int, bool) }); ok {
			if x, y, show := cw.cursor(); show {
				b.SetCursorPos(x, y)
				b.Show()
				return
			}
		}
	}
	b.HideCursor()
	b.Show()
}

var toplevelSpecs = specs(commonOpts, classicLook, sizeOpts, padOpts)

// Toplevel is a secondary window stacked over the root. The newest
// toplevel receives input; Escape closes it.
type Toplevel struct {
	core
	windowState
	title string
}

// NewToplevel creates a toplevel window owned by parent's root.
func NewToplevel(parent Widget, name string, opts Options) (*Toplevel, error) {
	root := RootOf(parent)
	if root == nil {
		return nil, errors.Newf(errors.ErrCodeConfiguration, "toplevel %q has no root window", name)
	}
	t := &Toplevel{}
	if err := t.init(t, parent, "Toplevel", name, toplevelSpecs, opts); err != nil {
		return nil, err
	}
	root.toplevels = append(root.toplevels, t)
	return t, nil
}

// Title returns the window title.
func (t *Toplevel) Title() string { return t.title }

// SetTitle changes the window title.
func (t *Toplevel) SetTitle(title string) { t.title = title }

func (t *Toplevel) insets() (top, right, bottom, left int) {
	tp, rt, b, l := t.core.insets()
	return tp + 1, rt + 1, b + 1, l + 1
}

// place centers the toplevel below the bar, clamped to the screen.
func (t *Toplevel) place(w, h int) {
	req := requested(t)
	req.Width = max(req.Width, textWidth(t.title)+4)
	width := min(req.Width, w)
	height := min(req.Height, max(0, h-1))
	t.layout(Rect{
		X:      (w - width) / 2,
		Y:      1 + (h-1-height)/2,
		Width:  width,
		Height: height,
	})
}

func (t *Toplevel) draw(buf *Buffer, dc *drawContext) {
	root := RootOf(t)
	border := dc.theme.Border
	if root != nil && root.active() == window(t) {
		border = dc.theme.BorderFocus
	}
	buf.Fill(t.bounds, ' ', t.style(dc.theme.Window))
	buf.DrawBox(t.bounds, border)
	if t.title != "" {
		title := truncate(t.title, t.bounds.Width-4)
		buf.SetString(t.bounds.X+2, t.bounds.Y, title, dc.theme.Title)
	}
	t.drawChildren(buf, dc)
}

var (
	_ window = (*Root)(nil)
	_ window = (*Toplevel)(nil)
)
