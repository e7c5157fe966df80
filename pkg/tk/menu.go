package tk

import (
	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

// MenuEntryKind distinguishes menu entries.
type MenuEntryKind int

const (
	MenuCommand MenuEntryKind = iota
	MenuCascade
	MenuSeparator
)

// MenuEntry is one item of a Menu.
type MenuEntry struct {
	Kind    MenuEntryKind
	Label   string
	Command func()
	Submenu *Menu
}

var menuSpecs = specs(commonOpts, []optSpec{
	boolean("tearoff", "1"),
	str("title", ""),
	colorOpt("background"),
	colorOpt("foreground"),
	colorOpt("activebackground"),
	colorOpt("activeforeground"),
	str("font", ""),
})

// Menu is a list of commands, cascades and separators shown as the root's
// menu bar, as a dropdown from it, or as a popup.
type Menu struct {
	core
	entries []MenuEntry
}

// NewMenu creates a menu owned by parent.
func NewMenu(parent Widget, name string, opts Options) (*Menu, error) {
	m := &Menu{}
	if err := m.init(m, parent, "Menu", name, menuSpecs, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// AddCommand appends an entry that runs fn when chosen.
func (m *Menu) AddCommand(label string, fn func()) {
	m.entries = append(m.entries, MenuEntry{Kind: MenuCommand, Label: label, Command: fn})
}

// AddCascade appends an entry that opens sub.
func (m *Menu) AddCascade(label string, sub *Menu) {
	m.entries = append(m.entries, MenuEntry{Kind: MenuCascade, Label: label, Submenu: sub})
}

// AddSeparator appends a divider line.
func (m *Menu) AddSeparator() {
	m.entries = append(m.entries, MenuEntry{Kind: MenuSeparator})
}

// Entries returns the menu entries in order.
func (m *Menu) Entries() []MenuEntry {
	out := make([]MenuEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Invoke runs the command at index. Cascades and separators do nothing.
func (m *Menu) Invoke(index int) error {
	if index < 0 || index >= len(m.entries) {
		return errors.Newf(errors.ErrCodeInvalidInput, "menu index %d out of range", index)
	}
	if e := m.entries[index]; e.Kind == MenuCommand && e.Command != nil {
		e.Command()
	}
	return nil
}

// Popup opens the menu at screen position (x, y) of its root window.
func (m *Menu) Popup(x, y int) {
	if root := RootOf(m); root != nil {
		root.menus.close()
		root.menus.push(m, x, y)
	}
}

// Menus are drawn by the root overlay, never by the grid.
func (m *Menu) draw(*Buffer, *drawContext) {}

func (m *Menu) width() int {
	w := 0
	for _, e := range m.entries {
		lw := textWidth(e.Label)
		if e.Kind == MenuCascade {
			lw += 2
		}
		w = max(w, lw)
	}
	return w + 4
}

func (m *Menu) selectable(i int) bool {
	return i >= 0 && i < len(m.entries) && m.entries[i].Kind != MenuSeparator
}

// menuLevel is one open dropdown or popup.
type menuLevel struct {
	menu   *Menu
	x, y   int
	active int
}

func (l menuLevel) rect() Rect {
	return Rect{X: l.x, Y: l.y, Width: l.menu.width(), Height: len(l.menu.entries) + 2}
}

// menuState tracks menu bar activation and the stack of open menus.
type menuState struct {
	bar  int // active menu bar entry, -1 when inactive
	open []menuLevel
}

func (s *menuState) close() {
	s.open = nil
	s.bar = -1
}

func (s *menuState) push(m *Menu, x, y int) {
	lvl := menuLevel{menu: m, x: x, y: y, active: -1}
	for i := range m.entries {
		if m.selectable(i) {
			lvl.active = i
			break
		}
	}
	s.open = append(s.open, lvl)
}

func (s *menuState) activateBar(i int) {
	s.open = nil
	s.bar = i
}

// openBarEntry opens the active bar entry's dropdown. Command entries on
// the bar itself run immediately when invoke is set.
func (s *menuState) openBarEntry(r *Root, invoke bool) {
	if r.menubar == nil || s.bar < 0 || s.bar >= len(r.menubar.entries) {
		return
	}
	e := r.menubar.entries[s.bar]
	switch e.Kind {
	case MenuCascade:
		if e.Submenu != nil {
			slot := r.barSlots()[s.bar]
			s.open = nil
			s.push(e.Submenu, slot.X, 1)
		}
	case MenuCommand:
		if invoke {
			s.close()
			if e.Command != nil {
				e.Command()
			}
		}
	}
}

func (s *menuState) moveBar(r *Root, step int) {
	n := len(r.menubar.entries)
	if n == 0 {
		return
	}
	wasOpen := len(s.open) > 0
	s.bar = (s.bar + step + n) % n
	s.open = nil
	if wasOpen {
		s.openBarEntry(r, false)
	}
}

func (s *menuState) handleKey(r *Root, e terminal.KeyEvent) bool {
	if len(s.open) > 0 {
		s.handleOpenKey(r, e)
		return true
	}
	if s.bar < 0 || r.menubar == nil {
		return false
	}
	switch e.Key {
	case terminal.KeyLeft:
		s.moveBar(r, -1)
	case terminal.KeyRight:
		s.moveBar(r, 1)
	case terminal.KeyEnter, terminal.KeyDown:
		s.openBarEntry(r, true)
	case terminal.KeyEscape, terminal.KeyF10:
		s.close()
	}
	return true
}

func (s *menuState) handleOpenKey(r *Root, e terminal.KeyEvent) {
	top := &s.open[len(s.open)-1]
	m := top.menu
	switch e.Key {
	case terminal.KeyUp, terminal.KeyDown:
		step := 1
		if e.Key == terminal.KeyUp {
			step = -1
		}
		n := len(m.entries)
		for i := 1; i <= n; i++ {
			next := (top.active + step*i + n*i) % n
			if m.selectable(next) {
				top.active = next
				break
			}
		}
	case terminal.KeyEnter:
		s.choose(len(s.open) - 1)
	case terminal.KeyRune:
		if e.Rune == ' ' {
			s.choose(len(s.open) - 1)
		}
	case terminal.KeyRight:
		if m.selectable(top.active) && m.entries[top.active].Kind == MenuCascade {
			s.choose(len(s.open) - 1)
		} else if s.bar >= 0 {
			s.moveBar(r, 1)
		}
	case terminal.KeyLeft:
		if len(s.open) > 1 {
			s.open = s.open[:len(s.open)-1]
		} else if s.bar >= 0 {
			s.moveBar(r, -1)
		}
	case terminal.KeyEscape, terminal.KeyF10:
		s.open = s.open[:len(s.open)-1]
		if len(s.open) == 0 && e.Key == terminal.KeyF10 {
			s.bar = -1
		}
	}
}

// choose acts on the active entry of level i: cascades open, commands
// close every menu and then run.
func (s *menuState) choose(i int) {
	lvl := s.open[i]
	if !lvl.menu.selectable(lvl.active) {
		return
	}
	e := lvl.menu.entries[lvl.active]
	if e.Kind == MenuCascade {
		if e.Submenu != nil {
			s.open = s.open[:i+1]
			rect := lvl.rect()
			s.push(e.Submenu, rect.X+rect.Width-1, rect.Y+1+lvl.active)
		}
		return
	}
	s.close()
	if e.Command != nil {
		e.Command()
	}
}

func (s *menuState) handleClick(r *Root, x, y int) bool {
	if len(s.open) == 0 && s.bar < 0 {
		return false
	}
	for i := len(s.open) - 1; i >= 0; i-- {
		rect := s.open[i].rect()
		if !rect.Contains(x, y) {
			continue
		}
		idx := y - rect.Y - 1
		if s.open[i].menu.selectable(idx) {
			s.open[i].active = idx
			s.choose(i)
		}
		return true
	}
	s.close()
	// A click on another bar entry switches menus; anything else only
	// dismisses.
	if y == 0 {
		for i, slot := range r.barSlots() {
			if slot.Contains(x, y) {
				s.activateBar(i)
				s.openBarEntry(r, true)
				return true
			}
		}
	}
	return true
}

func (s *menuState) draw(buf *Buffer, th *theme.Theme) {
	for _, lvl := range s.open {
		rect := lvl.rect()
		buf.Fill(rect, ' ', th.MenuItem)
		buf.DrawBox(rect, th.Border.Merge(th.MenuItem))
		inner := rect.Width - 2
		for i, e := range lvl.menu.entries {
			y := rect.Y + 1 + i
			if e.Kind == MenuSeparator {
				for x := rect.X + 1; x < rect.X+rect.Width-1; x++ {
					buf.Set(x, y, '─', th.Border.Merge(th.MenuItem))
				}
				continue
			}
			style := th.MenuItem
			if i == lvl.active {
				style = th.MenuActive
			}
			label := " " + e.Label
			if e.Kind == MenuCascade {
				label = pad(label, inner-2) + theme.Symbols.Collapsed + " "
			}
			buf.SetString(rect.X+1, y, pad(label, inner), style)
		}
	}
}
