package tk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

var (
	entryStates = []string{"disabled", "normal", "readonly"}

	entryOpts = []optSpec{
		integer("width", 20),
		varOpt("textvariable"),
		str("show", ""),
		enum("justify", "left", []string{"center", "left", "right"}),
		enum("state", "normal", entryStates),
		boolean("exportselection", "1"),
		str("validate", "none"),
		str("validatecommand", ""),
	}
	entrySpecs       = specs(commonOpts, classicLook, entryOpts, []optSpec{colorOpt("insertbackground"), colorOpt("selectbackground")})
	themedEntrySpecs = specs(commonOpts, themedLook, entryOpts, []optSpec{colorOpt("foreground"), str("font", "")})

	spinboxSpecs = specs(commonOpts, classicLook, entryOpts, commandOpts, []optSpec{
		float("from", "0"),
		float("to", "0"),
		float("increment", "1"),
		listOpt("values"),
		boolean("wrap", "0"),
		str("format", ""),
		colorOpt("buttonbackground"),
	})
	comboboxSpecs = specs(commonOpts, themedLook, entryOpts, []optSpec{
		listOpt("values"),
		integer("height", 10),
		str("postcommand", ""),
	})
)

// lineEdit is the single-line editing state shared by entry-like widgets.
// Text lives in the bound textvariable when there is one.
type lineEdit struct {
	core
	value  string
	pos    int // cursor, in runes
	scroll int // first visible rune

	caretX, caretY int
	caretOK        bool
}

// Get returns the current text.
func (e *lineEdit) Get() string {
	if v, ok := e.vars["textvariable"]; ok {
		return v.String()
	}
	return e.value
}

// Set replaces the text and moves the cursor to its end.
func (e *lineEdit) Set(s string) {
	e.store(s)
	e.pos = len([]rune(s))
}

func (e *lineEdit) store(s string) {
	if v, ok := e.vars["textvariable"]; ok {
		v.SetString(s)
		return
	}
	e.value = s
}

// Insert adds s before rune index. Negative or past-the-end indices append.
func (e *lineEdit) Insert(index int, s string) {
	runes := []rune(e.Get())
	if index < 0 || index > len(runes) {
		index = len(runes)
	}
	ins := []rune(s)
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:index]...)
	out = append(out, ins...)
	out = append(out, runes[index:]...)
	e.store(string(out))
	if e.pos >= index {
		e.pos += len(ins)
	}
}

// Delete removes runes [first, last). A negative last means to the end.
func (e *lineEdit) Delete(first, last int) {
	runes := []rune(e.Get())
	if last < 0 || last > len(runes) {
		last = len(runes)
	}
	first = max(0, min(first, last))
	e.store(string(append(runes[:first:first], runes[last:]...)))
	switch {
	case e.pos >= last:
		e.pos -= last - first
	case e.pos > first:
		e.pos = first
	}
}

// Icursor moves the insertion cursor to rune index.
func (e *lineEdit) Icursor(index int) {
	e.pos = max(0, min(index, len([]rune(e.Get()))))
}

// Index returns the cursor position in runes.
func (e *lineEdit) Index() int { return e.clampPos() }

func (e *lineEdit) clampPos() int {
	e.pos = max(0, min(e.pos, len([]rune(e.Get()))))
	return e.pos
}

func (e *lineEdit) editable() bool {
	return e.opts.get("state") == "normal"
}

func (e *lineEdit) takesFocus() bool { return true }

// editKey applies a cursor or editing key and reports whether it was used.
func (e *lineEdit) editKey(ev terminal.KeyEvent) bool {
	pos := e.clampPos()
	n := len([]rune(e.Get()))
	switch ev.Key {
	case terminal.KeyLeft:
		e.pos = max(0, pos-1)
	case terminal.KeyRight:
		e.pos = min(n, pos+1)
	case terminal.KeyHome:
		e.pos = 0
	case terminal.KeyEnd:
		e.pos = n
	case terminal.KeyBackspace:
		if e.editable() && pos > 0 {
			e.Delete(pos-1, pos)
		}
	case terminal.KeyDelete:
		if e.editable() && pos < n {
			e.Delete(pos, pos+1)
		}
	case terminal.KeyRune:
		if !e.editable() {
			return false
		}
		e.Insert(pos, string(ev.Rune))
	default:
		return false
	}
	return true
}

func (e *lineEdit) display() []rune {
	runes := []rune(e.Get())
	if show := []rune(e.opts.get("show")); len(show) > 0 {
		for i := range runes {
			runes[i] = show[0]
		}
	}
	return runes
}

// drawField renders the text in area, scrolled so the cursor stays visible.
func (e *lineEdit) drawField(buf *Buffer, dc *drawContext, area Rect) {
	focused := e.hasFocus(dc)
	style := dc.theme.Field
	if focused {
		style = dc.theme.FieldFocus
	}
	style = e.style(style)
	buf.Fill(area, ' ', style)

	runes := e.display()
	pos := e.clampPos()
	e.scroll = min(e.scroll, pos)
	for e.scroll < pos && runewidth.StringWidth(string(runes[e.scroll:pos])) >= area.Width {
		e.scroll++
	}
	visible := truncateRunes(runes[e.scroll:], area.Width)
	x := area.X
	switch e.opts.get("justify") {
	case "center":
		x += (area.Width - textWidth(visible)) / 2
	case "right":
		x += area.Width - textWidth(visible)
	}
	if x > area.X && textWidth(visible)+1 > area.Width {
		x = area.X
	}
	buf.SetString(x, area.Y, visible, style)

	e.caretOK = focused && e.editable() && !area.Empty()
	e.caretX = x + runewidth.StringWidth(string(runes[e.scroll:pos]))
	e.caretY = area.Y
}

func (e *lineEdit) cursor() (int, int, bool) {
	return e.caretX, e.caretY, e.caretOK
}

func truncateRunes(runes []rune, width int) string {
	w := 0
	for i, r := range runes {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			return string(runes[:i])
		}
		w += rw
	}
	return string(runes)
}

// Entry is a single-line text field.
type Entry struct {
	lineEdit
}

// NewEntry creates an Entry.
func NewEntry(parent Widget, name string, opts Options) (*Entry, error) {
	return newEntry(parent, name, opts, "Entry", entrySpecs)
}

func newThemedEntry(parent Widget, name string, opts Options) (*Entry, error) {
	return newEntry(parent, name, opts, "TEntry", themedEntrySpecs)
}

func newEntry(parent Widget, name string, opts Options, class string, list []optSpec) (*Entry, error) {
	e := &Entry{}
	if err := e.init(e, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) natural() Size {
	t, r, b, l := e.insets()
	return Size{Width: max(1, e.opts.getInt("width")) + l + r, Height: 1 + t + b}
}

func (e *Entry) handleKey(ev terminal.KeyEvent) bool { return e.editKey(ev) }

func (e *Entry) handleClick(x, _ int) bool {
	e.clickCursor(x)
	return true
}

// clickCursor moves the cursor to the rune under local column x.
func (e *lineEdit) clickCursor(x int) {
	_, _, _, l := e.self.insets()
	col := x - l
	runes := e.display()
	w := 0
	for i := e.scroll; i < len(runes); i++ {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > col {
			e.pos = i
			return
		}
		w += rw
	}
	e.pos = len(runes)
}

func (e *Entry) draw(buf *Buffer, dc *drawContext) {
	e.drawSurface(buf, dc)
	e.drawField(buf, dc, e.content())
}

// Spinbox is an entry with up/down stepping through a numeric range or a
// list of values.
type Spinbox struct {
	lineEdit
}

// NewSpinbox creates a Spinbox. Its initial text is the first value, or the
// from value for numeric spinboxes.
func NewSpinbox(parent Widget, name string, opts Options) (*Spinbox, error) {
	s := &Spinbox{}
	if err := s.init(s, parent, "Spinbox", name, spinboxSpecs, opts); err != nil {
		return nil, err
	}
	if s.Get() == "" {
		if values := s.values(); len(values) > 0 {
			s.Set(values[0])
		} else if s.numeric() {
			s.Set(s.format(s.opts.getFloat("from")))
		}
	}
	return s, nil
}

func (s *Spinbox) values() []string {
	if v := s.opts.get("values"); v != "" {
		return SplitList(v)
	}
	return nil
}

func (s *Spinbox) numeric() bool {
	return s.opts.getFloat("from") != s.opts.getFloat("to")
}

func (s *Spinbox) format(f float64) string {
	if spec := s.opts.get("format"); spec != "" {
		return fmt.Sprintf(spec, f)
	}
	return formatFloat(f)
}

// Step moves dir increments (or list positions) up or down, clamping at the
// ends unless wrap is set, and runs the command.
func (s *Spinbox) Step(dir int) {
	if s.disabled() {
		return
	}
	wrap := s.opts.getBool("wrap")
	if values := s.values(); len(values) > 0 {
		i := indexOf(values, s.Get())
		switch {
		case i < 0:
			i = 0
		case wrap:
			i = (i + dir + len(values)) % len(values)
		default:
			i = max(0, min(len(values)-1, i+dir))
		}
		s.Set(values[i])
		s.runCommand()
		return
	}
	if !s.numeric() {
		return
	}
	lo, hi := s.opts.getFloat("from"), s.opts.getFloat("to")
	cur, err := strconv.ParseFloat(strings.TrimSpace(s.Get()), 64)
	if err != nil {
		cur = lo
	}
	next := cur + float64(dir)*s.opts.getFloat("increment")
	switch {
	case next > hi && wrap:
		next = lo
	case next < lo && wrap:
		next = hi
	default:
		next = math.Max(lo, math.Min(hi, next))
	}
	s.Set(s.format(next))
	s.runCommand()
}

func (s *Spinbox) natural() Size {
	t, r, b, l := s.insets()
	return Size{Width: max(1, s.opts.getInt("width")) + 2 + l + r, Height: 1 + t + b}
}

func (s *Spinbox) handleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyUp:
		s.Step(1)
		return true
	case terminal.KeyDown:
		s.Step(-1)
		return true
	}
	return s.editKey(ev)
}

func (s *Spinbox) handleClick(x, _ int) bool {
	if x >= s.bounds.Width-2 {
		s.Step(1)
		return true
	}
	s.clickCursor(x)
	return true
}

func (s *Spinbox) draw(buf *Buffer, dc *drawContext) {
	s.drawSurface(buf, dc)
	area := s.content()
	field := area
	field.Width = max(0, area.Width-2)
	s.drawField(buf, dc, field)
	buf.SetString(field.X+field.Width, area.Y, " "+theme.Symbols.SpinUp, s.style(dc.theme.Accent))
}

// Combobox is an entry with a list of predefined values, cycled with the
// arrow keys.
type Combobox struct {
	lineEdit
}

func newCombobox(parent Widget, name string, opts Options) (*Combobox, error) {
	c := &Combobox{}
	if err := c.init(c, parent, "TCombobox", name, comboboxSpecs, opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Values returns the predefined values.
func (c *Combobox) Values() []string {
	return SplitList(c.opts.get("values"))
}

// Current returns the index of the text in the values list, or -1.
func (c *Combobox) Current() int {
	return indexOf(c.Values(), c.Get())
}

// SetCurrent selects values[i].
func (c *Combobox) SetCurrent(i int) error {
	values := c.Values()
	if i < 0 || i >= len(values) {
		return errors.Newf(errors.ErrCodeInvalidInput, "index %d out of range", i)
	}
	c.Set(values[i])
	return nil
}

func (c *Combobox) cycle(dir int) {
	values := c.Values()
	if len(values) == 0 || c.disabled() {
		return
	}
	i := c.Current()
	if i < 0 {
		i = 0
	} else {
		i = max(0, min(len(values)-1, i+dir))
	}
	c.Set(values[i])
}

func (c *Combobox) natural() Size {
	t, r, b, l := c.insets()
	return Size{Width: max(1, c.opts.getInt("width")) + 2 + l + r, Height: 1 + t + b}
}

func (c *Combobox) handleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyUp:
		c.cycle(-1)
		return true
	case terminal.KeyDown:
		c.cycle(1)
		return true
	}
	return c.editKey(ev)
}

func (c *Combobox) handleClick(x, _ int) bool {
	if x >= c.bounds.Width-2 {
		c.cycle(1)
		return true
	}
	c.clickCursor(x)
	return true
}

func (c *Combobox) draw(buf *Buffer, dc *drawContext) {
	c.drawSurface(buf, dc)
	area := c.content()
	field := area
	field.Width = max(0, area.Width-2)
	c.drawField(buf, dc, field)
	buf.SetString(field.X+field.Width, area.Y, " "+theme.Symbols.Dropdown, c.style(dc.theme.Accent))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
