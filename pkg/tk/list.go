package tk

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

var (
	listboxSpecs = specs(commonOpts, classicLook, stateOpts, []optSpec{
		integer("width", 20),
		integer("height", 10),
		varOpt("listvariable"),
		enum("selectmode", "browse", []string{"browse", "extended", "multiple", "single"}),
		colorOpt("selectbackground"),
		colorOpt("selectforeground"),
		boolean("exportselection", "1"),
		enum("activestyle", "dotbox", []string{"dotbox", "none", "underline"}),
	})
	textSpecs = specs(commonOpts, classicLook, padOpts, []optSpec{
		integer("width", 40),
		integer("height", 10),
		enum("wrap", "char", []string{"char", "none", "word"}),
		enum("state", "normal", []string{"disabled", "normal"}),
		boolean("undo", "0"),
		colorOpt("insertbackground"),
		colorOpt("selectbackground"),
		integer("spacing1", 0),
	})
	scaleOpts = []optSpec{
		float("from", "0"),
		float("to", "100"),
		varOpt("variable"),
		integer("length", 20),
		str("command", ""),
	}
	scaleSpecs = specs(commonOpts, classicLook, stateOpts, scaleOpts, []optSpec{
		enum("orient", "vertical", orients),
		float("resolution", "1"),
		boolean("showvalue", "1"),
		str("label", ""),
		float("tickinterval", "0"),
		integer("digits", 0),
		integer("sliderlength", 1),
		colorOpt("troughcolor"),
		colorOpt("activebackground"),
	})
	themedScaleSpecs = specs(commonOpts, themedLook, stateOpts, scaleOpts, []optSpec{
		enum("orient", "horizontal", orients),
		float("value", "0"),
	})
)

// Listbox shows a scrollable list of strings with a selection.
type Listbox struct {
	core
	items    []string
	selected map[int]bool
	active   int
	top      int
}

// NewListbox creates a Listbox. With a listvariable the items are the
// variable's Tcl list.
func NewListbox(parent Widget, name string, opts Options) (*Listbox, error) {
	l := &Listbox{selected: make(map[int]bool)}
	if err := l.init(l, parent, "Listbox", name, listboxSpecs, opts); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listbox) list() []string {
	if v, ok := l.vars["listvariable"]; ok {
		return SplitList(v.String())
	}
	return l.items
}

func (l *Listbox) store(items []string) {
	if v, ok := l.vars["listvariable"]; ok {
		v.SetString(JoinList(items))
		return
	}
	l.items = items
}

// Size returns the number of items.
func (l *Listbox) Size() int { return len(l.list()) }

// Get returns item i.
func (l *Listbox) Get(i int) (string, bool) {
	items := l.list()
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i], true
}

// Insert adds items before index; -1 or an index past the end appends.
func (l *Listbox) Insert(index int, items ...string) {
	cur := l.list()
	if index < 0 || index > len(cur) {
		index = len(cur)
	}
	out := make([]string, 0, len(cur)+len(items))
	out = append(out, cur[:index]...)
	out = append(out, items...)
	out = append(out, cur[index:]...)
	l.store(out)
	l.shiftSelection(index, len(items))
}

// Delete removes items first through last inclusive; -1 means the end.
func (l *Listbox) Delete(first, last int) {
	cur := l.list()
	if last < 0 || last >= len(cur) {
		last = len(cur) - 1
	}
	if first < 0 || first > last {
		return
	}
	out := append(cur[:first:first], cur[last+1:]...)
	l.store(out)
	for i := first; i <= last; i++ {
		delete(l.selected, i)
	}
	l.shiftSelection(last+1, -(last - first + 1))
}

func (l *Listbox) shiftSelection(from, by int) {
	moved := make(map[int]bool, len(l.selected))
	for i := range l.selected {
		if i >= from {
			moved[i+by] = true
		} else {
			moved[i] = true
		}
	}
	l.selected = moved
}

// Curselection returns the selected indices in ascending order.
func (l *Listbox) Curselection() []int {
	n := l.Size()
	var out []int
	for i := range l.selected {
		if i < n {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// SelectionSet selects index i. Browse and single modes keep one selection.
func (l *Listbox) SelectionSet(i int) {
	if i < 0 || i >= l.Size() {
		return
	}
	switch l.opts.get("selectmode") {
	case "browse", "single":
		clear(l.selected)
	}
	l.selected[i] = true
}

// SelectionClear deselects everything.
func (l *Listbox) SelectionClear() { clear(l.selected) }

// Activate moves the keyboard cursor to i.
func (l *Listbox) Activate(i int) {
	l.active = max(0, min(i, l.Size()-1))
}

func (l *Listbox) natural() Size {
	t, r, b, lft := l.insets()
	return Size{
		Width:  max(1, l.opts.getInt("width")) + lft + r,
		Height: max(1, l.opts.getInt("height")) + t + b,
	}
}

func (l *Listbox) takesFocus() bool { return true }

func (l *Listbox) handleKey(ev terminal.KeyEvent) bool {
	n := l.Size()
	if n == 0 {
		return false
	}
	page := max(1, l.content().Height)
	switch ev.Key {
	case terminal.KeyUp:
		l.Activate(l.active - 1)
	case terminal.KeyDown:
		l.Activate(l.active + 1)
	case terminal.KeyPageUp:
		l.Activate(l.active - page)
	case terminal.KeyPageDown:
		l.Activate(l.active + page)
	case terminal.KeyHome:
		l.Activate(0)
	case terminal.KeyEnd:
		l.Activate(n - 1)
	case terminal.KeyRune:
		if ev.Rune != ' ' {
			return false
		}
		if l.opts.get("selectmode") == "multiple" && l.selected[l.active] {
			delete(l.selected, l.active)
			return true
		}
		l.SelectionSet(l.active)
		return true
	default:
		return false
	}
	if mode := l.opts.get("selectmode"); mode == "browse" || mode == "extended" {
		l.SelectionSet(l.active)
	}
	return true
}

func (l *Listbox) handleClick(_, y int) bool {
	t, _, _, _ := l.insets()
	i := l.top + y - t
	if i < 0 || i >= l.Size() {
		return true
	}
	l.Activate(i)
	if l.opts.get("selectmode") == "multiple" && l.selected[i] {
		delete(l.selected, i)
		return true
	}
	l.SelectionSet(i)
	return true
}

func (l *Listbox) draw(buf *Buffer, dc *drawContext) {
	l.drawSurface(buf, dc)
	area := l.content()
	items := l.list()
	if area.Height <= 0 {
		return
	}
	if l.active < l.top {
		l.top = l.active
	}
	if l.active >= l.top+area.Height {
		l.top = l.active - area.Height + 1
	}
	l.top = max(0, min(l.top, len(items)-1))
	focused := l.hasFocus(dc)
	for row := 0; row < area.Height && l.top+row < len(items); row++ {
		i := l.top + row
		style := l.style(dc.theme.Text)
		if l.selected[i] {
			style = dc.theme.Selection
		}
		if focused && i == l.active && l.opts.get("activestyle") != "none" {
			style = style.Underline(true)
		}
		buf.SetString(area.X, area.Y+row, pad(items[i], area.Width), style)
	}
}

// Text is a multi-line text editor.
type Text struct {
	core
	lines    [][]rune
	row, col int // cursor
	top      int // first visible display row

	caretX, caretY int
	caretOK        bool
}

// NewText creates an empty Text widget.
func NewText(parent Widget, name string, opts Options) (*Text, error) {
	t := &Text{lines: [][]rune{nil}}
	if err := t.init(t, parent, "Text", name, textSpecs, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the whole content.
func (t *Text) Get() string {
	parts := make([]string, len(t.lines))
	for i, l := range t.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Index resolves a text index: "line.col" (lines from 1, columns from 0),
// "line.end", "end" (the end of the last line) or "insert".
func (t *Text) Index(index string) (line, col int, err error) {
	switch index {
	case "end":
		last := len(t.lines)
		return last, len(t.lines[last-1]), nil
	case "insert":
		return t.row + 1, t.col, nil
	}
	ls, cs, ok := strings.Cut(index, ".")
	if !ok {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidInput, "bad text index %q", index)
	}
	line, err = strconv.Atoi(ls)
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidInput, "bad text index %q", index)
	}
	line = max(1, min(line, len(t.lines)))
	if cs == "end" {
		return line, len(t.lines[line-1]), nil
	}
	col, err = strconv.Atoi(cs)
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidInput, "bad text index %q", index)
	}
	return line, max(0, min(col, len(t.lines[line-1]))), nil
}

// Insert adds s at index.
func (t *Text) Insert(index, s string) error {
	line, col, err := t.Index(index)
	if err != nil {
		return err
	}
	row := line - 1
	cur := t.lines[row]
	tail := append([]rune(nil), cur[col:]...)
	parts := strings.Split(s, "\n")

	first := append(append([]rune(nil), cur[:col]...), []rune(parts[0])...)
	added := make([][]rune, 0, len(parts))
	added = append(added, first)
	for _, p := range parts[1:] {
		added = append(added, []rune(p))
	}
	endCol := len(added[len(added)-1])
	added[len(added)-1] = append(added[len(added)-1], tail...)

	lines := make([][]rune, 0, len(t.lines)+len(parts)-1)
	lines = append(lines, t.lines[:row]...)
	lines = append(lines, added...)
	lines = append(lines, t.lines[row+1:]...)
	t.lines = lines
	t.row, t.col = row+len(parts)-1, endCol
	return nil
}

// Delete removes the text from first up to last.
func (t *Text) Delete(first, last string) error {
	l1, c1, err := t.Index(first)
	if err != nil {
		return err
	}
	l2, c2, err := t.Index(last)
	if err != nil {
		return err
	}
	if l2 < l1 || (l2 == l1 && c2 <= c1) {
		return nil
	}
	merged := append(append([]rune(nil), t.lines[l1-1][:c1]...), t.lines[l2-1][c2:]...)
	lines := append(t.lines[:l1-1:l1-1], merged)
	t.lines = append(lines, t.lines[l2:]...)
	t.row, t.col = l1-1, c1
	return nil
}

// Clear removes all text.
func (t *Text) Clear() {
	t.lines = [][]rune{nil}
	t.row, t.col = 0, 0
}

func (t *Text) editable() bool { return t.opts.get("state") == "normal" }

func (t *Text) natural() Size {
	tp, r, b, l := t.insets()
	return Size{
		Width:  max(1, t.opts.getInt("width")) + l + r,
		Height: max(1, t.opts.getInt("height")) + tp + b,
	}
}

func (t *Text) takesFocus() bool { return true }

func (t *Text) handleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyUp:
		if t.row > 0 {
			t.row--
			t.col = min(t.col, len(t.lines[t.row]))
		}
	case terminal.KeyDown:
		if t.row < len(t.lines)-1 {
			t.row++
			t.col = min(t.col, len(t.lines[t.row]))
		}
	case terminal.KeyLeft:
		switch {
		case t.col > 0:
			t.col--
		case t.row > 0:
			t.row--
			t.col = len(t.lines[t.row])
		}
	case terminal.KeyRight:
		switch {
		case t.col < len(t.lines[t.row]):
			t.col++
		case t.row < len(t.lines)-1:
			t.row++
			t.col = 0
		}
	case terminal.KeyHome:
		t.col = 0
	case terminal.KeyEnd:
		t.col = len(t.lines[t.row])
	case terminal.KeyEnter:
		if !t.editable() {
			return false
		}
		_ = t.Insert(t.cursorIndex(), "\n")
	case terminal.KeyBackspace:
		if !t.editable() {
			return true
		}
		switch {
		case t.col > 0:
			_ = t.Delete(fmt.Sprintf("%d.%d", t.row+1, t.col-1), t.cursorIndex())
		case t.row > 0:
			prev := fmt.Sprintf("%d.end", t.row)
			_ = t.Delete(prev, t.cursorIndex())
		}
	case terminal.KeyDelete:
		if t.editable() {
			next := fmt.Sprintf("%d.%d", t.row+1, t.col+1)
			if t.col == len(t.lines[t.row]) {
				next = fmt.Sprintf("%d.0", t.row+2)
			}
			_ = t.Delete(t.cursorIndex(), next)
		}
	case terminal.KeyRune:
		if !t.editable() {
			return false
		}
		_ = t.Insert(t.cursorIndex(), string(ev.Rune))
	default:
		return false
	}
	return true
}

func (t *Text) cursorIndex() string { return fmt.Sprintf("%d.%d", t.row+1, t.col) }

// segment is one display row: runes [start, end) of a logical line.
type segment struct {
	line, start, end int
}

func (t *Text) segments(width int) []segment {
	var out []segment
	mode := t.opts.get("wrap")
	for i, l := range t.lines {
		if mode == "none" || width <= 0 {
			out = append(out, segment{line: i, end: len(l)})
			continue
		}
		start := 0
		for {
			end, w := start, 0
			for end < len(l) && w+runewidth.RuneWidth(l[end]) <= width {
				w += runewidth.RuneWidth(l[end])
				end++
			}
			if end < len(l) && mode == "word" {
				if sp := lastSpace(l[start:end]); sp > 0 {
					end = start + sp + 1
				}
			}
			if end == start && end < len(l) {
				end++
			}
			out = append(out, segment{line: i, start: start, end: end})
			if end >= len(l) {
				break
			}
			start = end
		}
	}
	return out
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}

func (t *Text) draw(buf *Buffer, dc *drawContext) {
	t.drawSurface(buf, dc)
	area := t.content()
	segs := t.segments(area.Width)

	caret := 0
	for i, s := range segs {
		if s.line == t.row && t.col >= s.start && (t.col < s.end || t.col == s.end && (i == len(segs)-1 || segs[i+1].line != s.line)) {
			caret = i
			break
		}
	}
	if caret < t.top {
		t.top = caret
	}
	if area.Height > 0 && caret >= t.top+area.Height {
		t.top = caret - area.Height + 1
	}

	style := t.style(dc.theme.Text)
	view := buf.Clip(area)
	for row := 0; row < area.Height && t.top+row < len(segs); row++ {
		s := segs[t.top+row]
		view.SetString(area.X, area.Y+row, string(t.lines[s.line][s.start:s.end]), style)
	}

	cs := segs[caret]
	end := cs.start
	if cs.line == t.row {
		end = max(cs.start, min(t.col, cs.end))
	}
	t.caretX = area.X + runewidth.StringWidth(string(t.lines[cs.line][cs.start:end]))
	t.caretY = area.Y + caret - t.top
	t.caretOK = t.hasFocus(dc) && t.editable() && area.Contains(t.caretX, t.caretY)
}

func (t *Text) cursor() (int, int, bool) {
	return t.caretX, t.caretY, t.caretOK
}

// Scale selects a number in [from, to] by sliding a knob.
type Scale struct {
	core
	value float64
}

// NewScale creates a Scale.
func NewScale(parent Widget, name string, opts Options) (*Scale, error) {
	return newScale(parent, name, opts, "Scale", scaleSpecs)
}

func newThemedScale(parent Widget, name string, opts Options) (*Scale, error) {
	return newScale(parent, name, opts, "TScale", themedScaleSpecs)
}

func newScale(parent Widget, name string, opts Options, class string, list []optSpec) (*Scale, error) {
	s := &Scale{}
	if err := s.init(s, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	if _, ok := s.vars["variable"]; !ok {
		s.value = s.clamp(s.opts.getFloat("value"))
	}
	return s, nil
}

func (s *Scale) onConfigure(changed map[string]string) {
	if v, ok := changed["value"]; ok {
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		s.value = f
	}
}

// Get returns the current value.
func (s *Scale) Get() float64 {
	if v, ok := s.vars["variable"]; ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return s.opts.getFloat("from")
		}
		return f
	}
	return s.value
}

// Set stores f, rounded to the resolution and clamped to the range.
func (s *Scale) Set(f float64) {
	f = s.clamp(s.round(f))
	s.value = f
	if _, ok := s.opts.specs["value"]; ok {
		s.opts.values["value"] = formatFloat(f)
	}
	if v, ok := s.vars["variable"]; ok {
		v.SetString(formatFloat(f))
	}
}

func (s *Scale) round(f float64) float64 {
	res := s.opts.getFloat("resolution")
	if res <= 0 {
		return f
	}
	from := s.opts.getFloat("from")
	return from + math.Round((f-from)/res)*res
}

func (s *Scale) clamp(f float64) float64 {
	lo, hi := s.opts.getFloat("from"), s.opts.getFloat("to")
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, f))
}

func (s *Scale) step() float64 {
	if res := s.opts.getFloat("resolution"); res > 0 {
		return res
	}
	return math.Abs(s.opts.getFloat("to")-s.opts.getFloat("from")) / 10
}

func (s *Scale) move(dir int) {
	if s.disabled() {
		return
	}
	before := s.Get()
	if s.opts.getFloat("to") < s.opts.getFloat("from") {
		dir = -dir
	}
	s.Set(before + float64(dir)*s.step())
	if s.Get() != before {
		s.runCommand()
	}
}

func (s *Scale) vertical() bool { return s.opts.get("orient") == "vertical" }

func (s *Scale) label() string {
	if !s.showValue() {
		return ""
	}
	return formatFloat(s.Get())
}

func (s *Scale) showValue() bool {
	if _, ok := s.opts.specs["showvalue"]; !ok {
		return false
	}
	return s.opts.getBool("showvalue")
}

func (s *Scale) labelWidth() int {
	return max(textWidth(formatFloat(s.opts.getFloat("from"))), textWidth(formatFloat(s.opts.getFloat("to"))))
}

func (s *Scale) natural() Size {
	n := max(2, s.opts.getInt("length"))
	t, r, b, l := s.insets()
	var size Size
	switch {
	case s.vertical() && s.showValue():
		size = Size{Width: s.labelWidth() + 2, Height: n}
	case s.vertical():
		size = Size{Width: 1, Height: n}
	case s.showValue():
		size = Size{Width: n, Height: 2}
	default:
		size = Size{Width: n, Height: 1}
	}
	if s.opts.get("label") != "" {
		size.Height++
	}
	return Size{Width: size.Width + l + r, Height: size.Height + t + b}
}

func (s *Scale) takesFocus() bool { return true }

func (s *Scale) handleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyLeft, terminal.KeyUp:
		s.move(-1)
	case terminal.KeyRight, terminal.KeyDown:
		s.move(1)
	case terminal.KeyHome:
		s.Set(s.opts.getFloat("from"))
		s.runCommand()
	case terminal.KeyEnd:
		s.Set(s.opts.getFloat("to"))
		s.runCommand()
	default:
		return false
	}
	return true
}

func (s *Scale) handleClick(x, y int) bool {
	if s.disabled() {
		return true
	}
	track := s.track()
	var frac float64
	if s.vertical() {
		frac = float64(y+s.bounds.Y-track.Y) / float64(max(1, track.Height-1))
	} else {
		frac = float64(x+s.bounds.X-track.X) / float64(max(1, track.Width-1))
	}
	frac = math.Max(0, math.Min(1, frac))
	from, to := s.opts.getFloat("from"), s.opts.getFloat("to")
	s.Set(from + frac*(to-from))
	s.runCommand()
	return true
}

// track returns the rect the knob travels along.
func (s *Scale) track() Rect {
	area := s.content()
	if s.opts.get("label") != "" {
		area = area.Inset(1, 0, 0, 0)
	}
	switch {
	case s.vertical():
		return Rect{X: area.X + area.Width - 1, Y: area.Y, Width: 1, Height: area.Height}
	case s.showValue():
		return Rect{X: area.X, Y: area.Y + 1, Width: area.Width, Height: 1}
	}
	return Rect{X: area.X, Y: area.Y, Width: area.Width, Height: 1}
}

func (s *Scale) frac() float64 {
	from, to := s.opts.getFloat("from"), s.opts.getFloat("to")
	if from == to {
		return 0
	}
	return math.Max(0, math.Min(1, (s.Get()-from)/(to-from)))
}

func (s *Scale) draw(buf *Buffer, dc *drawContext) {
	s.drawSurface(buf, dc)
	area := s.content()
	text := s.style(dc.theme.Text)
	if lbl := s.opts.get("label"); lbl != "" {
		buf.SetString(area.X, area.Y, truncate(lbl, area.Width), text)
	}
	knob := s.style(dc.theme.Accent)
	if s.hasFocus(dc) {
		knob = knob.Bold(true).Reverse(true)
	}
	track := s.track()
	trackStyle := s.style(dc.theme.Border)
	if s.vertical() {
		pos := int(math.Round(s.frac() * float64(max(0, track.Height-1))))
		for y := track.Y; y < track.Y+track.Height; y++ {
			buf.Set(track.X, y, '│', trackStyle)
		}
		buf.SetString(track.X, track.Y+pos, theme.Symbols.Knob, knob)
		if v := s.label(); v != "" {
			buf.SetString(area.X, track.Y+pos, truncate(v, max(0, track.X-area.X-1)), text)
		}
		return
	}
	pos := int(math.Round(s.frac() * float64(max(0, track.Width-1))))
	for x := track.X; x < track.X+track.Width; x++ {
		buf.SetString(x, track.Y, theme.Symbols.Track, trackStyle)
	}
	buf.SetString(track.X+pos, track.Y, theme.Symbols.Knob, knob)
	if v := s.label(); v != "" {
		vx := track.X + pos - textWidth(v)/2
		vx = max(track.X, min(vx, track.X+track.Width-textWidth(v)))
		buf.SetString(vx, track.Y-1, v, text)
	}
}
