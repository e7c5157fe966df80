package tk

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

var treeviewSpecs = specs(commonOpts, themedLook, paddingOpts, []optSpec{
	listOpt("columns"),
	listOpt("displaycolumns"),
	integer("height", 10),
	str("show", "tree headings"),
	enum("selectmode", "extended", []string{"browse", "extended", "none"}),
})

const treeColumn = "#0"

type treeItem struct {
	id       string
	parent   string
	text     string
	values   []string
	children []string
	open     bool
}

// Treeview displays a hierarchy of items with optional data columns.
// The tree column is "#0"; data columns come from the columns option.
type Treeview struct {
	core
	items    map[string]*treeItem
	roots    []string
	headings map[string]string
	widths   map[string]int
	counter  int

	selection []string
	focusItem string
	top       int
}

func newTreeview(parent Widget, name string, opts Options) (*Treeview, error) {
	t := &Treeview{
		items:    make(map[string]*treeItem),
		headings: make(map[string]string),
		widths:   make(map[string]int),
	}
	if err := t.init(t, parent, "Treeview", name, treeviewSpecs, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// Columns returns the data column identifiers.
func (t *Treeview) Columns() []string {
	return SplitList(t.opts.get("columns"))
}

func (t *Treeview) hasColumn(col string) bool {
	if col == treeColumn {
		return true
	}
	return indexOf(t.Columns(), col) >= 0
}

// Heading sets the header text of a column.
func (t *Treeview) Heading(column, text string) error {
	if !t.hasColumn(column) {
		return errors.Newf(errors.ErrCodeConfiguration, "invalid column index %q", column).WithContext("widget", t.class)
	}
	t.headings[column] = text
	return nil
}

// HeadingText returns the header text of a column; it defaults to empty.
func (t *Treeview) HeadingText(column string) string { return t.headings[column] }

// SetColumnWidth sets a column's width in cells.
func (t *Treeview) SetColumnWidth(column string, width int) error {
	if !t.hasColumn(column) {
		return errors.Newf(errors.ErrCodeConfiguration, "invalid column index %q", column).WithContext("widget", t.class)
	}
	if width < 1 {
		return errors.Newf(errors.ErrCodeConfiguration, "bad column width %d", width).WithContext("widget", t.class)
	}
	t.widths[column] = width
	return nil
}

// Insert adds an item under parent ("" for the top level) before index;
// -1 or an index past the end appends. It returns the new item id.
func (t *Treeview) Insert(parent string, index int, text string, values ...string) (string, error) {
	siblings := &t.roots
	if parent != "" {
		p, ok := t.items[parent]
		if !ok {
			return "", errors.Newf(errors.ErrCodeNotFound, "item %q not found", parent).WithContext("widget", t.class)
		}
		siblings = &p.children
	}
	t.counter++
	id := fmt.Sprintf("I%03X", t.counter)
	t.items[id] = &treeItem{id: id, parent: parent, text: text, values: append([]string(nil), values...)}

	list := *siblings
	if index < 0 || index > len(list) {
		index = len(list)
	}
	list = append(list, "")
	copy(list[index+1:], list[index:])
	list[index] = id
	*siblings = list
	return id, nil
}

// ItemChildren returns the ids of item's children; "" lists top-level items.
func (t *Treeview) ItemChildren(item string) []string {
	var src []string
	if item == "" {
		src = t.roots
	} else if it, ok := t.items[item]; ok {
		src = it.children
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Item returns an item's text and values.
func (t *Treeview) Item(id string) (text string, values []string, ok bool) {
	it, ok := t.items[id]
	if !ok {
		return "", nil, false
	}
	return it.text, append([]string(nil), it.values...), true
}

// ItemParent returns the parent id of item.
func (t *Treeview) ItemParent(id string) string {
	if it, ok := t.items[id]; ok {
		return it.parent
	}
	return ""
}

// SetOpen expands or collapses an item.
func (t *Treeview) SetOpen(id string, open bool) {
	if it, ok := t.items[id]; ok {
		it.open = open
	}
}

// Delete removes items and their descendants.
func (t *Treeview) Delete(ids ...string) {
	for _, id := range ids {
		it, ok := t.items[id]
		if !ok {
			continue
		}
		t.Delete(it.children...)
		if it.parent == "" {
			t.roots = removeString(t.roots, id)
		} else if p, ok := t.items[it.parent]; ok {
			p.children = removeString(p.children, id)
		}
		delete(t.items, id)
		t.selection = removeString(t.selection, id)
		if t.focusItem == id {
			t.focusItem = ""
		}
	}
}

// Selection returns the selected item ids.
func (t *Treeview) Selection() []string {
	return append([]string(nil), t.selection...)
}

// SelectionSet replaces the selection.
func (t *Treeview) SelectionSet(ids ...string) {
	t.selection = t.selection[:0]
	for _, id := range ids {
		if _, ok := t.items[id]; ok {
			t.selection = append(t.selection, id)
		}
	}
	if t.opts.get("selectmode") == "browse" && len(t.selection) > 1 {
		t.selection = t.selection[:1]
	}
}

func removeString(list []string, s string) []string {
	for i, x := range list {
		if x == s {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

type treeRow struct {
	id    string
	depth int
}

// rows lists the items currently visible, in display order.
func (t *Treeview) rows() []treeRow {
	var out []treeRow
	var walk func(ids []string, depth int)
	walk = func(ids []string, depth int) {
		for _, id := range ids {
			out = append(out, treeRow{id: id, depth: depth})
			if it := t.items[id]; it.open {
				walk(it.children, depth+1)
			}
		}
	}
	walk(t.roots, 0)
	return out
}

func (t *Treeview) showTree() bool {
	return strings.Contains(t.opts.get("show"), "tree")
}

func (t *Treeview) showHeadings() bool {
	return strings.Contains(t.opts.get("show"), "headings")
}

func (t *Treeview) displayColumns() []string {
	if dc := t.opts.get("displaycolumns"); dc != "" && dc != "#all" {
		return SplitList(dc)
	}
	return t.Columns()
}

func (t *Treeview) columnWidth(col string) int {
	if w, ok := t.widths[col]; ok {
		return w
	}
	if col == treeColumn {
		return 20
	}
	return max(10, textWidth(t.headings[col])+1)
}

func (t *Treeview) natural() Size {
	w := 0
	if t.showTree() {
		w += t.columnWidth(treeColumn)
	}
	for _, col := range t.displayColumns() {
		w += t.columnWidth(col)
	}
	h := max(1, t.opts.getInt("height"))
	if t.showHeadings() {
		h++
	}
	tp, r, b, l := t.insets()
	return Size{Width: max(1, w) + l + r, Height: h + tp + b}
}

func (t *Treeview) takesFocus() bool { return true }

func (t *Treeview) focusIndex(rows []treeRow) int {
	for i, r := range rows {
		if r.id == t.focusItem {
			return i
		}
	}
	return -1
}

func (t *Treeview) handleKey(ev terminal.KeyEvent) bool {
	rows := t.rows()
	if len(rows) == 0 {
		return false
	}
	i := t.focusIndex(rows)
	switch ev.Key {
	case terminal.KeyUp:
		i = max(0, i-1)
	case terminal.KeyDown:
		i = min(len(rows)-1, i+1)
	case terminal.KeyHome:
		i = 0
	case terminal.KeyEnd:
		i = len(rows) - 1
	case terminal.KeyRight:
		if i >= 0 {
			t.SetOpen(rows[i].id, true)
		}
		return true
	case terminal.KeyLeft:
		if i >= 0 {
			it := t.items[rows[i].id]
			if it.open {
				it.open = false
			} else if it.parent != "" {
				t.focusItem = it.parent
				t.selectFocus()
			}
		}
		return true
	case terminal.KeyRune:
		if ev.Rune != ' ' || i < 0 {
			return false
		}
		it := t.items[rows[i].id]
		it.open = !it.open
		return true
	default:
		return false
	}
	t.focusItem = rows[max(0, i)].id
	t.selectFocus()
	return true
}

func (t *Treeview) selectFocus() {
	if t.opts.get("selectmode") != "none" {
		t.SelectionSet(t.focusItem)
	}
}

func (t *Treeview) handleClick(_, y int) bool {
	top, _, _, _ := t.insets()
	row := y - top
	if t.showHeadings() {
		row--
	}
	rows := t.rows()
	if row < 0 || t.top+row >= len(rows) {
		return true
	}
	id := rows[t.top+row].id
	if t.focusItem == id && len(t.items[id].children) > 0 {
		t.items[id].open = !t.items[id].open
	}
	t.focusItem = id
	t.selectFocus()
	return true
}

func (t *Treeview) draw(buf *Buffer, dc *drawContext) {
	t.drawSurface(buf, dc)
	area := t.content()
	view := buf.Clip(area)
	text := t.style(dc.theme.Text)

	y := area.Y
	cols := t.displayColumns()
	if t.showHeadings() {
		x := area.X
		head := text.Bold(true).Underline(true)
		if t.showTree() {
			w := t.columnWidth(treeColumn)
			view.SetString(x, y, pad(t.headings[treeColumn], w), head)
			x += w
		}
		for _, col := range cols {
			w := t.columnWidth(col)
			view.SetString(x, y, pad(t.headings[col], w), head)
			x += w
		}
		y++
	}

	rows := t.rows()
	height := area.Y + area.Height - y
	if fi := t.focusIndex(rows); fi >= 0 && height > 0 {
		if fi < t.top {
			t.top = fi
		}
		if fi >= t.top+height {
			t.top = fi - height + 1
		}
	}
	t.top = max(0, min(t.top, len(rows)-1))

	selected := make(map[string]bool, len(t.selection))
	for _, id := range t.selection {
		selected[id] = true
	}
	colIndex := make(map[string]int)
	for i, c := range t.Columns() {
		colIndex[c] = i
	}
	for i := t.top; i < len(rows) && y < area.Y+area.Height; i++ {
		r := rows[i]
		it := t.items[r.id]
		style := text
		if selected[r.id] {
			style = dc.theme.Selection
		}
		if t.hasFocus(dc) && r.id == t.focusItem {
			style = style.Underline(true)
		}
		view.Fill(Rect{X: area.X, Y: y, Width: area.Width, Height: 1}, ' ', style)
		x := area.X
		if t.showTree() {
			w := t.columnWidth(treeColumn)
			mark := "  "
			if len(it.children) > 0 {
				mark = theme.Symbols.Collapsed + " "
				if it.open {
					mark = theme.Symbols.Expanded + " "
				}
			}
			view.SetString(x, y, pad(strings.Repeat("  ", r.depth)+mark+it.text, w), style)
			x += w
		}
		for _, col := range cols {
			w := t.columnWidth(col)
			val := ""
			if ci, ok := colIndex[col]; ok && ci < len(it.values) {
				val = it.values[ci]
			}
			view.SetString(x, y, pad(val, w), style)
			x += w
		}
		y++
	}
}
