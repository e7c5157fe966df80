package tk

import (
	"strconv"
	"strings"

	"github.com/odvcencio/gengui/pkg/errors"
)

// GridSlot is a widget's cell in its master's grid.
type GridSlot struct {
	Row, Column int
	// ColumnSpan is the number of columns occupied; 0 means 1.
	ColumnSpan int
	// Sticky holds any of the letters n, s, e, w. Sides named stretch the
	// widget to the cell edge; an empty value centers it.
	Sticky string
	// PadX and PadY are external margins in cells on each side.
	PadX, PadY int
}

// GridManager arranges a container's gridded children.
type GridManager struct {
	slots      []Widget
	rowWeights map[int]int
	colWeights map[int]int
	propagate  bool
}

func newGridManager() *GridManager {
	return &GridManager{
		rowWeights: make(map[int]int),
		colWeights: make(map[int]int),
		propagate:  true,
	}
}

// Slaves returns the gridded children in placement order.
func (g *GridManager) Slaves() []Widget {
	out := make([]Widget, len(g.slots))
	copy(out, g.slots)
	return out
}

func (g *GridManager) forget(w Widget) {
	g.slots = removeWidget(g.slots, w)
	w.base().slot = nil
}

// Grid places the widget in its parent's grid, replacing any earlier slot.
func (c *core) Grid(slot GridSlot) error {
	if c.parent == nil || isWindow(c.self) || c.class == "Menu" {
		return errors.Newf(errors.ErrCodeConfiguration, "can't manage %q: it's a top-level window", c.name)
	}
	if slot.ColumnSpan == 0 {
		slot.ColumnSpan = 1
	}
	if err := checkSlot(slot); err != nil {
		return err.WithContext("widget", c.class)
	}
	slot.Sticky = strings.ToLower(slot.Sticky)
	pg := c.parent.base().grid
	if c.slot == nil {
		pg.slots = append(pg.slots, c.self)
	}
	s := slot
	c.slot = &s
	return nil
}

// Grid lines are allocated up to the highest index in use, so indices and
// spans are bounded as in Tk.
const (
	maxGridIndex  = 10000
	maxGridWeight = 32767
)

func checkSlot(s GridSlot) *errors.Error {
	switch {
	case s.Row < 0:
		return errors.Newf(errors.ErrCodeConfiguration, "bad row value %q: must be a non-negative integer", strconv.Itoa(s.Row))
	case s.Row > maxGridIndex:
		return errors.Newf(errors.ErrCodeConfiguration, "bad row value %q: must not exceed %d", strconv.Itoa(s.Row), maxGridIndex)
	case s.Column < 0:
		return errors.Newf(errors.ErrCodeConfiguration, "bad column value %q: must be a non-negative integer", strconv.Itoa(s.Column))
	case s.Column > maxGridIndex:
		return errors.Newf(errors.ErrCodeConfiguration, "bad column value %q: must not exceed %d", strconv.Itoa(s.Column), maxGridIndex)
	case s.ColumnSpan < 1:
		return errors.Newf(errors.ErrCodeConfiguration, "bad columnspan value %q: must be a positive integer", strconv.Itoa(s.ColumnSpan))
	case s.ColumnSpan > maxGridIndex+1-s.Column:
		return errors.Newf(errors.ErrCodeConfiguration, "bad columnspan value %q: last column must not exceed %d", strconv.Itoa(s.ColumnSpan), maxGridIndex)
	case s.PadX < 0 || s.PadY < 0:
		return errors.New(errors.ErrCodeConfiguration, "bad pad value: must be non-negative")
	}
	for _, r := range strings.ToLower(s.Sticky) {
		if !strings.ContainsRune("nsew", r) {
			return errors.Newf(errors.ErrCodeConfiguration, "bad stickyness value %q: must be a string containing n, e, s, and/or w", s.Sticky)
		}
	}
	return nil
}

// GridInfo returns the widget's slot, if it is gridded.
func (c *core) GridInfo() (GridSlot, bool) {
	if c.slot == nil {
		return GridSlot{}, false
	}
	return *c.slot, true
}

// GridForget removes the widget from its parent's grid without destroying it.
func (c *core) GridForget() {
	if c.parent != nil && c.slot != nil {
		c.parent.base().grid.forget(c.self)
	}
}

// RowConfigure sets how much of the surplus height row index receives.
func (c *core) RowConfigure(index, weight int) error {
	if err := checkWeight(index, weight); err != nil {
		return err
	}
	c.grid.rowWeights[index] = weight
	return nil
}

// ColumnConfigure sets how much of the surplus width column index receives.
func (c *core) ColumnConfigure(index, weight int) error {
	if err := checkWeight(index, weight); err != nil {
		return err
	}
	c.grid.colWeights[index] = weight
	return nil
}

func checkWeight(index, weight int) error {
	if index < 0 {
		return errors.Newf(errors.ErrCodeConfiguration, "bad grid index %d: must be non-negative", index)
	}
	if index > maxGridIndex {
		return errors.Newf(errors.ErrCodeConfiguration, "bad grid index %d: must not exceed %d", index, maxGridIndex)
	}
	if weight < 0 {
		return errors.New(errors.ErrCodeConfiguration, "invalid arg \"-weight\": should be non-negative")
	}
	if weight > maxGridWeight {
		return errors.Newf(errors.ErrCodeConfiguration, "bad weight value %d: must not exceed %d", weight, maxGridWeight)
	}
	return nil
}

// RowWeight returns the weight configured for row index.
func (c *core) RowWeight(index int) int { return c.grid.rowWeights[index] }

// ColumnWeight returns the weight configured for column index.
func (c *core) ColumnWeight(index int) int { return c.grid.colWeights[index] }

// GridPropagate controls whether the container's requested size follows its
// gridded children (true, the default) or its own width and height.
func (c *core) GridPropagate(on bool) { c.grid.propagate = on }

// GridPropagated reports the propagation flag.
func (c *core) GridPropagated() bool { return c.grid.propagate }

// GridSlaves returns the gridded children in placement order.
func (c *core) GridSlaves() []Widget { return c.grid.Slaves() }

// lines computes the requested column widths and row heights.
func (g *GridManager) lines() (cols, rows []int) {
	ncols, nrows := 0, 0
	for _, w := range g.slots {
		s := w.base().slot
		ncols = max(ncols, s.Column+s.ColumnSpan)
		nrows = max(nrows, s.Row+1)
	}
	for i := range g.colWeights {
		ncols = max(ncols, i+1)
	}
	for i := range g.rowWeights {
		nrows = max(nrows, i+1)
	}
	cols = make([]int, ncols)
	rows = make([]int, nrows)

	var spanned []Widget
	for _, w := range g.slots {
		s := w.base().slot
		req := requested(w)
		rows[s.Row] = max(rows[s.Row], req.Height+2*s.PadY)
		if s.ColumnSpan > 1 {
			spanned = append(spanned, w)
			continue
		}
		cols[s.Column] = max(cols[s.Column], req.Width+2*s.PadX)
	}
	for _, w := range spanned {
		s := w.base().slot
		need := requested(w).Width + 2*s.PadX
		have := 0
		for i := s.Column; i < s.Column+s.ColumnSpan; i++ {
			have += cols[i]
		}
		if need > have {
			spread(cols[s.Column:s.Column+s.ColumnSpan], need-have, s.Column, g.colWeights)
		}
	}
	return cols, rows
}

// spread adds extra across sizes, proportionally to weights when any line
// in range is weighted, evenly otherwise. The last receiving line takes the
// rounding remainder.
func spread(sizes []int, extra, offset int, weights map[int]int) {
	total := 0
	for i := range sizes {
		total += weights[offset+i]
	}
	given, last := 0, len(sizes)-1
	if total > 0 {
		for i := range sizes {
			if w := weights[offset+i]; w > 0 {
				share := extra * w / total
				sizes[i] += share
				given += share
				last = i
			}
		}
	} else {
		for i := range sizes {
			share := extra / len(sizes)
			sizes[i] += share
			given += share
		}
	}
	sizes[last] += extra - given
}

// shrink removes deficit from weighted lines, never below zero.
func shrink(sizes []int, deficit int, weights map[int]int) {
	for deficit > 0 {
		total := 0
		for i, s := range sizes {
			if s > 0 {
				total += weights[i]
			}
		}
		if total == 0 {
			return
		}
		taken := 0
		for i := range sizes {
			w := weights[i]
			if w == 0 || sizes[i] == 0 {
				continue
			}
			cut := min(sizes[i], max(1, deficit*w/total))
			cut = min(cut, deficit-taken)
			sizes[i] -= cut
			taken += cut
			if taken == deficit {
				break
			}
		}
		if taken == 0 {
			return
		}
		deficit -= taken
	}
}

func (g *GridManager) requested() Size {
	cols, rows := g.lines()
	return Size{Width: sum(cols), Height: sum(rows)}
}

// arrange lays out every slave inside area.
func (g *GridManager) arrange(area Rect) {
	if len(g.slots) == 0 {
		return
	}
	cols, rows := g.lines()
	fit(cols, area.Width, g.colWeights)
	fit(rows, area.Height, g.rowWeights)

	xs := offsets(cols, area.X)
	ys := offsets(rows, area.Y)
	for _, w := range g.slots {
		s := w.base().slot
		cell := Rect{
			X:      xs[s.Column],
			Y:      ys[s.Row],
			Width:  sum(cols[s.Column : s.Column+s.ColumnSpan]),
			Height: rows[s.Row],
		}
		cell = cell.Inset(s.PadY, s.PadX, s.PadY, s.PadX)
		w.layout(stick(cell, requested(w), s.Sticky))
	}
}

func fit(sizes []int, avail int, weights map[int]int) {
	surplus := avail - sum(sizes)
	switch {
	case surplus > 0:
		total := 0
		for i := range sizes {
			total += weights[i]
		}
		if total > 0 {
			spread(sizes, surplus, 0, weights)
		}
	case surplus < 0:
		shrink(sizes, -surplus, weights)
	}
}

func stick(cell Rect, req Size, sticky string) Rect {
	r := cell
	hasN, hasS := strings.ContainsRune(sticky, 'n'), strings.ContainsRune(sticky, 's')
	hasE, hasW := strings.ContainsRune(sticky, 'e'), strings.ContainsRune(sticky, 'w')

	if !(hasE && hasW) {
		r.Width = min(req.Width, cell.Width)
		switch {
		case hasW:
		case hasE:
			r.X = cell.X + cell.Width - r.Width
		default:
			r.X = cell.X + (cell.Width-r.Width)/2
		}
	}
	if !(hasN && hasS) {
		r.Height = min(req.Height, cell.Height)
		switch {
		case hasN:
		case hasS:
			r.Y = cell.Y + cell.Height - r.Height
		default:
			r.Y = cell.Y + (cell.Height-r.Height)/2
		}
	}
	return r
}

func offsets(sizes []int, start int) []int {
	out := make([]int, len(sizes))
	pos := start
	for i, s := range sizes {
		out[i] = pos
		pos += s
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
