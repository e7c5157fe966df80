package tk

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gengui/pkg/ui/backend"
)

// Size is a requested or assigned extent in cells.
type Size struct {
	Width, Height int
}

// Rect is a positioned rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersection returns the overlapping area of two rects.
func (r Rect) Intersection(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x || y2 <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Cell represents a single character cell in the buffer.
// Rune 0 marks the trailing half of a wide rune.
type Cell struct {
	Rune  rune
	Style backend.Style
}

type cellGrid struct {
	cells  []Cell
	width  int
	height int
}

// Buffer is a 2D grid of cells windows draw into before it is flushed to a
// backend. Views created with Clip share cells and restrict writes.
type Buffer struct {
	grid *cellGrid
	clip Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	g := &cellGrid{cells: make([]Cell, w*h), width: w, height: h}
	b := &Buffer{grid: g, clip: Rect{Width: w, Height: h}}
	b.Clear()
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.grid.width, b.grid.height
}

// Clip returns a view of the buffer whose writes are restricted to r.
func (b *Buffer) Clip(r Rect) *Buffer {
	return &Buffer{grid: b.grid, clip: b.clip.Intersection(r)}
}

// Clear fills the whole buffer with spaces and default style.
func (b *Buffer) Clear() {
	for i := range b.grid.cells {
		b.grid.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
}

// Get returns the cell at position (x, y), or a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.grid.width || y < 0 || y >= b.grid.height {
		return Cell{Rune: ' '}
	}
	return b.grid.cells[y*b.grid.width+x]
}

// Set writes a rune with style at position (x, y). Wide runes occupy two
// cells; the second becomes a continuation cell.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if !b.clip.Contains(x, y) {
		return
	}
	w := runewidth.RuneWidth(r)
	if w == 2 && !b.clip.Contains(x+1, y) {
		r, w = ' ', 1
	}
	b.grid.cells[y*b.grid.width+x] = Cell{Rune: r, Style: s}
	if w == 2 {
		b.grid.cells[y*b.grid.width+x+1] = Cell{Rune: 0, Style: s}
	}
}

// SetString writes s starting at (x, y) and returns the columns consumed.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(col, y, r, style)
		col += w
	}
	return col - x
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	r = b.clip.Intersection(r)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.grid.cells[y*b.grid.width+x] = Cell{Rune: ch, Style: s}
		}
	}
}

// DrawBox draws a rounded border around r.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1

	b.Set(r.X, r.Y, '╭', s)
	b.Set(right, r.Y, '╮', s)
	b.Set(r.X, bottom, '╰', s)
	b.Set(right, bottom, '╯', s)
	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, bottom, '─', s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(right, y, '│', s)
	}
}

// Flush copies the buffer onto a backend surface.
func (b *Buffer) Flush(s backend.Surface) {
	backend.Flush(s, b.grid.width, b.grid.height, func(x, y int) (rune, backend.Style) {
		c := b.grid.cells[y*b.grid.width+x]
		return c.Rune, c.Style
	})
}

// textWidth returns the display width of s in cells.
func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncate clips s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// pad right-pads s with spaces to exactly width cells.
func pad(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}
