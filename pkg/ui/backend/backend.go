// Package backend defines the terminal surface the toolkit draws on.
// The tcell backend drives a real terminal; the sim backend wraps tcell's
// simulation screen so windows can be rendered and inspected headless.
package backend

import "github.com/odvcencio/gengui/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters raw mode and the alternate screen.
	Init() error

	// Fini restores the terminal.
	Fini()

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int)

	// SetContent sets a cell at (x, y). comb holds combining runes and may be nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes pending cells to the terminal.
	Show()

	// Clear blanks the screen.
	Clear()

	HideCursor()

	// SetCursorPos shows the cursor at (x, y).
	SetCursorPos(x, y int)

	// PollEvent blocks until an event is available.
	// It returns nil once the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Sync forces a full redraw on the next Show.
	Sync()
}

// Surface is the drawing subset of Backend. The toolkit's cell buffer
// flushes into a Surface.
type Surface interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// Flush copies every cell produced by get onto the surface.
func Flush(s Surface, width, height int, get func(x, y int) (rune, Style)) {
	sw, sh := s.Size()
	width = min(width, sw)
	height = min(height, sh)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, st := get(x, y)
			if r == 0 {
				// continuation cell of a wide rune
				continue
			}
			s.SetContent(x, y, r, nil, st)
		}
	}
}
