package tk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gengui/pkg/ui/terminal"
)

type menuFixture struct {
	root   *Root
	file   *Menu
	edit   *Menu
	recent *Menu
	ran    []string
}

// newMenuFixture builds a bar with File (Open, separator, Recent >, Quit)
// and Edit (Undo).
func newMenuFixture(t *testing.T) *menuFixture {
	t.Helper()
	f := &menuFixture{root: NewRoot("menus")}
	bar, err := NewMenu(f.root, "bar", nil)
	require.NoError(t, err)
	f.file, err = NewMenu(bar, "file", nil)
	require.NoError(t, err)
	f.edit, err = NewMenu(bar, "edit", nil)
	require.NoError(t, err)
	f.recent, err = NewMenu(f.file, "recent", nil)
	require.NoError(t, err)

	record := func(name string) func() {
		return func() { f.ran = append(f.ran, name) }
	}
	f.file.AddCommand("Open", record("open"))
	f.file.AddSeparator()
	f.file.AddCascade("Recent", f.recent)
	f.file.AddCommand("Quit", record("quit"))
	f.edit.AddCommand("Undo", record("undo"))
	f.recent.AddCommand("notes.txt", record("notes"))

	bar.AddCascade("File", f.file)
	bar.AddCascade("Edit", f.edit)
	f.root.SetMenu(bar)
	return f
}

func (f *menuFixture) top() *Menu {
	if n := len(f.root.menus.open); n > 0 {
		return f.root.menus.open[n-1].menu
	}
	return nil
}

func TestMenuBar_KeyboardNavigation(t *testing.T) {
	f := newMenuFixture(t)
	b := screen(t, 40, 10)
	render(f.root, b)
	assert.True(t, b.ContainsText(" File "))

	f.root.HandleEvent(key(terminal.KeyF10))
	assert.Equal(t, 0, f.root.menus.bar)

	f.root.HandleEvent(key(terminal.KeyDown))
	require.Equal(t, f.file, f.top())
	render(f.root, b)
	assert.True(t, b.ContainsText(" Open"))

	// Down skips the separator.
	f.root.HandleEvent(key(terminal.KeyDown))
	assert.Equal(t, 2, f.root.menus.open[0].active)

	f.root.HandleEvent(key(terminal.KeyDown))
	f.root.HandleEvent(key(terminal.KeyEnter))
	assert.Equal(t, []string{"quit"}, f.ran)
	assert.Empty(t, f.root.menus.open)
	assert.Equal(t, -1, f.root.menus.bar)
}

func TestMenuBar_CascadeAndBarMovement(t *testing.T) {
	f := newMenuFixture(t)
	render(f.root, screen(t, 40, 10))

	f.root.HandleEvent(key(terminal.KeyF10))
	f.root.HandleEvent(key(terminal.KeyEnter))
	f.root.HandleEvent(key(terminal.KeyDown))
	f.root.HandleEvent(key(terminal.KeyRight))
	require.Equal(t, f.recent, f.top())

	f.root.HandleEvent(key(terminal.KeyLeft))
	require.Equal(t, f.file, f.top())

	f.root.HandleEvent(key(terminal.KeyUp))
	f.root.HandleEvent(key(terminal.KeyRight))
	assert.Equal(t, 1, f.root.menus.bar)
	assert.Equal(t, f.edit, f.top())

	f.root.HandleEvent(key(terminal.KeyEscape))
	assert.Nil(t, f.top())
	assert.Equal(t, 1, f.root.menus.bar)
	f.root.HandleEvent(key(terminal.KeyEscape))
	assert.Equal(t, -1, f.root.menus.bar)
	assert.Empty(t, f.ran)
}

func TestMenuBar_MenusSwallowKeysWhileOpen(t *testing.T) {
	f := newMenuFixture(t)
	pressed := false
	btn := buttons(t, f.root, "b")[0]
	require.NoError(t, btn.SetCommand(func() { pressed = true }))
	render(f.root, screen(t, 40, 10))

	f.root.HandleEvent(key(terminal.KeyF10))
	f.root.HandleEvent(key(terminal.KeyTab))
	assert.False(t, pressed)
	f.root.HandleEvent(key(terminal.KeyF10))

	f.root.HandleEvent(key(terminal.KeyEnter))
	assert.True(t, pressed)
}

func TestMenuBar_MouseSelection(t *testing.T) {
	f := newMenuFixture(t)
	render(f.root, screen(t, 40, 10))

	// File occupies columns 1..6 of the bar.
	f.root.HandleEvent(terminal.MouseEvent{X: 2, Y: 0, Button: terminal.MouseLeft, Action: terminal.MousePress})
	require.Equal(t, f.file, f.top())

	// The dropdown opens at (1, 1); Open is its first row.
	f.root.HandleEvent(terminal.MouseEvent{X: 3, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress})
	assert.Equal(t, []string{"open"}, f.ran)
	assert.Nil(t, f.top())
}

func TestMenuBar_ClickOutsideDismisses(t *testing.T) {
	f := newMenuFixture(t)
	render(f.root, screen(t, 40, 10))

	f.root.HandleEvent(terminal.MouseEvent{X: 2, Y: 0, Button: terminal.MouseLeft, Action: terminal.MousePress})
	f.root.HandleEvent(terminal.MouseEvent{X: 35, Y: 8, Button: terminal.MouseLeft, Action: terminal.MousePress})
	assert.Nil(t, f.top())
	assert.Equal(t, -1, f.root.menus.bar)
	assert.Empty(t, f.ran)
}

func TestMenu_Popup(t *testing.T) {
	root := NewRoot("t")
	ctx, err := NewMenu(root, "ctx", nil)
	require.NoError(t, err)
	copied := 0
	ctx.AddCommand("Copy", func() { copied++ })

	b := screen(t, 30, 8)
	ctx.Popup(5, 3)
	render(root, b)
	x, y := b.FindText("Copy")
	assert.Equal(t, 7, x)
	assert.Equal(t, 4, y)

	root.HandleEvent(key(terminal.KeyEnter))
	assert.Equal(t, 1, copied)
	render(root, b)
	assert.False(t, b.ContainsText("Copy"))

	ctx.Popup(5, 3)
	root.HandleEvent(key(terminal.KeyEscape))
	assert.Empty(t, root.menus.open)
	assert.Equal(t, 1, copied)
}

func TestMenu_Invoke(t *testing.T) {
	root := NewRoot("t")
	m, err := NewMenu(root, "m", nil)
	require.NoError(t, err)
	hits := 0
	m.AddCommand("Go", func() { hits++ })
	m.AddSeparator()

	require.NoError(t, m.Invoke(0))
	require.NoError(t, m.Invoke(1))
	assert.Equal(t, 1, hits)
	assert.Error(t, m.Invoke(2))
	assert.Len(t, m.Entries(), 2)
}

func TestMenu_DestroyingMenubarClearsIt(t *testing.T) {
	f := newMenuFixture(t)
	f.root.Menu().Destroy()
	assert.Nil(t, f.root.Menu())
}
