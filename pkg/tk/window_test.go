package tk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gengui/pkg/ui/backend/sim"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
)

func TestRoot_DrawsTitleAndWidgets(t *testing.T) {
	root := NewRoot("Demo")
	gridded(t, root, "hello", GridSlot{})

	b := screen(t, 30, 5)
	render(root, b)

	x, y := b.FindText("Demo")
	assert.Equal(t, (30-4)/2, x)
	assert.Equal(t, 0, y)

	x, y = b.FindText("hello")
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
}

func TestRoot_SetTitleRedraws(t *testing.T) {
	root := NewRoot("Before")
	b := screen(t, 30, 3)
	render(root, b)
	require.True(t, b.ContainsText("Before"))

	root.SetTitle("After")
	render(root, b)
	assert.True(t, b.ContainsText("After"))
	assert.False(t, b.ContainsText("Before"))
}

func buttons(t *testing.T, parent Widget, names ...string) []*Button {
	t.Helper()
	out := make([]*Button, len(names))
	for i, name := range names {
		btn, err := NewButton(parent, name, Options{"text": name})
		require.NoError(t, err)
		require.NoError(t, btn.Grid(GridSlot{Column: i}))
		out[i] = btn
	}
	return out
}

func TestRoot_TabTraversal(t *testing.T) {
	root := NewRoot("t")
	btns := buttons(t, root, "a", "b", "c")
	require.NoError(t, btns[1].Configure(Options{"state": "disabled"}))

	render(root, screen(t, 30, 4))
	assert.Equal(t, Widget(btns[0]), root.FocusGet())

	root.HandleEvent(key(terminal.KeyTab))
	assert.Equal(t, Widget(btns[2]), root.FocusGet(), "disabled widgets are skipped")

	root.HandleEvent(key(terminal.KeyTab))
	assert.Equal(t, Widget(btns[0]), root.FocusGet(), "traversal wraps")

	root.HandleEvent(key(terminal.KeyBacktab))
	assert.Equal(t, Widget(btns[2]), root.FocusGet())
}

func TestRoot_EnterAndSpaceInvokeFocused(t *testing.T) {
	root := NewRoot("t")
	btns := buttons(t, root, "a", "b")
	var pressed []string
	for _, btn := range btns {
		name := btn.Name()
		require.NoError(t, btn.SetCommand(func() { pressed = append(pressed, name) }))
	}
	render(root, screen(t, 30, 4))

	root.HandleEvent(key(terminal.KeyEnter))
	root.HandleEvent(key(terminal.KeyTab))
	root.HandleEvent(runeKey(' '))
	assert.Equal(t, []string{"a", "b"}, pressed)
}

func TestRoot_ClickInvokesAndFocuses(t *testing.T) {
	root := NewRoot("t")
	btns := buttons(t, root, "a", "b")
	clicked := false
	require.NoError(t, btns[1].SetCommand(func() { clicked = true }))

	b := screen(t, 30, 4)
	render(root, b)
	x, y := b.FindText("[ b ]")
	require.GreaterOrEqual(t, x, 0)

	root.HandleEvent(terminal.MouseEvent{X: x + 1, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress})
	assert.True(t, clicked)
	assert.Equal(t, Widget(btns[1]), root.FocusGet())

	clicked = false
	root.HandleEvent(terminal.MouseEvent{X: x + 1, Y: y, Action: terminal.MouseRelease})
	assert.False(t, clicked, "releases are ignored")
}

func TestRoot_FocusFollowsExplicitRequest(t *testing.T) {
	root := NewRoot("t")
	btns := buttons(t, root, "a", "b")
	render(root, screen(t, 30, 4))

	Focus(btns[1])
	assert.Equal(t, Widget(btns[1]), root.FocusGet())

	btns[1].Destroy()
	assert.Nil(t, root.FocusGet())
}

func TestToplevel_TakesInputUntilEscape(t *testing.T) {
	root := NewRoot("t")
	rootPressed := false
	rootBtn := buttons(t, root, "main")[0]
	require.NoError(t, rootBtn.SetCommand(func() { rootPressed = true }))

	dlg, err := NewToplevel(root, "dlg", nil)
	require.NoError(t, err)
	dlg.SetTitle("Dialog")
	dlgPressed := false
	dlgBtn := buttons(t, dlg, "ok")[0]
	require.NoError(t, dlgBtn.SetCommand(func() { dlgPressed = true }))

	b := screen(t, 40, 10)
	render(root, b)
	assert.True(t, b.ContainsText("Dialog"))
	assert.True(t, b.ContainsText("[ ok ]"))
	assert.Len(t, root.Toplevels(), 1)

	root.HandleEvent(key(terminal.KeyEnter))
	assert.True(t, dlgPressed)
	assert.False(t, rootPressed)

	root.HandleEvent(key(terminal.KeyEscape))
	assert.Empty(t, root.Toplevels())
	render(root, b)
	assert.False(t, b.ContainsText("Dialog"))

	root.HandleEvent(key(terminal.KeyEnter))
	assert.True(t, rootPressed)
}

func TestToplevel_IsNotGriddable(t *testing.T) {
	root := NewRoot("t")
	dlg, err := NewToplevel(root, "dlg", nil)
	require.NoError(t, err)
	assert.Error(t, dlg.Grid(GridSlot{}))
}

func startLoop(t *testing.T, root *Root, b *sim.Backend) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- root.Mainloop(ctx, b) }()
	t.Cleanup(cancel)
	return cancel, errc
}

func waitFor(t *testing.T, b *sim.Backend, text string) {
	t.Helper()
	require.Eventually(t, func() bool { return b.ContainsText(text) }, 2*time.Second, 10*time.Millisecond, "waiting for %q", text)
}

func TestMainloop_ReturnsOnCancel(t *testing.T) {
	root := NewRoot("Loop")
	b := sim.New(30, 5)
	cancel, errc := startLoop(t, root, b)

	waitFor(t, b, "Loop")
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("mainloop did not return")
	}
}

func TestMainloop_CtrlCQuits(t *testing.T) {
	root := NewRoot("Loop")
	b := sim.New(30, 5)
	_, errc := startLoop(t, root, b)

	waitFor(t, b, "Loop")
	b.InjectKey(terminal.KeyCtrlC, 0)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("mainloop did not return")
	}
}

func TestMainloop_InterruptRunsOnLoop(t *testing.T) {
	root := NewRoot("Loop")
	l := gridded(t, root, "before", GridSlot{})
	b := sim.New(30, 5)
	cancel, errc := startLoop(t, root, b)

	waitFor(t, b, "before")
	require.NoError(t, b.PostEvent(terminal.InterruptEvent{Data: func() {
		_ = l.Configure(Options{"text": "after"})
	}}))
	waitFor(t, b, "after")

	cancel()
	<-errc
}

func TestMainloop_QuitFromCommand(t *testing.T) {
	root := NewRoot("Loop")
	btn := buttons(t, root, "quit")[0]
	require.NoError(t, btn.SetCommand(root.Quit))
	b := sim.New(30, 5)
	_, errc := startLoop(t, root, b)

	waitFor(t, b, "[ quit ]")
	b.InjectKey(terminal.KeyEnter, 0)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("mainloop did not return")
	}
}
