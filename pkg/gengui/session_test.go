package gengui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/odvcencio/gengui/pkg/config"
	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/tk"
	"github.com/odvcencio/gengui/pkg/ui/backend/sim"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
)

const formDoc = `{
	"Frame": {
		"row": 0, "column": 0,
		"Label": {"row": 0, "column": 0, "text": "Name"},
		"Entry": {"row": 0, "column": 1},
		"Checkbutton": {"row": 1, "column": 0, "text": "Remember"}
	},
	"Button": {"row": 1, "column": 0, "text": "OK"},
	"Notebook": {"row": 2, "column": 0},
	"Treeview": {"row": 3, "column": 0, "columns": ["size"]}
}`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newForm(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	_, err := s.Initialize(context.Background(), writeDoc(t, "form.json", formDoc), "Form")
	require.NoError(t, err)
	return s
}

func TestSession_Initialize(t *testing.T) {
	s := newForm(t)
	require.NotNil(t, s.Root())
	assert.Equal(t, "Form", s.Root().Title())
	assert.NotEmpty(t, s.ID())

	names := make([]string, 0)
	for _, c := range s.Root().Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Frame", "Button", "Notebook", "Treeview"}, names)
}

func TestSession_InitializeYAML(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Title = "Fallback"
	s := NewSession(cfg)

	root, err := s.Initialize(context.Background(), writeDoc(t, "doc.yml", "Label:\n  text: from yaml\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "Fallback", root.Title())

	w, err := s.Find("Label")
	require.NoError(t, err)
	text, _ := w.Cget("text")
	assert.Equal(t, "from yaml", text)
}

func TestSession_MalformedInputBuildsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any Construct or Place fails the test
	s := NewSession(nil, WithToolkit(NewMockToolkit(ctrl)))

	_, err := s.InitializeFrom(context.Background(), strings.NewReader(`{"Label": {"text": `), FormatJSON, "x")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedInput))
	assert.Nil(t, s.Root())

	_, err = s.Initialize(context.Background(), writeDoc(t, "bad.json", `{"Label": [1,]}`), "x")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedInput))
}

func TestSession_MissingDocument(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Initialize(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "x")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestSession_RequiresRoot(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Find("Label")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
	_, err = s.CreateMenu([]MenuCommand{{Label: "a"}}, "", nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestSession_Find(t *testing.T) {
	s := newForm(t)

	w, err := s.Find("Checkbutton")
	require.NoError(t, err)
	assert.Equal(t, "Frame", w.Parent().Name())

	_, err = s.Find("Scrollbar")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	assert.Contains(t, err.Error(), `widget "Scrollbar" not found`)
}

func TestSession_Button(t *testing.T) {
	s := newForm(t)
	clicks := 0
	require.NoError(t, s.Button("Button", func() { clicks++ }))

	err := s.Button("OK", func() {})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	w, err := s.Find("Button")
	require.NoError(t, err)
	w.(*tk.Button).Invoke()
	assert.Equal(t, 1, clicks)

	err = s.Button("Frame", func() {})
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	err = s.Button("Label", func() {})
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestSession_Checkbox(t *testing.T) {
	s := newForm(t)
	v, err := s.Checkbox("Checkbutton")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Get())

	w, _ := s.Find("Checkbutton")
	w.(*tk.Checkbutton).Invoke()
	assert.Equal(t, 1, v.Get())

	_, err = s.Checkbox("Label")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestSession_EntryAndText(t *testing.T) {
	s := newForm(t)

	w, _ := s.Find("Entry")
	w.(*tk.Entry).Set("ada")
	got, err := s.Entry("Entry")
	require.NoError(t, err)
	assert.Equal(t, "ada", got)

	_, err = s.Entry("Button")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))

	v, err := s.Text("Label")
	require.NoError(t, err)
	v.Set("Full name")
	label, _ := s.Find("Label")
	assert.Equal(t, "Full name", label.(*tk.Label).Text())

	v, err = s.Text("Entry")
	require.NoError(t, err)
	v.Set("grace")
	got, _ = s.Entry("Entry")
	assert.Equal(t, "grace", got)
}

func TestSession_CreateMenu(t *testing.T) {
	s := newForm(t)
	var ran []string
	cmd := func(label string) MenuCommand {
		return MenuCommand{Label: label, Command: func() { ran = append(ran, label) }}
	}

	bar, err := s.CreateMenu([]MenuCommand{cmd("About")}, "", nil)
	require.NoError(t, err)
	assert.Same(t, bar, s.Root().Menu())

	file, err := s.CreateMenu([]MenuCommand{cmd("Open"), cmd("Save")}, "File", nil)
	require.NoError(t, err)
	recent, err := s.CreateMenu([]MenuCommand{cmd("notes.txt")}, "Recent", file)
	require.NoError(t, err)

	entries := bar.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, tk.MenuCommand, entries[0].Kind)
	assert.Equal(t, "File", entries[1].Label)
	assert.Same(t, file, entries[1].Submenu)

	fileEntries := file.Entries()
	require.Len(t, fileEntries, 3)
	assert.Equal(t, tk.MenuCascade, fileEntries[2].Kind)
	assert.Same(t, recent, fileEntries[2].Submenu)

	require.NoError(t, bar.Invoke(0))
	require.NoError(t, file.Invoke(1))
	require.NoError(t, recent.Invoke(0))
	assert.Equal(t, []string{"About", "Save", "notes.txt"}, ran)

	// the bar is created once
	again, err := s.CreateMenu([]MenuCommand{cmd("Help")}, "", nil)
	require.NoError(t, err)
	assert.Same(t, bar, again)
	assert.Len(t, bar.Entries(), 3)
}

func TestSession_CreateMenuInvalid(t *testing.T) {
	s := newForm(t)
	_, err := s.CreateMenu(nil, "File", nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))

	bar, err := s.CreateMenu([]MenuCommand{{Label: "a"}}, "", nil)
	require.NoError(t, err)
	_, err = s.CreateMenu([]MenuCommand{{Label: "b"}}, "", bar)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestSession_MenusAreSessionScoped(t *testing.T) {
	a, b := newForm(t), newForm(t)
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.CreateMenu([]MenuCommand{{Label: "only a"}}, "", nil)
	require.NoError(t, err)
	assert.NotNil(t, a.Root().Menu())
	assert.Nil(t, b.Root().Menu())
}

func TestSession_PopupMenu(t *testing.T) {
	s := newForm(t)
	copied := false
	m, err := s.PopupMenu([]MenuCommand{{Label: "Copy", Command: func() { copied = true }}}, 2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Invoke(0))
	assert.True(t, copied)

	_, err = s.PopupMenu(nil, 0, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestSession_OpenDialog(t *testing.T) {
	s := newForm(t)
	path := writeDoc(t, "dialog.json", `{"Label": {"text": "Saved"}, "Button": {"row": 1, "text": "Close"}}`)

	top, err := s.OpenDialog(context.Background(), path, "Notice")
	require.NoError(t, err)
	assert.Equal(t, "Notice", top.Title())
	assert.Contains(t, s.Root().Toplevels(), top)
	require.Len(t, top.Children(), 2)

	label, err := Find(top, "Label")
	require.NoError(t, err)
	text, _ := label.Cget("text")
	assert.Equal(t, "Saved", text)

	second, err := s.OpenDialog(context.Background(), path, "Again")
	require.NoError(t, err)
	assert.NotEqual(t, top.Name(), second.Name())
}

func TestSession_AddTab(t *testing.T) {
	s := newForm(t)
	w, err := s.Find("Notebook")
	require.NoError(t, err)
	nb := w.(*tk.Notebook)

	general, err := s.AddTab(context.Background(), nb, writeDoc(t, "general.json", `{"Label": {"text": "General settings"}}`), "General")
	require.NoError(t, err)
	_, err = s.AddTab(context.Background(), nb, writeDoc(t, "advanced.yaml", "Checkbutton:\n  text: Verbose\n"), "Advanced")
	require.NoError(t, err)

	require.Len(t, nb.Tabs(), 2)
	assert.Same(t, tk.Widget(general), nb.Tabs()[0])
	assert.Equal(t, "General", nb.TabText(0))
	assert.Equal(t, "Advanced", nb.TabText(1))
	assert.Equal(t, 0, nb.Selected())
	require.Len(t, general.Children(), 1)
	assert.Equal(t, "Label", general.Children()[0].Name())
}

func TestSession_InsertRows(t *testing.T) {
	s := newForm(t)
	w, err := s.Find("Treeview")
	require.NoError(t, err)
	tree := w.(*tk.Treeview)

	ids, err := s.InsertRows(tree, "", [][]string{{"docs", ""}, {"main.go", "2 KB"}})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	children, err := s.InsertRows(tree, ids[0], [][]string{{"README.md", "1 KB"}})
	require.NoError(t, err)
	assert.Equal(t, children, tree.ItemChildren(ids[0]))

	text, values, ok := tree.Item(ids[1])
	require.True(t, ok)
	assert.Equal(t, "main.go", text)
	assert.Equal(t, []string{"2 KB"}, values)

	ids, err = s.InsertRows(tree, "", [][]string{{"ok"}, {}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
	assert.Len(t, ids, 1)

	_, err = s.InsertRows(tree, "I999", [][]string{{"x"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestSession_Mainloop(t *testing.T) {
	s := NewSession(nil)
	_, err := s.InitializeFrom(context.Background(), strings.NewReader(`{"Button": {"text": "Done"}}`), FormatJSON, "Loop")
	require.NoError(t, err)
	require.NoError(t, s.Button("Button", s.Root().Quit))

	b := sim.New(30, 5)
	errc := make(chan error, 1)
	go func() { errc <- s.Mainloop(context.Background(), b) }()

	require.Eventually(t, func() bool { return b.ContainsText("Done") }, 2*time.Second, 10*time.Millisecond)
	b.InjectKey(terminal.KeyEnter, 0)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("main loop did not quit")
	}
}
