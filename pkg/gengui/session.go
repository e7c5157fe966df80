package gengui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"

	"github.com/odvcencio/gengui/pkg/config"
	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/observability"
	"github.com/odvcencio/gengui/pkg/tk"
	"github.com/odvcencio/gengui/pkg/ui/backend"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

// MenuCommand is one labelled command of a menu.
type MenuCommand struct {
	Label   string
	Command func()
}

// Session builds one document into a root window and offers lookups and
// bindings on the result. Sessions share no state with each other.
type Session struct {
	id      string
	cfg     *config.Config
	logger  *observability.Logger
	toolkit Toolkit
	builder *Builder

	root    *tk.Root
	menu    *tk.Menu
	dialogs atomic.Int64
	popups  atomic.Int64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger; the session adds its id to it.
func WithSessionLogger(l *observability.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithToolkit replaces the toolkit widgets are built with.
func WithToolkit(t Toolkit) SessionOption {
	return func(s *Session) {
		if t != nil {
			s.toolkit = t
		}
	}
}

// NewSession returns a session configured by cfg; nil means the defaults.
func NewSession(cfg *config.Config, opts ...SessionOption) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		id:     uuid.New().String(),
		cfg:    cfg,
		logger: observability.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.toolkit == nil {
		s.toolkit = NewToolkit(DefaultRegistry(), cfg.UI.PadX, cfg.UI.PadY)
	}
	s.logger = s.logger.WithSession(s.id)
	s.builder = NewBuilder(s.toolkit, WithLogger(s.logger))
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Root returns the root window, nil before Initialize.
func (s *Session) Root() *tk.Root { return s.root }

// Initialize reads the document at path and builds it into a new root
// window titled title. An empty title falls back to ui.title.
func (s *Session) Initialize(ctx context.Context, path, title string) (*tk.Root, error) {
	doc, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.initialize(ctx, doc, title)
}

// InitializeFrom is Initialize for a document read from r.
func (s *Session) InitializeFrom(ctx context.Context, r io.Reader, format Format, title string) (*tk.Root, error) {
	doc, err := Parse(r, format)
	if err != nil {
		return nil, err
	}
	return s.initialize(ctx, doc, title)
}

func (s *Session) initialize(ctx context.Context, doc *Mapping, title string) (*tk.Root, error) {
	if title == "" {
		title = s.cfg.UI.Title
	}
	root := tk.NewRoot(title)
	if th, ok := theme.ByName(s.cfg.UI.Theme); ok {
		root.SetTheme(th)
	}
	s.root = root
	s.menu = nil

	ctx, span := observability.StartSpan(ctx, "gengui.initialize")
	defer span.End()
	span.SetAttributes(observability.AttrSessionID.String(s.id))
	if err := s.builder.Build(ctx, root, doc); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return root, err
	}
	return root, nil
}

// load reads and parses a document file.
func (s *Session) load(ctx context.Context, path string) (*Mapping, error) {
	ctx, span := observability.StartSpan(ctx, "gengui.load")
	defer span.End()
	span.SetAttributes(observability.AttrDocument.String(path))

	f, err := os.Open(path)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot open widget document").
			WithContext("path", path)
	}
	defer f.Close()

	doc, err := Parse(f, FormatForPath(path))
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}
	return doc, nil
}

func (s *Session) requireRoot() error {
	if s.root == nil {
		return errors.New(errors.ErrCodeInvalidInput, "session has no window").
			WithRemediation("call Initialize first")
	}
	return nil
}

// Find returns the first widget named name in the root window.
func (s *Session) Find(name string) (tk.Widget, error) {
	if err := s.requireRoot(); err != nil {
		return nil, err
	}
	w, err := Find(s.root, name)
	if err != nil {
		s.logger.LookupMissed(name)
		return nil, err
	}
	return w, nil
}

// Button binds fn as the command of the widget named name.
func (s *Session) Button(name string, fn func()) error {
	w, err := s.Find(name)
	if err != nil {
		return err
	}
	c, ok := w.(interface{ SetCommand(func()) error })
	if !ok {
		return notCapable(w, "takes no command")
	}
	return c.SetCommand(fn)
}

// Checkbox binds a new IntVar to the variable option of the widget named
// name and returns it.
func (s *Session) Checkbox(name string) (*tk.IntVar, error) {
	v := tk.NewIntVar()
	if err := s.bind(name, "variable", v); err != nil {
		return nil, err
	}
	return v, nil
}

// Text binds a new StringVar to the textvariable option of the widget named
// name and returns it.
func (s *Session) Text(name string) (*tk.StringVar, error) {
	v := tk.NewStringVar()
	if err := s.bind(name, "textvariable", v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) bind(name, option string, v tk.Variable) error {
	w, err := s.Find(name)
	if err != nil {
		return err
	}
	b, ok := w.(interface {
		SetVariable(option string, v tk.Variable) error
	})
	if !ok {
		return notCapable(w, "takes no variable")
	}
	return b.SetVariable(option, v)
}

// Entry returns the current text of the entry-like widget named name.
func (s *Session) Entry(name string) (string, error) {
	w, err := s.Find(name)
	if err != nil {
		return "", err
	}
	g, ok := w.(interface{ Get() string })
	if !ok {
		return "", notCapable(w, "holds no text")
	}
	return g.Get(), nil
}

func notCapable(w tk.Widget, what string) error {
	return errors.Newf(errors.ErrCodeConfiguration, "widget %q %s", w.Name(), what).
		WithContext("widget", w.Class())
}

// CreateMenu adds commands to the session's menu bar, creating the bar on
// first use. With no name the commands go directly on the bar. With a name
// they form a dropdown on the bar, or a submenu of parent when parent is
// set. The returned menu can parent further submenus.
func (s *Session) CreateMenu(commands []MenuCommand, name string, parent *tk.Menu) (*tk.Menu, error) {
	if err := s.requireRoot(); err != nil {
		return nil, err
	}
	if len(commands) == 0 || (name == "" && parent != nil) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid menu parameters").
			WithRemediation("pass at least one command", "name the menu when giving a parent")
	}
	if s.menu == nil {
		bar, err := tk.NewMenu(s.root, "menu", nil)
		if err != nil {
			return nil, err
		}
		s.menu = bar
		s.root.SetMenu(bar)
	}

	if name == "" {
		addCommands(s.menu, commands)
		return s.menu, nil
	}
	owner := s.menu
	if parent != nil {
		owner = parent
	}
	sub, err := tk.NewMenu(owner, name, nil)
	if err != nil {
		return nil, err
	}
	owner.AddCascade(name, sub)
	addCommands(sub, commands)
	return sub, nil
}

// PopupMenu shows a menu of commands at (x, y).
func (s *Session) PopupMenu(commands []MenuCommand, x, y int) (*tk.Menu, error) {
	if err := s.requireRoot(); err != nil {
		return nil, err
	}
	if len(commands) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "popup menu needs at least one command")
	}
	m, err := tk.NewMenu(s.root, fmt.Sprintf("popup%d", s.popups.Add(1)), nil)
	if err != nil {
		return nil, err
	}
	addCommands(m, commands)
	m.Popup(x, y)
	return m, nil
}

func addCommands(m *tk.Menu, commands []MenuCommand) {
	for _, c := range commands {
		m.AddCommand(c.Label, c.Command)
	}
}

// OpenDialog builds the document at path into a new toplevel window.
func (s *Session) OpenDialog(ctx context.Context, path, title string) (*tk.Toplevel, error) {
	if err := s.requireRoot(); err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	top, err := tk.NewToplevel(s.root, fmt.Sprintf("toplevel%d", s.dialogs.Add(1)), nil)
	if err != nil {
		return nil, err
	}
	top.SetTitle(title)
	if err := s.builder.Build(ctx, top, doc); err != nil {
		return top, err
	}
	return top, nil
}

// AddTab builds the document at path into a new frame and adds it to
// notebook as a tab labelled title.
func (s *Session) AddTab(ctx context.Context, notebook *tk.Notebook, path, title string) (*tk.Frame, error) {
	doc, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	frame, err := tk.NewFrame(notebook, title, nil)
	if err != nil {
		return nil, err
	}
	if err := s.builder.Build(ctx, frame, doc); err != nil {
		return frame, err
	}
	if err := notebook.Add(frame, title); err != nil {
		return frame, err
	}
	return frame, nil
}

// InsertRows appends rows to tree under parent ("" for the top level). The
// first cell of each row is the item text, the rest its column values. It
// returns the new item ids.
func (s *Session) InsertRows(tree *tk.Treeview, parent string, rows [][]string) ([]string, error) {
	ids := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return ids, errors.Newf(errors.ErrCodeInvalidInput, "row %d is empty", i)
		}
		id, err := tree.Insert(parent, -1, row[0], row[1:]...)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Mainloop runs the root window on b until it quits or ctx ends.
func (s *Session) Mainloop(ctx context.Context, b backend.Backend) error {
	if err := s.requireRoot(); err != nil {
		return err
	}
	s.logger.Info("main loop started", "title", s.root.Title())
	err := s.root.Mainloop(ctx, b)
	s.logger.Info("main loop finished")
	return err
}
