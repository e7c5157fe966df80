// Package tk is a Tk-style widget toolkit for the terminal. Widgets form a
// parent/children tree, are arranged by a grid geometry manager, carry
// string-valued options validated per class, and bind to named variables.
package tk

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/backend"
	"github.com/odvcencio/gengui/pkg/ui/terminal"
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

// Widget is implemented by every toolkit widget. The unexported methods
// keep implementations inside this package.
type Widget interface {
	// Name is the widget's name within its parent.
	Name() string
	// Class is the widget kind, e.g. "Button".
	Class() string
	Parent() Widget
	// Children returns the widget's children in creation order.
	Children() []Widget
	Cget(option string) (string, error)
	Configure(opts Options) error
	// Keys lists the options the widget accepts.
	Keys() []string
	Bounds() Rect
	Destroy()

	base() *core
	natural() Size
	insets() (top, right, bottom, left int)
	draw(buf *Buffer, dc *drawContext)
	layout(bounds Rect)
	visibleChildren() []Widget
	takesFocus() bool
	handleKey(ev terminal.KeyEvent) bool
	handleClick(x, y int) bool
	onConfigure(changed map[string]string)
}

// Constructor creates a widget of one kind under parent.
type Constructor func(parent Widget, name string, opts Options) (Widget, error)

type drawContext struct {
	theme *theme.Theme
	focus Widget
}

var cmdCounter atomic.Int64

// core carries the state every widget shares. Widgets embed it and set self
// so core can dispatch to their overrides.
type core struct {
	self     Widget
	name     string
	class    string
	parent   Widget
	children []Widget

	opts    *optionTable
	vars    map[string]Variable
	command func()

	grid *GridManager
	slot *GridSlot

	bounds    Rect
	destroyed bool
}

func (c *core) init(self Widget, parent Widget, class, name string, list []optSpec, opts Options) error {
	c.self = self
	c.class = class
	c.name = name
	c.parent = parent
	c.opts = newOptionTable(class, list)
	c.vars = make(map[string]Variable)
	c.grid = newGridManager()

	resolved, err := c.opts.validate(opts)
	if err != nil {
		return err
	}
	if n := resolved["name"]; n != "" {
		c.name = n
	}
	if c.name == "" {
		c.name = class
	}
	if parent != nil {
		pc := parent.base()
		pc.children = append(pc.children, self)
	}
	c.applyResolved(resolved)
	return nil
}

func (c *core) base() *core { return c }

// Name returns the widget's name.
func (c *core) Name() string { return c.name }

// Class returns the widget class.
func (c *core) Class() string { return c.class }

// Parent returns the containing widget, nil for a root.
func (c *core) Parent() Widget { return c.parent }

// Children returns a copy of the child list in creation order.
func (c *core) Children() []Widget {
	out := make([]Widget, len(c.children))
	copy(out, c.children)
	return out
}

// Bounds returns the rectangle assigned at the last layout.
func (c *core) Bounds() Rect { return c.bounds }

// Keys lists the accepted option names, sorted.
func (c *core) Keys() []string {
	keys := make([]string, 0, len(c.opts.specs))
	for k := range c.opts.specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cget returns an option's current value.
func (c *core) Cget(option string) (string, error) {
	spec, err := c.opts.resolve(option)
	if err != nil {
		return "", err
	}
	return c.opts.values[spec.name], nil
}

// Configure validates and applies opts. Nothing changes when any option is
// invalid.
func (c *core) Configure(opts Options) error {
	resolved, err := c.opts.validate(opts)
	if err != nil {
		return err
	}
	if _, ok := resolved["name"]; ok {
		return errors.New(errors.ErrCodeConfiguration, "can't modify -name option after widget is created").
			WithContext("widget", c.class)
	}
	c.applyResolved(resolved)
	return nil
}

func (c *core) applyResolved(resolved map[string]string) {
	c.opts.apply(resolved)
	for opt, v := range resolved {
		if c.opts.specs[opt].kind != optVar {
			continue
		}
		if v == "" {
			delete(c.vars, opt)
			continue
		}
		c.vars[opt] = lookupVariable(c.self, v)
	}
	c.self.onConfigure(resolved)
}

// SetVariable binds v to a variable option such as "variable" or
// "textvariable".
func (c *core) SetVariable(option string, v Variable) error {
	spec, err := c.opts.resolve(option)
	if err != nil {
		return err
	}
	if spec.kind != optVar {
		return errors.Newf(errors.ErrCodeConfiguration, "option \"-%s\" does not take a variable", spec.name).
			WithContext("widget", c.class)
	}
	if root := RootOf(c.self); root != nil {
		root.registerVariable(v)
	}
	c.opts.values[spec.name] = v.Name()
	c.vars[spec.name] = v
	c.self.onConfigure(map[string]string{spec.name: v.Name()})
	return nil
}

// Variable returns the variable bound to option, if any.
func (c *core) Variable(option string) (Variable, bool) {
	spec, err := c.opts.resolve(option)
	if err != nil {
		return nil, false
	}
	v, ok := c.vars[spec.name]
	return v, ok
}

// SetCommand installs the callback run when the widget is invoked.
func (c *core) SetCommand(fn func()) error {
	spec, err := c.opts.resolve("command")
	if err != nil {
		return err
	}
	c.command = fn
	c.opts.values[spec.name] = fmt.Sprintf("cmd%d", cmdCounter.Add(1))
	return nil
}

func (c *core) runCommand() {
	if c.command != nil && !c.disabled() {
		c.command()
	}
}

// Destroy removes the widget and its subtree from the hierarchy.
func (c *core) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, child := range c.Children() {
		child.Destroy()
	}
	if c.parent != nil {
		pc := c.parent.base()
		pc.children = removeWidget(pc.children, c.self)
		pc.grid.forget(c.self)
		if m, ok := c.parent.(interface{ childDestroyed(Widget) }); ok {
			m.childDestroyed(c.self)
		}
	}
	if root := RootOf(c.self); root != nil {
		root.forget(c.self)
	}
}

func removeWidget(list []Widget, w Widget) []Widget {
	for i, x := range list {
		if x == w {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func (c *core) disabled() bool {
	_, ok := c.opts.specs["state"]
	return ok && c.opts.values["state"] == "disabled"
}

// Defaults overridden by concrete widgets.

func (c *core) natural() Size {
	return c.sized(Size{})
}

// sized returns the widget's request for the given content size. Explicit
// width and height options override the content.
func (c *core) sized(content Size) Size {
	if w := c.opts.getInt("width"); w > 0 {
		content.Width = w
	}
	if h := c.opts.getInt("height"); h > 0 {
		content.Height = h
	}
	t, r, b, l := c.self.insets()
	return Size{Width: content.Width + l + r, Height: content.Height + t + b}
}

// content is the area inside borders and padding.
func (c *core) content() Rect {
	t, r, b, l := c.self.insets()
	return c.bounds.Inset(t, r, b, l)
}

func (c *core) insets() (top, right, bottom, left int) {
	if c.bordered() {
		top, right, bottom, left = 1, 1, 1, 1
	}
	px, py := c.opts.getInt("padx"), c.opts.getInt("pady")
	p := c.opts.getInt("padding")
	return top + py + p, right + px + p, bottom + py + p, left + px + p
}

func (c *core) hasFocus(dc *drawContext) bool {
	return dc.focus == c.self
}

func (c *core) bordered() bool {
	relief := c.opts.get("relief")
	return relief != "" && relief != "flat" && c.opts.getInt("borderwidth") > 0
}

func (c *core) draw(buf *Buffer, dc *drawContext) {
	c.drawSurface(buf, dc)
	c.drawChildren(buf, dc)
}

func (c *core) drawSurface(buf *Buffer, dc *drawContext) {
	style := c.style(dc.theme.Surface)
	buf.Fill(c.bounds, ' ', style)
	if c.bordered() {
		buf.DrawBox(c.bounds, c.style(dc.theme.Border))
	}
}

func (c *core) drawChildren(buf *Buffer, dc *drawContext) {
	for _, child := range c.self.visibleChildren() {
		cb := child.Bounds()
		if cb.Empty() {
			continue
		}
		child.draw(buf.Clip(cb), dc)
	}
}

// style overlays the widget's background/foreground options on base.
func (c *core) style(base backend.Style) backend.Style {
	if c.disabled() {
		base = base.Dim(true)
	}
	if _, ok := c.opts.specs["foreground"]; ok {
		if fg, ok := backend.ParseColor(c.opts.values["foreground"]); ok {
			base = base.Foreground(fg)
		}
	}
	if _, ok := c.opts.specs["background"]; ok {
		if bg, ok := backend.ParseColor(c.opts.values["background"]); ok {
			base = base.Background(bg)
		}
	}
	return base
}

func (c *core) layout(bounds Rect) {
	c.bounds = bounds
	c.grid.arrange(c.content())
}

func (c *core) visibleChildren() []Widget {
	return c.grid.Slaves()
}

func (c *core) takesFocus() bool { return false }

func (c *core) handleKey(terminal.KeyEvent) bool { return false }

func (c *core) handleClick(int, int) bool { return false }

func (c *core) onConfigure(map[string]string) {}

// requested returns the size the widget asks its master for. Containers
// follow their grid unless propagation is off.
func requested(w Widget) Size {
	c := w.base()
	own := w.natural()
	if !c.grid.propagate || len(c.grid.slots) == 0 {
		return own
	}
	g := c.grid.requested()
	t, r, b, l := w.insets()
	return Size{Width: g.Width + l + r, Height: g.Height + t + b}
}

// Focusable widgets are the ones keyboard traversal stops at.
func focusable(w Widget) bool {
	c := w.base()
	if c.disabled() || c.bounds.Empty() {
		return false
	}
	if v, ok := c.opts.specs["takefocus"]; ok && c.opts.values[v.name] != "" {
		return c.opts.getBool("takefocus")
	}
	return w.takesFocus()
}

// Focus gives keyboard focus to w within its window.
func Focus(w Widget) {
	if win := windowOf(w); win != nil {
		win.setFocus(w)
	}
}

// textOf returns the display text of a text-bearing widget: the bound
// textvariable when present, otherwise the text option.
func (c *core) textOf() string {
	if v, ok := c.vars["textvariable"]; ok {
		return v.String()
	}
	return c.opts.get("text")
}
