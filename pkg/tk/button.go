package tk

import (
	"github.com/odvcencio/gengui/pkg/ui/theme"
)

var (
	buttonOpts = []optSpec{
		enum("default", "disabled", states),
		colorOpt("activebackground"),
		colorOpt("activeforeground"),
		integer("repeatdelay", 0),
		integer("repeatinterval", 0),
	}
	buttonSpecs       = specs(commonOpts, classicLook, sizeOpts, padOpts, textOpts, stateOpts, commandOpts, buttonOpts)
	themedButtonSpecs = specs(commonOpts, themedLook, paddingOpts, textOpts, stateOpts, commandOpts, []optSpec{
		integer("width", 0),
		enum("default", "normal", states),
	})

	checkOpts = []optSpec{
		varOpt("variable"),
		str("onvalue", "1"),
		str("offvalue", "0"),
		boolean("indicatoron", "1"),
		colorOpt("selectcolor"),
	}
	checkbuttonSpecs       = specs(commonOpts, classicLook, sizeOpts, padOpts, textOpts, stateOpts, commandOpts, checkOpts)
	themedCheckbuttonSpecs = specs(commonOpts, themedLook, paddingOpts, textOpts, stateOpts, commandOpts, []optSpec{
		integer("width", 0),
		varOpt("variable"),
		str("onvalue", "1"),
		str("offvalue", "0"),
	})

	radioOpts = []optSpec{
		varOpt("variable"),
		str("value", ""),
		boolean("indicatoron", "1"),
		colorOpt("selectcolor"),
	}
	radiobuttonSpecs       = specs(commonOpts, classicLook, sizeOpts, padOpts, textOpts, stateOpts, commandOpts, radioOpts)
	themedRadiobuttonSpecs = specs(commonOpts, themedLook, paddingOpts, textOpts, stateOpts, commandOpts, []optSpec{
		integer("width", 0),
		varOpt("variable"),
		str("value", "1"),
	})
)

// Button runs its command when invoked by Enter, Space or a click.
type Button struct {
	core
}

// NewButton creates a Button.
func NewButton(parent Widget, name string, opts Options) (*Button, error) {
	return newButton(parent, name, opts, "Button", buttonSpecs)
}

func newThemedButton(parent Widget, name string, opts Options) (*Button, error) {
	return newButton(parent, name, opts, "TButton", themedButtonSpecs)
}

func newButton(parent Widget, name string, opts Options, class string, list []optSpec) (*Button, error) {
	b := &Button{}
	if err := b.init(b, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Invoke runs the command unless the button is disabled.
func (b *Button) Invoke() { b.runCommand() }

func (b *Button) label() string { return "[ " + b.textOf() + " ]" }

func (b *Button) natural() Size {
	return b.sized(Size{Width: textWidth(b.label()), Height: 1})
}

func (b *Button) takesFocus() bool { return true }

func (b *Button) handleClick(int, int) bool {
	b.Invoke()
	return true
}

func (b *Button) draw(buf *Buffer, dc *drawContext) {
	b.drawSurface(buf, dc)
	style := dc.theme.Button
	if b.hasFocus(dc) {
		style = dc.theme.ButtonFocus
	}
	drawLines(buf, b.content(), []string{b.label()}, b.opts.get("anchor"), "center", b.style(style))
}

// Checkbutton toggles a variable between its onvalue and offvalue.
type Checkbutton struct {
	core
}

// NewCheckbutton creates a Checkbutton. Without a variable option it gets a
// fresh IntVar.
func NewCheckbutton(parent Widget, name string, opts Options) (*Checkbutton, error) {
	return newCheckbutton(parent, name, opts, "Checkbutton", checkbuttonSpecs)
}

func newThemedCheckbutton(parent Widget, name string, opts Options) (*Checkbutton, error) {
	return newCheckbutton(parent, name, opts, "TCheckbutton", themedCheckbuttonSpecs)
}

func newCheckbutton(parent Widget, name string, opts Options, class string, list []optSpec) (*Checkbutton, error) {
	c := &Checkbutton{}
	if err := c.init(c, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	if _, ok := c.vars["variable"]; !ok {
		v := &IntVar{variable: newVariable("", c.opts.get("offvalue"))}
		if err := c.SetVariable("variable", v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Selected reports whether the variable holds the onvalue.
func (c *Checkbutton) Selected() bool {
	v, ok := c.vars["variable"]
	return ok && v.String() == c.opts.get("onvalue")
}

// Select sets the variable to the onvalue.
func (c *Checkbutton) Select() {
	if v, ok := c.vars["variable"]; ok {
		v.SetString(c.opts.get("onvalue"))
	}
}

// Deselect sets the variable to the offvalue.
func (c *Checkbutton) Deselect() {
	if v, ok := c.vars["variable"]; ok {
		v.SetString(c.opts.get("offvalue"))
	}
}

// Toggle flips the selection.
func (c *Checkbutton) Toggle() {
	if c.Selected() {
		c.Deselect()
		return
	}
	c.Select()
}

// Invoke toggles and runs the command, unless disabled.
func (c *Checkbutton) Invoke() {
	if c.disabled() {
		return
	}
	c.Toggle()
	c.runCommand()
}

func (c *Checkbutton) label() string {
	mark := theme.Symbols.CheckOff
	if c.Selected() {
		mark = theme.Symbols.CheckOn
	}
	return mark + " " + c.textOf()
}

func (c *Checkbutton) natural() Size {
	return c.sized(Size{Width: textWidth(c.label()), Height: 1})
}

func (c *Checkbutton) takesFocus() bool { return true }

func (c *Checkbutton) handleClick(int, int) bool {
	c.Invoke()
	return true
}

func (c *Checkbutton) draw(buf *Buffer, dc *drawContext) {
	c.drawSurface(buf, dc)
	style := dc.theme.Text
	if c.hasFocus(dc) {
		style = dc.theme.Accent
	}
	drawLines(buf, c.content(), []string{c.label()}, c.opts.get("anchor"), "left", c.style(style))
}

// Radiobutton sets a shared variable to its value. Radiobuttons without a
// variable option share the variable "selectedButton".
type Radiobutton struct {
	core
}

// NewRadiobutton creates a Radiobutton.
func NewRadiobutton(parent Widget, name string, opts Options) (*Radiobutton, error) {
	return newRadiobutton(parent, name, opts, "Radiobutton", radiobuttonSpecs)
}

func newThemedRadiobutton(parent Widget, name string, opts Options) (*Radiobutton, error) {
	return newRadiobutton(parent, name, opts, "TRadiobutton", themedRadiobuttonSpecs)
}

func newRadiobutton(parent Widget, name string, opts Options, class string, list []optSpec) (*Radiobutton, error) {
	r := &Radiobutton{}
	if err := r.init(r, parent, class, name, list, opts); err != nil {
		return nil, err
	}
	if _, ok := r.vars["variable"]; !ok {
		r.opts.values["variable"] = "selectedButton"
		r.vars["variable"] = lookupVariable(r, "selectedButton")
	}
	if r.opts.get("value") == "" {
		r.opts.values["value"] = r.name
	}
	return r, nil
}

// Selected reports whether the variable holds this button's value.
func (r *Radiobutton) Selected() bool {
	v, ok := r.vars["variable"]
	return ok && v.String() == r.opts.get("value")
}

// Select stores the value in the variable.
func (r *Radiobutton) Select() {
	if v, ok := r.vars["variable"]; ok {
		v.SetString(r.opts.get("value"))
	}
}

// Invoke selects the button and runs the command, unless disabled.
func (r *Radiobutton) Invoke() {
	if r.disabled() {
		return
	}
	r.Select()
	r.runCommand()
}

func (r *Radiobutton) label() string {
	mark := theme.Symbols.RadioOff
	if r.Selected() {
		mark = theme.Symbols.RadioOn
	}
	return mark + " " + r.textOf()
}

func (r *Radiobutton) natural() Size {
	return r.sized(Size{Width: textWidth(r.label()), Height: 1})
}

func (r *Radiobutton) takesFocus() bool { return true }

func (r *Radiobutton) handleClick(int, int) bool {
	r.Invoke()
	return true
}

func (r *Radiobutton) draw(buf *Buffer, dc *drawContext) {
	r.drawSurface(buf, dc)
	style := dc.theme.Text
	if r.hasFocus(dc) {
		style = dc.theme.Accent
	}
	drawLines(buf, r.content(), []string{r.label()}, r.opts.get("anchor"), "left", r.style(style))
}
