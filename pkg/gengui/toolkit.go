package gengui

import (
	stdliberrors "errors"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/tk"
)

// Toolkit is the builder's view of the widget toolkit: it creates widgets
// and places them in their parent's grid.
//
//go:generate mockgen -package=gengui -destination=mock_toolkit_test.go github.com/odvcencio/gengui/pkg/gengui Toolkit
type Toolkit interface {
	Construct(kind string, parent tk.Widget, name string, opts tk.Options) (tk.Widget, error)
	Place(w tk.Widget, p Placement) error
}

type gridder interface {
	Grid(slot tk.GridSlot) error
	GridPropagate(on bool)
	RowConfigure(index, weight int) error
	ColumnConfigure(index, weight int) error
}

// tkToolkit builds real pkg/tk widgets.
type tkToolkit struct {
	registry   *Registry
	padX, padY int
}

// NewToolkit returns a Toolkit over reg that places widgets sticky on all
// sides with the given margins.
func NewToolkit(reg *Registry, padX, padY int) Toolkit {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &tkToolkit{registry: reg, padX: padX, padY: padY}
}

func (t *tkToolkit) Construct(kind string, parent tk.Widget, name string, opts tk.Options) (tk.Widget, error) {
	ctor, err := t.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	w, err := ctor(parent, name, opts)
	if err != nil {
		var coded *errors.Error
		if stdliberrors.As(err, &coded) {
			return nil, coded.WithContext("name", name)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfiguration, "cannot create widget").
			WithContext("kind", kind).
			WithContext("name", name)
	}
	return w, nil
}

func (t *tkToolkit) Place(w tk.Widget, p Placement) error {
	g, ok := w.(gridder)
	if !ok {
		return errors.Newf(errors.ErrCodeInternal, "widget %q cannot be gridded", w.Name())
	}
	err := g.Grid(tk.GridSlot{
		Row:        p.Row,
		Column:     p.Column,
		ColumnSpan: p.ColumnSpan,
		Sticky:     "nsew",
		PadX:       t.padX,
		PadY:       t.padY,
	})
	if err != nil {
		return err
	}
	if p.KeepSize {
		g.GridPropagate(false)
	}

	parent, ok := w.Parent().(gridder)
	if !ok {
		return nil
	}
	if p.RowWeight != 0 {
		if err := parent.RowConfigure(p.Row, p.RowWeight); err != nil {
			return err
		}
	}
	if p.ColWeight != 0 {
		if err := parent.ColumnConfigure(p.Column, p.ColWeight); err != nil {
			return err
		}
	}
	return nil
}
