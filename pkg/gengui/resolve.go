package gengui

import (
	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/observability"
	"github.com/odvcencio/gengui/pkg/tk"
)

// Find returns the first widget named name below root. Each level's
// children are checked before any of them is descended into, and children
// are visited in creation order.
func Find(root tk.Widget, name string) (tk.Widget, error) {
	w := find(root, name)
	observability.RecordLookup(w != nil)
	if w == nil {
		return nil, errors.Newf(errors.ErrCodeNotFound, "widget %q not found", name).WithContext("name", name)
	}
	return w, nil
}

func find(parent tk.Widget, name string) tk.Widget {
	children := parent.Children()
	for _, c := range children {
		if c.Name() == name {
			return c
		}
	}
	for _, c := range children {
		if len(c.Children()) == 0 {
			continue
		}
		if w := find(c, name); w != nil {
			return w
		}
	}
	return nil
}
