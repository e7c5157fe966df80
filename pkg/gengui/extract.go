package gengui

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/tk"
)

// Placement is the grid cell and line weights of one widget.
type Placement struct {
	Row        int
	Column     int
	ColumnSpan int
	RowWeight  int
	ColWeight  int
	// KeepSize disables grid propagation so an explicit width or height
	// survives the widget's own children.
	KeepSize bool
}

// Extraction splits one widget description.
type Extraction struct {
	Placement Placement
	// Options are the constructor options, stringified.
	Options tk.Options
	// Remainder holds the nested mappings and sibling lists, in document
	// order, for the builder to recurse into.
	Remainder *Mapping
}

var placementKeys = map[string]bool{
	"row":        true,
	"column":     true,
	"columnspan": true,
	"rowweight":  true,
	"colweight":  true,
	"weight":     true,
}

// Extract splits desc into placement, options and remainder. desc itself is
// left untouched.
func Extract(desc *Mapping) (Extraction, error) {
	ex := Extraction{
		Placement: Placement{ColumnSpan: 1},
		Options:   tk.Options{},
		Remainder: NewMapping(),
	}

	ints := map[string]*int{
		"row":        &ex.Placement.Row,
		"column":     &ex.Placement.Column,
		"columnspan": &ex.Placement.ColumnSpan,
		"rowweight":  &ex.Placement.RowWeight,
		"colweight":  &ex.Placement.ColWeight,
	}
	for _, key := range desc.Keys() {
		dst, ok := ints[key]
		if !ok {
			continue
		}
		v, _ := desc.Get(key)
		n, err := placementInt(key, v)
		if err != nil {
			return Extraction{}, err
		}
		*dst = n
	}
	// weight is applied last so it wins wherever it appears.
	if v, ok := desc.Get("weight"); ok {
		n, err := placementInt("weight", v)
		if err != nil {
			return Extraction{}, err
		}
		ex.Placement.RowWeight = n
		ex.Placement.ColWeight = n
	}

	for _, key := range desc.Keys() {
		if placementKeys[key] {
			continue
		}
		v, _ := desc.Get(key)
		switch val := v.(type) {
		case Scalar:
			ex.Options[key] = val.String()
		case List:
			if !isAttributeKey(key) {
				ex.Remainder.Set(key, val)
				continue
			}
			s, err := tclList(key, val)
			if err != nil {
				return Extraction{}, err
			}
			ex.Options[key] = s
		default:
			ex.Remainder.Set(key, val)
		}
	}

	_, width := ex.Options["width"]
	_, height := ex.Options["height"]
	ex.Placement.KeepSize = width || height
	return ex, nil
}

// isAttributeKey reports whether key is written in lowercase, with at least
// one letter. Lists under such keys are options, not widgets.
func isAttributeKey(key string) bool {
	cased := false
	for _, r := range key {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func placementInt(key string, v Node) (int, error) {
	bad := func(got string) error {
		return errors.Newf(errors.ErrCodeConfiguration, "bad %s value %q: must be an integer", key, got).
			WithContext("option", key)
	}
	s, ok := v.(Scalar)
	if !ok {
		return 0, bad("<structure>")
	}
	var n int
	switch val := s.Value.(type) {
	case json.Number:
		if i, err := strconv.Atoi(string(val)); err == nil {
			n = i
			break
		}
		f, err := val.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, bad(string(val))
		}
		n = int(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, bad(val)
		}
		n = i
	default:
		return 0, bad(s.String())
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errors.Newf(errors.ErrCodeConfiguration, "bad %s value %q: out of range", key, strconv.Itoa(n)).
			WithContext("option", key)
	}
	return n, nil
}

// tclList renders an attribute list in Tcl list form. Nested lists become
// braced sublists.
func tclList(key string, list List) (string, error) {
	items := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case Scalar:
			items = append(items, v.String())
		case List:
			s, err := tclList(key, v)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		default:
			return "", errors.Newf(errors.ErrCodeMalformedInput, "attribute list %q holds an object", key).
				WithContext("option", key).
				WithRemediation("attribute lists may hold only scalars and lists")
		}
	}
	return tk.JoinList(items), nil
}
