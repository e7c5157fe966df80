package tk

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/ui/backend"
)

// Options are constructor and configure options, keyed without the leading
// dash. Values are strings as in Tcl.
type Options map[string]string

type optKind int

const (
	optString optKind = iota
	optInt
	optFloat
	optBool
	optColor
	optEnum
	optList
	optVar
)

type optSpec struct {
	name   string
	kind   optKind
	def    string
	values []string // optEnum choices
}

var optionAliases = map[string]string{
	"bg": "background",
	"fg": "foreground",
	"bd": "borderwidth",
}

var (
	reliefs = []string{"flat", "groove", "raised", "ridge", "solid", "sunken"}
	anchors = []string{"center", "e", "n", "ne", "nw", "s", "se", "sw", "w"}
	states  = []string{"active", "disabled", "normal"}
	orients = []string{"horizontal", "vertical"}
)

func str(name, def string) optSpec { return optSpec{name: name, kind: optString, def: def} }

func integer(name string, def int) optSpec {
	return optSpec{name: name, kind: optInt, def: strconv.Itoa(def)}
}

func float(name, def string) optSpec { return optSpec{name: name, kind: optFloat, def: def} }

func boolean(name, def string) optSpec { return optSpec{name: name, kind: optBool, def: def} }

func colorOpt(name string) optSpec { return optSpec{name: name, kind: optColor} }

func listOpt(name string) optSpec { return optSpec{name: name, kind: optList} }

func varOpt(name string) optSpec { return optSpec{name: name, kind: optVar} }

func enum(name, def string, values []string) optSpec {
	return optSpec{name: name, kind: optEnum, def: def, values: values}
}

// Option groups shared across classes.
var (
	commonOpts = []optSpec{
		str("name", ""),
		str("cursor", ""),
		boolean("takefocus", ""),
	}
	classicLook = []optSpec{
		colorOpt("background"),
		colorOpt("foreground"),
		integer("borderwidth", 0),
		enum("relief", "flat", reliefs),
		str("font", ""),
		colorOpt("highlightcolor"),
		integer("highlightthickness", 0),
	}
	themedLook = []optSpec{
		str("style", ""),
		str("class", ""),
	}
	sizeOpts = []optSpec{
		integer("width", 0),
		integer("height", 0),
	}
	padOpts = []optSpec{
		integer("padx", 0),
		integer("pady", 0),
	}
	paddingOpts = []optSpec{
		integer("padding", 0),
	}
	textOpts = []optSpec{
		str("text", ""),
		varOpt("textvariable"),
		integer("underline", -1),
		enum("anchor", "center", anchors),
		enum("justify", "left", []string{"center", "left", "right"}),
		integer("wraplength", 0),
		str("image", ""),
		enum("compound", "none", []string{"bottom", "center", "left", "none", "right", "top"}),
	}
	stateOpts = []optSpec{
		enum("state", "normal", states),
	}
	commandOpts = []optSpec{
		str("command", ""),
	}
)

func specs(groups ...[]optSpec) []optSpec {
	var out []optSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// optionTable holds a widget's option values against its class's specs.
type optionTable struct {
	class  string
	specs  map[string]optSpec
	values map[string]string
}

func newOptionTable(class string, list []optSpec) *optionTable {
	t := &optionTable{
		class:  class,
		specs:  make(map[string]optSpec, len(list)),
		values: make(map[string]string, len(list)),
	}
	for _, s := range list {
		t.specs[s.name] = s
		t.values[s.name] = s.def
	}
	return t
}

func (t *optionTable) resolve(name string) (optSpec, error) {
	name = strings.TrimPrefix(name, "-")
	if alias, ok := optionAliases[name]; ok {
		if _, known := t.specs[alias]; known {
			name = alias
		}
	}
	spec, ok := t.specs[name]
	if !ok {
		return optSpec{}, errors.Newf(errors.ErrCodeConfiguration, "unknown option \"-%s\"", name).
			WithContext("widget", t.class)
	}
	return spec, nil
}

func (t *optionTable) get(name string) string {
	if spec, err := t.resolve(name); err == nil {
		return t.values[spec.name]
	}
	return ""
}

func (t *optionTable) getInt(name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(t.get(name)))
	return n
}

func (t *optionTable) getFloat(name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.get(name)), 64)
	return f
}

func (t *optionTable) getBool(name string) bool {
	b, _ := parseBool(t.get(name))
	return b
}

// explicit reports whether the option holds a value other than its default.
func (t *optionTable) explicit(name string) bool {
	spec, err := t.resolve(name)
	if err != nil {
		return false
	}
	return t.values[spec.name] != spec.def
}

// validate checks every option before any is applied, so a failing
// configure leaves the table unchanged. Keys are checked in sorted order.
func (t *optionTable) validate(opts Options) (map[string]string, error) {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resolved := make(map[string]string, len(opts))
	for _, k := range keys {
		spec, err := t.resolve(k)
		if err != nil {
			return nil, err
		}
		v := opts[k]
		if err := checkValue(spec, v); err != nil {
			return nil, errors.New(errors.ErrCodeConfiguration, err.Error()).
				WithContext("widget", t.class).
				WithContext("option", "-"+spec.name)
		}
		resolved[spec.name] = v
	}
	return resolved, nil
}

func (t *optionTable) apply(resolved map[string]string) {
	for k, v := range resolved {
		t.values[k] = v
	}
}

func checkValue(spec optSpec, v string) error {
	switch spec.kind {
	case optInt:
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("expected integer but got %q", v)
		}
	case optFloat:
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return fmt.Errorf("expected floating-point number but got %q", v)
		}
	case optBool:
		if v == "" {
			return nil
		}
		if _, err := parseBool(v); err != nil {
			return err
		}
	case optColor:
		if v == "" {
			return nil
		}
		if _, ok := backend.ParseColor(v); !ok {
			return fmt.Errorf("unknown color name %q", v)
		}
	case optEnum:
		for _, allowed := range spec.values {
			if v == allowed {
				return nil
			}
		}
		return fmt.Errorf("bad %s %q: must be %s", spec.name, v, joinChoices(spec.values))
	}
	return nil
}

func joinChoices(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[0] + " or " + values[1]
	}
	return strings.Join(values[:len(values)-1], ", ") + ", or " + values[len(values)-1]
}
