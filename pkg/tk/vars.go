package tk

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
)

// Variable is a named value widgets bind to through their "variable",
// "textvariable" or "listvariable" options. Values are held as strings;
// the typed wrappers convert on access.
type Variable interface {
	Name() string
	String() string
	SetString(v string)
	// Trace registers fn to run after every write. The returned func
	// removes the trace.
	Trace(fn func(value string)) (remove func())
}

var varCounter atomic.Int64

func nextVarName() string {
	return fmt.Sprintf("PY_VAR%d", varCounter.Add(1)-1)
}

type variable struct {
	name string

	mu     sync.Mutex
	value  string
	traces map[int]func(string)
	nextID int
}

func newVariable(name, initial string) *variable {
	if name == "" {
		name = nextVarName()
	}
	return &variable{name: name, value: initial}
}

func (v *variable) Name() string { return v.name }

func (v *variable) String() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

func (v *variable) SetString(value string) {
	v.mu.Lock()
	v.value = value
	fns := make([]func(string), 0, len(v.traces))
	for id := 0; id < v.nextID; id++ {
		if fn, ok := v.traces[id]; ok {
			fns = append(fns, fn)
		}
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

func (v *variable) Trace(fn func(string)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.traces == nil {
		v.traces = make(map[int]func(string))
	}
	id := v.nextID
	v.nextID++
	v.traces[id] = fn
	return func() {
		v.mu.Lock()
		delete(v.traces, id)
		v.mu.Unlock()
	}
}

// StringVar holds a string.
type StringVar struct {
	*variable
}

// NewStringVar creates a StringVar with an auto-generated name.
func NewStringVar() *StringVar {
	return &StringVar{variable: newVariable("", "")}
}

// Get returns the current value.
func (v *StringVar) Get() string { return v.String() }

// Set replaces the value.
func (v *StringVar) Set(s string) { v.SetString(s) }

// IntVar holds an integer.
type IntVar struct {
	*variable
}

// NewIntVar creates an IntVar initialized to 0.
func NewIntVar() *IntVar {
	return &IntVar{variable: newVariable("", "0")}
}

// Get returns the value as an integer. Floating values are truncated and
// unparsable values read as 0.
func (v *IntVar) Get() int {
	n, err := parseInt(v.String())
	if err != nil {
		return 0
	}
	return n
}

// Set stores n.
func (v *IntVar) Set(n int) { v.SetString(strconv.Itoa(n)) }

// BooleanVar holds a boolean.
type BooleanVar struct {
	*variable
}

// NewBooleanVar creates a BooleanVar initialized to false.
func NewBooleanVar() *BooleanVar {
	return &BooleanVar{variable: newVariable("", "0")}
}

// Get returns the value as a boolean using Tcl truth rules.
func (v *BooleanVar) Get() bool {
	b, err := parseBool(v.String())
	return err == nil && b
}

// Set stores b as 1 or 0.
func (v *BooleanVar) Set(b bool) {
	if b {
		v.SetString("1")
		return
	}
	v.SetString("0")
}

func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected integer but got %q", s)
	}
	return int(f), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1", "true", "True", "TRUE", "yes", "Yes", "on", "On":
		return true, nil
	case "0", "false", "False", "FALSE", "no", "No", "off", "Off":
		return false, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("expected boolean value but got %q", s)
}
