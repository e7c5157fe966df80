package tk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariables_AutoNames(t *testing.T) {
	a, b := NewStringVar(), NewStringVar()
	assert.True(t, strings.HasPrefix(a.Name(), "PY_VAR"))
	assert.NotEqual(t, a.Name(), b.Name())
}

func TestIntVar(t *testing.T) {
	v := NewIntVar()
	assert.Equal(t, 0, v.Get())
	assert.Equal(t, "0", v.String())

	v.Set(42)
	assert.Equal(t, 42, v.Get())

	v.SetString("3.7")
	assert.Equal(t, 3, v.Get())

	v.SetString("nope")
	assert.Equal(t, 0, v.Get())
}

func TestBooleanVar(t *testing.T) {
	v := NewBooleanVar()
	assert.False(t, v.Get())

	v.Set(true)
	assert.Equal(t, "1", v.String())
	assert.True(t, v.Get())

	for _, s := range []string{"yes", "on", "true", "2"} {
		v.SetString(s)
		assert.True(t, v.Get(), s)
	}
	v.SetString("maybe")
	assert.False(t, v.Get())
}

func TestVariable_TracesRunInOrderAndCanBeRemoved(t *testing.T) {
	v := NewStringVar()
	var got []string
	removeA := v.Trace(func(s string) { got = append(got, "a:"+s) })
	v.Trace(func(s string) { got = append(got, "b:"+s) })

	v.Set("x")
	removeA()
	v.Set("y")

	assert.Equal(t, []string{"a:x", "b:x", "b:y"}, got)
}

func TestParseBool_Rejects(t *testing.T) {
	_, err := parseBool("sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected boolean value but got "sometimes"`)
}
