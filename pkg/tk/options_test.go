package tk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gengui/pkg/errors"
)

func TestOptions_UnknownOption(t *testing.T) {
	root := NewRoot("t")
	_, err := NewButton(root, "b", Options{"foo": "1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	assert.Contains(t, err.Error(), `unknown option "-foo"`)
}

func TestOptions_IllTypedValues(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		msg  string
	}{
		{"integer", Options{"width": "abc"}, `expected integer but got "abc"`},
		{"boolean", Options{"takefocus": "perhaps"}, `expected boolean value but got "perhaps"`},
		{"color", Options{"background": "notacolor"}, `unknown color name "notacolor"`},
		{"enum", Options{"relief": "wavy"}, `bad relief "wavy": must be flat, groove, raised, ridge, solid, or sunken`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := NewRoot("t")
			_, err := NewLabel(root, "l", tc.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
			assert.Contains(t, err.Error(), tc.msg)
			assert.Empty(t, root.Children(), "failed construction must not attach a child")
		})
	}
}

func TestOptions_Aliases(t *testing.T) {
	root := NewRoot("t")
	l, err := NewLabel(root, "l", Options{"bg": "red", "bd": "2"})
	require.NoError(t, err)

	bg, err := l.Cget("background")
	require.NoError(t, err)
	assert.Equal(t, "red", bg)

	bd, err := l.Cget("-bd")
	require.NoError(t, err)
	assert.Equal(t, "2", bd)
}

func TestConfigure_IsAllOrNothing(t *testing.T) {
	root := NewRoot("t")
	l, err := NewLabel(root, "l", Options{"text": "before"})
	require.NoError(t, err)

	err = l.Configure(Options{"text": "after", "width": "wide"})
	require.Error(t, err)

	text, _ := l.Cget("text")
	assert.Equal(t, "before", text)
}

func TestConfigure_NameIsFixed(t *testing.T) {
	root := NewRoot("t")
	l, err := NewLabel(root, "l", nil)
	require.NoError(t, err)

	err = l.Configure(Options{"name": "other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't modify -name option")
	assert.Equal(t, "l", l.Name())
}

func TestNameOptionOverridesKey(t *testing.T) {
	root := NewRoot("t")
	l, err := NewLabel(root, "Label", Options{"name": "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", l.Name())
}

func TestKeys_SortedAndComplete(t *testing.T) {
	root := NewRoot("t")
	b, err := NewButton(root, "b", nil)
	require.NoError(t, err)

	keys := b.Keys()
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "command")
	assert.Contains(t, keys, "text")
	assert.NotContains(t, keys, "bg")
}

func TestThemedWidgetsRejectClassicOptions(t *testing.T) {
	root := NewRoot("t")
	_, err := ThemedWidgets()["Button"](root, "b", Options{"activebackground": "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown option "-activebackground"`)

	_, err = ClassicWidgets()["Button"](root, "b", Options{"activebackground": "red"})
	require.NoError(t, err)
}

func TestJoinChoices(t *testing.T) {
	assert.Equal(t, "a", joinChoices([]string{"a"}))
	assert.Equal(t, "a or b", joinChoices([]string{"a", "b"}))
	assert.Equal(t, "a, b, or c", joinChoices([]string{"a", "b", "c"}))
}
