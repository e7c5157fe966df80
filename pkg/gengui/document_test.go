package gengui

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gengui/pkg/errors"
)

func TestParseJSON_KeepsKeyOrder(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(`{"Label": {"text": "a"}, "Button": {"text": "b"}, "Entry": {}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Label", "Button", "Entry"}, doc.Keys())

	v, ok := doc.Get("Label")
	require.True(t, ok)
	text, _ := v.(*Mapping).Get("text")
	assert.Equal(t, Scalar{Value: "a"}, text)
}

func TestParseJSON_Scalars(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(`{"n": 3, "f": 2.5, "t": true, "z": null, "l": [1, "x"]}`))
	require.NoError(t, err)

	n, _ := doc.Get("n")
	assert.Equal(t, Scalar{Value: json.Number("3")}, n)
	assert.Equal(t, "2.5", mustScalar(t, doc, "f").String())
	assert.Equal(t, "true", mustScalar(t, doc, "t").String())
	assert.Equal(t, "", mustScalar(t, doc, "z").String())

	l, _ := doc.Get("l")
	assert.Equal(t, List{Scalar{Value: json.Number("1")}, Scalar{Value: "x"}}, l)
}

func mustScalar(t *testing.T, m *Mapping, key string) Scalar {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, key)
	s, ok := v.(Scalar)
	require.True(t, ok, key)
	return s
}

func TestParseJSON_Malformed(t *testing.T) {
	cases := map[string]string{
		"syntax":    `{"Label": `,
		"array":     `[{"Label": {}}]`,
		"scalar":    `"Label"`,
		"trailing":  `{} {}`,
		"empty":     ``,
		"bad delim": `{"Label": }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(src))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedInput), err.Error())
		})
	}
}

func TestParseYAML(t *testing.T) {
	src := `
Frame:
  row: 0
  padding: 4
  enabled: yes
  nothing: ~
  Label: &lbl
    text: hi
  Button:
    text: go
Other: *lbl
`
	doc, err := ParseYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Frame", "Other"}, doc.Keys())

	frame, _ := doc.Get("Frame")
	fm := frame.(*Mapping)
	assert.Equal(t, []string{"row", "padding", "enabled", "nothing", "Label", "Button"}, fm.Keys())
	assert.Equal(t, Scalar{Value: json.Number("0")}, mustScalar(t, fm, "row"))
	assert.Equal(t, "", mustScalar(t, fm, "nothing").String())

	other, _ := doc.Get("Other")
	assert.Equal(t, "hi", mustScalar(t, other.(*Mapping), "text").String())
}

func TestParseYAML_Malformed(t *testing.T) {
	for _, src := range []string{"", "- a\n- b\n", "key: [unclosed\n", "plain"} {
		_, err := ParseYAML(strings.NewReader(src))
		require.Error(t, err, src)
		assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedInput), src)
	}
}

func TestParseYAML_AliasExpansionIsBounded(t *testing.T) {
	// each level references the previous one ten times: 10^7 leaves
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 7; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}

	_, err := ParseYAML(strings.NewReader(b.String()))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedInput))
	assert.Contains(t, err.Error(), "more than")
}

func TestParseYAML_SmallAliasFanOut(t *testing.T) {
	src := "base: &b {text: hi}\nFrame:\n  Label: [*b, *b, *b]\n"
	doc, err := ParseYAML(strings.NewReader(src))
	require.NoError(t, err)
	frame, ok := doc.Get("Frame")
	require.True(t, ok)
	labels, ok := frame.(*Mapping).Get("Label")
	require.True(t, ok)
	assert.Len(t, labels.(List), 3)
}

func TestParse_Format(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("ui/main.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("main.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("main.json"))
	assert.Equal(t, FormatJSON, FormatForPath("main"))

	_, err := Parse(strings.NewReader("{}"), Format("toml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))

	doc, err := Parse(strings.NewReader("{}"), "")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestMapping_SetKeepsPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", Scalar{Value: "1"})
	m.Set("b", Scalar{Value: "2"})
	m.Set("a", Scalar{Value: "3"})
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, "3", mustScalar(t, m, "a").String())
}
