package tk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinList(t *testing.T) {
	tests := []struct {
		name  string
		elems []string
		want  string
	}{
		{"plain", []string{"a", "b", "c"}, "a b c"},
		{"whitespace", []string{"a", "b c"}, "a {b c}"},
		{"empty element", []string{"", "x"}, "{} x"},
		{"braces", []string{"{x}"}, "{{x}}"},
		{"none", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, JoinList(tc.elems))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "", "{x}"}, SplitList("a {b c} {} {{x}}"))
	assert.Equal(t, []string{"one", "two"}, SplitList("  one\ttwo  "))
	assert.Nil(t, SplitList(""))
}

func TestSplitList_UnbalancedBraceRunsToEnd(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitList("a {b c"))
}

func TestSplitList_RoundTrip(t *testing.T) {
	elems := []string{"North", "South East", "", "x{y}"}
	assert.Equal(t, elems, SplitList(JoinList(elems)))
}
