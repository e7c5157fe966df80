package tk

import (
	"strings"
	"unicode"
)

// JoinList renders elems as a Tcl list: space separated, with elements that
// are empty or contain whitespace or braces wrapped in {}.
func JoinList(elems []string) string {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		if needsBraces(e) {
			b.WriteByte('{')
			b.WriteString(e)
			b.WriteByte('}')
			continue
		}
		b.WriteString(e)
	}
	return b.String()
}

func needsBraces(e string) bool {
	if e == "" {
		return true
	}
	return strings.ContainsFunc(e, func(r rune) bool {
		return unicode.IsSpace(r) || r == '{' || r == '}'
	})
}

// SplitList parses a Tcl list. Braced elements may nest; unbalanced braces
// end the final element at end of input.
func SplitList(s string) []string {
	var out []string
	rs := []rune(s)
	i := 0
	for {
		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
		if i >= len(rs) {
			return out
		}
		if rs[i] == '{' {
			depth := 1
			start := i + 1
			i++
			for i < len(rs) && depth > 0 {
				switch rs[i] {
				case '{':
					depth++
				case '}':
					depth--
				}
				i++
			}
			end := i - 1
			if depth > 0 {
				end = len(rs)
			}
			out = append(out, string(rs[start:end]))
			continue
		}
		start := i
		for i < len(rs) && !unicode.IsSpace(rs[i]) {
			i++
		}
		out = append(out, string(rs[start:i]))
	}
}
