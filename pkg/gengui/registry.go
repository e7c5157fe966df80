package gengui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/tk"
)

// Registry maps widget kinds to constructors. The classic namespace is
// consulted before the themed one.
type Registry struct {
	classic map[string]tk.Constructor
	themed  map[string]tk.Constructor
}

// NewRegistry returns a registry over the given namespaces.
func NewRegistry(classic, themed map[string]tk.Constructor) *Registry {
	return &Registry{classic: classic, themed: themed}
}

// DefaultRegistry holds every toolkit widget kind.
func DefaultRegistry() *Registry {
	return NewRegistry(tk.ClassicWidgets(), tk.ThemedWidgets())
}

// Lookup resolves kind, failing with an UNKNOWN_WIDGET error that suggests
// the closest known kind.
func (r *Registry) Lookup(kind string) (tk.Constructor, error) {
	if c, ok := r.classic[kind]; ok {
		return c, nil
	}
	if c, ok := r.themed[kind]; ok {
		return c, nil
	}
	err := errors.Newf(errors.ErrCodeUnknownWidget, "unknown widget %q", kind).WithContext("kind", kind)
	if s := r.suggest(kind); s != "" {
		err = err.WithRemediation(fmt.Sprintf("did you mean %q?", s))
	}
	return nil, err
}

// Kinds lists every registered kind, sorted.
func (r *Registry) Kinds() []string {
	seen := make(map[string]bool, len(r.classic)+len(r.themed))
	for k := range r.classic {
		seen[k] = true
	}
	for k := range r.themed {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// suggest returns the known kind closest to kind, compared without case,
// when it is within a third of the name's length.
func (r *Registry) suggest(kind string) string {
	best, bestDist := "", -1
	needle := strings.ToLower(kind)
	for _, k := range r.Kinds() {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist < 0 || bestDist > max(1, len(kind)/3) {
		return ""
	}
	return best
}
