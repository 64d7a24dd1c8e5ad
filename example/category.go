package example

import (
	"slices"
	"sort"
	"strings"

	"github.com/lrxzhy/TEES/core"
)

// ResolveCategory builds the label for a set of interaction edges: types not
// in the allow-list are dropped (an empty list keeps everything), the rest
// are deduplicated, sorted and joined with "-". ok is false when nothing is
// left.
//
//	{Phosphorylation, Phosphorylation, Binding} → "Binding-Phosphorylation"
func ResolveCategory(edges []*core.Edge, types []string) (string, bool) {
	seen := make(map[string]bool, len(edges))
	names := make([]string, 0, len(edges))
	for _, e := range edges {
		if len(types) > 0 && !slices.Contains(types, e.Type) {
			continue
		}
		if seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		names = append(names, e.Type)
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)

	return strings.Join(names, "-"), true
}
