package features

import (
	"sort"
	"strings"

	"github.com/lrxzhy/TEES/core"
	"github.com/lrxzhy/TEES/paths"
	"github.com/lrxzhy/TEES/sentence"
)

// Sentence is the read-only view contributors need; *sentence.Sentence
// implements it.
type Sentence interface {
	Tokens() []sentence.Token
	Dependencies() *core.Graph
	Entities() []sentence.Entity
	HeadEntities(i int) []sentence.Entity
}

// PathContext describes one oriented token pair.
type PathContext struct {
	Sentence Sentence

	// T1 and T2 are the token indices of the pair in example orientation.
	T1, T2 int

	// Path runs from T1 to T2. For unreachable pairs it is paths.Degenerate.
	Path paths.Path

	// Key identifies the pair within the corpus; it seeds per-example
	// randomness.
	Key string

	steps []Step
}

// DepEdge is a dependency crossed by a path step.
type DepEdge struct {
	Type string

	// Forward is true when the dependency points along the path direction.
	Forward bool
}

// Label renders the edge with a direction marker: ">nsubj" or "<nsubj".
func (d DepEdge) Label() string {
	if d.Forward {
		return ">" + d.Type
	}

	return "<" + d.Type
}

// Step is the hop between two consecutive path tokens.
type Step struct {
	From, To int
	Deps     []DepEdge
}

// Steps returns the dependencies along the path, computed on first use.
func (pc *PathContext) Steps() []Step {
	if pc.steps == nil {
		pc.steps = PathEdges(pc.Sentence, pc.Path)
	}

	return pc.steps
}

// PathEdges collects, for every consecutive token pair of p, the dependency
// edges linking them in either direction. Forward edges come first, each
// group in insertion order. A degenerate path yields steps with no edges.
func PathEdges(s Sentence, p paths.Path) []Step {
	if len(p) < 2 {
		return []Step{}
	}
	toks := s.Tokens()
	g := s.Dependencies()
	steps := make([]Step, 0, len(p)-1)
	for k := 0; k+1 < len(p); k++ {
		a, b := toks[p[k]].ID, toks[p[k+1]].ID
		st := Step{From: p[k], To: p[k+1]}
		for _, e := range g.EdgesBetween(a, b) {
			st.Deps = append(st.Deps, DepEdge{Type: e.Type, Forward: true})
		}
		for _, e := range g.EdgesBetween(b, a) {
			st.Deps = append(st.Deps, DepEdge{Type: e.Type, Forward: false})
		}
		steps = append(steps, st)
	}

	return steps
}

// stepLabel joins the sorted labels of a step; "-" when the step crosses no
// known dependency.
func stepLabel(st Step) string {
	if len(st.Deps) == 0 {
		return "-"
	}
	labels := make([]string, len(st.Deps))
	for i, d := range st.Deps {
		labels[i] = d.Label()
	}
	sort.Strings(labels)

	return strings.Join(labels, "|")
}
