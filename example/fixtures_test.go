package example_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrxzhy/TEES/example"
	"github.com/lrxzhy/TEES/sentence"
)

type interaction struct {
	e1, e2, typ string
}

// newSentence builds a sentence of NN tokens "w0 w1 ...", dependencies
// given as [head, dependent] pairs of type "dep", entities on the listed
// head tokens ("e<i>" for token i) and interactions between those entities.
func newSentence(t *testing.T, id string, n int, deps [][2]int, heads []int, inters []interaction) *sentence.Sentence {
	t.Helper()
	toks := make([]sentence.Token, n)
	for i := range toks {
		toks[i] = sentence.Token{ID: "bt_" + strconv.Itoa(i), Text: "w" + strconv.Itoa(i), POS: "NN"}
	}
	s, err := sentence.New(id, toks)
	require.NoError(t, err)
	for _, d := range deps {
		require.NoError(t, s.AddDependency(d[0], d[1], "dep"))
	}
	for _, h := range heads {
		require.NoError(t, s.AddEntity(sentence.Entity{ID: "e" + strconv.Itoa(h), Type: "Protein", Head: h, IsName: true}))
	}
	for _, in := range inters {
		require.NoError(t, s.AddInteraction(in.e1, in.e2, in.typ))
	}

	return s
}

// phosphorylation is "STAT3 phosphorylates JAK2" with three gold edges from
// STAT3 to JAK2: Phosphorylation twice and Binding once.
func phosphorylation(t *testing.T, id string) *sentence.Sentence {
	t.Helper()

	return newSentence(t, id, 3, [][2]int{{1, 0}, {1, 2}}, []int{0, 2}, []interaction{
		{"e0", "e2", "Phosphorylation"},
		{"e0", "e2", "Phosphorylation"},
		{"e0", "e2", "Binding"},
	})
}

func mustBuilder(t *testing.T, styles example.Styles, opts ...example.Option) *example.Builder {
	t.Helper()
	b, err := example.New(styles, opts...)
	require.NoError(t, err)

	return b
}

// featureNames maps the ids of r back to names.
func featureNames(t *testing.T, b *example.Builder, r example.Record) map[string]float64 {
	t.Helper()
	out := make(map[string]float64, len(r.Features))
	for id, w := range r.Features {
		name, ok := b.FeatureSet().Name(id)
		require.True(t, ok, "feature id %d", id)
		out[name] = w
	}

	return out
}
