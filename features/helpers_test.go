package features_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/paths"
	"github.com/lrxzhy/TEES/sentence"
)

// fixture builds "STAT3 binds to JAK2 ." with STAT3 and JAK2 as Protein heads:
//
//	binds -nsubj-> STAT3, binds -prep_to-> JAK2, binds -punct-> .
//
// "to" is left out of the dependency graph.
func fixture(t *testing.T) *sentence.Sentence {
	t.Helper()
	s, err := sentence.New("d0.s0", []sentence.Token{
		{ID: "bt_0", Text: "STAT3", POS: "NN"},
		{ID: "bt_1", Text: "binds", POS: "VBZ"},
		{ID: "bt_2", Text: "to", POS: "TO"},
		{ID: "bt_3", Text: "JAK2", POS: "NN"},
		{ID: "bt_4", Text: ".", POS: "."},
	})
	require.NoError(t, err)
	require.NoError(t, s.AddDependency(1, 0, "nsubj"))
	require.NoError(t, s.AddDependency(1, 3, "prep_to"))
	require.NoError(t, s.AddDependency(1, 4, "punct"))
	require.NoError(t, s.AddEntity(sentence.Entity{ID: "e0", Type: "Protein", Head: 0, IsName: true}))
	require.NoError(t, s.AddEntity(sentence.Entity{ID: "e1", Type: "Protein", Head: 3, IsName: true}))

	return s
}

func pathContext(t *testing.T, s *sentence.Sentence, t1, t2 int) *features.PathContext {
	t.Helper()
	idx, err := paths.Compute(s.Dependencies(), s.TokenIDs())
	require.NoError(t, err)
	p, ok := idx.Get(t1, t2)
	if !ok {
		p = paths.Degenerate(t1, t2)
	}

	return &features.PathContext{Sentence: s, T1: t1, T2: t2, Path: p, Key: s.ID() + ":" + s.Tokens()[t1].ID + ":" + s.Tokens()[t2].ID}
}

func build(t *testing.T, c features.Contributor, pc *features.PathContext) *features.Named {
	t.Helper()
	vec := features.NewNamed()
	require.NoError(t, features.Run(c, vec, pc))

	return vec
}
