package features_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/paths"
)

func TestPathEdges_Directions(t *testing.T) {
	s := fixture(t)
	steps := features.PathEdges(s, paths.Path{0, 1, 3})
	require.Len(t, steps, 2)
	assert.Equal(t, []features.DepEdge{{Type: "nsubj", Forward: false}}, steps[0].Deps)
	assert.Equal(t, []features.DepEdge{{Type: "prep_to", Forward: true}}, steps[1].Deps)
	assert.Equal(t, "<nsubj", steps[0].Deps[0].Label())

	assert.Empty(t, features.PathEdges(s, paths.Path{2, 3})[0].Deps, "degenerate path crosses no dependency")
	assert.Empty(t, features.PathEdges(s, paths.Path{2}))
}

func TestDependencyBuilder(t *testing.T) {
	s := fixture(t)
	vec := build(t, features.NewDependencyBuilder(), pathContext(t, s, 0, 3))

	for name, want := range map[string]float64{
		"len_edges_2":               1,
		"len":                       2,
		"t1_txt_STAT3":              1,
		"t1_ent_Protein":            1,
		"t1_dep_nsubj":              1,
		"t2_dep_prep_to":            1,
		"tok_POS_NN":                2,
		"dep_nsubj":                 1,
		"gram2_POS_NN-VBZ":          1,
		"gram3_POS_NN-VBZ-NN":       1,
		"gram2_dep_<nsubj->prep_to": 1,
		"e_<nsubj":                  1,
		"e_VBZ_>prep_to_NN":         1,
		"sent_ent_Protein":          2,
	} {
		got, ok := vec.Get(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, want, got, name)
		}
	}
	_, ok := vec.Get("gram3_dep_<nsubj->prep_to")
	assert.False(t, ok, "a two-step path has no dependency trigram")

	// first feature written is the path length
	assert.Equal(t, "len_edges_2", vec.Names()[0])
}

func TestDependencyBuilder_WithGrams(t *testing.T) {
	s := fixture(t)
	vec := build(t, features.NewDependencyBuilder(features.WithGrams(1, 4)), pathContext(t, s, 0, 3))

	got, ok := vec.Get("gram1_POS_NN")
	require.True(t, ok)
	assert.Equal(t, 2.0, got)
	_, ok = vec.Get("gram1_dep_<nsubj")
	assert.True(t, ok)
	for _, name := range vec.Names() {
		assert.False(t, strings.HasPrefix(name, "gram2_"), name)
		assert.False(t, strings.HasPrefix(name, "gram4_"), "a three-token path has no 4-grams: %s", name)
	}
}

func TestDependencyBuilder_NonHeadTerminal(t *testing.T) {
	s := fixture(t)
	vec := build(t, features.NewDependencyBuilder(), pathContext(t, s, 1, 4))
	_, ok := vec.Get("t1_ent_none")
	assert.True(t, ok)
	_, ok = vec.Get("t2_ent_none")
	assert.True(t, ok)
}

func TestLinearBuilder_Orientation(t *testing.T) {
	s := fixture(t)
	lin := features.NewLinearBuilder(2, 2)

	fw := build(t, lin, pathContext(t, s, 0, 3))
	rv := build(t, lin, pathContext(t, s, 3, 0))

	for _, name := range []string{"linfw_Tok1_0_txt_STAT3", "linfw_Tok2_0_txt_JAK2", "linfw_Tok2_-2_txt_binds", "linfw_Tok1_2_POS_TO"} {
		_, ok := fw.Get(name)
		assert.True(t, ok, name)
	}
	_, ok := fw.Get("linfw_Tok1_-1_txt_STAT3")
	assert.False(t, ok, "window is clipped at the sentence start")

	_, ok = rv.Get("linrv_Tok1_0_txt_STAT3")
	assert.True(t, ok, "reverse orientation swaps into sentence order")
	assert.Equal(t, fw.Len(), rv.Len())
}

func TestRandomBuilder_Deterministic(t *testing.T) {
	s := fixture(t)
	pc := pathContext(t, s, 0, 3)

	a := build(t, features.NewRandomBuilder(100, 0.5, 7), pc)
	b := build(t, features.NewRandomBuilder(100, 0.5, 7), pc)
	assert.Equal(t, a.Names(), b.Names())
	assert.NotZero(t, a.Len())

	none := build(t, features.NewRandomBuilder(100, 0, 7), pc)
	assert.Zero(t, none.Len())
}

func TestContributor_Detached(t *testing.T) {
	s := fixture(t)
	for _, c := range []features.Contributor{
		features.NewDependencyBuilder(),
		features.NewLinearBuilder(2, 2),
		features.NewRandomBuilder(1, 1, 0),
		features.NewOntologyBuilder(nil),
	} {
		assert.ErrorIs(t, c.Contribute(pathContext(t, s, 0, 3)), features.ErrDetached)
	}
}
