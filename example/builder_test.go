package example_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lrxzhy/TEES/example"
	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/idset"
)

// BuilderSuite covers pair enumeration, labeling and assembly.
type BuilderSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

// TestDirectedEmitsTwoPerPair checks both orientations are emitted for every pair.
func (s *BuilderSuite) TestDirectedEmitsTwoPerPair() {
	b := mustBuilder(s.T(), example.Styles{Directed: true})
	recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Require().Len(recs, 6, "3 pairs × 2 directions")

	for k, r := range recs {
		s.Equal("d0.s0.x"+string(rune('0'+k)), r.ID)
	}
	// pair (0,2): forward carries the relation, reverse is negative
	s.Equal("Binding-Phosphorylation", recs[2].Category)
	s.Equal(2, recs[2].Class)
	s.Equal(example.NegativeCategory, recs[3].Category)
}

// TestUndirectedEmitsOnePerPair checks orientation-symmetric mode.
func (s *BuilderSuite) TestUndirectedEmitsOnePerPair() {
	b := mustBuilder(s.T(), example.Styles{})
	recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Require().Len(recs, 3)
	s.Equal("Binding-Phosphorylation", recs[1].Category, "edges of either orientation label the pair")
}

// TestNegativesHaveClassOne checks the reserved negative class id.
func (s *BuilderSuite) TestNegativesHaveClassOne() {
	for _, styles := range []example.Styles{{}, {Directed: true}, {Directed: true, HeadsOnly: true}} {
		b := mustBuilder(s.T(), styles)
		recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
		require.NoError(s.T(), err)
		for _, r := range recs {
			if r.Category == example.NegativeCategory {
				s.Equal(example.NegativeClassID, r.Class, r.ID)
			}
		}
	}
}

// TestHeadsOnlySkipsNonHeads checks that only head pairs are emitted.
func (s *BuilderSuite) TestHeadsOnlySkipsNonHeads() {
	b := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true})
	recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Require().Len(recs, 2, "only (STAT3, JAK2) qualifies")

	s.Equal(example.Extra{XType: "edge", Type: "i", T1: "bt_0", T2: "bt_2", DepRev: false}, recs[0].Extra)
	s.Equal(example.Extra{XType: "edge", Type: "i", T1: "bt_0", T2: "bt_2", DepRev: true}, recs[1].Extra)
	s.Equal("d0.s0.x0", recs[0].ID)
	s.Equal("d0.s0.x1", recs[1].ID)
}

// TestHeadsOnlyWithoutHeads checks the empty case.
func (s *BuilderSuite) TestHeadsOnlyWithoutHeads() {
	sent := newSentence(s.T(), "d0.s1", 3, [][2]int{{1, 0}, {1, 2}}, nil, nil)
	for _, directed := range []bool{true, false} {
		b := mustBuilder(s.T(), example.Styles{Directed: directed, HeadsOnly: true})
		recs, err := b.BuildSentence(sent)
		require.NoError(s.T(), err)
		s.Empty(recs)
	}
}

// TestIdempotent checks two runs with fresh registries agree exactly.
func (s *BuilderSuite) TestIdempotent() {
	styles := example.Styles{Directed: true, Random: true}
	run := func() []example.Record {
		b := mustBuilder(s.T(), styles, example.WithRandomSeed(42))
		recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
		require.NoError(s.T(), err)
		return recs
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		s.Failf("runs differ", "(-first +second):\n%s", diff)
	}
}

// TestNoPathNoEdge checks the sentinel for unconnected heads.
func (s *BuilderSuite) TestNoPathNoEdge() {
	sent := newSentence(s.T(), "d1.s0", 2, nil, []int{0, 1}, nil)

	b := mustBuilder(s.T(), example.Styles{HeadsOnly: true})
	recs, err := b.BuildSentence(sent)
	require.NoError(s.T(), err)
	s.Require().Len(recs, 1)
	s.Equal(example.NegativeCategory, recs[0].Category)
	s.Equal(map[string]float64{example.FeatureAlwaysNegative: 1}, featureNames(s.T(), b, recs[0]))
	s.Equal("bt_0", recs[0].Extra.T1)
	s.Equal("bt_1", recs[0].Extra.T2)

	b = mustBuilder(s.T(), example.Styles{HeadsOnly: true, Subset: true})
	recs, err = b.BuildSentence(sent)
	require.NoError(s.T(), err)
	s.Equal(map[string]float64{example.FeatureAlwaysNegative: 1, example.FeatureOutOfScope: 1}, featureNames(s.T(), b, recs[0]))
}

// TestDegeneratePathFeatures checks builders run on the two-token path.
func (s *BuilderSuite) TestDegeneratePathFeatures() {
	sent := newSentence(s.T(), "d1.s0", 2, nil, []int{0, 1}, nil)
	b := mustBuilder(s.T(), example.Styles{HeadsOnly: true, DegeneratePathFeatures: true})
	recs, err := b.BuildSentence(sent)
	require.NoError(s.T(), err)
	s.Require().Len(recs, 1)

	names := featureNames(s.T(), b, recs[0])
	s.NotContains(names, example.FeatureAlwaysNegative)
	s.Contains(names, "len_edges_1")
	s.Contains(names, "linfw_Tok1_0_txt_w0")
}

// TestPathLengthOutOfRange checks the forced sentinel for disallowed lengths.
func (s *BuilderSuite) TestPathLengthOutOfRange() {
	chain := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}}
	sent := newSentence(s.T(), "d2.s0", 6, chain, []int{0, 5}, []interaction{{"e0", "e5", "Regulation"}})

	b := mustBuilder(s.T(), example.Styles{HeadsOnly: true, PathLengths: []int{2, 3}})
	recs, err := b.BuildSentence(sent)
	require.NoError(s.T(), err)
	s.Require().Len(recs, 1)
	s.Equal(map[string]float64{example.FeatureAlwaysNegative: 1}, featureNames(s.T(), b, recs[0]))
	s.Equal("Regulation", recs[0].Category, "the gold label is kept")

	b = mustBuilder(s.T(), example.Styles{HeadsOnly: true, PathLengths: []int{5}})
	recs, err = b.BuildSentence(sent)
	require.NoError(s.T(), err)
	names := featureNames(s.T(), b, recs[0])
	s.NotContains(names, example.FeatureAlwaysNegative)
	s.Equal(5.0, names["len"])
}

// TestBinary checks the collapsed labels.
func (s *BuilderSuite) TestBinary() {
	sent := newSentence(s.T(), "d3.s0", 3, [][2]int{{1, 0}, {1, 2}}, []int{0, 2}, []interaction{{"e0", "e2", "Regulation"}})
	b := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true, Binary: true})
	recs, err := b.BuildSentence(sent)
	require.NoError(s.T(), err)
	s.Require().Len(recs, 2)

	s.Equal(example.BinaryPositive, recs[0].Class)
	s.Equal(example.BinaryCategory, recs[0].Category)
	s.Equal(example.BinaryNegative, recs[1].Class)
	s.Equal(example.BinaryCategory, recs[1].Category)
	s.Equal(1, b.ClassSet().Len(), "binary mode bypasses the class registry")
}

// TestTypeFilter checks that filtered-out types leave a negative.
func (s *BuilderSuite) TestTypeFilter() {
	b := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true, Types: []string{"Binding"}})
	recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Equal("Binding", recs[0].Category)

	b = mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true, Types: []string{"Regulation"}})
	recs, err = b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Equal(example.NegativeCategory, recs[0].Category)
}

// TestUndirectedMergesBothOrientations checks the folded vector.
func (s *BuilderSuite) TestUndirectedMergesBothOrientations() {
	b := mustBuilder(s.T(), example.Styles{HeadsOnly: true})
	recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	s.Require().Len(recs, 1)

	names := featureNames(s.T(), b, recs[0])
	s.Contains(names, "linfw_Tok1_0_txt_w0")
	s.Contains(names, "linrv_Tok1_0_txt_w0")
	s.Equal(2.0, names["len"])
}

// hasPrefix reports whether any name starts with prefix.
func hasPrefix(names map[string]float64, prefix string) bool {
	for n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}

	return false
}

// TestContributorToggles checks which feature families each style enables.
func (s *BuilderSuite) TestContributorToggles() {
	ont, err := features.ParseOntology([]byte("[parents]\nProtein = \"Entity\"\n"))
	require.NoError(s.T(), err)

	for _, tc := range []struct {
		name     string
		styles   example.Styles
		dep, lin bool
		ont      bool
	}{
		{name: "default", styles: example.Styles{}, dep: true, lin: true},
		{name: "no_dependency", styles: example.Styles{NoDependency: true}, lin: true},
		{name: "no_linear", styles: example.Styles{NoLinear: true}, dep: true},
		{name: "both off", styles: example.Styles{NoDependency: true, NoLinear: true}},
		{name: "ontology", styles: example.Styles{Ontology: true}, dep: true, lin: true, ont: true},
	} {
		tc.styles.Directed = true
		tc.styles.HeadsOnly = true
		b := mustBuilder(s.T(), tc.styles, example.WithOntology(ont))
		recs, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
		require.NoError(s.T(), err, tc.name)
		s.Require().Len(recs, 2, tc.name)

		names := featureNames(s.T(), b, recs[0])
		s.Equal(tc.dep, hasPrefix(names, "len"), "%s: dependency features", tc.name)
		s.Equal(tc.lin, hasPrefix(names, "lin"), "%s: linear features", tc.name)
		s.Equal(tc.ont, hasPrefix(names, "ont_"), "%s: ontology features", tc.name)
		if tc.ont {
			s.Contains(names, "ont_t1_Protein")
			s.Contains(names, "ont_t1_Entity")
			s.Contains(names, "ont_t2_Entity")
		}
		if !tc.dep && !tc.lin {
			s.Empty(recs[0].Features, tc.name)
			s.Zero(b.FeatureSet().Len(), tc.name)
		}
	}
}

// TestFeatureOrderFixesIDs checks ids follow first-write order.
func (s *BuilderSuite) TestFeatureOrderFixesIDs() {
	b := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true})
	_, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	names := b.FeatureSet().Names()
	s.Equal("len_edges_2", names[0])
	s.Equal("len", names[1])
}

// TestFrozenClassSet checks registry errors surface unchanged.
func (s *BuilderSuite) TestFrozenClassSet() {
	classes := idset.New(1)
	_, _ = classes.GetID(example.NegativeCategory)
	classes.Freeze()

	b := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true}, example.WithClassSet(classes))
	_, err := b.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	s.ErrorIs(err, idset.ErrFrozen)
}

// TestFrozenFeatureSetDropsUnknown checks test-corpus style reuse of ids.
func (s *BuilderSuite) TestFrozenFeatureSetDropsUnknown() {
	train := mustBuilder(s.T(), example.Styles{Directed: true, HeadsOnly: true})
	_, err := train.BuildSentence(phosphorylation(s.T(), "d0.s0"))
	require.NoError(s.T(), err)
	train.FeatureSet().Freeze()
	known := train.FeatureSet().Len()

	test := mustBuilder(s.T(), example.Styles{Directed: true}, example.WithFeatureSet(train.FeatureSet()))
	recs, err := test.BuildSentence(newSentence(s.T(), "d9.s0", 4, [][2]int{{0, 1}, {1, 2}, {2, 3}}, nil, nil))
	require.NoError(s.T(), err)
	s.NotEmpty(recs)
	s.Equal(known, test.FeatureSet().Len())
	for _, r := range recs {
		for id := range r.Features {
			_, ok := test.FeatureSet().Name(id)
			s.True(ok)
		}
	}
}

// TestNegativeClassReserved checks the class registry contract.
func (s *BuilderSuite) TestNegativeClassReserved() {
	classes := idset.New(1)
	_, _ = classes.GetID("Binding")
	_, err := example.New(example.Styles{}, example.WithClassSet(classes))
	s.ErrorIs(err, example.ErrNegativeClassID)

	_, err = example.New(example.Styles{PathLengths: []int{0}})
	s.ErrorIs(err, example.ErrBadPathLength)
}
