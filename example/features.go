package example

import (
	"fmt"

	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/paths"
)

// Sentinel feature names.
const (
	FeatureAlwaysNegative = "always_negative"
	FeatureOutOfScope     = "out_of_scope"
)

// Contributor settings.
const (
	linearWindow      = 2
	randomCount       = 100
	randomProbability = 0.01
)

// orchestrator runs the enabled contributors for the pairs of one sentence.
// It owns its contributors, so one orchestrator must not be shared between
// goroutines.
type orchestrator struct {
	styles   Styles
	sentence SentenceGraph
	index    *paths.Index
	contribs []features.Contributor
}

func (b *Builder) newOrchestrator(s SentenceGraph, idx *paths.Index) *orchestrator {
	return &orchestrator{
		styles:   b.styles,
		sentence: s,
		index:    idx,
		contribs: b.contributors(),
	}
}

// contributors lists the enabled feature contributors in their fixed order:
// dependency (with ontology), linear, random.
func (b *Builder) contributors() []features.Contributor {
	var out []features.Contributor
	if !b.styles.NoDependency {
		var opts []features.DependencyOption
		if b.styles.Ontology {
			opts = append(opts, features.WithOntology(b.ontology))
		}
		out = append(out, features.NewDependencyBuilder(opts...))
	}
	if !b.styles.NoLinear {
		out = append(out, features.NewLinearBuilder(linearWindow, linearWindow))
	}
	if b.styles.Random {
		out = append(out, features.NewRandomBuilder(randomCount, randomProbability, b.seed))
	}

	return out
}

// build returns the feature vector for the oriented pair (t1, t2) and the
// path the record's t1/t2 attributes are taken from.
func (o *orchestrator) build(t1, t2 int) (*features.Named, paths.Path, error) {
	vec := features.NewNamed()
	p, found := o.index.Get(t1, t2)
	switch {
	case !found:
		p = paths.Degenerate(t1, t2)
		if !o.styles.DegeneratePathFeatures {
			o.sentinel(vec)
			return vec, p, nil
		}
	case p.Len() == 0:
		return nil, nil, fmt.Errorf("%w: tokens %d and %d in %s", ErrSelfPair, t1, t2, o.sentence.ID())
	case !o.styles.lengthAllowed(p.Len()):
		o.sentinel(vec)
		return vec, p, nil
	}

	toks := o.sentence.Tokens()
	pc := &features.PathContext{
		Sentence: o.sentence,
		T1:       t1,
		T2:       t2,
		Path:     p,
		Key:      o.sentence.ID() + "/" + toks[t1].ID + "/" + toks[t2].ID,
	}
	for _, c := range o.contribs {
		if err := features.Run(c, vec, pc); err != nil {
			return nil, nil, err
		}
	}

	return vec, p, nil
}

func (o *orchestrator) sentinel(vec *features.Named) {
	vec.Set(FeatureAlwaysNegative, 1)
	if o.styles.Subset {
		vec.Set(FeatureOutOfScope, 1)
	}
}
