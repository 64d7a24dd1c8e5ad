package features

import (
	"strconv"
	"strings"
)

// DependencyBuilder derives features from the shortest dependency path:
// path length, the two terminal tokens, every token and dependency on the
// path, POS and dependency n-grams, typed path edges, and sentence-level
// entity counts. An optional ontology contributor runs on the terminals.
type DependencyBuilder struct {
	Base
	ontology *OntologyBuilder
	grams    []int
}

// DependencyOption configures a DependencyBuilder.
type DependencyOption func(*DependencyBuilder)

// WithOntology adds ancestor-class features for terminal entity types.
func WithOntology(o *Ontology) DependencyOption {
	return func(b *DependencyBuilder) { b.ontology = NewOntologyBuilder(o) }
}

// WithGrams overrides the path n-gram sizes (default 2 and 3).
func WithGrams(sizes ...int) DependencyOption {
	return func(b *DependencyBuilder) { b.grams = sizes }
}

// NewDependencyBuilder returns a builder with n-grams of size 2 and 3.
func NewDependencyBuilder(opts ...DependencyOption) *DependencyBuilder {
	b := &DependencyBuilder{grams: []int{2, 3}}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Contribute writes the dependency features in a fixed order.
func (b *DependencyBuilder) Contribute(pc *PathContext) error {
	vec, err := b.Vector()
	if err != nil {
		return err
	}
	steps := pc.Steps()

	b.pathLength(vec, pc)
	b.terminus(vec, pc, steps)
	if b.ontology != nil {
		if err := Run(b.ontology, vec, pc); err != nil {
			return err
		}
	}
	b.singleElements(vec, pc, steps)
	for _, n := range b.grams {
		b.pathGrams(vec, n, pc, steps)
	}
	b.pathEdges(vec, pc, steps)
	b.sentence(vec, pc)

	return nil
}

func (b *DependencyBuilder) pathLength(vec *Named, pc *PathContext) {
	n := pc.Path.Len()
	vec.Set("len_edges_"+strconv.Itoa(n), 1)
	vec.Set("len", float64(n))
}

func (b *DependencyBuilder) terminus(vec *Named, pc *PathContext, steps []Step) {
	toks := pc.Sentence.Tokens()
	for _, end := range []struct {
		tag  string
		tok  int
		step int
	}{
		{"t1", pc.Path.First(), 0},
		{"t2", pc.Path.Last(), len(steps) - 1},
	} {
		t := toks[end.tok]
		vec.Set(end.tag+"_txt_"+t.Text, 1)
		vec.Set(end.tag+"_POS_"+t.POS, 1)
		ents := pc.Sentence.HeadEntities(end.tok)
		if len(ents) == 0 {
			vec.Set(end.tag+"_ent_none", 1)
		}
		for _, e := range ents {
			vec.Set(end.tag+"_ent_"+e.Type, 1)
		}
		if end.step >= 0 && end.step < len(steps) {
			for _, d := range steps[end.step].Deps {
				vec.Set(end.tag+"_dep_"+d.Type, 1)
			}
		}
	}
}

func (b *DependencyBuilder) singleElements(vec *Named, pc *PathContext, steps []Step) {
	toks := pc.Sentence.Tokens()
	for _, i := range pc.Path {
		vec.Add("tok_txt_"+toks[i].Text, 1)
		vec.Add("tok_POS_"+toks[i].POS, 1)
	}
	for _, st := range steps {
		for _, d := range st.Deps {
			vec.Add("dep_"+d.Type, 1)
		}
	}
}

// pathGrams emits n-grams over the token POS sequence and over the step
// label sequence of the path.
func (b *DependencyBuilder) pathGrams(vec *Named, n int, pc *PathContext, steps []Step) {
	if n < 1 {
		return
	}
	prefix := "gram" + strconv.Itoa(n)
	toks := pc.Sentence.Tokens()
	for k := 0; k+n <= len(pc.Path); k++ {
		parts := make([]string, n)
		for m := 0; m < n; m++ {
			parts[m] = toks[pc.Path[k+m]].POS
		}
		vec.Add(prefix+"_POS_"+strings.Join(parts, "-"), 1)
	}
	for k := 0; k+n <= len(steps); k++ {
		parts := make([]string, n)
		for m := 0; m < n; m++ {
			parts[m] = stepLabel(steps[k+m])
		}
		vec.Add(prefix+"_dep_"+strings.Join(parts, "-"), 1)
	}
}

func (b *DependencyBuilder) pathEdges(vec *Named, pc *PathContext, steps []Step) {
	toks := pc.Sentence.Tokens()
	for _, st := range steps {
		label := stepLabel(st)
		vec.Add("e_"+label, 1)
		vec.Add("e_"+toks[st.From].POS+"_"+label+"_"+toks[st.To].POS, 1)
	}
}

func (b *DependencyBuilder) sentence(vec *Named, pc *PathContext) {
	for _, e := range pc.Sentence.Entities() {
		vec.Add("sent_ent_"+e.Type, 1)
	}
}
