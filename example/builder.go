package example

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lrxzhy/TEES/core"
	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/idset"
	"github.com/lrxzhy/TEES/paths"
)

// Reserved labels.
const (
	// NegativeCategory labels pairs without a (kept) interaction.
	NegativeCategory = "neg"

	// NegativeClassID is the class id NegativeCategory always maps to.
	NegativeClassID = 1

	// BinaryCategory replaces every category in binary mode.
	BinaryCategory = "i"
)

var (
	// ErrSelfPair is returned if a pair resolves to a path of length 0.
	ErrSelfPair = errors.New("example: pair resolves to a zero-length path")

	// ErrNegativeClassID is returned by New when an injected class set
	// does not map NegativeCategory to NegativeClassID.
	ErrNegativeClassID = errors.New("example: negative category must have class id 1")
)

// SentenceGraph is what the builder needs from a sentence;
// *sentence.Sentence implements it.
type SentenceGraph interface {
	features.Sentence
	ID() string
	Interactions() *core.Graph
	IsEntityHead(i int) bool
}

// Builder turns sentences into example records. Its registries are shared by
// every sentence of a corpus pass.
//
// A frozen feature set does not fail the build: feature names it does not
// know are dropped from the record. A frozen class set still returns
// idset.ErrFrozen for an unseen category.
type Builder struct {
	styles     Styles
	featureSet *idset.IDSet
	classSet   *idset.IDSet
	ontology   *features.Ontology
	seed       uint64
	cutoff     int
	logger     *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithFeatureSet injects the feature registry (default: a fresh set starting at 1).
func WithFeatureSet(s *idset.IDSet) Option {
	return func(b *Builder) { b.featureSet = s }
}

// WithClassSet injects the class registry (default: a fresh set starting at 1).
func WithClassSet(s *idset.IDSet) Option {
	return func(b *Builder) { b.classSet = s }
}

// WithOntology sets the type hierarchy used by the ontology style.
func WithOntology(o *features.Ontology) Option {
	return func(b *Builder) { b.ontology = o }
}

// WithRandomSeed seeds the random-feature contributor.
func WithRandomSeed(seed uint64) Option {
	return func(b *Builder) { b.seed = seed }
}

// WithCutoff overrides the path hop limit.
func WithCutoff(n int) Option {
	return func(b *Builder) { b.cutoff = n }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New validates styles and prepares the registries. The class registry
// must map NegativeCategory to NegativeClassID.
func New(styles Styles, opts ...Option) (*Builder, error) {
	if err := styles.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{
		styles: styles,
		cutoff: paths.DefaultCutoff,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.featureSet == nil {
		b.featureSet = idset.New(1)
	}
	if b.classSet == nil {
		b.classSet = idset.New(NegativeClassID)
	}
	id, err := b.classSet.GetID(NegativeCategory)
	if err != nil {
		return nil, fmt.Errorf("example: reserve negative class: %w", err)
	}
	if id != NegativeClassID {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeClassID, id)
	}

	return b, nil
}

// Styles returns the configured styles.
func (b *Builder) Styles() Styles { return b.styles }

// FeatureSet returns the feature registry.
func (b *Builder) FeatureSet() *idset.IDSet { return b.featureSet }

// ClassSet returns the class registry.
func (b *Builder) ClassSet() *idset.IDSet { return b.classSet }

// BuildSentence emits the records for one sentence and resolves their ids
// immediately.
func (b *Builder) BuildSentence(s SentenceGraph) ([]Record, error) {
	drafts, err := b.buildSentence(s)
	if err != nil {
		return nil, err
	}

	return b.resolve(drafts)
}

// buildSentence enumerates token pairs in sentence order and builds a draft
// for every oriented example the styles call for.
func (b *Builder) buildSentence(s SentenceGraph) ([]draft, error) {
	toks := s.Tokens()
	ids := make([]string, len(toks))
	for i, t := range toks {
		ids[i] = t.ID
	}
	idx, err := paths.Compute(s.Dependencies(), ids, paths.WithCutoff(b.cutoff))
	if err != nil {
		return nil, fmt.Errorf("sentence %s: %w", s.ID(), err)
	}

	inter := s.Interactions()
	o := b.newOrchestrator(s, idx)
	var out []draft
	emit := func(category string, vec *features.Named, p paths.Path) error {
		d, err := assemble(s.ID(), len(out), category, vec, p, toks)
		if err != nil {
			return err
		}
		out = append(out, d)

		return nil
	}

	for i := 0; i < len(toks)-1; i++ {
		for j := i + 1; j < len(toks); j++ {
			if b.styles.HeadsOnly && (!s.IsEntityHead(i) || !s.IsEntityHead(j)) {
				continue
			}

			if b.styles.Directed {
				for _, pair := range [2][2]int{{i, j}, {j, i}} {
					t1, t2 := pair[0], pair[1]
					category, ok := ResolveCategory(inter.EdgesBetween(ids[t1], ids[t2]), b.styles.Types)
					if !ok {
						category = NegativeCategory
					}
					vec, p, err := o.build(t1, t2)
					if err != nil {
						return nil, err
					}
					if err := emit(category, vec, p); err != nil {
						return nil, err
					}
				}
				continue
			}

			edges := append(inter.EdgesBetween(ids[i], ids[j]), inter.EdgesBetween(ids[j], ids[i])...)
			category, ok := ResolveCategory(edges, b.styles.Types)
			if !ok {
				category = NegativeCategory
			}
			vec, p, err := o.build(i, j)
			if err != nil {
				return nil, err
			}
			reverse, _, err := o.build(j, i)
			if err != nil {
				return nil, err
			}
			vec.Update(reverse)
			if err := emit(category, vec, p); err != nil {
				return nil, err
			}
		}
	}
	b.logger.Debug("sentence built",
		zap.String("sentence", s.ID()),
		zap.Int("tokens", len(toks)),
		zap.Int("examples", len(out)))

	return out, nil
}
