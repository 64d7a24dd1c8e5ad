package example

import (
	"fmt"
	"strconv"

	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/paths"
	"github.com/lrxzhy/TEES/sentence"
)

// Class ids used in binary mode.
const (
	BinaryPositive = 1
	BinaryNegative = -1
)

// Extra holds the attributes written next to each example.
type Extra struct {
	XType string `json:"xtype"`
	Type  string `json:"type"`

	// T1 and T2 are the token ids of the path endpoints, lower numeric
	// suffix first.
	T1 string `json:"t1"`
	T2 string `json:"t2"`

	// DepRev is true when the example runs from the higher token id to the
	// lower one.
	DepRev bool `json:"deprev"`
}

// Record is one finished example.
type Record struct {
	ID       string          `json:"id"`
	Class    int             `json:"class"`
	Category string          `json:"category"`
	Features features.Vector `json:"features"`
	Extra    Extra           `json:"extra"`
}

// draft is a record whose feature and class names are not yet mapped to ids.
type draft struct {
	id       string
	category string
	features *features.Named
	extra    Extra
}

// assemble packages one example. index is the running example count of the
// sentence.
func assemble(sentenceID string, index int, category string, vec *features.Named, p paths.Path, toks []sentence.Token) (draft, error) {
	first, last := toks[p.First()].ID, toks[p.Last()].ID
	n1, err := sentence.TokenNumber(first)
	if err != nil {
		return draft{}, err
	}
	n2, err := sentence.TokenNumber(last)
	if err != nil {
		return draft{}, err
	}

	extra := Extra{XType: "edge", Type: "i", T1: first, T2: last}
	if n1 >= n2 {
		extra.T1, extra.T2, extra.DepRev = last, first, true
	}

	return draft{
		id:       sentenceID + ".x" + strconv.Itoa(index),
		category: category,
		features: vec,
		extra:    extra,
	}, nil
}

// resolve maps feature and class names to ids, in draft order. A frozen
// feature set keeps the names it knows and drops the others; an unknown
// class is an error either way.
func (b *Builder) resolve(drafts []draft) ([]Record, error) {
	frozen := b.featureSet.Frozen()
	out := make([]Record, 0, len(drafts))
	dropped := 0
	for _, d := range drafts {
		r := Record{ID: d.id, Category: d.category, Extra: d.extra}
		if frozen {
			var n int
			r.Features, n = features.ResolveKnown(d.features, b.featureSet)
			dropped += n
		} else {
			vec, err := features.Resolve(d.features, b.featureSet)
			if err != nil {
				return nil, fmt.Errorf("example %s: %w", d.id, err)
			}
			r.Features = vec
		}

		if b.styles.Binary {
			r.Class = BinaryNegative
			if d.category != NegativeCategory {
				r.Class = BinaryPositive
			}
			r.Category = BinaryCategory
		} else {
			id, err := b.classSet.GetID(d.category)
			if err != nil {
				return nil, fmt.Errorf("example %s: %w", d.id, err)
			}
			r.Class = id
		}
		out = append(out, r)
	}
	if dropped > 0 {
		b.logger.Sugar().Debugf("dropped %d unknown feature names against frozen feature set", dropped)
	}

	return out, nil
}
