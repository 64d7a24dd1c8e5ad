package example

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildCorpus builds every sentence, using up to workers goroutines, then
// resolves ids sequentially in sentence order and applies the normalize
// post-pass. The result is identical for any worker count.
//
// Cancellation is checked between sentences.
func (b *Builder) BuildCorpus(ctx context.Context, sentences []SentenceGraph, workers int) ([]Record, error) {
	start := time.Now()
	perSentence := make([][]draft, len(sentences))

	if workers <= 1 {
		for i, s := range sentences {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d, err := b.buildSentence(s)
			if err != nil {
				return nil, err
			}
			perSentence[i] = d
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, s := range sentences {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, err := b.buildSentence(s)
				if err != nil {
					return err
				}
				perSentence[i] = d

				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var records []Record
	for i, drafts := range perSentence {
		r, err := b.resolve(drafts)
		if err != nil {
			return nil, fmt.Errorf("sentence %s: %w", sentences[i].ID(), err)
		}
		records = append(records, r...)
	}
	if b.styles.Normalize {
		Normalize(records)
	}

	sum := b.Summarize(records)
	b.logger.Info("corpus built",
		zap.Int("sentences", len(sentences)),
		zap.Int("examples", sum.Examples),
		zap.Int("positives", sum.Positives),
		zap.Int("negatives", sum.Negatives),
		zap.Int("features", b.featureSet.Len()),
		zap.Int("classes", b.classSet.Len()),
		zap.Strings("styles", b.styles.Tags()),
		zap.Duration("elapsed", time.Since(start)))

	return records, nil
}

// Normalize rescales every feature vector to unit length in place. Duplicate
// examples are kept.
func Normalize(records []Record) {
	for i := range records {
		records[i].Features.Normalize()
	}
}

// Summary counts the examples of a corpus pass.
type Summary struct {
	Examples   int
	Positives  int
	Negatives  int
	ByCategory map[string]int
}

// Summarize counts records as positive or negative according to the
// builder's labeling mode.
func (b *Builder) Summarize(records []Record) Summary {
	s := Summary{Examples: len(records), ByCategory: make(map[string]int)}
	for _, r := range records {
		neg := r.Class == NegativeClassID
		if b.styles.Binary {
			neg = r.Class == BinaryNegative
		}
		if neg {
			s.Negatives++
		} else {
			s.Positives++
		}
		s.ByCategory[r.Category]++
	}

	return s
}
