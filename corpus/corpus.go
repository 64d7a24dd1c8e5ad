// Package corpus reads sentences from interaction XML:
//
//	<corpus>
//	  <document id="d0">
//	    <sentence id="d0.s0" text="STAT3 binds JAK2">
//	      <entity id="d0.s0.e0" charOffset="0-4" headOffset="0-4" type="Protein" isName="True"/>
//	      <interaction e1="d0.s0.e0" e2="d0.s0.e1" type="Binding"/>
//	      <sentenceanalyses>
//	        <tokenizations><tokenization tokenizer="mccc"><token id="bt_0" charOffset="0-4" POS="NN" text="STAT3"/>…</tokenization></tokenizations>
//	        <parses><parse parser="mccc" tokenizer="mccc"><dependency t1="bt_1" t2="bt_0" type="nsubj"/>…</parse></parses>
//	      </sentenceanalyses>
//	    </sentence>
//	  </document>
//	</corpus>
//
// Offsets are inclusive "begin-end" spans, possibly comma separated. An
// entity's head is the rightmost token overlapping its head offset, and gold
// interactions are attached to the entities' head tokens.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/lrxzhy/TEES/sentence"
)

var (
	// ErrNoRoot means the input has no root element.
	ErrNoRoot = errors.New("corpus: document has no root element")

	// ErrBadOffset means a charOffset attribute could not be parsed.
	ErrBadOffset = errors.New("corpus: malformed offset")

	// ErrUnknownToken means a dependency names a token that is not in the
	// selected tokenization.
	ErrUnknownToken = errors.New("corpus: dependency references unknown token")

	// ErrMissingAnalysis means a requested parse or tokenization is absent.
	ErrMissingAnalysis = errors.New("corpus: analysis not found")
)

// Option configures a load.
type Option func(*loader)

// WithParse selects the parse by its parser attribute. The default is the
// first parse of each sentence.
func WithParse(name string) Option {
	return func(l *loader) { l.parse = name }
}

// WithTokenization selects the tokenization by its tokenizer attribute. The
// default is the tokenizer named by the selected parse, else the first one.
func WithTokenization(name string) Option {
	return func(l *loader) { l.tokenization = name }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type loader struct {
	parse        string
	tokenization string
	logger       *zap.Logger
}

func newLoader(opts []Option) *loader {
	l := &loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads an interaction XML file.
func Load(path string, opts ...Option) ([]*sentence.Sentence, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}

	return newLoader(opts).document(doc)
}

// Read parses interaction XML from r.
func Read(r io.Reader, opts ...Option) ([]*sentence.Sentence, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("corpus: parse: %w", err)
	}

	return newLoader(opts).document(doc)
}

func (l *loader) document(doc *etree.Document) ([]*sentence.Sentence, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	var out []*sentence.Sentence
	for _, el := range root.FindElements(".//sentence") {
		s, err := l.sentence(el)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	l.logger.Debug("corpus loaded", zap.Int("sentences", len(out)))

	return out, nil
}

func (l *loader) sentence(el *etree.Element) (*sentence.Sentence, error) {
	id := el.SelectAttrValue("id", "")
	parse, err := l.selectParse(el)
	if err != nil {
		return nil, fmt.Errorf("sentence %s: %w", id, err)
	}
	tokEl, err := l.selectTokenization(el, parse)
	if err != nil {
		return nil, fmt.Errorf("sentence %s: %w", id, err)
	}

	var toks []sentence.Token
	if tokEl != nil {
		for _, t := range tokEl.SelectElements("token") {
			spans, err := parseOffsets(t.SelectAttrValue("charOffset", ""))
			if err != nil {
				return nil, fmt.Errorf("sentence %s token %s: %w", id, t.SelectAttrValue("id", ""), err)
			}
			toks = append(toks, sentence.Token{
				ID:    t.SelectAttrValue("id", ""),
				Text:  t.SelectAttrValue("text", ""),
				POS:   t.SelectAttrValue("POS", ""),
				Begin: spans[0].begin,
				End:   spans[len(spans)-1].end,
			})
		}
	}
	s, err := sentence.New(id, toks)
	if err != nil {
		return nil, err
	}

	if parse != nil {
		for _, d := range parse.SelectElements("dependency") {
			t1, t2 := d.SelectAttrValue("t1", ""), d.SelectAttrValue("t2", "")
			i, ok1 := s.TokenIndex(t1)
			j, ok2 := s.TokenIndex(t2)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: %s→%s in sentence %s", ErrUnknownToken, t1, t2, id)
			}
			if err := s.AddDependency(i, j, d.SelectAttrValue("type", "")); err != nil {
				return nil, err
			}
		}
	}

	if err := l.entities(s, el); err != nil {
		return nil, err
	}
	l.interactions(s, el)

	return s, nil
}

func (l *loader) entities(s *sentence.Sentence, el *etree.Element) error {
	for _, e := range el.SelectElements("entity") {
		id := e.SelectAttrValue("id", "")
		offset := e.SelectAttrValue("headOffset", "")
		if offset == "" {
			offset = e.SelectAttrValue("charOffset", "")
		}
		spans, err := parseOffsets(offset)
		if err != nil {
			return fmt.Errorf("entity %s: %w", id, err)
		}
		head, ok := headToken(s.Tokens(), spans)
		if !ok {
			l.logger.Debug("entity has no head token", zap.String("sentence", s.ID()), zap.String("entity", id))
			continue
		}
		if err := s.AddEntity(sentence.Entity{
			ID:     id,
			Type:   e.SelectAttrValue("type", ""),
			Text:   e.SelectAttrValue("text", ""),
			IsName: strings.EqualFold(e.SelectAttrValue("isName", ""), "true"),
			Head:   head,
		}); err != nil {
			return err
		}
	}

	return nil
}

// interactions attaches gold relations; ones naming an entity without a
// head token are skipped.
func (l *loader) interactions(s *sentence.Sentence, el *etree.Element) {
	for _, in := range el.SelectElements("interaction") {
		e1, e2 := in.SelectAttrValue("e1", ""), in.SelectAttrValue("e2", "")
		if err := s.AddInteraction(e1, e2, in.SelectAttrValue("type", "")); err != nil {
			l.logger.Debug("interaction skipped",
				zap.String("sentence", s.ID()),
				zap.String("id", in.SelectAttrValue("id", "")),
				zap.Error(err))
		}
	}
}

func (l *loader) selectParse(el *etree.Element) (*etree.Element, error) {
	parses := el.FindElements(".//parse")
	if l.parse == "" {
		if len(parses) == 0 {
			return nil, nil
		}
		return parses[0], nil
	}
	for _, p := range parses {
		if p.SelectAttrValue("parser", "") == l.parse {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: parse %q", ErrMissingAnalysis, l.parse)
}

func (l *loader) selectTokenization(el *etree.Element, parse *etree.Element) (*etree.Element, error) {
	toks := el.FindElements(".//tokenization")
	name := l.tokenization
	if name == "" && parse != nil {
		name = parse.SelectAttrValue("tokenizer", "")
	}
	if name == "" {
		if len(toks) == 0 {
			return nil, nil
		}
		return toks[0], nil
	}
	for _, t := range toks {
		if t.SelectAttrValue("tokenizer", "") == name {
			return t, nil
		}
	}
	if l.tokenization == "" && len(toks) > 0 {
		// the parse names a tokenizer this file does not carry
		return toks[0], nil
	}

	return nil, fmt.Errorf("%w: tokenization %q", ErrMissingAnalysis, name)
}

type span struct {
	begin, end int
}

// parseOffsets reads "b-e" or "b-e,b-e" with inclusive ends.
func parseOffsets(s string) ([]span, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadOffset)
	}
	parts := strings.Split(s, ",")
	out := make([]span, 0, len(parts))
	for _, p := range parts {
		b, e, ok := strings.Cut(strings.TrimSpace(p), "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadOffset, s)
		}
		bi, err1 := strconv.Atoi(b)
		ei, err2 := strconv.Atoi(e)
		if err1 != nil || err2 != nil || ei < bi {
			return nil, fmt.Errorf("%w: %q", ErrBadOffset, s)
		}
		out = append(out, span{bi, ei})
	}

	return out, nil
}

// headToken returns the rightmost token overlapping any of spans.
func headToken(toks []sentence.Token, spans []span) (int, bool) {
	for i := len(toks) - 1; i >= 0; i-- {
		for _, sp := range spans {
			if toks[i].Begin <= sp.end && sp.begin <= toks[i].End {
				return i, true
			}
		}
	}

	return 0, false
}
