// Package sentence holds one annotated sentence: its ordered tokens, the
// dependency graph over them, the gold interaction graph between entity-head
// tokens, and the entity-head lookup.
package sentence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lrxzhy/TEES/core"
)

// Sentinel errors for sentence construction.
var (
	// ErrBadTokenID means a token identifier lacks a numeric "_<n>" suffix.
	ErrBadTokenID = errors.New("sentence: malformed token id")

	// ErrDuplicateToken means two tokens share an identifier.
	ErrDuplicateToken = errors.New("sentence: duplicate token id")

	// ErrTokenIndex means a token index is outside the sentence.
	ErrTokenIndex = errors.New("sentence: token index out of range")

	// ErrEntityNotFound means an interaction names an unknown entity.
	ErrEntityNotFound = errors.New("sentence: entity not found")

	// ErrEmptyID means the sentence has no identifier.
	ErrEmptyID = errors.New("sentence: empty sentence id")
)

// Token is the smallest annotated unit of a sentence.
type Token struct {
	// ID is stable within the corpus and ends in "_<n>" (e.g. "bt_12").
	ID string

	// Text is the surface form.
	Text string

	// POS is the part-of-speech tag.
	POS string

	// Begin and End are the inclusive character offsets in the sentence text.
	Begin, End int
}

// Entity is a named or event entity mention anchored on its head token.
type Entity struct {
	ID     string
	Type   string
	Text   string
	IsName bool

	// Head is the index of the head token in the sentence.
	Head int
}

// Sentence is built once while reading the corpus and read-only afterwards.
type Sentence struct {
	id       string
	tokens   []Token
	byID     map[string]int
	deps     *core.Graph
	inter    *core.Graph
	entities []Entity
	entByID  map[string]int
	heads    map[int][]int // token index → entity indices
}

// New validates the tokens and returns an empty-graph sentence. Every token
// ID must be unique and carry a numeric suffix; the suffix orders the two
// tokens of an example record, so a malformed one is rejected here rather
// than while building examples.
func New(id string, tokens []Token) (*Sentence, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	s := &Sentence{
		id:      id,
		tokens:  make([]Token, len(tokens)),
		byID:    make(map[string]int, len(tokens)),
		deps:    core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops()),
		inter:   core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops()),
		entByID: make(map[string]int),
		heads:   make(map[int][]int),
	}
	copy(s.tokens, tokens)
	for i, t := range s.tokens {
		if _, err := TokenNumber(t.ID); err != nil {
			return nil, fmt.Errorf("sentence %s: %w", id, err)
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("sentence %s: %w: %q", id, ErrDuplicateToken, t.ID)
		}
		s.byID[t.ID] = i
	}

	return s, nil
}

// TokenNumber parses the trailing numeric suffix of a token identifier
// ("bt_12" → 12).
func TokenNumber(id string) (int, error) {
	cut := strings.LastIndexByte(id, '_')
	if cut < 0 || cut == len(id)-1 {
		return 0, fmt.Errorf("%w: %q", ErrBadTokenID, id)
	}
	n, err := strconv.Atoi(id[cut+1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTokenID, id)
	}

	return n, nil
}

// ID returns the sentence identifier.
func (s *Sentence) ID() string { return s.id }

// Tokens returns the tokens in sentence order. The slice must not be modified.
func (s *Sentence) Tokens() []Token { return s.tokens }

// TokenIDs returns the token identifiers in sentence order.
func (s *Sentence) TokenIDs() []string {
	out := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		out[i] = t.ID
	}

	return out
}

// TokenIndex resolves a token identifier to its position.
func (s *Sentence) TokenIndex(id string) (int, bool) {
	i, ok := s.byID[id]

	return i, ok
}

// Dependencies is the directed, typed dependency graph over token IDs.
func (s *Sentence) Dependencies() *core.Graph { return s.deps }

// Interactions is the directed interaction multigraph over head token IDs.
func (s *Sentence) Interactions() *core.Graph { return s.inter }

// Entities returns the entities in insertion order.
func (s *Sentence) Entities() []Entity { return s.entities }

// IsEntityHead reports whether token i is the head of at least one entity.
func (s *Sentence) IsEntityHead(i int) bool {
	return len(s.heads[i]) > 0
}

// HeadEntities returns the entities headed by token i.
func (s *Sentence) HeadEntities(i int) []Entity {
	idx := s.heads[i]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entity, len(idx))
	for k, e := range idx {
		out[k] = s.entities[e]
	}

	return out
}

// AddDependency links token head → token dependent with a dependency type.
func (s *Sentence) AddDependency(head, dependent int, typ string) error {
	if err := s.checkIndex(head, dependent); err != nil {
		return err
	}
	_, err := s.deps.AddEdge(s.tokens[head].ID, s.tokens[dependent].ID, typ)

	return err
}

// AddEntity registers an entity and marks its head token.
func (s *Sentence) AddEntity(e Entity) error {
	if err := s.checkIndex(e.Head); err != nil {
		return fmt.Errorf("entity %s: %w", e.ID, err)
	}
	s.entByID[e.ID] = len(s.entities)
	s.heads[e.Head] = append(s.heads[e.Head], len(s.entities))
	s.entities = append(s.entities, e)

	return nil
}

// AddInteraction records a gold relation between two entities, stored on the
// interaction graph between their head tokens.
func (s *Sentence) AddInteraction(e1, e2, typ string) error {
	a, ok := s.entByID[e1]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntityNotFound, e1)
	}
	b, ok := s.entByID[e2]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntityNotFound, e2)
	}

	return s.AddTokenInteraction(s.entities[a].Head, s.entities[b].Head, typ)
}

// AddTokenInteraction records a gold relation directly between two tokens.
func (s *Sentence) AddTokenInteraction(from, to int, typ string) error {
	if err := s.checkIndex(from, to); err != nil {
		return err
	}
	_, err := s.inter.AddEdge(s.tokens[from].ID, s.tokens[to].ID, typ)

	return err
}

func (s *Sentence) checkIndex(idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= len(s.tokens) {
			return fmt.Errorf("%w: %d (sentence %s has %d tokens)", ErrTokenIndex, i, s.id, len(s.tokens))
		}
	}

	return nil
}
