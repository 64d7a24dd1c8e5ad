// Package paths computes the all-pairs shortest-path index of a sentence's
// dependency graph.
//
// Paths are found on the undirected projection of the graph (a path may
// follow a dependency link against its direction), are unweighted, and are
// limited to DefaultCutoff hops. A Path is stored as a sequence of token
// indices into the sentence's token array rather than token references.
package paths

import (
	"errors"
	"fmt"

	"github.com/lrxzhy/TEES/bfs"
	"github.com/lrxzhy/TEES/core"
)

// DefaultCutoff is the hop limit used when no other is configured. It is
// effectively unbounded for sentence-sized graphs.
const DefaultCutoff = 999

var (
	// ErrDuplicateToken is returned when the token list repeats an ID.
	ErrDuplicateToken = errors.New("paths: duplicate token id")

	// ErrBadCutoff is returned for a negative cutoff.
	ErrBadCutoff = errors.New("paths: cutoff must be non-negative")
)

// Path is an ordered sequence of token indices, endpoints inclusive.
type Path []int

// Len is the number of traversed edges, len(p)-1.
func (p Path) Len() int {
	return len(p) - 1
}

// First returns the starting token index.
func (p Path) First() int { return p[0] }

// Last returns the final token index.
func (p Path) Last() int { return p[len(p)-1] }

// Degenerate is the two-token stand-in used when no path connects i and j.
func Degenerate(i, j int) Path {
	return Path{i, j}
}

// Option configures Compute.
type Option func(*config)

type config struct {
	cutoff int
}

// WithCutoff sets the hop limit; 0 disables the limit.
func WithCutoff(n int) Option {
	return func(c *config) { c.cutoff = n }
}

// Index holds the shortest path for every ordered pair of reachable tokens.
// It is read-only after Compute returns and safe for concurrent lookups.
type Index struct {
	size  int
	paths []Path // row-major size×size; nil entry means unreachable
}

// Compute runs one breadth-first search per token over the undirected view
// of g and records a path to every token reached within the cutoff.
//
// tokens lists token IDs in sentence order; the position in this slice is
// the index stored in every Path. Tokens that are not vertices of g (no
// dependency touches them) reach only themselves.
//
// Complexity: O(T·(V+E)) for T tokens.
func Compute(g *core.Graph, tokens []string, opts ...Option) (*Index, error) {
	cfg := config{cutoff: DefaultCutoff}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cutoff < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCutoff, cfg.cutoff)
	}

	pos := make(map[string]int, len(tokens))
	for i, id := range tokens {
		if _, dup := pos[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, id)
		}
		pos[id] = i
	}

	n := len(tokens)
	idx := &Index{size: n, paths: make([]Path, n*n)}
	for i := range tokens {
		idx.paths[i*n+i] = Path{i}
	}
	if g == nil {
		return idx, nil
	}

	undirected := core.UndirectedView(g)
	for i, src := range tokens {
		if !undirected.HasVertex(src) {
			continue
		}
		res, err := bfs.BFS(undirected, src, bfs.WithMaxDepth(cfg.cutoff))
		if err != nil {
			return nil, fmt.Errorf("paths: search from %q: %w", src, err)
		}
		for _, dst := range res.Order {
			j, ok := pos[dst]
			if !ok || j == i {
				continue
			}
			ids, err := res.PathTo(dst)
			if err != nil {
				return nil, err
			}
			p, err := toIndices(ids, pos)
			if err != nil {
				return nil, err
			}
			idx.paths[i*n+j] = p
		}
	}

	return idx, nil
}

// toIndices maps a path of token IDs onto token positions. A path through a
// vertex that is not a listed token cannot be expressed and is reported.
func toIndices(ids []string, pos map[string]int) (Path, error) {
	p := make(Path, len(ids))
	for k, id := range ids {
		i, ok := pos[id]
		if !ok {
			return nil, fmt.Errorf("paths: path passes through unknown token %q", id)
		}
		p[k] = i
	}

	return p, nil
}

// Size is the number of tokens the index was built for.
func (x *Index) Size() int { return x.size }

// Get returns the shortest path from token i to token j. ok is false when j
// is unreachable from i within the cutoff, or when either index is out of range.
func (x *Index) Get(i, j int) (Path, bool) {
	if i < 0 || j < 0 || i >= x.size || j >= x.size {
		return nil, false
	}
	p := x.paths[i*x.size+j]

	return p, p != nil
}

// Reachable reports whether a path from i to j exists.
func (x *Index) Reachable(i, j int) bool {
	_, ok := x.Get(i, j)

	return ok
}
