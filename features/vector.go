package features

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDetached is returned by a contributor that has no attached vector.
var ErrDetached = errors.New("features: no vector attached")

// Named is a feature vector keyed by feature name. It remembers the order in
// which names were first written, which fixes the order ids are assigned in.
type Named struct {
	names []string
	w     map[string]float64
}

// NewNamed returns an empty vector.
func NewNamed() *Named {
	return &Named{w: make(map[string]float64)}
}

// Set writes weight w for name, replacing any previous weight.
func (n *Named) Set(name string, w float64) {
	if _, ok := n.w[name]; !ok {
		n.names = append(n.names, name)
	}
	n.w[name] = w
}

// Add increments the weight of name by w.
func (n *Named) Add(name string, w float64) {
	n.Set(name, n.w[name]+w)
}

// Get returns the weight of name.
func (n *Named) Get(name string) (float64, bool) {
	w, ok := n.w[name]

	return w, ok
}

// Len is the number of distinct names.
func (n *Named) Len() int { return len(n.names) }

// Names returns the names in first-write order.
func (n *Named) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)

	return out
}

// Update copies every weight of other into n. Names already present take
// other's weight and keep their position; new names are appended in other's
// order.
func (n *Named) Update(other *Named) {
	for _, name := range other.names {
		n.Set(name, other.w[name])
	}
}

// Vector is a sparse feature vector keyed by feature id.
type Vector map[int]float64

// IDs returns the feature ids in ascending order.
func (v Vector) IDs() []int {
	ids := make([]int, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// Norm is the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}

	return math.Sqrt(sum)
}

// Normalize rescales v in place to unit length. A zero vector is left alone.
func (v Vector) Normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for id, w := range v {
		v[id] = w / norm
	}
}

// Registry allocates ids for names; *idset.IDSet implements it.
type Registry interface {
	GetID(name string) (int, error)
}

// Lookup resolves names without allocating; *idset.IDSet implements it.
type Lookup interface {
	Lookup(name string) (int, bool)
}

// Resolve maps every name of n to its registry id, in n's insertion order.
// Registry errors are returned unchanged apart from naming the feature.
func Resolve(n *Named, reg Registry) (Vector, error) {
	out := make(Vector, n.Len())
	for _, name := range n.names {
		id, err := reg.GetID(name)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
		out[id] = n.w[name]
	}

	return out, nil
}

// ResolveKnown maps the names reg already knows and drops the rest. It
// returns the number of dropped names.
func ResolveKnown(n *Named, reg Lookup) (Vector, int) {
	out := make(Vector, n.Len())
	dropped := 0
	for _, name := range n.names {
		id, ok := reg.Lookup(name)
		if !ok {
			dropped++
			continue
		}
		out[id] = n.w[name]
	}

	return out, dropped
}
