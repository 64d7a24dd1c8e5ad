package example

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Style tags accepted by ParseStyles.
const (
	StyleDirected     = "directed"
	StyleHeadsOnly    = "headsOnly"
	StyleBinary       = "binary"
	StyleSubset       = "subset"
	StyleNoDependency = "no_dependency"
	StyleNoLinear     = "no_linear"
	StyleRandom       = "random"
	StyleNormalize    = "normalize"
	StyleOntology     = "ontology"
	StyleTyped        = "typed"
	StyleDegenerate   = "degenerate"
)

var (
	// ErrUnknownStyle is returned by ParseStyles for an unrecognized tag.
	ErrUnknownStyle = errors.New("example: unknown style")

	// ErrBadPathLength is returned by Validate for a path length below 1.
	ErrBadPathLength = errors.New("example: path length must be positive")
)

// Styles selects how examples are generated. Flags compose freely;
// conflicting combinations are honored literally.
type Styles struct {
	// Directed emits a forward and a reverse example per pair instead of
	// one orientation-symmetric example.
	Directed bool

	// HeadsOnly skips pairs unless both tokens head an entity.
	HeadsOnly bool

	// PathLengths, when non-nil, lists the path lengths that get real
	// features; other lengths get the always_negative sentinel.
	PathLengths []int

	// Subset adds out_of_scope next to always_negative.
	Subset bool

	// Binary collapses every category to "i" with class +1 or -1.
	Binary bool

	NoDependency bool
	NoLinear     bool
	Random       bool
	Ontology     bool

	// Normalize rescales every vector of the corpus to unit length.
	Normalize bool

	// DegeneratePathFeatures runs the feature contributors on the two-token
	// stand-in path when no dependency path exists, instead of emitting the
	// always_negative sentinel.
	DegeneratePathFeatures bool

	// Types restricts which interaction types count; empty keeps all.
	Types []string
}

// ParseStyles builds Styles from string tags. "typed" is accepted and has
// no effect since typed categories are the default.
func ParseStyles(tags []string) (Styles, error) {
	var s Styles
	for _, raw := range tags {
		tag := strings.TrimSpace(raw)
		switch tag {
		case "", StyleTyped:
		case StyleDirected:
			s.Directed = true
		case StyleHeadsOnly:
			s.HeadsOnly = true
		case StyleBinary:
			s.Binary = true
		case StyleSubset:
			s.Subset = true
		case StyleNoDependency:
			s.NoDependency = true
		case StyleNoLinear:
			s.NoLinear = true
		case StyleRandom:
			s.Random = true
		case StyleNormalize:
			s.Normalize = true
		case StyleOntology:
			s.Ontology = true
		case StyleDegenerate:
			s.DegeneratePathFeatures = true
		default:
			return Styles{}, fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
		}
	}

	return s, nil
}

// Validate rejects malformed values. It does not cross-check flags.
func (s Styles) Validate() error {
	for _, n := range s.PathLengths {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrBadPathLength, n)
		}
	}

	return nil
}

// Tags renders the boolean flags back into tag form.
func (s Styles) Tags() []string {
	var out []string
	for _, f := range []struct {
		on  bool
		tag string
	}{
		{s.Directed, StyleDirected},
		{s.HeadsOnly, StyleHeadsOnly},
		{s.Binary, StyleBinary},
		{s.Subset, StyleSubset},
		{s.NoDependency, StyleNoDependency},
		{s.NoLinear, StyleNoLinear},
		{s.Random, StyleRandom},
		{s.Normalize, StyleNormalize},
		{s.Ontology, StyleOntology},
		{s.DegeneratePathFeatures, StyleDegenerate},
	} {
		if f.on {
			out = append(out, f.tag)
		}
	}

	return out
}

func (s Styles) lengthAllowed(n int) bool {
	return s.PathLengths == nil || slices.Contains(s.PathLengths, n)
}
