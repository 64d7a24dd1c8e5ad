package features

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrOntologyCycle is returned when the parent relation loops.
var ErrOntologyCycle = errors.New("features: ontology contains a cycle")

// Ontology is a single-inheritance entity-type hierarchy.
//
// On disk it is a TOML table mapping each type to its parent:
//
//	[parents]
//	Phosphorylation = "Protein_modification"
//	Protein_modification = "Process"
type Ontology struct {
	Parents map[string]string `toml:"parents"`
}

// LoadOntology reads and validates an ontology file.
func LoadOntology(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}

	return ParseOntology(data)
}

// ParseOntology decodes a TOML ontology and rejects cyclic hierarchies.
func ParseOntology(data []byte) (*Ontology, error) {
	var o Ontology
	if err := toml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse ontology: %w", err)
	}
	if o.Parents == nil {
		o.Parents = map[string]string{}
	}
	for t := range o.Parents {
		if _, err := o.ancestors(t); err != nil {
			return nil, err
		}
	}

	return &o, nil
}

// Ancestors returns typ followed by its parents up to the root. A nil
// ontology knows only typ itself.
func (o *Ontology) Ancestors(typ string) []string {
	if o == nil {
		return []string{typ}
	}
	out, _ := o.ancestors(typ)

	return out
}

func (o *Ontology) ancestors(typ string) ([]string, error) {
	out := []string{typ}
	seen := map[string]bool{typ: true}
	for cur := typ; ; {
		p, ok := o.Parents[cur]
		if !ok || p == "" {
			return out, nil
		}
		if seen[p] {
			return out, fmt.Errorf("%w at %q", ErrOntologyCycle, p)
		}
		seen[p] = true
		out = append(out, p)
		cur = p
	}
}

// OntologyBuilder marks every ancestor class of the entities headed by the
// path terminals.
type OntologyBuilder struct {
	Base
	ont *Ontology
}

// NewOntologyBuilder wraps o; a nil ontology yields only the types themselves.
func NewOntologyBuilder(o *Ontology) *OntologyBuilder {
	return &OntologyBuilder{ont: o}
}

// Contribute writes "ont_t1_<class>" and "ont_t2_<class>" features.
func (b *OntologyBuilder) Contribute(pc *PathContext) error {
	vec, err := b.Vector()
	if err != nil {
		return err
	}
	for _, end := range []struct {
		tag string
		tok int
	}{{"t1", pc.Path.First()}, {"t2", pc.Path.Last()}} {
		for _, e := range pc.Sentence.HeadEntities(end.tok) {
			for _, a := range b.ont.Ancestors(e.Type) {
				vec.Set("ont_"+end.tag+"_"+a, 1)
			}
		}
	}

	return nil
}
