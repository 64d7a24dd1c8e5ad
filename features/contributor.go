package features

// Contributor adds features for one oriented token pair to the vector it is
// attached to. A contributor is used by one goroutine at a time.
type Contributor interface {
	Attach(v *Named)
	Detach()
	Contribute(pc *PathContext) error
}

// Base implements the Attach/Detach half of Contributor.
type Base struct {
	vec *Named
}

// Attach directs subsequent writes to v.
func (b *Base) Attach(v *Named) { b.vec = v }

// Detach clears the target vector.
func (b *Base) Detach() { b.vec = nil }

// Vector returns the attached vector or ErrDetached.
func (b *Base) Vector() (*Named, error) {
	if b.vec == nil {
		return nil, ErrDetached
	}

	return b.vec, nil
}

// Run attaches v to c, contributes, and detaches again.
func Run(c Contributor, v *Named, pc *PathContext) error {
	c.Attach(v)
	defer c.Detach()

	return c.Contribute(pc)
}
