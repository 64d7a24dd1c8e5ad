package features

import "strconv"

// LinearBuilder describes the surface neighbourhood of both tokens,
// independent of the dependency path.
type LinearBuilder struct {
	Base
	before, after int
}

// NewLinearBuilder returns a builder with a window of before/after tokens.
func NewLinearBuilder(before, after int) *LinearBuilder {
	return &LinearBuilder{before: before, after: after}
}

// Contribute emits window features for both tokens. The pair is put in
// sentence order first; the orientation tag records whether that swapped it.
func (b *LinearBuilder) Contribute(pc *PathContext) error {
	vec, err := b.Vector()
	if err != nil {
		return err
	}
	t1, t2, tag := pc.T1, pc.T2, "linfw_"
	if t1 > t2 {
		t1, t2, tag = t2, t1, "linrv_"
	}
	b.window(vec, pc, t1, tag+"Tok1")
	b.window(vec, pc, t2, tag+"Tok2")

	return nil
}

func (b *LinearBuilder) window(vec *Named, pc *PathContext, center int, prefix string) {
	toks := pc.Sentence.Tokens()
	for off := -b.before; off <= b.after; off++ {
		k := center + off
		if k < 0 || k >= len(toks) {
			continue
		}
		name := prefix + "_" + strconv.Itoa(off)
		vec.Set(name+"_txt_"+toks[k].Text, 1)
		vec.Set(name+"_POS_"+toks[k].POS, 1)
	}
}
