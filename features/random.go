package features

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
)

// RandomBuilder adds noise features: each of Count candidates is switched on
// with probability Probability. The generator is seeded from the configured
// seed and the pair key, so a pair gets the same noise in every run
// regardless of processing order.
type RandomBuilder struct {
	Base
	Count       int
	Probability float64
	seed        uint64
}

// NewRandomBuilder returns a builder with the given size, probability and seed.
func NewRandomBuilder(count int, probability float64, seed uint64) *RandomBuilder {
	return &RandomBuilder{Count: count, Probability: probability, seed: seed}
}

// Contribute writes "random_<i>" features.
func (b *RandomBuilder) Contribute(pc *PathContext) error {
	vec, err := b.Vector()
	if err != nil {
		return err
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(pc.Key))
	rng := rand.New(rand.NewPCG(b.seed, h.Sum64()))
	for i := 0; i < b.Count; i++ {
		if rng.Float64() < b.Probability {
			vec.Set("random_"+strconv.Itoa(i), 1)
		}
	}

	return nil
}
