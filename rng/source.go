// Package rng supplies the random source every peculiar-time resolver
// draws from: a uniform(0,1) sample and a standard-normal sample,
// satisfying liouville.RNG directly so resolvers never import rng
// themselves.
package rng

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the contract liouville.RNG also declares; kept as its own
// named type here so callers can depend on rng without importing
// liouville just to name the interface.
type Source interface {
	Uniform() float64
	Normal() float64
}

// streamSalt decorrelates the normal stream's seed from the uniform
// stream's, so the two distuv generators never share state and a
// snapshot's draw counts can be replayed independently of the order
// Uniform/Normal were actually called in.
const streamSalt = 0x9E3779B97F4A7C15

// GonumSource is the default Source: two independent gonum
// stat/distuv generators, each over its own seeded math/rand.Source.
// Its persisted state is (Seed, uniform draw count, normal draw
// count) — distuv itself carries no state beyond the underlying
// math/rand.Source, so a snapshot round-trips the stream by reseeding
// and discarding that many draws from each generator.
type GonumSource struct {
	Seed uint64

	uniform      distuv.Uniform
	normal       distuv.Normal
	uniformCount uint64
	normalCount  uint64
}

// NewGonumSource returns a GonumSource seeded from seed, with no
// draws yet taken.
func NewGonumSource(seed uint64) *GonumSource {
	g := &GonumSource{Seed: seed}
	g.reset()
	return g
}

func (g *GonumSource) reset() {
	g.uniform = distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(int64(g.Seed))}
	g.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(int64(g.Seed ^ streamSalt))}
}

// Uniform draws a uniform(0,1) sample.
func (g *GonumSource) Uniform() float64 {
	g.uniformCount++
	return g.uniform.Rand()
}

// Normal draws a standard-normal sample.
func (g *GonumSource) Normal() float64 {
	g.normalCount++
	return g.normal.Rand()
}

// Counts reports how many draws have been taken from each stream
// since the source was last seeded or restored.
func (g *GonumSource) Counts() (uniform, normal uint64) {
	return g.uniformCount, g.normalCount
}

// Restore reseeds g from seed and fast-forwards both streams by
// discarding uniformCount/normalCount draws, reproducing exactly the
// state a snapshot captured.
func (g *GonumSource) Restore(seed, uniformCount, normalCount uint64) {
	g.Seed = seed
	g.reset()
	for i := uint64(0); i < uniformCount; i++ {
		g.uniform.Rand()
	}
	for i := uint64(0); i < normalCount; i++ {
		g.normal.Rand()
	}
	g.uniformCount, g.normalCount = uniformCount, normalCount
}
