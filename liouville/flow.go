// Package liouville implements the polymorphic flow object (spec.md
// §4.1): streaming particles forward in time and predicting/resolving
// the geometric events between them. Grounded on dynamo's
// Liouvillean/LNewtonian family
// (original_source/.../dynamics/liouvillean/*.cpp).
package liouville

import (
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// PairData is the scratch bundle the predictors/resolvers work from:
// the separation, relative velocity, and their dot/square-norm
// products, all evaluated after boundary wrapping. Grounded on
// dynamo's CPDData.
type PairData struct {
	Rij, Vij   vec3.Vec
	R2, V2     float64
	RVDot      float64
	DT         float64
}

// NewPairData builds a PairData from two already-BC-wrapped
// separation/relative-velocity vectors.
func NewPairData(rij, vij vec3.Vec) PairData {
	return PairData{
		Rij:   rij,
		Vij:   vij,
		R2:    rij.Nrm2(),
		V2:    vij.Nrm2(),
		RVDot: rij.Dot(vij),
	}
}

// Flow is the engine-wide polymorphic "Liouvillean" contract: stream
// particles forward in time, and provide the handful of geometric
// primitives every interaction/local/global/system predictor and
// resolver is built from. Concrete flows (Newtonian and its variants)
// implement this by embedding Newtonian and overriding only the
// methods that differ, per spec.md §4.1's flow table.
type Flow interface {
	particle.Streamer

	// SphereSphereInRoot finds the smallest positive time at which
	// two spheres of combined diameter² d2 first touch, given their
	// current separation/relative velocity in pd. Returns false if no
	// such time exists in the forward direction (receding or never
	// approaching).
	SphereSphereInRoot(pd PairData, d2 float64) (dt float64, ok bool)
	// SphereSphereOutRoot finds the smallest positive time at which
	// two spheres currently inside radius d2 first separate past it.
	SphereSphereOutRoot(pd PairData, d2 float64) (dt float64, ok bool)
	// SphereOverlap reports whether two spheres of combined
	// diameter² d2 currently overlap.
	SphereOverlap(pd PairData, d2 float64) bool

	// GetWallCollision returns the time until part (already BC-wrapped
	// relative to wallLoc) reaches the plane through wallLoc with unit
	// normal wallNorm, or +Inf if it never will.
	GetWallCollision(p *particle.Particle, wallLoc, wallNorm vec3.Vec) float64
	// RunWallCollision specularly reflects part's velocity off a wall
	// of restitution e with unit normal vNorm, and returns the kinetic
	// energy change.
	RunWallCollision(p *particle.Particle, vNorm vec3.Vec, e float64) (deltaKE float64)
	// RunAndersenWallCollision resamples the component of part's
	// velocity along the wall's unit normal vNorm as an inbound
	// thermal speed at temperature sqrtT², keeping the tangential
	// components (an Andersen thermostatting wall).
	RunAndersenWallCollision(p *particle.Particle, vNorm vec3.Vec, sqrtT float64, rng RNG) (deltaKE float64)
	// RandomGaussianEvent resamples part's full velocity from a
	// Maxwell-Boltzmann distribution at temperature sqrtT² (an
	// Andersen thermostat system event).
	RandomGaussianEvent(p *particle.Particle, sqrtT float64, rng RNG) (deltaKE float64)

	// GetSquareCellTransitTime returns the time until part (relative
	// to origin) crosses the boundary of a rectangular cell of the
	// given width.
	GetSquareCellTransitTime(p *particle.Particle, origin, width vec3.Vec) float64
	// GetSquareCellTransitDim is GetSquareCellTransitTime plus the
	// signed 1-based dimension index of the crossed face (sign gives
	// direction of travel).
	GetSquareCellTransitDim(p *particle.Particle, origin, width vec3.Vec) (dim int)

	// HasOrientationData reports whether this flow carries rotational
	// degrees of freedom (lines, dumbbells, rough spheres).
	HasOrientationData() bool
}

// RNG is the minimal random source the flow resolvers need: a
// standard-normal sample and a uniform(0,1) sample. Satisfied by
// rng.Source.
type RNG interface {
	Normal() float64
	Uniform() float64
}
