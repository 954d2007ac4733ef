package liouville

import (
	"math"

	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// Newtonian is the baseline flow: free streaming, no body force.
// Every other flow embeds this and overrides only what differs, per
// spec.md §4.1. Grounded on dynamo's LNewtonian
// (original_source/.../dynamics/liouvillean/NewtonL.cpp).
type Newtonian struct {
	Properties particle.Properties
}

// NewNewtonian returns a Newtonian flow using props for per-particle
// mass lookups.
func NewNewtonian(props particle.Properties) *Newtonian {
	return &Newtonian{Properties: props}
}

// Stream implements particle.Streamer: free streaming, x += v*dt.
func (n *Newtonian) Stream(p *particle.Particle, dt float64) {
	p.Position = p.Position.AddScaled(dt, p.Velocity)
}

// HasOrientationData implements Flow: the baseline carries no
// rotational degrees of freedom.
func (n *Newtonian) HasOrientationData() bool { return false }

// SphereSphereInRoot implements Flow. Grounded on
// LNewtonian::SphereSphereInRoot: the more numerically stable form of
// the quadratic formula, valid only while the spheres are approaching
// (rvdot<0).
func (n *Newtonian) SphereSphereInRoot(pd PairData, d2 float64) (float64, bool) {
	if pd.RVDot >= 0 {
		return 0, false
	}
	arg := pd.RVDot*pd.RVDot - pd.V2*(pd.R2-d2)
	if arg <= 0 {
		return 0, false
	}
	dt := (d2 - pd.R2) / (pd.RVDot - math.Sqrt(arg))
	return dt, true
}

// SphereSphereOutRoot implements Flow. Grounded on
// LNewtonian::SphereSphereOutRoot.
func (n *Newtonian) SphereSphereOutRoot(pd PairData, d2 float64) (float64, bool) {
	arg := pd.RVDot*pd.RVDot - pd.V2*(pd.R2-d2)
	sq := math.Sqrt(arg)
	dt := (sq - pd.RVDot) / pd.V2
	if math.IsNaN(dt) {
		return math.Inf(1), false
	}
	return dt, true
}

// SphereOverlap implements Flow.
func (n *Newtonian) SphereOverlap(pd PairData, d2 float64) bool {
	return pd.R2-d2 < 0
}

// GetWallCollision implements Flow. Grounded on
// LNewtonian::getWallCollision; rij/vel must already be BC-wrapped by
// the caller before this is called (the caller owns the BC).
func (n *Newtonian) GetWallCollision(p *particle.Particle, wallLoc, wallNorm vec3.Vec) float64 {
	rvdot := p.Velocity.Dot(wallNorm)
	rij := p.Position.Sub(wallLoc)
	if rvdot < 0 {
		return -(rij.Dot(wallNorm) / rvdot)
	}
	return math.Inf(1)
}

// RunWallCollision implements Flow. Grounded on
// LNewtonian::runWallCollision: specular reflection with restitution
// e along vNorm.
func (n *Newtonian) RunWallCollision(p *particle.Particle, vNorm vec3.Vec, e float64) float64 {
	mass := n.Properties.Mass(p.ID)
	oldKE := 0.5 * mass * p.Velocity.Nrm2()
	p.Velocity = p.Velocity.Sub(vNorm.Scale((1 + e) * vNorm.Dot(p.Velocity)))
	newKE := 0.5 * mass * p.Velocity.Nrm2()
	return newKE - oldKE
}

// RunAndersenWallCollision implements Flow. Grounded on
// LNewtonian::runAndersenWallCollision: keeps the tangential velocity
// components and replaces the wall-normal component with a
// Rayleigh-distributed inbound speed (the Andersen wall thermostat's
// standard "half-Maxwellian" flux sampling).
func (n *Newtonian) RunAndersenWallCollision(p *particle.Particle, vNorm vec3.Vec, sqrtT float64, rng RNG) float64 {
	mass := n.Properties.Mass(p.ID)
	oldKE := 0.5 * mass * p.Velocity.Nrm2()

	inbound := sqrtT*math.Sqrt(-2*math.Log(1-rng.Uniform())/mass) - p.Velocity.Dot(vNorm)
	p.Velocity = p.Velocity.AddScaled(inbound, vNorm)

	newKE := 0.5 * mass * p.Velocity.Nrm2()
	return newKE - oldKE
}

// RandomGaussianEvent implements Flow. Grounded on
// LNewtonian::randomGaussianEvent: full Maxwell-Boltzmann resample,
// used by the Andersen thermostat system event.
func (n *Newtonian) RandomGaussianEvent(p *particle.Particle, sqrtT float64, rng RNG) float64 {
	mass := n.Properties.Mass(p.ID)
	oldKE := 0.5 * mass * p.Velocity.Nrm2()

	factor := sqrtT / math.Sqrt(mass)
	p.Velocity = vec3.New(rng.Normal()*factor, rng.Normal()*factor, rng.Normal()*factor)

	newKE := 0.5 * mass * p.Velocity.Nrm2()
	return newKE - oldKE
}

// GetSquareCellTransitTime implements Flow. Grounded on
// LNewtonian::getSquareCellCollision2: the minimum per-dimension
// transit time to the nearer face in the direction of travel.
func (n *Newtonian) GetSquareCellTransitTime(p *particle.Particle, origin, width vec3.Vec) float64 {
	rpos := p.Position.Sub(origin)
	best := math.Inf(1)
	for d := 0; d < 3; d++ {
		v := p.Velocity.Component(d)
		var t float64
		if v < 0 {
			t = -rpos.Component(d) / v
		} else {
			t = (width.Component(d) - rpos.Component(d)) / v
		}
		if t < best {
			best = t
		}
	}
	return best
}

// GetSquareCellTransitDim implements Flow. Grounded on
// LNewtonian::getSquareCellCollision3: as
// GetSquareCellTransitTime, but returns the signed 1-based dimension
// of the crossed face instead of the time.
func (n *Newtonian) GetSquareCellTransitDim(p *particle.Particle, origin, width vec3.Vec) int {
	rpos := p.Position.Sub(origin)
	best := math.Inf(1)
	dim := 0
	for d := 0; d < 3; d++ {
		v := p.Velocity.Component(d)
		var t float64
		if v < 0 {
			t = -rpos.Component(d) / v
		} else {
			t = (width.Component(d) - rpos.Component(d)) / v
		}
		if t < best {
			best = t
			if v < 0 {
				dim = -(d + 1)
			} else {
				dim = d + 1
			}
		}
	}
	return dim
}
