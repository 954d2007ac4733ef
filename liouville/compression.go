package liouville

import (
	"math"

	"github.com/sarchlab/dynamica/particle"
)

// Compression is the isotropic-compression flow: every diameter
// grows linearly with system time at GrowthRate, implemented by
// scaling the collision geometry rather than the particles
// themselves. Grounded on dynamo's LCompression
// (original_source/.../dynamics/liouvillean/CompressionL.cpp).
type Compression struct {
	*Newtonian
	GrowthRate float64
	// Now is the current system time, set by the owning scheduler
	// before any predict/resolve call (CompressionL.cpp reads
	// Sim->dSysTime directly).
	Now float64
}

// NewCompression returns a Compression flow over props, growing at
// growthRate.
func NewCompression(props particle.Properties, growthRate float64) *Compression {
	return &Compression{Newtonian: NewNewtonian(props), GrowthRate: growthRate}
}

// Stream implements particle.Streamer: positions still advance
// linearly, only DYNAMIC particles move (the growing diameters do
// the rest of the work). Grounded on LCompression::streamParticle.
func (c *Compression) Stream(p *particle.Particle, dt float64) {
	if p.Dynamic() {
		p.Position = p.Position.AddScaled(dt, p.Velocity)
	}
}

// SphereSphereInRoot implements Flow. Grounded on
// LCompression::SphereSphereInRoot: the quadratic coefficients are
// shifted by the time-dependent growing diameter.
func (c *Compression) SphereSphereInRoot(pd PairData, d2 float64) (float64, bool) {
	g := c.GrowthRate
	t := c.Now
	b := pd.RVDot - d2*(g*g*t+g)
	if b >= 0 {
		return 0, false
	}
	a := pd.V2 - g*g*d2
	cc := pd.R2 - d2*(1+g*t*(2+g*t))
	arg := b*b - a*cc
	if arg <= 0 {
		return 0, false
	}
	return cc / (math.Sqrt(arg) - b), true
}

// SphereSphereOutRoot implements Flow. Grounded on
// LCompression::SphereSphereOutRoot.
func (c *Compression) SphereSphereOutRoot(pd PairData, d2 float64) (float64, bool) {
	g := c.GrowthRate
	t := c.Now
	a := pd.V2 - g*g*d2
	b := pd.RVDot - d2*(g*g*t+g)
	cc := d2*(1+g*t*(2+g*t)) - pd.R2
	arg := b*b + a*cc
	if arg <= 0 || a <= 0 {
		return 0, false
	}
	if b < 0 {
		return (math.Sqrt(arg) - b) / a, true
	}
	return cc / (math.Sqrt(arg) + b), true
}

// SphereOverlap implements Flow. Grounded on
// LCompression::sphereOverlap.
func (c *Compression) SphereOverlap(pd PairData, d2 float64) bool {
	g := c.GrowthRate
	t := c.Now
	currD2 := d2 * (1 + 2*t*g + (t*g)*(t*g))
	return pd.R2-currD2 < 0
}

// CurrentDiameterSquared returns the growing combined diameter² at
// the flow's current time, for callers (e.g. the cell list) that need
// the instantaneous interaction range rather than the root-finder
// coefficients directly.
func (c *Compression) CurrentDiameterSquared(d2 float64) float64 {
	g := c.GrowthRate
	t := c.Now
	return d2 * (1 + 2*t*g + (t*g)*(t*g))
}
