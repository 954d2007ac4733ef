package liouville

import (
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// SLLOD is the homogeneous-shear nonequilibrium flow: positions
// stream as in Newtonian, and DYNAMIC particles additionally pick up
// a velocity-gradient term vx += vy*dt (the SLLOD equations of
// motion's coupling to the imposed shear field, paired with a
// LeesEdwards boundary). Grounded on dynamo's LSLLOD
// (original_source/.../dynamics/liouvillean/SLLOD.cpp).
type SLLOD struct {
	*Newtonian
}

// NewSLLOD returns an SLLOD flow over props.
func NewSLLOD(props particle.Properties) *SLLOD {
	return &SLLOD{Newtonian: NewNewtonian(props)}
}

// Stream implements particle.Streamer: free-streams position as
// Newtonian does, then applies the SLLOD shear-gradient velocity
// correction. Grounded on LSLLOD::streamParticle.
func (s *SLLOD) Stream(p *particle.Particle, dt float64) {
	s.Newtonian.Stream(p, dt)
	if p.Dynamic() {
		p.Velocity = p.Velocity.WithComponent(0, p.Velocity.Component(0)+p.Velocity.Component(1)*dt)
	}
}

// DSMCPairVelocity returns the relative velocity used by DSMC
// acceptance/resolution under SLLOD: the ordinary velocity
// difference, with the shear-gradient contribution rij.Y subtracted
// from the X component. Grounded on LSLLOD::DSMCSpheresTest.
func (s *SLLOD) DSMCPairVelocity(rij vec3.Vec, v1, v2 vec3.Vec) vec3.Vec {
	vij := v1.Sub(v2)
	return vij.WithComponent(0, vij.Component(0)-rij.Component(1))
}
