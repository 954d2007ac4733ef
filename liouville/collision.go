package liouville

import (
	"math"

	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// massPolicyImpulse computes the momentum-conserving (or reflecting,
// for an infinite-mass participant) impulse dP for a pair collision
// with combined restitution e, following dynamo's mass-convention:
// Properties.Mass returning 0 means infinite mass. Grounded on
// LNewtonian::SmoothSpheresColl / DSMCSpheresRun.
func massPolicyImpulse(rij vec3.Vec, rvdot, m1, m2, e float64) vec3.Vec {
	switch {
	case m1 == 0 && m2 == 0:
		// Both infinite: no event should be scheduled between two
		// immovable particles, but if asked to resolve one anyway no
		// net impulse is transferred.
		return vec3.Zero
	case m1 == 0:
		return rij.Scale(m2 * (1 + e) * rvdot / rij.Nrm2())
	case m2 == 0:
		return rij.Scale(m1 * (1 + e) * rvdot / rij.Nrm2())
	default:
		mu := m1 * m2 / (m1 + m2)
		return rij.Scale((1 + e) * mu * rvdot / rij.Nrm2())
	}
}

// RunSmoothSpheresCollision resolves a hard-sphere core collision
// between p1 and p2 (already BC-wrapped and streamed to a common
// time) with restitution e, applying the mass-policy impulse and
// returning the per-particle kinetic energy changes. Grounded on
// LNewtonian::SmoothSpheresColl.
func RunSmoothSpheresCollision(props particle.Properties, p1, p2 *particle.Particle, rij vec3.Vec, e float64) (dKE1, dKE2 float64) {
	vij := p1.Velocity.Sub(p2.Velocity)
	rvdot := rij.Dot(vij)

	m1 := props.Mass(p1.ID)
	m2 := props.Mass(p2.ID)
	oldKE1 := 0.5 * m1 * p1.Velocity.Nrm2()
	oldKE2 := 0.5 * m2 * p2.Velocity.Nrm2()

	dP := massPolicyImpulse(rij, rvdot, m1, m2, e)

	switch {
	case m1 == 0 && m2 == 0:
		// no-op: neither velocity changes.
	case m1 == 0:
		p2.Velocity = p2.Velocity.AddScaled(1/m2, dP)
	case m2 == 0:
		p1.Velocity = p1.Velocity.AddScaled(-1/m1, dP)
	default:
		p1.Velocity = p1.Velocity.AddScaled(-1/m1, dP)
		p2.Velocity = p2.Velocity.AddScaled(1/m2, dP)
	}

	if m1 != 0 {
		dKE1 = 0.5*m1*p1.Velocity.Nrm2() - oldKE1
	}
	if m2 != 0 {
		dKE2 = 0.5*m2*p2.Velocity.Nrm2() - oldKE2
	}
	return dKE1, dKE2
}

// WellEventType classifies the outcome of RunSphereWellEvent.
type WellEventType int

const (
	// WellBounce is an energetically-forbidden well transit: the pair
	// reflects elastically off the well boundary instead.
	WellBounce WellEventType = iota
	// WellNonEvent is a zero-energy-change well transit: velocities
	// pass through unchanged (only the capture-map membership
	// changes, done by the caller).
	WellNonEvent
	// WellKEDown is a transit that consumes kinetic energy from the
	// pair (moving out of a well, or into a barrier).
	WellKEDown
	// WellKEUp is a transit that releases kinetic energy into the
	// pair (moving into a well, or out of a barrier).
	WellKEUp
)

// RunSphereWellEvent resolves a square-well/step boundary transit
// that changes the pair's potential energy by deltaKE (dynamo's sign
// convention: positive deltaKE means kinetic energy increases, i.e.
// potential energy decreases). Grounded on
// LNewtonian::SphereWellEvent.
func RunSphereWellEvent(props particle.Properties, p1, p2 *particle.Particle, rij vec3.Vec, deltaKE float64) (WellEventType, float64, float64) {
	vij := p1.Velocity.Sub(p2.Velocity)
	rvdot := rij.Dot(vij)

	m1 := props.Mass(p1.ID)
	m2 := props.Mass(p2.ID)
	mu := m1 * m2 / (m1 + m2)
	r2 := rij.Nrm2()

	sqrtArg := rvdot*rvdot + 2*r2*deltaKE/mu

	var evType WellEventType
	var dP vec3.Vec

	switch {
	case deltaKE < 0 && sqrtArg < 0:
		evType = WellBounce
		dP = rij.Scale(2 * mu * rvdot / r2)
	case deltaKE == 0:
		evType = WellNonEvent
		dP = vec3.Zero
	default:
		if deltaKE < 0 {
			evType = WellKEDown
		} else {
			evType = WellKEUp
		}
		sq := math.Sqrt(sqrtArg)
		if rvdot < 0 {
			dP = rij.Scale(2 * deltaKE / (sq - rvdot))
		} else {
			dP = rij.Scale(-2 * deltaKE / (rvdot + sq))
		}
	}

	oldKE1 := 0.5 * m1 * p1.Velocity.Nrm2()
	oldKE2 := 0.5 * m2 * p2.Velocity.Nrm2()
	p1.Velocity = p1.Velocity.AddScaled(-1/m1, dP)
	p2.Velocity = p2.Velocity.AddScaled(1/m2, dP)
	dKE1 := 0.5*m1*p1.Velocity.Nrm2() - oldKE1
	dKE2 := 0.5*m2*p2.Velocity.Nrm2() - oldKE2

	return evType, dKE1, dKE2
}

// DSMCTest is the acceptance test for a candidate DSMC collision
// pair, updating maxProb in place as the running estimate of the
// collision kernel's maximum. Grounded on
// LNewtonian::DSMCSpheresTest.
func DSMCTest(rij, vij vec3.Vec, maxProb *float64, factor float64, uniform float64) bool {
	rvdot := rij.Dot(vij)
	if rvdot > 0 {
		return false
	}
	prob := factor * (-rvdot)
	if prob > *maxProb {
		*maxProb = prob
	}
	return prob > uniform**maxProb
}

// RunDSMCCollision resolves an accepted DSMC candidate pair exactly
// like a core hard-sphere collision (restitution e). Grounded on
// LNewtonian::DSMCSpheresRun.
func RunDSMCCollision(props particle.Properties, p1, p2 *particle.Particle, rij vec3.Vec, e float64) (dKE1, dKE2 float64) {
	return RunSmoothSpheresCollision(props, p1, p2, rij, e)
}

// CollideSpheres resolves a hard-core collision for the active flow,
// applying Compression's growth-rate-corrected impulse when flow is a
// *Compression (LCompression::SmoothSpheresColl's "rvdot -
// growthRate*sqrt(d2*r2)" correction), and the plain momentum-
// conserving impulse otherwise.
func CollideSpheres(flow Flow, props particle.Properties, p1, p2 *particle.Particle, rij vec3.Vec, d2, e float64) (dKE1, dKE2 float64) {
	comp, ok := flow.(*Compression)
	if !ok {
		return RunSmoothSpheresCollision(props, p1, p2, rij, e)
	}

	vij := p1.Velocity.Sub(p2.Velocity)
	rvdot := rij.Dot(vij) - comp.GrowthRate*math.Sqrt(d2*rij.Nrm2())

	m1 := props.Mass(p1.ID)
	m2 := props.Mass(p2.ID)
	oldKE1 := 0.5 * m1 * p1.Velocity.Nrm2()
	oldKE2 := 0.5 * m2 * p2.Velocity.Nrm2()

	dP := massPolicyImpulse(rij, rvdot, m1, m2, e)
	switch {
	case m1 == 0 && m2 == 0:
	case m1 == 0:
		p2.Velocity = p2.Velocity.AddScaled(1/m2, dP)
	case m2 == 0:
		p1.Velocity = p1.Velocity.AddScaled(-1/m1, dP)
	default:
		p1.Velocity = p1.Velocity.AddScaled(-1/m1, dP)
		p2.Velocity = p2.Velocity.AddScaled(1/m2, dP)
	}

	if m1 != 0 {
		dKE1 = 0.5*m1*p1.Velocity.Nrm2() - oldKE1
	}
	if m2 != 0 {
		dKE2 = 0.5*m2*p2.Velocity.Nrm2() - oldKE2
	}
	return dKE1, dKE2
}
