package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// RoughHardSphere is a hard sphere collision with a tangential
// impulse component, exchanging angular momentum between spinning
// particles through friction characterised by TangentialElasticity.
// Grounded on dynamo's IRoughHardSphere
// (original_source/.../interactions/roughhardsphere.cpp), whose
// resolver is LNewtonian::RoughSpheresColl.
type RoughHardSphere struct {
	Range                Range
	Diameter             float64
	Elasticity           float64
	TangentialElasticity float64
	Flow                 liouville.Flow
	Props                particle.Properties
}

// NewRoughHardSphere returns a RoughHardSphere interaction.
func NewRoughHardSphere(r Range, diameter, elasticity, tangentialElasticity float64, flow liouville.Flow, props particle.Properties) *RoughHardSphere {
	return &RoughHardSphere{Range: r, Diameter: diameter, Elasticity: elasticity, TangentialElasticity: tangentialElasticity, Flow: flow, Props: props}
}

func (r *RoughHardSphere) d2() float64 { return r.Diameter * r.Diameter }

// AppliesTo implements Interaction.
func (r *RoughHardSphere) AppliesTo(i, j int) bool { return r.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (r *RoughHardSphere) MaxIntDist() int { return int(math.Ceil(r.Diameter)) }

// GetEvent implements Interaction. Grounded on
// IRoughHardSphere::getEvent.
func (r *RoughHardSphere) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)
	if dt, ok := r.Flow.SphereSphereInRoot(pd, r.d2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Core}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on
// LNewtonian::RoughSpheresColl: a normal impulse identical to a
// smooth-sphere collision, plus a tangential impulse driven by the
// surface relative velocity at contact (accounting for both
// particles' spin) and the reduced moment of inertia Jbar.
func (r *RoughHardSphere) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	vij := p1.Velocity.Sub(p2.Velocity)

	m1, m2 := r.Props.Mass(ev.P1), r.Props.Mass(ev.P2)
	mu := reducedMass(m1, m2)
	rvdot := rij.Dot(vij)
	r2 := rij.Nrm2()

	normalImpulse := rij.Scale((1 + r.Elasticity) * mu * rvdot / r2)

	eijn := rij.Unit()
	o1, o2 := store.Orientation(ev.P1), store.Orientation(ev.P2)
	spinSum := o1.AngularVelocity.Add(o2.AngularVelocity)
	gij := vij.Sub(spinSum.Cross(eijn).Scale(math.Sqrt(r.d2()) * 0.5))
	gijt := eijn.Cross(gij).Cross(eijn)

	jbar := 0.0
	if m1 != 0 {
		jbar = r.Props.MomentOfInertia(ev.P1) / (m1 * r.d2() * 0.25)
	}

	tangentialImpulse := gijt.Scale(jbar * (1 - r.TangentialElasticity) / (2 * (jbar + 1)))
	dP := normalImpulse.Add(tangentialImpulse)

	ke1Before := kineticEnergy(m1, p1.Velocity)
	ke2Before := kineticEnergy(m2, p2.Velocity)

	if m1 != 0 {
		p1.Velocity = p1.Velocity.Sub(dP.Scale(1 / m1))
	}
	if m2 != 0 {
		p2.Velocity = p2.Velocity.Add(dP.Scale(1 / m2))
	}

	angularChange := eijn.Cross(gijt).Scale((1 - r.TangentialElasticity) / (math.Sqrt(r.d2()) * (jbar + 1)))
	o1.AngularVelocity = o1.AngularVelocity.Add(angularChange)
	o2.AngularVelocity = o2.AngularVelocity.Add(angularChange)

	return kineticEnergy(m1, p1.Velocity) - ke1Before, kineticEnergy(m2, p2.Velocity) - ke2Before
}

func reducedMass(m1, m2 float64) float64 {
	if m1 == 0 {
		return m2
	}
	if m2 == 0 {
		return m1
	}
	return m1 * m2 / (m1 + m2)
}

func kineticEnergy(m float64, v vec3.Vec) float64 {
	return 0.5 * m * v.Nrm2()
}
