package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// HardSphere is the pure hard-core interaction: an instantaneous,
// energy-conserving-up-to-restitution collision at contact. Grounded
// on dynamo's CIHardSphere
// (original_source/.../interactions/hardsphere.cpp).
type HardSphere struct {
	Range      Range
	Diameter   float64
	Elasticity float64
	Flow       liouville.Flow
	Props      particle.Properties
}

// NewHardSphere returns a HardSphere interaction over the given range.
func NewHardSphere(r Range, diameter, elasticity float64, flow liouville.Flow, props particle.Properties) *HardSphere {
	return &HardSphere{Range: r, Diameter: diameter, Elasticity: elasticity, Flow: flow, Props: props}
}

func (h *HardSphere) d2() float64 { return h.Diameter * h.Diameter }

// AppliesTo implements Interaction.
func (h *HardSphere) AppliesTo(i, j int) bool { return h.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (h *HardSphere) MaxIntDist() int { return int(math.Ceil(h.Diameter)) }

// GetEvent implements Interaction. Grounded on
// CIHardSphere::getEvent.
func (h *HardSphere) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)
	if dt, ok := h.Flow.SphereSphereInRoot(pd, h.d2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Core}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on
// CIHardSphere::runEvent / LNewtonian::SmoothSpheresColl.
func (h *HardSphere) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	return liouville.CollideSpheres(h.Flow, h.Props, p1, p2, rij, h.d2(), h.Elasticity)
}
