package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// SquareBond is a fixed-pair hard inner diameter plus an infinite
// outer wall at Lambda*Diameter (the pair bounces elastically off
// the wall rather than ever escaping). Grounded on dynamo's
// ISquareBond (original_source/.../interactions/squarebond.cpp).
type SquareBond struct {
	Range      Range
	Diameter   float64
	Lambda     float64
	Elasticity float64
	Flow       liouville.Flow
	Props      particle.Properties
}

// NewSquareBond returns a SquareBond interaction.
func NewSquareBond(r Range, diameter, lambda, elasticity float64, flow liouville.Flow, props particle.Properties) *SquareBond {
	return &SquareBond{Range: r, Diameter: diameter, Lambda: lambda, Elasticity: elasticity, Flow: flow, Props: props}
}

func (s *SquareBond) d2() float64  { return s.Diameter * s.Diameter }
func (s *SquareBond) ld2() float64 { return s.d2() * s.Lambda * s.Lambda }

// AppliesTo implements Interaction.
func (s *SquareBond) AppliesTo(i, j int) bool { return s.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (s *SquareBond) MaxIntDist() int { return int(math.Ceil(s.Diameter * s.Lambda)) }

// GetEvent implements Interaction. Grounded on
// ISquareBond::getEvent: CORE at the inner diameter, BOUNCE at the
// outer bond-length wall.
func (s *SquareBond) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)
	if dt, ok := s.Flow.SphereSphereInRoot(pd, s.d2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Core}
	}
	if dt, ok := s.Flow.SphereSphereOutRoot(pd, s.ld2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Bounce}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on
// ISquareBond::runEvent: both CORE and BOUNCE resolve as an elastic
// hard-sphere collision at the respective diameter.
func (s *SquareBond) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	d2 := s.d2()
	if ev.Type == Bounce {
		d2 = s.ld2()
	}
	return liouville.CollideSpheres(s.Flow, s.Props, p1, p2, rij, d2, s.Elasticity)
}
