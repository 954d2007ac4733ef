package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// Step is one rung of a Stepped potential: the radius (as a multiple
// of Diameter) of this step's outer boundary, and the potential
// energy at that boundary.
type Step struct {
	Radius float64
	Energy float64
}

// Stepped is a nested multi-well potential: Steps sorted from
// outermost (index 0, largest radius) to innermost (closest to the
// hard core). A pair's capture depth is the number of step
// boundaries it has crossed inward. Grounded on dynamo's IStepped
// (original_source/.../interactions/stepped.cpp).
type Stepped struct {
	Range      Range
	Diameter   float64
	Steps      []Step
	Elasticity float64
	Flow       liouville.Flow
	Props      particle.Properties
	Captured   *capture.Multi

	store    *particle.Store
	boundary bc.BC
}

// NewStepped returns a Stepped interaction. Steps must be sorted by
// decreasing Radius.
func NewStepped(r Range, diameter float64, steps []Step, elasticity float64, flow liouville.Flow, props particle.Properties) *Stepped {
	return &Stepped{Range: r, Diameter: diameter, Steps: steps, Elasticity: elasticity, Flow: flow, Props: props, Captured: capture.NewMulti()}
}

func (s *Stepped) radius2(depth int) float64 {
	d := s.Steps[depth].Radius * s.Diameter
	return d * d
}

// AppliesTo implements Interaction.
func (s *Stepped) AppliesTo(i, j int) bool { return s.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (s *Stepped) MaxIntDist() int {
	return int(math.Ceil(s.Steps[0].Radius * s.Diameter))
}

// SeedCaptureMap scans every pair and seeds the step depth each is
// currently at. Grounded on IStepped::captureTest's "which step
// boundary is r inside" scan.
func (s *Stepped) SeedCaptureMap(store *particle.Store, boundary bc.BC) {
	s.store, s.boundary = store, boundary
	capture.Seed(s.Captured, store.Len(), s)
}

// CaptureTest implements capture.Tester.
func (s *Stepped) CaptureTest(i, j int) (bool, int) {
	pi, pj := s.store.Get(i), s.store.Get(j)
	rij := s.boundary.ApplyBC(pi.Position.Sub(pj.Position))
	r := rij.Nrm()
	depth := 0
	for idx := range s.Steps {
		if r <= s.Steps[idx].Radius*s.Diameter {
			depth = idx + 1
		}
	}
	return depth > 0, depth
}

// GetEvent implements Interaction. Grounded on IStepped::getEvent.
func (s *Stepped) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)
	depth, captured := s.Captured.Step(i, j)

	best := Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}

	if !captured {
		if dt, ok := s.Flow.SphereSphereInRoot(pd, s.radius2(0)); ok {
			best = Event{P1: i, P2: j, DT: dt, Type: WellIn}
		}
		return best
	}

	if depth < len(s.Steps) {
		if dt, ok := s.Flow.SphereSphereInRoot(pd, s.radius2(depth)); ok {
			best = Event{P1: i, P2: j, DT: dt, Type: WellIn}
		}
	}
	if dt, ok := s.Flow.SphereSphereOutRoot(pd, s.radius2(depth-1)); ok {
		if dt < best.DT {
			best = Event{P1: i, P2: j, DT: dt, Type: WellOut}
		}
	}
	return best
}

// RunEvent implements Interaction. Grounded on IStepped::runEvent.
func (s *Stepped) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	depth, _ := s.Captured.Step(ev.P1, ev.P2)

	switch ev.Type {
	case WellIn:
		dE := s.Steps[depth].Energy
		if depth > 0 {
			dE -= s.Steps[depth-1].Energy
		}
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, -dE)
		if evType != liouville.WellBounce {
			s.Captured.Set(ev.P1, ev.P2, depth+1)
		}
		return dKE1, dKE2
	case WellOut:
		dE := s.Steps[depth-1].Energy
		if depth > 1 {
			dE -= s.Steps[depth-2].Energy
		}
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, dE)
		if evType != liouville.WellBounce {
			if depth-1 == 0 {
				s.Captured.Clear(ev.P1, ev.P2)
			} else {
				s.Captured.Set(ev.P1, ev.P2, depth-1)
			}
		}
		return dKE1, dKE2
	default:
		return 0, 0
	}
}
