package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// SquareWell is a hard core of Diameter surrounded by an attractive
// well out to Lambda*Diameter of depth WellDepth. Grounded on
// dynamo's ISquareWell (original_source/.../interactions/squarewell.cpp).
type SquareWell struct {
	Range      Range
	Diameter   float64
	Lambda     float64
	WellDepth  float64
	Elasticity float64
	Flow       liouville.Flow
	Props      particle.Properties
	Captured   *capture.Single

	store    *particle.Store
	boundary bc.BC
}

// NewSquareWell returns a SquareWell interaction with an empty
// capture map (call SeedCaptureMap once the particle positions are
// known, per capture.Seed).
func NewSquareWell(r Range, diameter, lambda, wellDepth, elasticity float64, flow liouville.Flow, props particle.Properties) *SquareWell {
	return &SquareWell{
		Range: r, Diameter: diameter, Lambda: lambda, WellDepth: wellDepth,
		Elasticity: elasticity, Flow: flow, Props: props, Captured: capture.NewSingle(),
	}
}

func (s *SquareWell) d2() float64  { return s.Diameter * s.Diameter }
func (s *SquareWell) ld2() float64 { return s.d2() * s.Lambda * s.Lambda }

// AppliesTo implements Interaction.
func (s *SquareWell) AppliesTo(i, j int) bool { return s.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (s *SquareWell) MaxIntDist() int { return int(math.Ceil(s.Diameter * s.Lambda)) }

// SeedCaptureMap scans every pair of the store's particles (already
// streamed to a common time) and seeds the capture map from
// captureTest, mirroring ISingleCapture::initCaptureMap's O(N^2)
// scan run only when there is no persisted capture map to load.
func (s *SquareWell) SeedCaptureMap(store *particle.Store, boundary bc.BC) {
	s.store, s.boundary = store, boundary
	capture.Seed(s.Captured, store.Len(), s)
}

// CaptureTest implements capture.Tester. Grounded on
// ISquareWell::captureTest.
func (s *SquareWell) CaptureTest(i, j int) (bool, int) {
	pi, pj := s.store.Get(i), s.store.Get(j)
	rij := s.boundary.ApplyBC(pi.Position.Sub(pj.Position))
	return rij.Nrm2() <= s.ld2(), 0
}

// GetEvent implements Interaction. Grounded on
// ISquareWell::getEvent.
func (s *SquareWell) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)

	if s.Captured.IsCaptured(i, j) {
		if dt, ok := s.Flow.SphereSphereInRoot(pd, s.d2()); ok {
			return Event{P1: i, P2: j, DT: dt, Type: Core}
		}
		if dt, ok := s.Flow.SphereSphereOutRoot(pd, s.ld2()); ok {
			return Event{P1: i, P2: j, DT: dt, Type: WellOut}
		}
		return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
	}

	if dt, ok := s.Flow.SphereSphereInRoot(pd, s.ld2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: WellIn}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on
// ISquareWell::runEvent.
func (s *SquareWell) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))

	switch ev.Type {
	case Core:
		return liouville.CollideSpheres(s.Flow, s.Props, p1, p2, rij, s.d2(), s.Elasticity)
	case WellIn:
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, s.WellDepth)
		if evType != liouville.WellBounce {
			s.Captured.Set(ev.P1, ev.P2, 0)
		}
		return dKE1, dKE2
	case WellOut:
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, -s.WellDepth)
		if evType != liouville.WellBounce {
			s.Captured.Clear(ev.P1, ev.P2)
		}
		return dKE1, dKE2
	default:
		return 0, 0
	}
}
