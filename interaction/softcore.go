package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// SoftCore is a pure attractive well with no hard core: particles
// pass freely through each other, gaining/losing kinetic energy only
// as they cross the well boundary. Diameter and WellDepth are
// per-particle properties averaged pairwise, per dynamo's ISoftCore
// (original_source/.../interactions/softcore.cpp).
type SoftCore struct {
	Range    Range
	Flow     liouville.Flow
	Props    particle.Properties
	Captured *capture.Single

	store       *particle.Store
	boundary    bc.BC
	maxDiameter float64
}

// NewSoftCore returns a SoftCore interaction with an empty capture map.
func NewSoftCore(r Range, flow liouville.Flow, props particle.Properties) *SoftCore {
	return &SoftCore{Range: r, Flow: flow, Props: props, Captured: capture.NewSingle()}
}

func (s *SoftCore) pairD2(i, j int) float64 {
	d := (s.Props.Diameter(i) + s.Props.Diameter(j)) * 0.5
	return d * d
}

func (s *SoftCore) pairWellDepth(i, j int) float64 {
	return (s.Props.WellDepth(i) + s.Props.WellDepth(j)) * 0.5
}

// AppliesTo implements Interaction.
func (s *SoftCore) AppliesTo(i, j int) bool { return s.Range.Applies(i, j) }

// MaxIntDist implements Interaction. dynamo's maxIntDist is the
// largest per-particle diameter over the whole species set;
// SeedCaptureMap computes the equivalent scan here, since that's the
// first point at which every particle's Diameter is available.
func (s *SoftCore) MaxIntDist() int { return int(math.Ceil(s.maxDiameter)) }

// SeedCaptureMap scans every pair and seeds the capture map, and
// records the largest per-particle diameter for MaxIntDist.
func (s *SoftCore) SeedCaptureMap(store *particle.Store, boundary bc.BC) {
	s.store, s.boundary = store, boundary
	capture.Seed(s.Captured, store.Len(), s)
	for i := 0; i < store.Len(); i++ {
		if d := s.Props.Diameter(i); d > s.maxDiameter {
			s.maxDiameter = d
		}
	}
}

// CaptureTest implements capture.Tester. Grounded on
// ISoftCore::captureTest.
func (s *SoftCore) CaptureTest(i, j int) (bool, int) {
	pi, pj := s.store.Get(i), s.store.Get(j)
	rij := s.boundary.ApplyBC(pi.Position.Sub(pj.Position))
	return rij.Nrm2() <= s.pairD2(i, j), 0
}

// GetEvent implements Interaction. Grounded on ISoftCore::getEvent.
func (s *SoftCore) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pd := wrappedPairData(store, boundary, i, j)
	d2 := s.pairD2(i, j)

	if s.Captured.IsCaptured(i, j) {
		if dt, ok := s.Flow.SphereSphereOutRoot(pd, d2); ok {
			return Event{P1: i, P2: j, DT: dt, Type: WellOut}
		}
		return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
	}
	if dt, ok := s.Flow.SphereSphereInRoot(pd, d2); ok {
		return Event{P1: i, P2: j, DT: dt, Type: WellIn}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on ISoftCore::runEvent.
func (s *SoftCore) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	wd := s.pairWellDepth(ev.P1, ev.P2)

	switch ev.Type {
	case WellIn:
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, wd)
		if evType != liouville.WellBounce {
			s.Captured.Set(ev.P1, ev.P2, 0)
		}
		return dKE1, dKE2
	case WellOut:
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, -wd)
		if evType != liouville.WellBounce {
			s.Captured.Clear(ev.P1, ev.P2)
		}
		return dKE1, dKE2
	default:
		return 0, 0
	}
}
