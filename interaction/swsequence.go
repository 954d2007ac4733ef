package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// SWSequence is a square-well interaction whose well depth depends on
// the pair's letters in a fixed sequence (e.g. a heteropolymer's
// residue identities), looked up in a symmetric Alphabet matrix.
// Grounded on dynamo's ISWSequence
// (original_source/.../interactions/swsequence.cpp).
type SWSequence struct {
	Range      Range
	Diameter   float64
	Lambda     float64
	Elasticity float64
	Flow       liouville.Flow
	Props      particle.Properties
	Captured   *capture.Single

	// Sequence maps a particle id (mod len(Sequence)) to a letter
	// index into Alphabet.
	Sequence []int
	// Alphabet[a][b] is the well depth for a pair of letters a, b;
	// symmetric by construction.
	Alphabet [][]float64

	store    *particle.Store
	boundary bc.BC
}

// NewSWSequence returns an SWSequence interaction with an empty
// capture map (call SeedCaptureMap once positions are known).
func NewSWSequence(r Range, diameter, lambda, elasticity float64, flow liouville.Flow, props particle.Properties, sequence []int, alphabet [][]float64) *SWSequence {
	return &SWSequence{
		Range: r, Diameter: diameter, Lambda: lambda, Elasticity: elasticity,
		Flow: flow, Props: props, Captured: capture.NewSingle(),
		Sequence: sequence, Alphabet: alphabet,
	}
}

func (s *SWSequence) d2() float64  { return s.Diameter * s.Diameter }
func (s *SWSequence) ld2() float64 { return s.d2() * s.Lambda * s.Lambda }

// letters returns the alphabet letters of particles i and j.
func (s *SWSequence) letters(i, j int) (int, int) {
	n := len(s.Sequence)
	return s.Sequence[i%n], s.Sequence[j%n]
}

func (s *SWSequence) wellDepth(i, j int) float64 {
	a, b := s.letters(i, j)
	return s.Alphabet[a][b]
}

// AppliesTo implements Interaction.
func (s *SWSequence) AppliesTo(i, j int) bool { return s.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (s *SWSequence) MaxIntDist() int { return int(math.Ceil(s.Diameter * s.Lambda)) }

// SeedCaptureMap scans every pair and seeds the capture map from
// captureTest, mirroring ISingleCapture::initCaptureMap.
func (s *SWSequence) SeedCaptureMap(store *particle.Store, boundary bc.BC) {
	s.store, s.boundary = store, boundary
	capture.Seed(s.Captured, store.Len(), s)
}

// CaptureTest implements capture.Tester. Grounded on
// ISWSequence::captureTest.
func (s *SWSequence) CaptureTest(i, j int) (bool, int) {
	pi, pj := s.store.Get(i), s.store.Get(j)
	rij := s.boundary.ApplyBC(pi.Position.Sub(pj.Position))
	return rij.Nrm2() <= s.ld2(), 0
}

// GetEvent implements Interaction. Grounded on
// ISWSequence::getEvent (identical control flow to SquareWell's).
func (s *SWSequence) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
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
// ISWSequence::runEvent: the well depth used in WellIn/WellOut is
// looked up per-pair from Alphabet rather than a fixed WellDepth.
func (s *SWSequence) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))

	switch ev.Type {
	case Core:
		return liouville.CollideSpheres(s.Flow, s.Props, p1, p2, rij, s.d2(), s.Elasticity)
	case WellIn:
		depth := s.wellDepth(ev.P1, ev.P2)
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, depth)
		if evType != liouville.WellBounce {
			s.Captured.Set(ev.P1, ev.P2, 0)
		}
		return dKE1, dKE2
	case WellOut:
		depth := s.wellDepth(ev.P1, ev.P2)
		evType, dKE1, dKE2 := liouville.RunSphereWellEvent(s.Props, p1, p2, rij, -depth)
		if evType != liouville.WellBounce {
			s.Captured.Clear(ev.P1, ev.P2)
		}
		return dKE1, dKE2
	default:
		return 0, 0
	}
}
