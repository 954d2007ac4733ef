// Package interaction implements the pairwise interaction potentials
// (spec.md §4.5): HardSphere, SquareWell, Stepped, SquareBond,
// RoughHardSphere, Lines, Dumbbells, SoftCore,
// RotatedParallelCubes, InfiniteMass, and SWSequence. Grounded
// file-for-file on dynamo's dynamics/interactions/*.cpp.
package interaction

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// EventType classifies an interaction event, mirroring dynamo's
// EEventType enum for the interaction subset.
type EventType int

const (
	NoEvent EventType = iota
	Core
	WellIn
	WellOut
	Bounce
	Virtual
)

// Event is the predicted outcome of testing one unordered pair
// against one interaction: the time until it fires, and what kind of
// event it is.
type Event struct {
	P1, P2 int
	DT     float64
	Type   EventType
}

// Range restricts an interaction to a subset of unordered pairs
// (spec.md's PairRange hierarchy). Grounded on dynamo's C2Range
// family (ranges/2*.hpp).
type Range interface {
	Applies(i, j int) bool
}

// AllPairs applies an interaction to every unordered pair not
// otherwise claimed. Grounded on dynamo's C2RAll.
type AllPairs struct{}

func (AllPairs) Applies(int, int) bool { return true }

// PairList restricts an interaction to an explicit set of id pairs.
// Grounded on dynamo's C2RPair/C2RList.
type PairList struct {
	pairs map[[2]int]struct{}
}

// NewPairList builds a PairList from the given unordered pairs.
func NewPairList(pairs ...[2]int) *PairList {
	m := make(map[[2]int]struct{}, len(pairs))
	for _, p := range pairs {
		m[canon(p[0], p[1])] = struct{}{}
	}
	return &PairList{pairs: m}
}

func canon(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// Applies implements Range.
func (p *PairList) Applies(i, j int) bool {
	_, ok := p.pairs[canon(i, j)]
	return ok
}

// Single restricts an interaction to pairs where exactly one member
// is in the id set (e.g. a dopant species against a solvent).
// Grounded on dynamo's C2RSingle.
type Single struct{ ids map[int]struct{} }

// NewSingle builds a Single range over the given ids.
func NewSingle(ids ...int) *Single {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &Single{ids: m}
}

// Applies implements Range: exactly one of i,j is in the set.
func (s *Single) Applies(i, j int) bool {
	_, iin := s.ids[i]
	_, jin := s.ids[j]
	return iin != jin
}

// Interaction is the pairwise-potential contract every concrete
// interaction type implements. Grounded on dynamo's CInteraction.
type Interaction interface {
	// AppliesTo reports whether this interaction governs pair (i,j).
	AppliesTo(i, j int) bool
	// MaxIntDist returns the largest separation at which this
	// interaction can produce an event, for cell-size sizing.
	MaxIntDist() int
	// GetEvent predicts the next event between i and j, whose
	// positions/velocities/capture state are already current as of a
	// shared time. Returns NoEvent with DT=+Inf if none is found.
	GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event
	// RunEvent resolves ev, mutating the two participants' velocities
	// (and any capture-map state) in place, and returns the per-
	// particle kinetic energy changes.
	RunEvent(ev Event, store *particle.Store, boundary bc.BC) (dKE1, dKE2 float64)
}

// wrappedPairData computes the BC-wrapped PairData for i,j as of
// their (assumed already-streamed-to-a-common-time) current state.
func wrappedPairData(store *particle.Store, boundary bc.BC, i, j int) liouville.PairData {
	pi, pj := store.Get(i), store.Get(j)
	rij, vij := boundary.ApplyBCVel(pi.Position.Sub(pj.Position), pi.Velocity.Sub(pj.Velocity))
	return liouville.NewPairData(rij, vij)
}
