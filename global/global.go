// Package global implements the system-wide single-particle events
// (spec.md §4.2.3): the cell-transit event, the gravity parabola
// sentinel, and the periodic-boundary sentinel. Grounded on dynamo's
// CGlobal family (original_source/.../dynamics/globals/gcells.cpp for
// the cell-transit bookkeeping; the sentinels have no kept original
// file and follow spec.md's prose directly).
package global

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
)

// EventType classifies a global event.
type EventType int

const (
	NoEvent EventType = iota
	CellTransitEvent
	ParabolaEvent
	PBCEvent
)

// Event is the predicted outcome of testing one particle against one
// Global.
type Event struct {
	P    int
	DT   float64
	Type EventType
}

// Global is the contract every system-wide single-particle event
// implements. Unlike a Local, a Global has no spatial attachment: it
// applies uniformly to every particle in its Range and fires
// virtually (no interaction/local event is actually colliding), so
// RunEvent never changes kinetic energy except where noted.
type Global interface {
	// AppliesTo reports whether this Global governs particle i.
	AppliesTo(i int) bool
	// GetEvent predicts the next event for particle i. Returns
	// NoEvent with DT=+Inf if none applies.
	GetEvent(i int, store *particle.Store, boundary bc.BC) Event
	// RunEvent resolves ev, mutating the particle (and any owned
	// bookkeeping) in place.
	RunEvent(ev Event, store *particle.Store, boundary bc.BC)
}

// Range restricts a Global to a subset of particle ids. Re-declared
// per package, as interaction.Range/local.Range are, since each
// predicate is local to its own id-space use.
type Range interface {
	Applies(i int) bool
}

// AllParticles applies a Global to every particle.
type AllParticles struct{}

// Applies implements Range.
func (AllParticles) Applies(int) bool { return true }

// IDSet restricts a Global to an explicit set of particle ids.
type IDSet struct{ ids map[int]struct{} }

// NewIDSet builds an IDSet over the given ids.
func NewIDSet(ids ...int) *IDSet {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &IDSet{ids: m}
}

// Applies implements Range.
func (s *IDSet) Applies(i int) bool {
	_, ok := s.ids[i]
	return ok
}
