// Package local implements the single-particle localized events
// (spec.md §4.2.2): fixed planar walls, Andersen (thermostatting)
// walls, cylindrical walls, and oscillating plates. Grounded on
// dynamo's CGlobal/CLocal family
// (original_source/.../dynamics/globals/wall.cpp, AndersenWall.cpp).
package local

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// EventType classifies a local event. There is only one kind today
// (a wall/plate collision), but the type mirrors interaction.EventType
// so a Local and an Interaction read the same way at a call site.
type EventType int

const (
	NoEvent EventType = iota
	WallCollision
)

// Event is the predicted outcome of testing one particle against one
// Local.
type Event struct {
	P    int
	DT   float64
	Type EventType
}

// Local is the contract every single-particle localized event
// implements. Grounded on dynamo's CGlobal/CLocal: a Local attaches to
// a particle range and a spatial predicate that lets the cell list
// discover, at initialization, which cells it touches.
type Local interface {
	// AppliesTo reports whether this Local governs particle i.
	AppliesTo(i int) bool
	// IsInCell reports whether this Local can fire for a particle
	// anywhere within the axis-aligned cell [origin, origin+width),
	// so the cell list can attach it only to the cells it can affect.
	IsInCell(origin, width vec3.Vec) bool
	// GetEvent predicts the next event for particle i. Returns
	// NoEvent with DT=+Inf if none is found.
	GetEvent(i int, store *particle.Store, boundary bc.BC) Event
	// RunEvent resolves ev, mutating the particle's velocity (and any
	// internal plate state) in place, and returns the kinetic energy
	// change.
	RunEvent(ev Event, store *particle.Store, boundary bc.BC) (dKE float64)
}

// Range restricts a Local to a subset of particle ids. Re-declared
// here (rather than shared with interaction.Range) since a Local's
// predicate is over single ids, not pairs.
type Range interface {
	Applies(i int) bool
}

// AllParticles applies a Local to every particle. Grounded on
// dynamo's C1RAll.
type AllParticles struct{}

// Applies implements Range.
func (AllParticles) Applies(int) bool { return true }

// IDSet restricts a Local to an explicit set of particle ids.
// Grounded on dynamo's C1RRange/C1RSingle.
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

// slabOverlapsPlane reports whether the plane through point on normal
// norm passes within the axis-aligned box [origin, origin+width) —
// the general cell-membership test every planar/near-planar Local
// uses, since a particle anywhere in the box could reach the plane
// within one cell transit.
func slabOverlapsPlane(origin, width, point, norm vec3.Vec) bool {
	var dMin, dMax float64
	for d := 0; d < 3; d++ {
		lo := origin.Component(d) - point.Component(d)
		hi := lo + width.Component(d)
		n := norm.Component(d)
		c1, c2 := lo*n, hi*n
		if c1 > c2 {
			c1, c2 = c2, c1
		}
		dMin += c1
		dMax += c2
	}
	return dMin <= 0 && dMax >= 0
}
