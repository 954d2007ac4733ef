// Package system implements the process-wide, absolute-time-driven
// event sources: thermostats, rescaling, stochastic collision samplers
// and scheduler maintenance tasks. Unlike local/global/interaction
// events, a System owns its own countdown in absolute simulation time
// rather than a per-particle peculiar-time delta: the scheduler drives
// every System's Stream(dt) on every step, and fires whichever one's
// countdown reaches zero first. Grounded on dynamo's CSystem hierarchy
// (original_source/.../dynamics/systems/*.cpp).
package system

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
)

// System is the contract every process-wide event source satisfies.
type System interface {
	// Stream decrements the system's internal countdown by dt, mirroring
	// every CSystem::stream override (dt -= ndt).
	Stream(dt float64)
	// NextDT returns the time remaining until this system next fires.
	NextDT() float64
	// RunEvent fires the system against the current particle state and
	// reschedules its own countdown. Returns the total kinetic energy
	// change caused by the event.
	RunEvent(store *particle.Store, boundary bc.BC) float64
}

// Range is the minimal enumerable particle set a System samples from:
// unlike local/global/interaction's membership-only Range, a System
// needs to pick a concrete member at random, so it must be able to
// list them.
type Range interface {
	Members() []int
}

// IDRange is a Range over an explicit, fixed list of particle ids.
type IDRange struct{ ids []int }

// NewIDRange returns a Range over exactly the given ids.
func NewIDRange(ids ...int) IDRange {
	cp := make([]int, len(ids))
	copy(cp, ids)
	return IDRange{ids: cp}
}

// NewFullRange returns a Range over every id in [0, n).
func NewFullRange(n int) IDRange {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return IDRange{ids: ids}
}

// Members implements Range.
func (r IDRange) Members() []int { return r.ids }

// pick returns a uniformly random member of r using u, a sample drawn
// from [0,1). Shared by every system that samples a random particle
// (Andersen, DSMCSpheres, RingDSMC).
func pick(r Range, u float64) int {
	ids := r.Members()
	idx := int(u * float64(len(ids)))
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	return ids[idx]
}
