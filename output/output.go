// Package output implements the observer callback protocol of
// spec.md §6: every resolved event is reported to a list of
// registered observers as (EventKind, NEventData), where NEventData
// is the pre/post velocity and energy deltas of the one or two
// particles the event touched.
package output

import "github.com/sarchlab/dynamica/vec3"

// EventKind is the bit-exact event-kind tag of spec.md §6, carried
// through to output so a post-run trace can distinguish event types
// without re-deriving them.
type EventKind int

const (
	None EventKind = iota
	Cell
	Global
	Interaction
	Wall
	Gaussian
	Core
	WellIn
	WellOut
	Bounce
	NonEvent
	WellKEUp
	WellKEDown
	Virtual
	Sleep
	Wakeup
	Resleep
	Correct
	Rescale
	Umbrella
	DSMC
)

// ParticleDelta is one particle's pre/post state across a resolved
// event. Mass is carried alongside the four fields spec.md §6 names
// (pre/post velocity, ΔKE, ΔinternalEnergy) so an observer can
// accumulate momentum, not just energy.
type ParticleDelta struct {
	ID           int
	Mass         float64
	PreVelocity  vec3.Vec
	PostVelocity vec3.Vec
	DeltaKE      float64
	DeltaU       float64
}

// EventData is the "pair of lists" of spec.md §6: single-particle
// changes and pair-particle changes, each carrying pre/post velocity
// and energy deltas.
type EventData struct {
	Singles []ParticleDelta
	Pairs   []ParticleDelta
}

// Observer is informed of every resolved event. Grounded on spec.md
// §6/§9: "output plugins... informed of every event via a callback on
// the scheduler", "an explicit list of observer function pointers...
// fired after each event".
type Observer interface {
	OnEvent(kind EventKind, data EventData)
}
