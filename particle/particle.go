// Package particle implements the particle store (spec component A):
// an ordered, dense sequence of particles together with the opaque
// per-particle property lookup the rest of the engine consumes.
package particle

import "github.com/sarchlab/dynamica/vec3"

// Orientation holds the rotational degrees of freedom a Liouvillean
// may need (lines, dumbbells, rough spheres). Allocated lazily, one
// entry per particle id, only when the active flow reports
// HasOrientationData() == true.
type Orientation struct {
	Axis            vec3.Vec // unit vector
	AngularVelocity vec3.Vec
}

// Particle is the core per-particle state (spec.md §3). Position and
// velocity are valid at Time, not at the simulation's current
// dSysTime — see the peculiar-time invariant documented on Store.
type Particle struct {
	ID       int
	Position vec3.Vec
	Velocity vec3.Vec
	// Time is the particle's peculiar time: the instant at which
	// Position and Velocity were last made current.
	Time       float64
	Flags      Flags
	Generation uint64
}

// Alive reports whether the particle is live in the simulation.
func (p *Particle) Alive() bool { return p.Flags.Has(ALIVE) }

// Dynamic reports whether the particle is subject to the active
// flow's body force (e.g. gravity).
func (p *Particle) Dynamic() bool { return p.Flags.Has(DYNAMIC) }

// Sleeping reports whether the Sleep system has parked this particle.
func (p *Particle) Sleeping() bool { return p.Flags.Has(SLEEPING) }
