package system

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// Sleep parks DYNAMIC particles that have settled under gravity: once
// a particle's velocity and position stop changing across collisions
// (within Converge and SleepVelocity thresholds) it is marked
// SLEEPING and its velocity zeroed, removing it from further dynamic
// prediction until something collides into it again. Grounded on
// dynamo's SSleep (original_source/.../dynamics/systems/sleep.cpp).
//
// Unlike the other systems, Sleep doesn't predict its own fire time
// from particle motion: it reacts to collisions elsewhere in the
// engine. Notify is called by the scheduler after every interaction
// (two-particle) collision involving a member of Range, mirroring
// SSleep::particlesUpdated; RunEvent then applies whatever state
// changes Notify queued.
type Sleep struct {
	Range         Range
	Props         particle.Properties
	Gravity       vec3.Vec
	Converge      float64 // positional convergence threshold
	SleepVelocity float64 // speed below which a particle is considered at rest

	lastPosition map[int]vec3.Vec
	lastVelocity map[int]vec3.Vec
	stateChange  map[int]float64

	dt float64
}

// NewSleep returns a Sleep system with no pending state changes.
func NewSleep(r Range, props particle.Properties, gravity vec3.Vec, converge, sleepVelocity float64) *Sleep {
	return &Sleep{
		Range: r, Props: props, Gravity: gravity,
		Converge: converge, SleepVelocity: sleepVelocity,
		lastPosition: make(map[int]vec3.Vec),
		lastVelocity: make(map[int]vec3.Vec),
		stateChange:  make(map[int]float64),
		dt:           math.Inf(1),
	}
}

// Notify records a completed collision between p1 and p2 and decides
// whether either should be queued to sleep or transfer momentum to a
// dynamic partner. Grounded on SSleep::particlesUpdated.
func (s *Sleep) Notify(p1, p2 int, store *particle.Store) {
	s.checkPair(p1, p2, store)
	s.checkPair(p2, p1, store)
	if len(s.stateChange) > 0 {
		s.dt = 0
	}
}

// checkPair considers whether a transitions toward sleep, using b as
// its collision partner. If b is already sleeping and a is dynamic,
// any momentum b is still owed is transferred to a instead.
func (s *Sleep) checkPair(a, b int, store *particle.Store) {
	pa := store.Get(a)
	if !pa.Dynamic() || pa.Sleeping() {
		return
	}

	pb := store.Get(b)
	if pb.Sleeping() {
		if dp, ok := s.stateChange[b]; ok && dp != 0 {
			s.stateChange[a] += dp
			delete(s.stateChange, b)
		}
		return
	}

	last, seen := s.lastPosition[a]
	lastV := s.lastVelocity[a]
	s.lastPosition[a] = pa.Position
	s.lastVelocity[a] = pa.Velocity
	if !seen {
		return
	}

	posDrift := pa.Position.Sub(last).Nrm()
	velDrift := pa.Velocity.Sub(lastV).Nrm()
	speed := pa.Velocity.Nrm()

	if posDrift < s.Converge && velDrift < s.Converge && speed < s.SleepVelocity {
		s.stateChange[a] = 0
	}
}

// Stream implements System.
func (s *Sleep) Stream(dt float64) {
	if math.IsInf(s.dt, 1) {
		return
	}
	s.dt -= dt
}

// NextDT implements System.
func (s *Sleep) NextDT() float64 { return s.dt }

// RunEvent implements System: applies every queued state change.
// Grounded on SSleep::runEvent: a zero entry on a still-dynamic
// particle puts it to sleep (clears DYNAMIC, zeroes velocity); a
// nonzero entry adds the transferred momentum to its velocity.
func (s *Sleep) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	totalDKE := 0.0
	for id, dp := range s.stateChange {
		p := store.Get(id)
		oldKE := 0.5 * s.Props.Mass(id) * p.Velocity.Nrm2()

		if dp == 0 && p.Dynamic() {
			p.Flags = p.Flags.Clear(particle.DYNAMIC).Set(particle.SLEEPING)
			p.Velocity = vec3.Zero
		} else if dp != 0 {
			p.Velocity = p.Velocity.AddScaled(dp/s.Props.Mass(id), s.Gravity.Unit())
		} else {
			p.Velocity = vec3.Zero
		}

		newKE := 0.5 * s.Props.Mass(id) * p.Velocity.Nrm2()
		totalDKE += newKE - oldKE
	}

	s.stateChange = make(map[int]float64)
	s.dt = math.Inf(1)
	return totalDKE
}
