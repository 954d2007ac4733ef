package sched

import (
	"math"
	"testing"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/interaction"
	"github.com/sarchlab/dynamica/output"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/system"
	"github.com/sarchlab/dynamica/vec3"
)

// fakeFlow is the minimal particle.Streamer: free-streaming, no
// orientation bookkeeping, so tests can control exactly what moves.
type fakeFlow struct{}

func (fakeFlow) Stream(p *particle.Particle, dt float64) {
	p.Position = p.Position.AddScaled(dt, p.Velocity)
}
func (fakeFlow) HasOrientationData() bool { return false }

// fakeCells reports a fixed, test-configured neighbourhood for every
// particle, bypassing any real lattice geometry.
type fakeCells struct {
	neighbours map[int][]int
}

func (f *fakeCells) Neighbours(id int) []int { return f.neighbours[id] }

// fakeInteraction returns a Core event between 0 and 1 on its first
// and third GetEvent call (the initial prediction for particle 0, and
// the resolve-time re-fetch inside fireInteraction) and "no event"
// otherwise — including the duplicate prediction particle 1's own
// repredict walk would otherwise produce, and both post-fire
// repredicts. This isolates the scheduler's dispatch logic from any
// real physics.
type fakeInteraction struct {
	calls int
	dt    float64
}

func (f *fakeInteraction) AppliesTo(int, int) bool { return true }
func (f *fakeInteraction) MaxIntDist() int         { return 1 }
func (f *fakeInteraction) GetEvent(i, j int, store *particle.Store, boundary bc.BC) interaction.Event {
	f.calls++
	if f.calls == 1 || f.calls == 3 {
		return interaction.Event{P1: i, P2: j, DT: f.dt, Type: interaction.Core}
	}
	return interaction.Event{DT: math.Inf(1), Type: interaction.NoEvent}
}
func (f *fakeInteraction) RunEvent(ev interaction.Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	p1.Velocity, p2.Velocity = p2.Velocity, p1.Velocity
	return 0, 0
}

func newSchedulerFixture(dt float64) (*Scheduler, *fakeInteraction) {
	store := particle.NewStore(2)
	store.Get(0).Position = vec3.New(0, 0, 0)
	store.Get(0).Velocity = vec3.New(1, 0, 0)
	store.Get(1).Position = vec3.New(5, 0, 0)
	store.Get(1).Velocity = vec3.New(-1, 0, 0)

	props := particle.NewMapProperties(2)
	props.SetMass(0, 1)
	props.SetMass(1, 1)

	boundary := bc.NewPeriodic(vec3.New(1000, 1000, 1000))
	cells := &fakeCells{neighbours: map[int][]int{0: {1}, 1: {0}}}

	s := NewScheduler(store, boundary, fakeFlow{}, props, cells)
	in := &fakeInteraction{dt: dt}
	s.Interactions = []interaction.Interaction{in}
	return s, in
}

func TestSchedulerResolvesEarliestEventAndRepredicts(t *testing.T) {
	s, _ := newSchedulerFixture(5)
	s.Initialise()

	kind, data, ok := s.Step()
	if !ok {
		t.Fatalf("expected an event to fire")
	}
	if kind != output.Core {
		t.Fatalf("expected a Core event, got %v", kind)
	}
	if s.Now != 5 {
		t.Fatalf("expected the clock to advance to t=5, got %v", s.Now)
	}
	if len(data.Pairs) != 2 {
		t.Fatalf("expected two ParticleDelta entries, got %d", len(data.Pairs))
	}
	if store := s.Store; store.Get(0).Velocity != vec3.New(-1, 0, 0) || store.Get(1).Velocity != vec3.New(1, 0, 0) {
		t.Fatalf("expected the two velocities swapped, got %v %v", store.Get(0).Velocity, store.Get(1).Velocity)
	}
	if s.Store.Get(0).Generation != 1 || s.Store.Get(1).Generation != 1 {
		t.Fatalf("expected both participants' generation bumped, got %d %d", s.Store.Get(0).Generation, s.Store.Get(1).Generation)
	}

	// Both post-fire repredicts returned NoEvent (fake's 4th/5th call),
	// so the queue should now be empty: the simulation has quiesced.
	if _, _, ok := s.Step(); ok {
		t.Fatalf("expected no further event once the queue is exhausted")
	}
}

func TestSchedulerLazyDeletionSkipsAStaleCandidate(t *testing.T) {
	s, _ := newSchedulerFixture(5)
	s.Initialise()

	if len(s.pq) != 1 {
		t.Fatalf("expected exactly one candidate after Initialise, got %d", len(s.pq))
	}

	// Bump particle 0's generation out from under the queued candidate,
	// simulating some other event having touched it first.
	s.Store.BumpGeneration(0)

	if _, _, ok := s.Step(); ok {
		t.Fatalf("expected the stale candidate to be discarded, not fired")
	}
	if len(s.pq) != 0 {
		t.Fatalf("expected the stale candidate popped off the queue, got len %d", len(s.pq))
	}
}

// fakeSystem fires once after a fixed countdown and never touches the
// particle store, isolating the system-vs-particle-event race from
// any actual physical effect. RunEvent resets its own countdown to
// +Inf, matching every real System's self-rescheduling contract
// (e.g. system.Sleep.RunEvent resetting s.dt to math.Inf(1)) so the
// fake doesn't immediately refire on the next Step.
type fakeSystem struct{ dt float64 }

func (f *fakeSystem) Stream(dt float64) { f.dt -= dt }
func (f *fakeSystem) NextDT() float64   { return f.dt }
func (f *fakeSystem) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	f.dt = math.Inf(1)
	return 0
}

func TestSchedulerPicksTheEarlierOfASystemAndAParticleEvent(t *testing.T) {
	s, _ := newSchedulerFixture(5)
	s.Initialise()

	sys := &fakeSystem{dt: 2}
	s.Systems = []system.System{sys}

	kind, _, ok := s.Step()
	if !ok || kind != output.NonEvent {
		t.Fatalf("expected the system's countdown (t=2) to fire first as a NonEvent, got kind=%v ok=%v", kind, ok)
	}
	if s.Now != 2 {
		t.Fatalf("expected the clock to advance to the system's fire time t=2, got %v", s.Now)
	}

	// The queued particle candidate (t=5) is untouched: firing again
	// should land on it at t=5.
	kind, _, ok = s.Step()
	if !ok || kind != output.Core {
		t.Fatalf("expected the particle candidate to fire next as Core, got kind=%v ok=%v", kind, ok)
	}
	if s.Now != 5 {
		t.Fatalf("expected the clock to advance to t=5, got %v", s.Now)
	}
}

// fakeThermostat mimics Andersen: it mutates a particle's velocity
// directly via store.Get, without itself calling store.Update to
// stream the particle's position to the current time first — exactly
// the precondition fireSystem's pre-stream pass must satisfy on its
// behalf.
type fakeThermostat struct {
	dt      float64
	target  int
	newVel  vec3.Vec
	touched float64 // the particle's Time field, as observed inside RunEvent
}

func (f *fakeThermostat) Stream(dt float64) { f.dt -= dt }
func (f *fakeThermostat) NextDT() float64   { return f.dt }
func (f *fakeThermostat) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	p := store.Get(f.target)
	f.touched = p.Time
	p.Velocity = f.newVel
	f.dt = math.Inf(1)
	return 0
}

func TestSchedulerStreamsEveryParticleBeforeASystemEventMutatesVelocity(t *testing.T) {
	s, _ := newSchedulerFixture(5)
	s.Initialise()

	sys := &fakeThermostat{dt: 2, target: 1, newVel: vec3.New(9, 0, 0)}
	s.Systems = []system.System{sys}

	if _, _, ok := s.Step(); !ok {
		t.Fatalf("expected the thermostat's countdown to fire")
	}
	if s.Now != 2 {
		t.Fatalf("expected the clock at t=2, got %v", s.Now)
	}
	// Particle 1 must have been streamed to t=2 (its Time field set to
	// the current clock) before RunEvent read it, not left at its
	// stale initial value.
	if sys.touched != 2 {
		t.Fatalf("expected particle 1 streamed to t=2 before RunEvent mutated it, got Time=%v", sys.touched)
	}
	if got := s.Store.Get(1).Velocity; got != vec3.New(9, 0, 0) {
		t.Fatalf("expected particle 1's velocity set by RunEvent, got %v", got)
	}
}

func TestEventHeapOrdersByTimeThenInsertionOrder(t *testing.T) {
	var h eventHeap
	h.Push(candidate{t: 3, seq: 0})
	h.Push(candidate{t: 1, seq: 1})
	h.Push(candidate{t: 1, seq: 2})

	// Len/Less/Swap is exercised directly (no heap.Init) since the
	// fix under test is the ordering rule itself, not the heap
	// invariant machinery from container/heap.
	if !h.Less(1, 0) {
		t.Fatalf("expected the t=1 entry to sort before the t=3 entry")
	}
	if !h.Less(1, 2) {
		t.Fatalf("expected equal-time entries to break ties by insertion order (seq)")
	}
}
