// Package sched implements the core event loop of spec.md §4.4: a
// priority queue of per-particle predicted events with lazy,
// generation-counter invalidation, driving interaction, local,
// global, and system event sources to a common simulation clock.
// Grounded on dynamo's CScheduler/CSSorter pair
// (original_source/.../schedulers/scheduler.hpp,
// schedulers/sorters/sorter.hpp): a per-particle event counter
// invalidates stale queue entries without a full rebuild, and
// fullUpdate(particle) is the recompute-on-change primitive every
// resolved event drives.
package sched

import (
	"container/heap"
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/global"
	"github.com/sarchlab/dynamica/interaction"
	"github.com/sarchlab/dynamica/local"
	"github.com/sarchlab/dynamica/output"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/system"
	"github.com/sarchlab/dynamica/vec3"
)

// cellList is the read-only neighbour query sched needs to enumerate
// interaction candidates for a particle. Declared at point of use
// (rather than importing package cell) so sched doesn't depend on one
// concrete lattice implementation; satisfied by *cell.List and
// *cell.ShearedList.
type cellList interface {
	Neighbours(id int) []int
}

// Scheduler is the single event loop driving one simulation's
// particle store to completion. It owns the priority queue; nothing
// else touches it while an event is in flight (spec.md §5).
type Scheduler struct {
	Store    *particle.Store
	Boundary bc.BC
	Flow     particle.Streamer
	Props    particle.Properties
	Cells    cellList

	Interactions []interaction.Interaction
	Locals       []local.Local
	Globals      []global.Global
	Systems      []system.System

	// Sleep, if set, is notified after every interaction (two-particle)
	// collision so particles that have settled under gravity can be
	// parked. Grounded on SSleep::particlesUpdated, which the original
	// wires in exactly this way rather than through the generic System
	// interface.
	Sleep *system.Sleep

	Now float64

	pq      eventHeap
	nextSeq int64
}

// NewScheduler returns a Scheduler with an empty queue. Call
// Initialise once every event source is registered to seed it.
func NewScheduler(store *particle.Store, boundary bc.BC, flow particle.Streamer, props particle.Properties, cells cellList) *Scheduler {
	s := &Scheduler{Store: store, Boundary: boundary, Flow: flow, Props: props, Cells: cells}
	heap.Init(&s.pq)
	return s
}

// Initialise pushes an initial candidate event for every alive
// particle, against every applicable interaction (restricted to its
// current cell neighbourhood), local, and global. Grounded on
// CScheduler::initialise.
func (s *Scheduler) Initialise() {
	s.Store.ForEach(func(p *particle.Particle) {
		s.repredict(p.ID)
	})
}

// Step runs exactly one scheduler iteration: find the earliest valid
// event (particle or system), advance the clock, dispatch it, and
// repredict every particle it touched. Returns false once no further
// event exists (every source's next candidate is +Inf), meaning the
// simulation has quiesced.
func (s *Scheduler) Step() (output.EventKind, output.EventData, bool) {
	eventTime, haveEvent := s.peekValid()
	dtEvent := math.Inf(1)
	if haveEvent {
		dtEvent = eventTime - s.Now
	}
	sysIdx, dtSys := s.nextSystem()

	if !haveEvent && sysIdx < 0 {
		return output.None, output.EventData{}, false
	}

	if sysIdx >= 0 && (!haveEvent || dtSys <= dtEvent) {
		kind, data := s.fireSystem(dtSys, sysIdx)
		return kind, data, true
	}

	top := heap.Pop(&s.pq).(candidate)
	dt := top.t - s.Now
	s.streamSystems(dt)
	s.Now = top.t

	switch top.kind {
	case kindInteraction:
		return s.fireInteraction(top)
	case kindLocal:
		return s.fireLocal(top)
	default:
		return s.fireGlobal(top)
	}
}

// peekValid pops and discards stale heap entries (lazy deletion, step
// 2 of spec.md §4.4) until the top is valid or the queue is empty,
// returning the valid top's absolute fire time.
func (s *Scheduler) peekValid() (float64, bool) {
	for len(s.pq) > 0 {
		top := s.pq[0]
		if s.valid(top) {
			return top.t, true
		}
		heap.Pop(&s.pq)
	}
	return 0, false
}

func (s *Scheduler) valid(c candidate) bool {
	if s.Store.Get(c.p1).Generation != c.gen1 {
		return false
	}
	if c.p2 >= 0 && s.Store.Get(c.p2).Generation != c.gen2 {
		return false
	}
	return true
}

func (s *Scheduler) nextSystem() (idx int, dt float64) {
	best := math.Inf(1)
	idx = -1
	for i, sys := range s.Systems {
		if d := sys.NextDT(); d < best {
			best = d
			idx = i
		}
	}
	return idx, best
}

func (s *Scheduler) streamSystems(dt float64) {
	for _, sys := range s.Systems {
		sys.Stream(dt)
	}
}

// fireInteraction resolves a pairwise interaction candidate. Grounded
// on CScheduler::runNextEvent's interaction branch.
func (s *Scheduler) fireInteraction(c candidate) (output.EventKind, output.EventData) {
	s.Store.UpdatePair(s.Flow, c.p1, c.p2, s.Now)
	p1, p2 := s.Store.Get(c.p1), s.Store.Get(c.p2)
	m1, m2 := s.Props.Mass(c.p1), s.Props.Mass(c.p2)
	pre1, pre2 := p1.Velocity, p2.Velocity

	src := s.Interactions[c.srcIdx]
	ev := src.GetEvent(c.p1, c.p2, s.Store, s.Boundary)
	dKE1, dKE2 := src.RunEvent(ev, s.Store, s.Boundary)

	s.Store.BumpGeneration(c.p1)
	s.Store.BumpGeneration(c.p2)
	s.repredict(c.p1)
	s.repredict(c.p2)

	if s.Sleep != nil {
		s.Sleep.Notify(c.p1, c.p2, s.Store)
	}

	data := output.EventData{Pairs: []output.ParticleDelta{
		{ID: c.p1, Mass: m1, PreVelocity: pre1, PostVelocity: p1.Velocity, DeltaKE: dKE1},
		{ID: c.p2, Mass: m2, PreVelocity: pre2, PostVelocity: p2.Velocity, DeltaKE: dKE2},
	}}
	return interactionKind(ev.Type), data
}

// fireLocal resolves a single-particle local (wall/plate) candidate.
func (s *Scheduler) fireLocal(c candidate) (output.EventKind, output.EventData) {
	s.Store.Update(s.Flow, c.p1, s.Now)
	p := s.Store.Get(c.p1)
	m := s.Props.Mass(c.p1)
	pre := p.Velocity

	src := s.Locals[c.srcIdx]
	ev := src.GetEvent(c.p1, s.Store, s.Boundary)
	dKE := src.RunEvent(ev, s.Store, s.Boundary)

	s.Store.BumpGeneration(c.p1)
	s.repredict(c.p1)

	// Sleep only reacts to two-particle collisions (SSleep::particlesUpdated
	// walks NEventData::L2partChanges exclusively): a wall/local bounce has
	// no second particle to compare against, so it's not reported here.

	data := output.EventData{Singles: []output.ParticleDelta{
		{ID: c.p1, Mass: m, PreVelocity: pre, PostVelocity: p.Velocity, DeltaKE: dKE},
	}}
	return output.Wall, data
}

// fireGlobal resolves a virtual global candidate (cell transit,
// parabola/PBC sentinel). These never change kinetic energy, but a
// cell-transit additionally surfaces newly-visible neighbours that
// must gain a fresh interaction candidate against the moved particle
// (spec.md §4.6 step 2), read back via CellTransit.LastTransit since
// Global.RunEvent itself returns nothing.
func (s *Scheduler) fireGlobal(c candidate) (output.EventKind, output.EventData) {
	s.Store.Update(s.Flow, c.p1, s.Now)

	src := s.Globals[c.srcIdx]
	ev := src.GetEvent(c.p1, s.Store, s.Boundary)
	src.RunEvent(ev, s.Store, s.Boundary)

	s.Store.BumpGeneration(c.p1)
	s.repredict(c.p1)

	kind := output.Global
	if ct, ok := src.(interface{ LastTransit() (int, []int) }); ok {
		kind = output.Cell
		moved, neighbours := ct.LastTransit()
		s.pushPairCandidatesAgainst(moved, neighbours)
		s.pushLocalAndGlobalCandidates(moved)
	}
	return kind, output.EventData{}
}

// fireSystem resolves whichever system reported the smallest NextDT.
// Grounded on CSystem::fixedCounter dispatch (spec.md §4.2.4): every
// system's Stream(dt) runs first, then the winner's RunEvent. Since
// the System interface doesn't report which particles it touched, the
// scheduler diffs every alive particle's velocity before and after —
// acceptable because system events are rare relative to interaction
// events (documented in DESIGN.md).
func (s *Scheduler) fireSystem(dt float64, idx int) (output.EventKind, output.EventData) {
	s.streamSystems(dt)
	s.Now += dt
	sys := s.Systems[idx]

	// A System picks its own participant(s) internally (e.g.
	// Andersen's pick(a.Range, ...)), so unlike interaction/local/
	// global dispatch — where the scheduler knows the participants up
	// front and streams exactly those — every alive particle must
	// already be current before RunEvent runs, since RunEvent itself
	// never streams (it mutates velocity straight from whatever
	// position/velocity it finds).
	pre := make(map[int]vec3.Vec)
	s.Store.ForEach(func(p *particle.Particle) {
		s.Store.Update(s.Flow, p.ID, s.Now)
		pre[p.ID] = p.Velocity
	})

	sys.RunEvent(s.Store, s.Boundary)

	var deltas []output.ParticleDelta
	s.Store.ForEach(func(p *particle.Particle) {
		old := pre[p.ID]
		if p.Velocity == old {
			return
		}
		m := s.Props.Mass(p.ID)
		dKE := 0.5 * m * (p.Velocity.Nrm2() - old.Nrm2())
		deltas = append(deltas, output.ParticleDelta{
			ID: p.ID, Mass: m, PreVelocity: old, PostVelocity: p.Velocity, DeltaKE: dKE,
		})
		s.Store.BumpGeneration(p.ID)
		s.repredict(p.ID)
	})

	return systemKind(sys), output.EventData{Singles: deltas}
}

func interactionKind(t interaction.EventType) output.EventKind {
	switch t {
	case interaction.Core:
		return output.Core
	case interaction.WellIn:
		return output.WellIn
	case interaction.WellOut:
		return output.WellOut
	case interaction.Bounce:
		return output.Bounce
	case interaction.Virtual:
		return output.Virtual
	default:
		return output.NonEvent
	}
}

func systemKind(sys system.System) output.EventKind {
	switch sys.(type) {
	case *system.Andersen:
		return output.Gaussian
	case *system.Rescale:
		return output.Rescale
	case *system.Umbrella:
		return output.Umbrella
	case *system.DSMCSpheres, *system.RingDSMC:
		return output.DSMC
	case *system.Sleep:
		return output.Sleep
	default:
		// system.CompressionHack and system.Maintainer are pure
		// bookkeeping systems with no physical event to report.
		return output.NonEvent
	}
}
