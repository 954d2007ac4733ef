package sched

import (
	"container/heap"
	"math"
)

// repredict recomputes every event source's candidate for particle
// id and pushes the finite ones. This is the scheduler's
// fullUpdate(particle) (spec.md §4.4 step 6, CScheduler::fullUpdate):
// called on every particle an event just touched, and once per
// particle at Initialise.
//
// Duplicate pair candidates for the same unordered (p,q) can
// accumulate when both p and q are independently repredicted (each
// walk considers the other a neighbour). This is left unguarded
// rather than deduplicated: lazy deletion already discards whichever
// copy is consumed first once either participant's generation moves
// on, exactly as dynamo's own lazy-deletion scheme tolerates the
// symmetric duplication from fullUpdate(p1) and fullUpdate(p2) firing
// independently.
func (s *Scheduler) repredict(id int) {
	s.Store.Update(s.Flow, id, s.Now)
	s.pushPairCandidatesAgainst(id, s.Cells.Neighbours(id))
	s.pushLocalAndGlobalCandidates(id)
}

// pushPairCandidatesAgainst pushes, for every applicable interaction,
// the predicted event between moved and each of neighbours. Used both
// by repredict's full neighbourhood walk and by fireGlobal's
// newly-visible-neighbours walk after a cell transit.
func (s *Scheduler) pushPairCandidatesAgainst(moved int, neighbours []int) {
	for _, q := range neighbours {
		if q == moved {
			continue
		}
		s.Store.UpdatePair(s.Flow, moved, q, s.Now)
		for srcIdx, in := range s.Interactions {
			if !in.AppliesTo(moved, q) {
				continue
			}
			ev := in.GetEvent(moved, q, s.Store, s.Boundary)
			if math.IsInf(ev.DT, 1) {
				continue
			}
			p1, p2 := moved, q
			if p2 < p1 {
				p1, p2 = p2, p1
			}
			s.push(candidate{
				t: s.Now + ev.DT, kind: kindInteraction, srcIdx: srcIdx,
				p1: p1, p2: p2,
				gen1: s.Store.Get(p1).Generation, gen2: s.Store.Get(p2).Generation,
			})
		}
	}
}

// pushLocalAndGlobalCandidates pushes, for every applicable local and
// global, the predicted single-particle event for id.
func (s *Scheduler) pushLocalAndGlobalCandidates(id int) {
	for srcIdx, loc := range s.Locals {
		if !loc.AppliesTo(id) {
			continue
		}
		ev := loc.GetEvent(id, s.Store, s.Boundary)
		if math.IsInf(ev.DT, 1) {
			continue
		}
		s.push(candidate{
			t: s.Now + ev.DT, kind: kindLocal, srcIdx: srcIdx,
			p1: id, p2: -1, gen1: s.Store.Get(id).Generation,
		})
	}
	for srcIdx, g := range s.Globals {
		if !g.AppliesTo(id) {
			continue
		}
		ev := g.GetEvent(id, s.Store, s.Boundary)
		if math.IsInf(ev.DT, 1) {
			continue
		}
		s.push(candidate{
			t: s.Now + ev.DT, kind: kindGlobal, srcIdx: srcIdx,
			p1: id, p2: -1, gen1: s.Store.Get(id).Generation,
		})
	}
}

func (s *Scheduler) push(c candidate) {
	c.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.pq, c)
}
