package global

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
)

// PBCSentinel is a safety-valve virtual event: it forces a
// re-prediction before a particle could have travelled further than
// MaxTravel (conventionally half the smallest primary cell
// dimension), which bounds how stale a cached event prediction can
// become under periodic wrapping. Grounded on spec.md §4.2.3 (no
// CGPBCSentinel file survives in the kept original_source set).
type PBCSentinel struct {
	Range     Range
	MaxTravel float64
}

// NewPBCSentinel returns a PBCSentinel Global bounding travel to
// maxTravel before forcing a re-prediction.
func NewPBCSentinel(r Range, maxTravel float64) *PBCSentinel {
	return &PBCSentinel{Range: r, MaxTravel: maxTravel}
}

// AppliesTo implements Global.
func (s *PBCSentinel) AppliesTo(i int) bool { return s.Range.Applies(i) }

// GetEvent implements Global: the time at which the particle's
// straight-line travel would first exceed MaxTravel.
func (s *PBCSentinel) GetEvent(i int, store *particle.Store, boundary bc.BC) Event {
	p := store.Get(i)
	speed := p.Velocity.Nrm()
	if speed == 0 {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	return Event{P: i, DT: s.MaxTravel / speed, Type: PBCEvent}
}

// RunEvent implements Global: purely virtual, the particle's state is
// untouched. Firing it is itself the entire point — the scheduler
// re-predicts everything for this particle as a side effect of
// processing any event.
func (s *PBCSentinel) RunEvent(ev Event, store *particle.Store, boundary bc.BC) {}
