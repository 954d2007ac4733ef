package global

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// gravityFlow is the minimal contract ParabolaSentinel needs: the
// uniform body acceleration applied to DYNAMIC particles. Satisfied
// by liouville.NewtonianGravity.
type gravityFlow interface {
	Gravity() vec3.Vec
}

// ParabolaSentinel fires at each particle's next turning point along
// the gravity direction (where its velocity component along gravity
// passes through zero), forcing that component to exactly zero and
// rescheduling. Without this, a cell-transit prediction made near a
// turning point can drift across floating-point error and predict the
// wrong face. Grounded on spec.md §4.2.3 (no CGParabolaSentinel file
// survives in the kept original_source set).
type ParabolaSentinel struct {
	Range Range
	Flow  gravityFlow
}

// NewParabolaSentinel returns a ParabolaSentinel Global.
func NewParabolaSentinel(r Range, flow gravityFlow) *ParabolaSentinel {
	return &ParabolaSentinel{Range: r, Flow: flow}
}

// AppliesTo implements Global.
func (s *ParabolaSentinel) AppliesTo(i int) bool { return s.Range.Applies(i) }

// GetEvent implements Global: the time at which v(t)·g first reaches
// zero, i.e. the bottom/top of the particle's parabolic arc.
func (s *ParabolaSentinel) GetEvent(i int, store *particle.Store, boundary bc.BC) Event {
	p := store.Get(i)
	if !p.Dynamic() {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	g := s.Flow.Gravity()
	g2 := g.Nrm2()
	if g2 == 0 {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	dt := -p.Velocity.Dot(g) / g2
	if dt <= 0 {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	return Event{P: i, DT: dt, Type: ParabolaEvent}
}

// RunEvent implements Global: zeroes the velocity component along
// gravity exactly, removing any accumulated floating-point drift.
func (s *ParabolaSentinel) RunEvent(ev Event, store *particle.Store, boundary bc.BC) {
	p := store.Get(ev.P)
	g := s.Flow.Gravity()
	g2 := g.Nrm2()
	if g2 == 0 {
		return
	}
	ghat := g.Scale(1 / math.Sqrt(g2))
	p.Velocity = p.Velocity.AddScaled(-p.Velocity.Dot(ghat), ghat)
}
