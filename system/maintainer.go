package system

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
)

// Maintainer is a periodic no-op system: it fires every Period of
// simulation time purely to force a full scheduler rebuild, as a
// backstop against any drift accumulated by lazily-invalidated
// predictions. Grounded on dynamo's CSSchedMaintainer
// (original_source/.../dynamics/systems/schedMaintainer.cpp). Rebuild
// is a Notify hook rather than a return value, since RunEvent's
// kinetic-energy-change contract has nothing to report here.
type Maintainer struct {
	Period float64
	Notify func()

	dt float64
}

// NewMaintainer returns a Maintainer firing every period of
// simulation time.
func NewMaintainer(period float64, notify func()) *Maintainer {
	return &Maintainer{Period: period, Notify: notify, dt: period}
}

// Stream implements System.
func (m *Maintainer) Stream(dt float64) { m.dt -= dt }

// NextDT implements System.
func (m *Maintainer) NextDT() float64 { return m.dt }

// RunEvent implements System: invokes Notify (the scheduler rebuild
// hook, if set) and reschedules. Grounded on
// CSSchedMaintainer::runEvent.
func (m *Maintainer) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	if m.Notify != nil {
		m.Notify()
	}
	m.dt = m.Period
	return 0
}
