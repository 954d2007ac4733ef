package global

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// transitFlow is the minimal flow contract CellTransit needs: the
// per-particle transit time/direction to the nearer face of its
// current cell, already implemented by every liouville.Flow via
// GetSquareCellTransitTime/GetSquareCellTransitDim.
type transitFlow interface {
	GetSquareCellTransitTime(p *particle.Particle, origin, width vec3.Vec) float64
	GetSquareCellTransitDim(p *particle.Particle, origin, width vec3.Vec) int
}

// CellList is the minimal contract a neighbourhood-aware cell list
// exposes to CellTransit: the origin of the cell holding a particle,
// the lattice's uniform cell width, and the transition itself (moving
// the particle's bookkeeping into its new cell and reporting the
// residents of the slab of cells through its new cell, after
// CGCells::runEvent's neighbour-walk; cell.List's Transit doc says
// which cells that slab covers). Grounded on dynamo's CGCells
// (original_source/.../dynamics/globals/gcells.cpp); implemented by
// cell.List.
type CellList interface {
	CellOrigin(id int) vec3.Vec
	CellWidth() vec3.Vec
	Transit(id, dim int) (newNeighbours []int)
}

// CellTransit fires the next time a particle would leave its current
// cell, hands the move to the cell list, and lets the scheduler know
// about any newly-visible neighbours. Grounded on CGCells's
// getEvent/runEvent pair.
type CellTransit struct {
	Range Range
	Flow  transitFlow
	Cells CellList

	lastMoved      int
	lastNeighbours []int
}

// NewCellTransit returns a CellTransit Global.
func NewCellTransit(r Range, flow transitFlow, cells CellList) *CellTransit {
	return &CellTransit{Range: r, Flow: flow, Cells: cells}
}

// AppliesTo implements Global.
func (c *CellTransit) AppliesTo(i int) bool { return c.Range.Applies(i) }

// GetEvent implements Global. Grounded on CGCells::getEvent.
func (c *CellTransit) GetEvent(i int, store *particle.Store, boundary bc.BC) Event {
	p := store.Get(i)
	origin, width := c.Cells.CellOrigin(i), c.Cells.CellWidth()
	dt := c.Flow.GetSquareCellTransitTime(p, origin, width)
	if math.IsInf(dt, 1) {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	return Event{P: i, DT: dt, Type: CellTransitEvent}
}

// RunEvent implements Global. Grounded on CGCells::runEvent: the
// actual cell bookkeeping (removing the particle from its old cell,
// adding it to the new one, and discovering newly-adjacent
// particles) belongs to the cell list; CellTransit only drives it and
// reschedules the virtual event.
func (c *CellTransit) RunEvent(ev Event, store *particle.Store, boundary bc.BC) {
	p := store.Get(ev.P)
	origin, width := c.Cells.CellOrigin(ev.P), c.Cells.CellWidth()
	dim := c.Flow.GetSquareCellTransitDim(p, origin, width)
	c.lastMoved = ev.P
	c.lastNeighbours = c.Cells.Transit(ev.P, dim)
}

// LastTransit reports the particle moved and the newly-visible
// neighbours discovered by the most recent RunEvent call. The Global
// interface's RunEvent has no return value, so the scheduler reads
// this immediately afterwards (via a type assertion) to push the
// pair-event candidates CGCells::runEvent's neighbour walk calls for,
// rather than widening the shared interface for one implementation.
func (c *CellTransit) LastTransit() (moved int, neighbours []int) {
	return c.lastMoved, c.lastNeighbours
}
