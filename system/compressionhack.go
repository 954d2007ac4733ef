package system

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// cellDimensions is the minimal contract CompressionHack needs from a
// shrinking cell lattice: its current per-axis cell width, and a way
// to rebuild it around a new minimum cell dimension. Satisfied by
// cell.List under compression.
type cellDimensions interface {
	CellDimensions() vec3.Vec
	Reinitialise(minCellDim float64)
}

// CompressionHack periodically rebuilds a cell list as the simulation
// box shrinks under compression, just before the smallest cell
// dimension would fall below the longest interaction diameter (which
// would silently start missing neighbours). Grounded on dynamo's
// CSGlobCellHack
// (original_source/.../dynamics/systems/globCellCompressionHack.cpp).
type CompressionHack struct {
	GrowthRate float64 // fractional shrink rate of cell dimensions per unit time
	MaxDiam    float64 // longest interaction diameter in the system
	Cells      cellDimensions

	dt float64
}

// NewCompressionHack returns a CompressionHack system and schedules
// its first rebuild.
func NewCompressionHack(growthRate, maxDiam float64, cells cellDimensions) *CompressionHack {
	h := &CompressionHack{GrowthRate: growthRate, MaxDiam: maxDiam, Cells: cells}
	h.dt = h.timeToThreshold()
	return h
}

func (h *CompressionHack) minDim() float64 {
	d := h.Cells.CellDimensions()
	m := d.X
	if d.Y < m {
		m = d.Y
	}
	if d.Z < m {
		m = d.Z
	}
	return m
}

// timeToThreshold estimates the time until the smallest cell
// dimension shrinks to MaxDiam, given GrowthRate. Grounded on
// CSGlobCellHack::initialise's "(minDim/maxOrigDiam - 1)/growthRate".
func (h *CompressionHack) timeToThreshold() float64 {
	return (h.minDim()/h.MaxDiam - 1.0) / h.GrowthRate
}

// Stream implements System.
func (h *CompressionHack) Stream(dt float64) { h.dt -= dt }

// NextDT implements System.
func (h *CompressionHack) NextDT() float64 { return h.dt }

// RunEvent implements System: rebuilds the cell lattice around
// 1.0001x the current minimum cell dimension, matching
// CSGlobCellHack::runEvent, and reschedules the next rebuild. This
// event never changes any particle state, so it always returns 0.
func (h *CompressionHack) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	h.Cells.Reinitialise(1.0001 * h.minDim())
	h.dt = h.timeToThreshold()
	return 0
}
