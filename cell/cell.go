// Package cell implements the uniform neighbour-list cell grid (spec
// component, §4.6): a box-spanning lattice of cells, each holding its
// resident particles in a doubly-linked list via parallel next/prev
// arrays, so insertion/removal during a cell transit is O(1). Grounded
// on dynamo's CGCells
// (original_source/.../globals/gcells.cpp).
package cell

import (
	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// List is a periodic cell lattice covering a box of BoxSize centred
// on the origin (matching bc.Periodic's convention). It implements
// global.CellList and system's cell-dimensions contract, so it can
// drive both CellTransit and CompressionHack directly.
type List struct {
	BoxSize  vec3.Vec
	store    *particle.Store
	boundary bc.BC

	counts [3]int
	width  vec3.Vec

	head   []int
	next   []int
	prev   []int
	cellOf []int
}

// NewList builds a List sized so each cell is at least maxDiam wide
// (at least 3 cells per axis, matching CGCells::addCells's minimum),
// and places every particle currently in store.
func NewList(boxSize vec3.Vec, maxDiam float64, store *particle.Store, boundary bc.BC) *List {
	n := store.Len()
	l := &List{
		BoxSize: boxSize, store: store, boundary: boundary,
		next: make([]int, n), prev: make([]int, n), cellOf: make([]int, n),
	}
	for i := range l.next {
		l.next[i], l.prev[i], l.cellOf[i] = -1, -1, -1
	}
	l.Reinitialise(maxDiam)
	return l
}

func axisCount(size, maxCell float64) int {
	c := int(size / maxCell)
	if c < 3 {
		c = 3
	}
	return c
}

// CellDimensions implements the cell-dimensions contract system.CompressionHack needs.
func (l *List) CellDimensions() vec3.Vec { return l.width }

// CellWidth implements global.CellList.
func (l *List) CellWidth() vec3.Vec { return l.width }

// Reinitialise rebuilds the lattice around a new minimum cell
// dimension and re-scans every particle's current position into it.
// Grounded on CGCells::reinitialise/addCells.
func (l *List) Reinitialise(minCellDim float64) {
	cx := axisCount(l.BoxSize.X, minCellDim)
	cy := axisCount(l.BoxSize.Y, minCellDim)
	cz := axisCount(l.BoxSize.Z, minCellDim)
	l.counts = [3]int{cx, cy, cz}
	l.width = vec3.New(l.BoxSize.X/float64(cx), l.BoxSize.Y/float64(cy), l.BoxSize.Z/float64(cz))

	l.head = make([]int, cx*cy*cz)
	for i := range l.head {
		l.head[i] = -1
	}
	for i := range l.cellOf {
		l.cellOf[i] = -1
	}

	l.store.ForEach(func(p *particle.Particle) {
		l.insert(p.ID, l.encode(l.coordsFor(p.Position)))
	})
}

func (l *List) coordsFor(pos vec3.Vec) [3]int {
	wrapped := l.boundary.ApplyBC(pos)
	rel := wrapped.Add(l.BoxSize.Scale(0.5))
	return [3]int{
		clampCoord(int(rel.X/l.width.X), l.counts[0]),
		clampCoord(int(rel.Y/l.width.Y), l.counts[1]),
		clampCoord(int(rel.Z/l.width.Z), l.counts[2]),
	}
}

func clampCoord(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

func (l *List) encode(c [3]int) int {
	return c[0] + c[1]*l.counts[0] + c[2]*l.counts[0]*l.counts[1]
}

func (l *List) decode(idx int) [3]int {
	x := idx % l.counts[0]
	idx /= l.counts[0]
	y := idx % l.counts[1]
	z := idx / l.counts[1]
	return [3]int{x, y, z}
}

func (l *List) insert(id, cellIdx int) {
	l.cellOf[id] = cellIdx
	l.next[id] = l.head[cellIdx]
	l.prev[id] = -1
	if l.head[cellIdx] >= 0 {
		l.prev[l.head[cellIdx]] = id
	}
	l.head[cellIdx] = id
}

func (l *List) remove(id int) {
	cellIdx := l.cellOf[id]
	if cellIdx < 0 {
		return
	}
	if l.prev[id] >= 0 {
		l.next[l.prev[id]] = l.next[id]
	} else {
		l.head[cellIdx] = l.next[id]
	}
	if l.next[id] >= 0 {
		l.prev[l.next[id]] = l.prev[id]
	}
	l.next[id], l.prev[id], l.cellOf[id] = -1, -1, -1
}

// CellOrigin implements global.CellList: the lower corner of id's
// current cell, in absolute (already box-centred) coordinates.
func (l *List) CellOrigin(id int) vec3.Vec {
	c := l.decode(l.cellOf[id])
	origin := vec3.New(float64(c[0])*l.width.X, float64(c[1])*l.width.Y, float64(c[2])*l.width.Z)
	return origin.Sub(l.BoxSize.Scale(0.5))
}

// Neighbours returns every other resident of the 3x3x3 block of cells
// centred on id's current cell, without moving anything. Grounded on
// CGCells::getParticleNeighbourhood: the read-only counterpart to
// Transit's neighbour walk, used by the scheduler to enumerate
// interaction candidates for a particle that hasn't just crossed a
// cell boundary (initial load, or any other particle's re-prediction).
func (l *List) Neighbours(id int) []int {
	coords := l.decode(l.cellOf[id])

	var neighbours []int
	for ox := -1; ox <= 1; ox++ {
		for oy := -1; oy <= 1; oy++ {
			for oz := -1; oz <= 1; oz++ {
				c := [3]int{
					mod(coords[0]+ox, l.counts[0]),
					mod(coords[1]+oy, l.counts[1]),
					mod(coords[2]+oz, l.counts[2]),
				}
				for p := l.head[l.encode(c)]; p >= 0; p = l.next[p] {
					if p != id {
						neighbours = append(neighbours, p)
					}
				}
			}
		}
	}
	return neighbours
}

// Transit implements global.CellList: moves id one cell along axis
// abs(dim)-1 in the direction sign(dim) (matching
// liouville.Flow.GetSquareCellTransitDim's signed 1-based encoding),
// and returns every other resident of the 3x3 slab of cells through
// the destination cell, perpendicular to the crossed axis — a
// fixed-overlink-1 simplification of CGCells::runEvent's generalised
// overlink neighbour walk. The slab one further along the crossed
// axis, which the move brings into range, is not walked.
func (l *List) Transit(id, dim int) []int {
	axis := dim - 1
	dir := 1
	if dim < 0 {
		axis = -dim - 1
		dir = -1
	}

	coords := l.decode(l.cellOf[id])
	coords[axis] = mod(coords[axis]+dir, l.counts[axis])

	l.remove(id)
	l.insert(id, l.encode(coords))

	dim1 := (axis + 1) % 3
	dim2 := (axis + 2) % 3

	var neighbours []int
	for o1 := -1; o1 <= 1; o1++ {
		for o2 := -1; o2 <= 1; o2++ {
			c := coords
			c[dim1] = mod(c[dim1]+o1, l.counts[dim1])
			c[dim2] = mod(c[dim2]+o2, l.counts[dim2])
			for p := l.head[l.encode(c)]; p >= 0; p = l.next[p] {
				if p != id {
					neighbours = append(neighbours, p)
				}
			}
		}
	}
	return neighbours
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
