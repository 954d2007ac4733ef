package cell

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// ShearedList adapts List for a Lees-Edwards boundary. The cell
// lattice itself never moves, but a particle leaving through the top
// or bottom Y row borders the sheared image rather than the cell
// directly across the box, so its X-neighbour search must be offset
// by the boundary's accumulated slide. Grounded on dynamo's CGCells
// combined with BCLeesEdwards
// (original_source/.../globals/gcells.cpp, dynamics/BC/LEBC.hpp).
type ShearedList struct {
	*List
	Boundary *bc.LeesEdwards
}

// NewShearedList builds a ShearedList over the same lattice as List,
// driven by a Lees-Edwards boundary.
func NewShearedList(boxSize vec3.Vec, maxDiam float64, store *particle.Store, boundary *bc.LeesEdwards) *ShearedList {
	return &ShearedList{List: NewList(boxSize, maxDiam, store, boundary), Boundary: boundary}
}

// Transit overrides List.Transit: for a move along any axis but Y it
// is identical to List.Transit. A move that lands a particle in the
// first or last Y row additionally searches an X-shifted slab of
// cells (shifted by the boundary's accumulated slide, Dxd, rounded to
// whole cells) to pick up neighbours across the sheared image.
func (s *ShearedList) Transit(id, dim int) []int {
	axis := dim - 1
	if axis < 0 {
		axis = -dim - 1
	}

	neighbours := s.List.Transit(id, dim)
	if axis != 1 {
		return neighbours
	}

	coords := s.decode(s.cellOf[id])
	maxY := s.counts[1] - 1
	if coords[1] != 0 && coords[1] != maxY {
		return neighbours
	}

	shiftCells := int(math.Round(s.Boundary.Dxd / s.width.X))
	if shiftCells == 0 {
		return neighbours
	}

	seen := make(map[int]bool, len(neighbours))
	for _, n := range neighbours {
		seen[n] = true
	}

	const dim2 = 2
	for o2 := -1; o2 <= 1; o2++ {
		c := coords
		c[0] = mod(c[0]+shiftCells, s.counts[0])
		c[dim2] = mod(c[dim2]+o2, s.counts[dim2])
		for p := s.head[s.encode(c)]; p >= 0; p = s.next[p] {
			if p != id && !seen[p] {
				neighbours = append(neighbours, p)
				seen[p] = true
			}
		}
	}
	return neighbours
}

// Neighbours overrides List.Neighbours with the same shear-shift
// extension Transit applies: a particle sitting in the first or last
// Y row additionally sees the X-shifted slab across the sheared
// image.
func (s *ShearedList) Neighbours(id int) []int {
	neighbours := s.List.Neighbours(id)

	coords := s.decode(s.cellOf[id])
	maxY := s.counts[1] - 1
	if coords[1] != 0 && coords[1] != maxY {
		return neighbours
	}

	shiftCells := int(math.Round(s.Boundary.Dxd / s.width.X))
	if shiftCells == 0 {
		return neighbours
	}

	seen := make(map[int]bool, len(neighbours))
	for _, n := range neighbours {
		seen[n] = true
	}

	const dim2 = 2
	for o2 := -1; o2 <= 1; o2++ {
		c := coords
		c[0] = mod(c[0]+shiftCells, s.counts[0])
		c[dim2] = mod(c[dim2]+o2, s.counts[dim2])
		for p := s.head[s.encode(c)]; p >= 0; p = s.next[p] {
			if p != id && !seen[p] {
				neighbours = append(neighbours, p)
				seen[p] = true
			}
		}
	}
	return neighbours
}
