package cell

import (
	"testing"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

func TestNewListPlacesParticleAndReportsOrigin(t *testing.T) {
	store := particle.NewStore(1)
	store.Get(0).Position = vec3.New(5, 5, 5)
	boundary := bc.NewPeriodic(vec3.New(12, 12, 12))

	l := NewList(vec3.New(12, 12, 12), 4, store, boundary)

	if l.CellWidth() != vec3.New(4, 4, 4) {
		t.Fatalf("expected a 4x4x4 lattice, got width %v", l.CellWidth())
	}
	if got := l.CellOrigin(0); got != vec3.New(2, 2, 2) {
		t.Fatalf("expected cell origin (2,2,2), got %v", got)
	}
}

func TestTransitMovesParticleAndReturnsNeighbours(t *testing.T) {
	store := particle.NewStore(2)
	store.Get(0).Position = vec3.New(5.9, 0, 0)
	store.Get(1).Position = vec3.New(-5.9, 0, 0)
	boundary := bc.NewPeriodic(vec3.New(12, 12, 12))

	l := NewList(vec3.New(12, 12, 12), 4, store, boundary)

	neighbours := l.Transit(0, 1)

	found := false
	for _, n := range neighbours {
		if n == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected particle 1 to be discovered as a neighbour after the wraparound transit, got %v", neighbours)
	}
	if got := l.CellOrigin(0); got != vec3.New(-6, -2, -2) {
		t.Fatalf("expected particle 0 to land in cell (0,1,1) -> origin (-6,-2,-2), got %v", got)
	}
}

func TestReinitialiseRebuildsLatticeFromLiveStore(t *testing.T) {
	store := particle.NewStore(1)
	store.Get(0).Position = vec3.New(1, 1, 1)
	boundary := bc.NewPeriodic(vec3.New(12, 12, 12))

	l := NewList(vec3.New(12, 12, 12), 4, store, boundary)
	l.Reinitialise(2)

	if w := l.CellWidth(); w.X >= 4 {
		t.Fatalf("expected a finer lattice after shrinking the minimum cell dimension, got width %v", w)
	}
}

func TestShearedListShiftsNeighboursAcrossTheYBoundary(t *testing.T) {
	// 5 cells/axis (box 20, maxDiam 4) so the ordinary +-1 neighbour
	// walk can't reach every x cell, isolating the shear-shifted search.
	store := particle.NewStore(2)
	store.Get(0).Position = vec3.New(0, 9.9, 0)   // cell (2,4,2)
	store.Get(1).Position = vec3.New(7.9, -9.9, 0) // cell (4,0,2), only reachable via the x-shift
	boundary := bc.NewLeesEdwards(vec3.New(20, 20, 20), 0)
	boundary.Dxd = 8 // shiftCells = round(8/4) = 2

	l := NewShearedList(vec3.New(20, 20, 20), 4, store, boundary)

	neighbours := l.Transit(0, 2) // +y transit: row 4 -> row 0

	found := false
	for _, n := range neighbours {
		if n == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the shear-shifted search to discover particle 1, got %v", neighbours)
	}
}

func TestNeighboursIsReadOnlyAndScopedToTheAdjacentBlock(t *testing.T) {
	// 5 cells/axis (box 20, maxDiam 4): particle 0 sits in cell (2,2,2),
	// particle 1 one cell over in x (3,2,2, adjacent), particle 2 two
	// cells over (0,2,2, out of range of the 3x3x3 block around cell 2).
	store := particle.NewStore(3)
	store.Get(0).Position = vec3.New(0, 0, 0)
	store.Get(1).Position = vec3.New(3, 0, 0)
	store.Get(2).Position = vec3.New(-9, 0, 0)
	boundary := bc.NewPeriodic(vec3.New(20, 20, 20))

	l := NewList(vec3.New(20, 20, 20), 4, store, boundary)

	neighbours := l.Neighbours(0)

	var has1, has2 bool
	for _, n := range neighbours {
		if n == 1 {
			has1 = true
		}
		if n == 2 {
			has2 = true
		}
	}
	if !has1 {
		t.Fatalf("expected particle 1 (adjacent cell) among neighbours, got %v", neighbours)
	}
	if has2 {
		t.Fatalf("expected particle 2 (two cells away) excluded from neighbours, got %v", neighbours)
	}
	if got := l.CellOrigin(0); got != vec3.New(-2, -2, -2) {
		t.Fatalf("Neighbours must not move particle 0; expected it to remain in cell (2,2,2) -> origin (-2,-2,-2), got %v", got)
	}
}
