package bc

import "github.com/sarchlab/dynamica/vec3"

// Periodic is the minimum-image periodic boundary condition
// (dynamo's BCPeriodic): the simulation box is treated as tiling
// space, and any position is wrapped back into the primary cell
// centred on the origin.
type Periodic struct {
	// CellSize is the primary cell's full extent along each axis.
	CellSize vec3.Vec
}

// NewPeriodic returns a Periodic boundary with the given cell size.
func NewPeriodic(cellSize vec3.Vec) *Periodic {
	return &Periodic{CellSize: cellSize}
}

func (b *Periodic) wrap(pos vec3.Vec) vec3.Vec {
	out := pos
	for n := 0; n < 3; n++ {
		size := b.CellSize.Component(n)
		if size == 0 {
			continue
		}
		c := out.Component(n)
		c -= size * rint(c/size)
		out = out.WithComponent(n, c)
	}
	return out
}

// ApplyBC implements BC.
func (b *Periodic) ApplyBC(pos vec3.Vec) vec3.Vec { return b.wrap(pos) }

// ApplyBCVel implements BC. The periodic boundary carries no boundary
// velocity, so vel passes through unchanged.
func (b *Periodic) ApplyBCVel(pos, vel vec3.Vec) (vec3.Vec, vec3.Vec) {
	return b.wrap(pos), vel
}
