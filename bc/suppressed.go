package bc

import "github.com/sarchlab/dynamica/vec3"

// PeriodicExceptX is dynamo's BCPeriodicExceptX: identical to
// Periodic except the X dimension is never wrapped. Kept as a
// diagnostic-only boundary (Open Question 2): it lets a debug build
// track an unwrapped X displacement (e.g. total shear strain, or a
// single-file diffusion coefficient) while still confining Y and Z.
// Production configs should use Periodic or LeesEdwards.
type PeriodicExceptX struct {
	CellSize vec3.Vec
}

// NewPeriodicExceptX returns a PeriodicExceptX boundary.
func NewPeriodicExceptX(cellSize vec3.Vec) *PeriodicExceptX {
	return &PeriodicExceptX{CellSize: cellSize}
}

func (b *PeriodicExceptX) wrap(pos vec3.Vec) vec3.Vec {
	x := pos.Component(0)
	out := pos
	for n := 1; n < 3; n++ {
		size := b.CellSize.Component(n)
		if size == 0 {
			continue
		}
		c := out.Component(n)
		c -= size * rint(c/size)
		out = out.WithComponent(n, c)
	}
	return out.WithComponent(0, x)
}

// ApplyBC implements BC.
func (b *PeriodicExceptX) ApplyBC(pos vec3.Vec) vec3.Vec { return b.wrap(pos) }

// ApplyBCVel implements BC.
func (b *PeriodicExceptX) ApplyBCVel(pos, vel vec3.Vec) (vec3.Vec, vec3.Vec) {
	return b.wrap(pos), vel
}

// PeriodicXOnly wraps only the X dimension, leaving Y and Z
// unbounded. Diagnostic-only (Open Question 2), for setups that want
// to track unwrapped transverse displacement (e.g. sedimentation
// height) while still confining the flow direction.
type PeriodicXOnly struct {
	CellSize vec3.Vec
}

// NewPeriodicXOnly returns a PeriodicXOnly boundary.
func NewPeriodicXOnly(cellSize vec3.Vec) *PeriodicXOnly {
	return &PeriodicXOnly{CellSize: cellSize}
}

func (b *PeriodicXOnly) wrap(pos vec3.Vec) vec3.Vec {
	size := b.CellSize.Component(0)
	if size == 0 {
		return pos
	}
	x := pos.Component(0)
	x -= size * rint(x/size)
	return pos.WithComponent(0, x)
}

// ApplyBC implements BC.
func (b *PeriodicXOnly) ApplyBC(pos vec3.Vec) vec3.Vec { return b.wrap(pos) }

// ApplyBCVel implements BC.
func (b *PeriodicXOnly) ApplyBCVel(pos, vel vec3.Vec) (vec3.Vec, vec3.Vec) {
	return b.wrap(pos), vel
}
