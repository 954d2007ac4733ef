package bc

import "github.com/sarchlab/dynamica/vec3"

// LeesEdwards is the sliding-brick shear boundary condition
// (dynamo's BCLeesEdwards, dynamics/BC/LEBC.hpp): the periodic images
// above and below the primary cell in Y are set in relative motion at
// ShearRate, so a particle crossing the Y boundary is also shifted in
// X by the accumulated slide and has its velocity corrected by the
// boundary's relative velocity.
type LeesEdwards struct {
	CellSize vec3.Vec
	// ShearRate is the rate of shear between the Y-neighbouring
	// images, in units of CellSize.Y() per unit time.
	ShearRate float64
	// Dxd is the accumulated slide displacement between Y-neighbouring
	// images: how far the image above has moved relative to the
	// primary cell along X. Advanced by Update as simulation time
	// passes, and persisted across snapshots so a reloaded run's
	// sliding boundary picks up where it left off.
	Dxd float64
}

// NewLeesEdwards returns a LeesEdwards boundary with zero accumulated
// slide.
func NewLeesEdwards(cellSize vec3.Vec, shearRate float64) *LeesEdwards {
	return &LeesEdwards{CellSize: cellSize, ShearRate: shearRate}
}

// Update advances the accumulated slide displacement by the shear
// accrued over dt (spec.md §4.3). No scheduler or system in the
// module calls Update; Dxd changes only when a caller invokes it or
// sets Dxd directly.
func (b *LeesEdwards) Update(dt float64) {
	b.Dxd += b.ShearRate * b.CellSize.Component(1) * dt
	if cy := b.CellSize.Component(1); cy != 0 {
		b.Dxd -= cy * rint(b.Dxd/cy)
	}
}

// yImageCrossings returns the number of primary-cell Y-images pos[1]
// lies away from the primary cell, i.e. rint(pos.Y/CellSize.Y).
func (b *LeesEdwards) yImageCrossings(y float64) float64 {
	cy := b.CellSize.Component(1)
	if cy == 0 {
		return 0
	}
	return rint(y / cy)
}

func (b *LeesEdwards) wrap(pos vec3.Vec) (vec3.Vec, float64) {
	imagesY := b.yImageCrossings(pos.Component(1))

	x := pos.Component(0) - imagesY*b.Dxd
	cx := b.CellSize.Component(0)
	if cx != 0 {
		x -= cx * rint(x/cx)
	}

	y := pos.Component(1) - b.CellSize.Component(1)*imagesY

	z := pos.Component(2)
	if cz := b.CellSize.Component(2); cz != 0 {
		z -= cz * rint(z/cz)
	}

	return vec3.New(x, y, z), imagesY
}

// ApplyBC implements BC.
func (b *LeesEdwards) ApplyBC(pos vec3.Vec) vec3.Vec {
	wrapped, _ := b.wrap(pos)
	return wrapped
}

// ApplyBCVel implements BC: a particle that crosses imagesY Y-images
// picks up imagesY worth of the boundary's relative shear velocity in
// X.
func (b *LeesEdwards) ApplyBCVel(pos, vel vec3.Vec) (vec3.Vec, vec3.Vec) {
	wrapped, imagesY := b.wrap(pos)
	if imagesY == 0 {
		return wrapped, vel
	}
	vx := vel.Component(0) - imagesY*b.ShearRate*b.CellSize.Component(1)
	return wrapped, vel.WithComponent(0, vx)
}

// ShearRateOf reports the configured shear rate.
func (b *LeesEdwards) ShearRateOf() float64 { return b.ShearRate }

// StreamVelocity returns the linear-interpolated boundary stream
// velocity at the given Y position, per LEBC.hpp's
// getStreamVelocity: zero at the box centre, rising linearly to
// ±ShearRate*CellSize.Y()/2 at the Y boundaries.
func (b *LeesEdwards) StreamVelocity(pos vec3.Vec) vec3.Vec {
	cy := b.CellSize.Component(1)
	if cy == 0 {
		return vec3.Zero
	}
	vx := b.ShearRate * pos.Component(1)
	return vec3.New(vx, 0, 0)
}

// PeculiarVelocity returns vel minus the local stream velocity at pos
// (LEBC.hpp's getPeculiarVelocity).
func (b *LeesEdwards) PeculiarVelocity(pos, vel vec3.Vec) vec3.Vec {
	return vel.Sub(b.StreamVelocity(pos))
}
