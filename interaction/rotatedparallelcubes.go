package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// RotationBasis is an orthonormal rotation, given as the images of
// the X, Y, Z axes, used to rotate into and out of a cube's local
// parallel-axis frame. Grounded on dynamo's Rotation matrix member of
// IRotatedParallelCubes
// (original_source/.../interactions/rotatedparallelcubes.cpp).
type RotationBasis struct {
	EX, EY, EZ vec3.Vec
}

// Apply rotates v into the local frame (rot * v).
func (r RotationBasis) Apply(v vec3.Vec) vec3.Vec {
	return vec3.New(v.Dot(r.EX), v.Dot(r.EY), v.Dot(r.EZ))
}

// ApplyTranspose rotates v out of the local frame (rot^T * v).
func (r RotationBasis) ApplyTranspose(v vec3.Vec) vec3.Vec {
	return r.EX.Scale(v.X).Add(r.EY.Scale(v.Y)).Add(r.EZ.Scale(v.Z))
}

// RotatedParallelCubes is a pair of cubes sharing a fixed rotation
// (their faces stay mutually parallel), resolved by rotating into the
// shared frame and running the axis-aligned slab test. Grounded on
// dynamo's IRotatedParallelCubes and LNewtonian::CubeCubeInRoot /
// parallelCubeColl (original_source/.../dynamics/liouvillean/NewtonL.cpp).
type RotatedParallelCubes struct {
	Range    Range
	Rotation RotationBasis
	Props    particle.Properties
	// MaxDiameter is the largest per-particle diameter this
	// interaction will ever see, for MaxIntDist's cell-sizing
	// contract; dynamo computes this as _diameter->getMaxValue() over
	// the whole species set at load time.
	MaxDiameter float64
}

// NewRotatedParallelCubes returns a RotatedParallelCubes interaction.
func NewRotatedParallelCubes(r Range, rotation RotationBasis, props particle.Properties, maxDiameter float64) *RotatedParallelCubes {
	return &RotatedParallelCubes{Range: r, Rotation: rotation, Props: props, MaxDiameter: maxDiameter}
}

func (c *RotatedParallelCubes) pairDiameter(i, j int) float64 {
	return (c.Props.Diameter(i) + c.Props.Diameter(j)) * 0.5
}

// AppliesTo implements Interaction.
func (c *RotatedParallelCubes) AppliesTo(i, j int) bool { return c.Range.Applies(i, j) }

// MaxIntDist implements Interaction: the cube's circumscribed-sphere
// diameter, per IRotatedParallelCubes::maxIntDist.
func (c *RotatedParallelCubes) MaxIntDist() int {
	return int(math.Ceil(math.Sqrt(3) * c.MaxDiameter))
}

// cubeCubeInRoot implements LNewtonian::CubeCubeInRoot's slab test in
// the rotated frame: the first time both particles' separation along
// every axis lies within [-d,d] simultaneously.
func cubeCubeInRoot(rij, vij vec3.Vec, d float64) (float64, bool) {
	largeDim := 0
	largest := math.Abs(rij.Component(0))
	for dim := 1; dim < 3; dim++ {
		if a := math.Abs(rij.Component(dim)); a > largest {
			largeDim, largest = dim, a
		}
	}
	if rij.Component(largeDim)*vij.Component(largeDim) >= 0 {
		return 0, false
	}

	tInMax, tOutMin := math.Inf(-1), math.Inf(1)
	for dim := 0; dim < 3; dim++ {
		v := vij.Component(dim)
		t1 := -(rij.Component(dim) + d) / v
		t2 := -(rij.Component(dim) - d) / v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tInMax {
			tInMax = t1
		}
		if t2 < tOutMin {
			tOutMin = t2
		}
	}
	if tInMax >= tOutMin {
		return 0, false
	}
	return tInMax, true
}

// GetEvent implements Interaction. Grounded on
// IRotatedParallelCubes::getEvent.
func (c *RotatedParallelCubes) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pi, pj := store.Get(i), store.Get(j)
	rij := c.Rotation.Apply(boundary.ApplyBC(pi.Position.Sub(pj.Position)))
	vij := c.Rotation.Apply(pi.Velocity.Sub(pj.Velocity))

	if dt, ok := cubeCubeInRoot(rij, vij, c.pairDiameter(i, j)); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Core}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Grounded on
// LNewtonian::parallelCubeColl: the impulse acts only along the axis
// of maximum local separation, then is rotated back to world space.
func (c *RotatedParallelCubes) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := c.Rotation.Apply(boundary.ApplyBC(p1.Position.Sub(p2.Position)))
	vij := c.Rotation.Apply(p1.Velocity.Sub(p2.Velocity))

	dim := 0
	for d := 1; d < 3; d++ {
		if math.Abs(rij.Component(dim)) < math.Abs(rij.Component(d)) {
			dim = d
		}
	}

	collVec := vec3.Zero
	if rij.Component(dim) < 0 {
		collVec = collVec.WithComponent(dim, -1)
	} else {
		collVec = collVec.WithComponent(dim, 1)
	}

	m1, m2 := c.Props.Mass(ev.P1), c.Props.Mass(ev.P2)
	mu := reducedMass(m1, m2)
	e := (c.Props.Elasticity(ev.P1) + c.Props.Elasticity(ev.P2)) * 0.5

	localImpulse := collVec.Scale((1 + e) * mu * collVec.Dot(vij))
	dP := c.Rotation.ApplyTranspose(localImpulse)

	ke1Before := kineticEnergy(m1, p1.Velocity)
	ke2Before := kineticEnergy(m2, p2.Velocity)

	if m1 != 0 {
		p1.Velocity = p1.Velocity.Sub(dP.Scale(1 / m1))
	}
	if m2 != 0 {
		p2.Velocity = p2.Velocity.Add(dP.Scale(1 / m2))
	}

	return kineticEnergy(m1, p1.Velocity) - ke1Before, kineticEnergy(m2, p2.Velocity) - ke2Before
}
