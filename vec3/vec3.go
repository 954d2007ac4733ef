// Package vec3 provides the 3D vector arithmetic used throughout the
// EDMD core for position, velocity, and orientation quantities.
package vec3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a three-component vector. It wraps gonum's r3.Vec so that
// every geometric quantity in the engine shares one representation
// and one set of arithmetic rules.
type Vec struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vec{}

func fromR3(v r3.Vec) Vec      { return Vec{v.X, v.Y, v.Z} }
func (v Vec) toR3() r3.Vec     { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// New builds a vector from components.
func New(x, y, z float64) Vec { return Vec{x, y, z} }

// Add returns v+u.
func (v Vec) Add(u Vec) Vec { return fromR3(r3.Add(v.toR3(), u.toR3())) }

// Sub returns v-u.
func (v Vec) Sub(u Vec) Vec { return fromR3(r3.Sub(v.toR3(), u.toR3())) }

// Scale returns s*v.
func (v Vec) Scale(s float64) Vec { return fromR3(r3.Scale(s, v.toR3())) }

// AddScaled returns v+s*u, the common "streaming" operation.
func (v Vec) AddScaled(s float64, u Vec) Vec { return v.Add(u.Scale(s)) }

// Dot returns v.u.
func (v Vec) Dot(u Vec) float64 { return r3.Dot(v.toR3(), u.toR3()) }

// Cross returns v x u.
func (v Vec) Cross(u Vec) Vec { return fromR3(r3.Cross(v.toR3(), u.toR3())) }

// Nrm2 returns |v|^2, the squared norm used throughout the root
// finders to avoid an unnecessary sqrt.
func (v Vec) Nrm2() float64 { return v.Dot(v) }

// Nrm returns |v|.
func (v Vec) Nrm() float64 { return math.Sqrt(v.Nrm2()) }

// Unit returns v normalized to unit length. The zero vector maps to
// itself.
func (v Vec) Unit() Vec {
	n := v.Nrm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Component returns the i'th coordinate (0=X,1=Y,2=Z).
func (v Vec) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic("vec3: component index out of range")
	}
}

// WithComponent returns a copy of v with the i'th coordinate replaced.
func (v Vec) WithComponent(i int, val float64) Vec {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		panic("vec3: component index out of range")
	}
	return v
}

// MaxAbsComponent returns the index (0,1,2) of the component with the
// largest magnitude, used by the cube-cube predictor.
func (v Vec) MaxAbsComponent() int {
	largest := 0
	best := math.Abs(v.X)
	if a := math.Abs(v.Y); a > best {
		largest, best = 1, a
	}
	if a := math.Abs(v.Z); a > best {
		largest = 2
	}
	return largest
}

// MaxNorm returns the max-norm (Chebyshev) distance, used by the
// cube-cube predictor.
func (v Vec) MaxNorm() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// Rotate rotates v by the rotation vector w*dt (axis w, angle
// |w|*dt), via Rodrigues' rotation formula. Grounded on dynamo's
// Rodrigues() helper, used to stream an orientation axis under a
// constant angular velocity (original_source/.../NewtonL.cpp,
// shapes/lines.hpp, shapes/dumbbells.hpp).
func (v Vec) Rotate(w Vec, dt float64) Vec {
	theta := w.Nrm() * dt
	if theta == 0 {
		return v
	}
	k := w.Unit()
	cos, sin := math.Cos(theta), math.Sin(theta)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}
