package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/rootsearch"
	"github.com/sarchlab/dynamica/vec3"
)

// Dumbbells is a rigid body formed of two end spheres of Diameter set
// Length apart along a spinning axis; a collision is the instant the
// nearer end-sphere pair first touches. Grounded on dynamo's
// CDumbbellsFunc
// (original_source/.../liouvillean/shapes/dumbbells.hpp), which
// dynamica treats as a one-sided dumbbell per that header's own
// comment ("we will assume only one sided dumbbell").
type Dumbbells struct {
	Range      Range
	Length     float64
	Diameter   float64
	Elasticity float64
	Props      particle.Properties
}

// NewDumbbells returns a Dumbbells interaction.
func NewDumbbells(r Range, length, diameter, elasticity float64, props particle.Properties) *Dumbbells {
	return &Dumbbells{Range: r, Length: length, Diameter: diameter, Elasticity: elasticity, Props: props}
}

// AppliesTo implements Interaction.
func (d *Dumbbells) AppliesTo(i, j int) bool { return d.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (d *Dumbbells) MaxIntDist() int { return int(math.Ceil(d.Length + d.Diameter)) }

// dumbbellShape implements rootsearch.Streamable for F0 = |r12 +
// u1*L/2 - u2*L/2|^2 - diameter^2, the squared end-sphere separation
// minus contact distance, per CDumbbellsFunc::F_zeroDeriv.
type dumbbellShape struct {
	w1, w2   vec3.Vec
	u1, u2   vec3.Vec
	r12, v12 vec3.Vec
	length   float64
	diameter float64
}

func (s *dumbbellShape) sep() vec3.Vec {
	return s.r12.Add(s.u1.Scale(s.length / 2)).Sub(s.u2.Scale(s.length / 2))
}

func (s *dumbbellShape) sepVel() vec3.Vec {
	return s.v12.Add(s.w1.Cross(s.u1).Scale(s.length/2)).Sub(s.w2.Cross(s.u2).Scale(s.length / 2))
}

func (s *dumbbellShape) F0() float64 {
	sep := s.sep()
	return sep.Nrm2() - s.diameter*s.diameter
}

func (s *dumbbellShape) F1() float64 {
	return 2 * s.sep().Dot(s.sepVel())
}

func (s *dumbbellShape) F1Max(length float64) float64 {
	return 2 * (3*s.length + s.diameter) * (s.v12.Nrm() + s.w1.Nrm()*s.length/2 + s.w2.Nrm()*s.length/2)
}

func (s *dumbbellShape) F2() float64 {
	accel := s.u1.Scale(-s.w1.Nrm2() * s.length / 2).Add(s.u2.Scale(s.w2.Nrm2() * s.length / 2))
	sv := s.sepVel()
	return 2 * (s.sep().Dot(accel) + sv.Dot(sv))
}

func (s *dumbbellShape) F2Max(length float64) float64 {
	w1n, w2n := s.w1.Nrm(), s.w2.Nrm()
	vn := s.v12.Nrm() + w1n*s.length/2 + w2n*s.length/2
	return 2 * ((3*s.length+s.diameter)*(w1n*w1n*s.length/2+w2n*w2n*s.length/2) + vn*vn)
}

func (s *dumbbellShape) Stream(dt float64) {
	s.u1 = s.u1.Rotate(s.w1, dt)
	s.u2 = s.u2.Rotate(s.w2, dt)
	s.r12 = s.r12.AddScaled(dt, s.v12)
}

func (s *dumbbellShape) Clone() rootsearch.Streamable {
	cp := *s
	return &cp
}

// scanRoot walks forward from t=0 in geometrically widening windows,
// handing each to rootsearch.Hunt. Mirrors
// liouville.scanQuarticRoot's search pattern for any Streamable whose
// root cannot be bracketed analytically up front.
func scanRoot(f rootsearch.Streamable, lengthScale float64) (float64, bool) {
	lo := 0.0
	hi := math.Max(lengthScale, 1.0)
	for i := 0; i < 60; i++ {
		if root, ok := rootsearch.Hunt(f.Clone(), lengthScale, lo, hi); ok {
			return math.Max(0, root), true
		}
		lo = hi
		hi *= 2
		if hi > 1e15 {
			break
		}
	}
	return 0, false
}

// GetEvent implements Interaction.
func (d *Dumbbells) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pi, pj := store.Get(i), store.Get(j)
	rij := boundary.ApplyBC(pi.Position.Sub(pj.Position))
	vij := pi.Velocity.Sub(pj.Velocity)
	oi, oj := store.Orientation(i), store.Orientation(j)
	shape := &dumbbellShape{
		w1: oi.AngularVelocity, w2: oj.AngularVelocity,
		u1: oi.Axis, u2: oj.Axis,
		r12: rij, v12: vij,
		length: d.Length, diameter: d.Diameter,
	}
	if shape.F0() <= 0 {
		return Event{P1: i, P2: j, DT: 0, Type: Core}
	}
	if dt, ok := scanRoot(shape, d.Length+d.Diameter); ok {
		return Event{P1: i, P2: j, DT: dt, Type: Core}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// RunEvent implements Interaction. Resolves the end-sphere contact as
// a smooth-sphere collision along the separation of the two
// end-sphere centres, analogous to RunSmoothSpheresCollision but with
// the contact normal computed from the rotating offset rather than
// the particle centres directly.
func (d *Dumbbells) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	vij := p1.Velocity.Sub(p2.Velocity)
	o1, o2 := store.Orientation(p1.ID), store.Orientation(p2.ID)

	sep := rij.Add(o1.Axis.Scale(d.Length / 2)).Sub(o2.Axis.Scale(d.Length / 2))
	n := sep.Unit()

	m1, m2 := d.Props.Mass(p1.ID), d.Props.Mass(p2.ID)
	mu := reducedMass(m1, m2)
	vrel := n.Dot(vij)

	ke1Before := kineticEnergy(m1, p1.Velocity)
	ke2Before := kineticEnergy(m2, p2.Velocity)

	j := (1 + d.Elasticity) * mu * vrel
	impulse := n.Scale(j)

	if m1 != 0 {
		p1.Velocity = p1.Velocity.Sub(impulse.Scale(1 / m1))
	}
	if m2 != 0 {
		p2.Velocity = p2.Velocity.Add(impulse.Scale(1 / m2))
	}

	return kineticEnergy(m1, p1.Velocity) - ke1Before, kineticEnergy(m2, p2.Velocity) - ke2Before
}
