package interaction

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/rootsearch"
	"github.com/sarchlab/dynamica/vec3"
)

// Lines is a rigid-line-segment interaction: two spinning segments of
// fixed Length collide when they cross, rather than when their
// centres approach within a diameter. Grounded on dynamo's ILines
// (original_source/.../interactions/lines.cpp) and its shape
// predictor CLinesFunc
// (original_source/.../liouvillean/shapes/lines.hpp).
//
// Capture semantics mirror SquareWell: a bounding sphere of radius
// Length gates the expensive exact line-line root search, exactly as
// ILines uses ISingleCapture around getLineLineCollision.
type Lines struct {
	Range      Range
	Length     float64
	Elasticity float64
	Props      particle.Properties
	Captured   *capture.Single

	store    *particle.Store
	boundary bc.BC
}

// NewLines returns a Lines interaction with an empty capture map.
func NewLines(r Range, length, elasticity float64, props particle.Properties) *Lines {
	return &Lines{Range: r, Length: length, Elasticity: elasticity, Props: props, Captured: capture.NewSingle()}
}

func (l *Lines) l2() float64 { return l.Length * l.Length }

// AppliesTo implements Interaction.
func (l *Lines) AppliesTo(i, j int) bool { return l.Range.Applies(i, j) }

// MaxIntDist implements Interaction.
func (l *Lines) MaxIntDist() int { return int(math.Ceil(l.Length)) }

// SeedCaptureMap scans every pair and seeds the bounding-sphere
// capture map.
func (l *Lines) SeedCaptureMap(store *particle.Store, boundary bc.BC) {
	l.store, l.boundary = store, boundary
	capture.Seed(l.Captured, store.Len(), l)
}

// CaptureTest implements capture.Tester. Grounded on
// ILines::captureTest.
func (l *Lines) CaptureTest(i, j int) (bool, int) {
	pi, pj := l.store.Get(i), l.store.Get(j)
	rij := l.boundary.ApplyBC(pi.Position.Sub(pj.Position))
	return rij.Nrm2() <= l.l2(), 0
}

// linesShape implements rootsearch.Streamable for the line-line
// crossing function F0 = (u1 x u2).r12, exactly mirroring
// CLinesFunc.
type linesShape struct {
	w1, w2 vec3.Vec
	u1, u2 vec3.Vec
	w12    vec3.Vec
	r12    vec3.Vec
	v12    vec3.Vec
}

func newLinesShape(r12, v12, w1, w2, u1, u2 vec3.Vec) *linesShape {
	return &linesShape{w1: w1, w2: w2, u1: u1, u2: u2, w12: w1.Sub(w2), r12: r12, v12: v12}
}

func (s *linesShape) F0() float64 { return s.u1.Cross(s.u2).Dot(s.r12) }

func (s *linesShape) F1() float64 {
	return s.u1.Dot(s.r12)*s.w12.Dot(s.u2) +
		s.u2.Dot(s.r12)*s.w12.Dot(s.u1) -
		s.w12.Dot(s.r12)*s.u1.Dot(s.u2) +
		s.u1.Cross(s.u2).Dot(s.v12)
}

func (s *linesShape) F1Max(length float64) float64 {
	return length*s.w12.Nrm() + s.v12.Nrm()
}

func (s *linesShape) F2() float64 {
	return 2*(s.u1.Dot(s.v12)*s.w12.Dot(s.u2)+
		s.u2.Dot(s.v12)*s.w12.Dot(s.u1)-
		s.u1.Dot(s.u2)*s.w12.Dot(s.v12)) -
		s.w12.Dot(s.r12)*s.w12.Dot(s.u1.Cross(s.u2)) +
		s.u1.Dot(s.r12)*s.u2.Dot(s.w1.Cross(s.w2)) +
		s.u2.Dot(s.r12)*s.u1.Dot(s.w1.Cross(s.w2)) +
		s.w12.Dot(s.u1)*s.r12.Dot(s.w2.Cross(s.u2)) +
		s.w12.Dot(s.u2)*s.r12.Dot(s.w1.Cross(s.u1))
}

func (s *linesShape) F2Max(length float64) float64 {
	return s.w12.Nrm() * (2*s.v12.Nrm() + length*(s.w1.Nrm()+s.w2.Nrm()))
}

func (s *linesShape) Stream(dt float64) {
	s.u1 = s.u1.Rotate(s.w1, dt)
	s.u2 = s.u2.Rotate(s.w2, dt)
	s.r12 = s.r12.AddScaled(dt, s.v12)
}

func (s *linesShape) Clone() rootsearch.Streamable {
	cp := *s
	return &cp
}

// collisionPoints returns the signed distance from each line's
// centre to the contact point, per CLinesFunc::getCollisionPoints.
func (s *linesShape) collisionPoints() (float64, float64) {
	rijdotui := s.r12.Dot(s.u1)
	rijdotuj := s.r12.Dot(s.u2)
	uidotuj := s.u1.Dot(s.u2)
	denom := 1 - uidotuj*uidotuj
	return -(rijdotui - rijdotuj*uidotuj) / denom, (rijdotuj - rijdotui*uidotuj) / denom
}

// discIntersectionWindow brackets the time window in which the two
// spinning discs swept by the lines can possibly intersect, per
// CLinesFunc::discIntersectionWindow.
func (s *linesShape) discIntersectionWindow(length float64) (float64, float64) {
	ahat := s.w1.Unit()
	dot := s.w1.Dot(s.w2) / (s.w2.Nrm() * s.w1.Nrm())
	dot = math.Max(-1, math.Min(1, dot))
	signChange := (length / 2) * math.Sqrt(1-dot*dot)
	base := -s.r12.Dot(ahat) / s.v12.Dot(ahat)
	spread := signChange / s.v12.Dot(ahat)
	lo, hi := base-spread, base+spread
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi
}

// getLineLineCollision tests for an exact line-line crossing between
// now (dt=0) and the bounding sphere's out-root dt, returning the
// collision time if the crossing point lies on both finite segments.
// Grounded on ILines::getEvent's call into
// LNOrientation::getLineLineCollision (header contract only; the
// exact root-hunt reuses rootsearch.Hunt, the same Frenkel bracketed
// search used for every other shape predictor in this engine).
func getLineLineCollision(shape *linesShape, length, outRootDT float64) (float64, bool) {
	lo, hi := shape.discIntersectionWindow(length)
	lo = math.Max(lo, 0)
	if outRootDT < hi {
		hi = outRootDT
	}
	if hi <= lo {
		return 0, false
	}
	dt, ok := rootsearch.Hunt(shape, length, lo, hi)
	if !ok {
		return 0, false
	}
	moved := shape.Clone().(*linesShape)
	moved.Stream(dt)
	s1, s2 := moved.collisionPoints()
	if math.Abs(s1) > length/2 || math.Abs(s2) > length/2 {
		return 0, false
	}
	return dt, true
}

// GetEvent implements Interaction. Grounded on ILines::getEvent.
func (l *Lines) GetEvent(i, j int, store *particle.Store, boundary bc.BC) Event {
	pi, pj := store.Get(i), store.Get(j)
	rij := boundary.ApplyBC(pi.Position.Sub(pj.Position))
	vij := pi.Velocity.Sub(pj.Velocity)
	oi, oj := store.Orientation(i), store.Orientation(j)
	shape := newLinesShape(rij, vij, oi.AngularVelocity, oj.AngularVelocity, oi.Axis, oj.Axis)

	if l.Captured.IsCaptured(i, j) {
		outDT, ok := sphereOutRootNewtonian(rij, vij, l.l2())
		if !ok {
			outDT = math.Inf(1)
		}
		if dt, found := getLineLineCollision(shape, l.Length, outDT); found {
			return Event{P1: i, P2: j, DT: dt, Type: Core}
		}
		return Event{P1: i, P2: j, DT: outDT, Type: WellOut}
	}

	if dt, ok := sphereInRootNewtonian(rij, vij, l.l2()); ok {
		return Event{P1: i, P2: j, DT: dt, Type: WellIn}
	}
	return Event{P1: i, P2: j, DT: math.Inf(1), Type: NoEvent}
}

// sphereInRootNewtonian/sphereOutRootNewtonian duplicate Newtonian's
// bounding-sphere root formulas directly on raw rij/vij, since Lines
// needs them independent of whatever Flow is active (the capture
// gate is a plain Euclidean bounding sphere, not subject to e.g.
// compression growth).
func sphereInRootNewtonian(rij, vij vec3.Vec, d2 float64) (float64, bool) {
	r2, v2, rvdot := rij.Nrm2(), vij.Nrm2(), rij.Dot(vij)
	if rvdot >= 0 {
		return 0, false
	}
	arg := rvdot*rvdot - v2*(r2-d2)
	if arg <= 0 {
		return 0, false
	}
	return (d2 - r2) / (rvdot - math.Sqrt(arg)), true
}

func sphereOutRootNewtonian(rij, vij vec3.Vec, d2 float64) (float64, bool) {
	r2, v2, rvdot := rij.Nrm2(), vij.Nrm2(), rij.Dot(vij)
	arg := rvdot*rvdot - v2*(r2-d2)
	if arg <= 0 {
		return 0, false
	}
	dt := (math.Sqrt(arg) - rvdot) / v2
	if math.IsNaN(dt) {
		return 0, false
	}
	return dt, true
}

// RunEvent implements Interaction. Grounded on ILines::runEvent;
// CORE resolves as a rigid-body impulsive collision at the contact
// point found by getLineLineCollision, using the same reduced-moment-
// of-inertia structure as RoughHardSphere's tangential term (no
// runLineLineCollision source was present in the retrieval pack, so
// the normal-impulse-at-a-contact-point formula is the standard rigid
// rotor collision response rather than a direct translation).
func (l *Lines) RunEvent(ev Event, store *particle.Store, boundary bc.BC) (float64, float64) {
	p1, p2 := store.Get(ev.P1), store.Get(ev.P2)

	switch ev.Type {
	case WellIn:
		l.Captured.Set(ev.P1, ev.P2, 0)
		return 0, 0
	case WellOut:
		l.Captured.Clear(ev.P1, ev.P2)
		return 0, 0
	case Core:
		return l.collideLines(p1, p2, store, boundary)
	default:
		return 0, 0
	}
}

func (l *Lines) collideLines(p1, p2 *particle.Particle, store *particle.Store, boundary bc.BC) (float64, float64) {
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	vij := p1.Velocity.Sub(p2.Velocity)
	o1, o2 := store.Orientation(p1.ID), store.Orientation(p2.ID)
	shape := newLinesShape(rij, vij, o1.AngularVelocity, o2.AngularVelocity, o1.Axis, o2.Axis)
	s1, s2 := shape.collisionPoints()

	n := o1.Axis.Cross(o2.Axis).Unit()
	r1 := o1.Axis.Scale(s1)
	r2 := o2.Axis.Scale(s2)

	pointVel1 := p1.Velocity.Add(o1.AngularVelocity.Cross(r1))
	pointVel2 := p2.Velocity.Add(o2.AngularVelocity.Cross(r2))
	vrel := pointVel1.Sub(pointVel2).Dot(n)

	m1, m2 := l.Props.Mass(p1.ID), l.Props.Mass(p2.ID)
	i1, i2 := l.Props.MomentOfInertia(p1.ID), l.Props.MomentOfInertia(p2.ID)

	invEff := 0.0
	if m1 != 0 {
		invEff += 1 / m1
		if i1 != 0 {
			invEff += r1.Cross(n).Nrm2() / i1
		}
	}
	if m2 != 0 {
		invEff += 1 / m2
		if i2 != 0 {
			invEff += r2.Cross(n).Nrm2() / i2
		}
	}
	if invEff == 0 {
		return 0, 0
	}

	j := -(1 + l.Elasticity) * vrel / invEff
	impulse := n.Scale(j)

	ke1Before := kineticEnergy(m1, p1.Velocity)
	ke2Before := kineticEnergy(m2, p2.Velocity)

	if m1 != 0 {
		p1.Velocity = p1.Velocity.Add(impulse.Scale(1 / m1))
	}
	if m2 != 0 {
		p2.Velocity = p2.Velocity.Sub(impulse.Scale(1 / m2))
	}
	if i1 != 0 {
		o1.AngularVelocity = o1.AngularVelocity.Add(r1.Cross(impulse).Scale(1 / i1))
	}
	if i2 != 0 {
		o2.AngularVelocity = o2.AngularVelocity.Sub(r2.Cross(impulse).Scale(1 / i2))
	}

	return kineticEnergy(m1, p1.Velocity) - ke1Before, kineticEnergy(m2, p2.Velocity) - ke2Before
}
