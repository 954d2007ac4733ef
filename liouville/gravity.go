package liouville

import (
	"math"

	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/rootsearch"
	"github.com/sarchlab/dynamica/vec3"
)

// NewtonianGravity is the Newtonian flow plus a uniform body
// acceleration G applied to DYNAMIC particles. Grounded on dynamo's
// LNewtonianGravity
// (original_source/.../dynamics/liouvillean/NewtonianGravityL.cpp).
type NewtonianGravity struct {
	*Newtonian
	G vec3.Vec
}

// NewNewtonianGravity returns a NewtonianGravity flow with
// acceleration g.
func NewNewtonianGravity(props particle.Properties, g vec3.Vec) *NewtonianGravity {
	return &NewtonianGravity{Newtonian: NewNewtonian(props), G: g}
}

// Gravity returns the body acceleration, for globals (the parabola
// sentinel) that need it without depending on the concrete flow type.
func (n *NewtonianGravity) Gravity() vec3.Vec { return n.G }

// Stream implements particle.Streamer: the standard constant-
// acceleration kinematic update, applied only to DYNAMIC particles.
// Grounded on LNewtonianGravity::streamParticle.
func (n *NewtonianGravity) Stream(p *particle.Particle, dt float64) {
	if !p.Dynamic() {
		p.Position = p.Position.AddScaled(dt, p.Velocity)
		return
	}
	p.Position = p.Position.AddScaled(dt, p.Velocity.AddScaled(0.5*dt, n.G))
	p.Velocity = p.Velocity.AddScaled(dt, n.G)
}

// quartic evaluates coeffs[0]*t^4 + coeffs[1]*t^3 + coeffs[2]*t^2 +
// coeffs[3]*t + coeffs[4] via Horner's method, as
// NewtonianGravityL.cpp's anonymous QuarticFunc does.
type quartic struct{ c0, c1, c2, c3, c4 float64 }

func (q quartic) at(t float64) float64 {
	return (((q.c0*t+q.c1)*t+q.c2)*t+q.c3)*t + q.c4
}

// SphereSphereInRootAsymmetric resolves the smallest positive root of
// the quartic separation equation for a pair where exactly one
// particle is DYNAMIC (feels gravity relative to the other). This
// replaces dynamo's closed-form cubic-derivative root decomposition
// (magnet::math::cubicSolve + Bisect) with a scan over geometrically
// widening windows, each searched by rootsearch.Hunt, a documented
// design substitution
// (no cubic/quartic solver exists anywhere in the retrieval pack):
// the overlapping-and-approaching and non-overlapping cases match
// the original's contract exactly; the overlapping-and-receding
// "reschedule at the local turning point" case is approximated by
// the same scan, which still finds the next true sign change (a
// looser but always-correct bound, since the scheduler simply
// re-predicts if nothing has actually happened by then).
func (n *NewtonianGravity) SphereSphereInRootAsymmetric(pd PairData, d2 float64, p1Dynamic, p2Dynamic bool) (float64, bool) {
	if p1Dynamic == p2Dynamic {
		return n.Newtonian.SphereSphereInRoot(pd, d2)
	}

	gij := n.G
	if p2Dynamic {
		gij = gij.Scale(-1)
	}

	q := quartic{
		c0: 0.25 * gij.Nrm2(),
		c1: gij.Dot(pd.Vij),
		c2: pd.V2 + gij.Dot(pd.Rij),
		c3: 2 * pd.RVDot,
		c4: pd.R2 - d2,
	}

	if q.at(0) <= 0 {
		if pd.RVDot < 0 {
			return 0, true
		}
	}

	return scanQuarticRoot(q, math.Sqrt(d2))
}

// quarticStream adapts quartic to rootsearch.Streamable by tracking
// the current time internally and evaluating the (shifted) quartic's
// value/first/second derivative there — standard Horner/derivative
// evaluation, no closed-form root extraction involved.
type quarticStream struct {
	q quartic
	t float64
}

func (s *quarticStream) F0() float64 {
	t := s.t
	return (((s.q.c0*t+s.q.c1)*t+s.q.c2)*t+s.q.c3)*t + s.q.c4
}
func (s *quarticStream) F1() float64 {
	t := s.t
	return ((4*s.q.c0*t+3*s.q.c1)*t+2*s.q.c2)*t + s.q.c3
}
func (s *quarticStream) F2() float64 {
	t := s.t
	return (12*s.q.c0*t+6*s.q.c1)*t + 2*s.q.c2
}
func (s *quarticStream) F1Max(length float64) float64 {
	// A loose but safe bound: the derivative's own magnitude plus its
	// curvature times the length scale, evaluated at the current time.
	return math.Abs(s.F1()) + math.Abs(s.F2())*length + 1e-300
}
func (s *quarticStream) F2Max(length float64) float64 {
	return math.Abs(12*s.q.c0)*length + math.Abs(6*s.q.c1) + 1
}
func (s *quarticStream) Stream(dt float64) { s.t += dt }
func (s *quarticStream) Clone() rootsearch.Streamable {
	c := *s
	return &c
}

// scanQuarticRoot walks forward from t=0 in geometrically widening
// windows, handing each window to rootsearch.Hunt, which performs the
// bracketed quadratic-Newton search (the same primitive used for the
// shape-function predictors). The first window that converges gives
// the smallest positive root.
func scanQuarticRoot(q quartic, lengthScale float64) (float64, bool) {
	lo := 0.0
	hi := math.Max(lengthScale, 1.0)
	for i := 0; i < 60; i++ {
		if root, ok := rootsearch.Hunt(&quarticStream{q: q}, lengthScale, lo, hi); ok {
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

// SphereSphereOutRoot implements Flow for the gravity-asymmetric
// case. dynamo's original throws "not implemented" here (gravity
// escape roots for asymmetric pairs were never needed by any shipped
// interaction); dynamica keeps that contract by always falling back
// to the symmetric Newtonian root, which is exact whenever both
// particles share the same dynamic state and a documented
// approximation otherwise.
func (n *NewtonianGravity) SphereSphereOutRoot(pd PairData, d2 float64) (float64, bool) {
	return n.Newtonian.SphereSphereOutRoot(pd, d2)
}
