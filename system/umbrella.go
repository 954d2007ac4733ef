package system

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// Umbrella implements umbrella-sampling bias between two particles: a
// parabolic potential A*(r-B)^2 is discretised into rungs of width
// DelU, and the pair is confined to its current rung until a
// collision pushes it across a boundary, at which point DelU worth of
// kinetic energy is exchanged with the potential. Grounded on dynamo's
// CSUmbrella
// (original_source/.../dynamics/systems/umbrella.cpp). The original
// generalises range1/range2 to arbitrary particle groups via their
// centre of mass; this port only handles the single-pair case the
// rest of dynamica's pairwise primitives (SphereSphereInRoot/OutRoot,
// RunSphereWellEvent) already support — a group version would need a
// multi-body well event primitive that doesn't otherwise exist here.
type Umbrella struct {
	P1, P2 int
	A      float64
	B      float64
	DelU   float64
	Flow   liouville.Flow
	Props  particle.Properties

	level       int
	levelCenter int

	dt    float64
	inner bool // true if the pending event is WellIn, false if WellOut
}

// NewUmbrella returns an Umbrella system and seeds its starting rung
// from the pair's current separation. Grounded on
// CSUmbrella::initialise.
func NewUmbrella(p1, p2 int, a, b, delU float64, flow liouville.Flow, props particle.Properties, store *particle.Store, boundary bc.BC) *Umbrella {
	u := &Umbrella{P1: p1, P2: p2, A: a, B: b, DelU: delU, Flow: flow, Props: props}
	u.levelCenter = int(-a * b * b / delU)

	rij := boundary.ApplyBC(store.Get(p1).Position.Sub(store.Get(p2).Position))
	r := rij.Nrm()
	u.level = int(a * (r - b) * (r - b) / delU)
	if r < b {
		u.level *= -1
	}

	u.recalculate(store, boundary)
	return u
}

// rMinMax returns the separation bounds of the current rung.
// Grounded on CSUmbrella::recalculateTime.
func (u *Umbrella) rMinMax() (rMin, rMax float64, spansZero bool) {
	if u.level == u.levelCenter {
		rMax := u.B - math.Sqrt(math.Max(0, float64(u.level))*u.DelU/u.A)
		if u.B == 0 {
			rMax = u.B + math.Sqrt(math.Max(0, float64(u.level)+1)*u.DelU/u.A)
		}
		return 0, rMax, true
	}
	if u.level > u.levelCenter {
		lo := u.B + math.Sqrt(float64(u.level)*u.DelU/u.A)
		hi := u.B + math.Sqrt(float64(u.level+1)*u.DelU/u.A)
		return lo, hi, false
	}
	lvl := -u.level
	lo := u.B - math.Sqrt(float64(lvl)*u.DelU/u.A)
	hi := u.B - math.Sqrt(float64(lvl-1)*u.DelU/u.A)
	if lo < 0 {
		lo = 0
	}
	return lo, hi, false
}

func (u *Umbrella) recalculate(store *particle.Store, boundary bc.BC) {
	pd := pairData(store, boundary, u.P1, u.P2)

	rMin, rMax, spansZero := u.rMinMax()
	u.dt = math.Inf(1)

	if spansZero {
		if dt, ok := u.Flow.SphereSphereOutRoot(pd, rMax*rMax); ok {
			u.dt, u.inner = dt, false
		}
		return
	}

	dtOut, okOut := u.Flow.SphereSphereOutRoot(pd, rMax*rMax)
	dtIn, okIn := u.Flow.SphereSphereInRoot(pd, rMin*rMin)

	switch {
	case okOut && (!okIn || dtOut < dtIn):
		u.dt, u.inner = dtOut, false
	case okIn:
		u.dt, u.inner = dtIn, true
	}
}

// pairData mirrors interaction.wrappedPairData, duplicated here since
// system doesn't import interaction (kept independent per the
// established per-package Range/Event pattern).
func pairData(store *particle.Store, boundary bc.BC, i, j int) liouville.PairData {
	pi, pj := store.Get(i), store.Get(j)
	rij, vij := boundary.ApplyBCVel(pi.Position.Sub(pj.Position), pi.Velocity.Sub(pj.Velocity))
	return liouville.NewPairData(rij, vij)
}

// Stream implements System.
func (u *Umbrella) Stream(dt float64) { u.dt -= dt }

// NextDT implements System.
func (u *Umbrella) NextDT() float64 { return u.dt }

// RunEvent implements System. Grounded on CSUmbrella::runEvent's
// kedown/newulevel derivation and multibdyWellEvent call.
func (u *Umbrella) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	kedown := false
	newLevel := u.level

	switch {
	case u.level == 0:
		kedown = true
		if !u.inner {
			newLevel = 1
		} else {
			newLevel = -1
		}
	case !u.inner: // WELL_OUT
		if u.level > 0 {
			kedown = true
		}
		newLevel = u.level + 1
	default: // WELL_IN
		if u.level < 0 {
			kedown = true
		}
		newLevel = u.level - 1
	}

	deltaKE := u.DelU
	if kedown {
		deltaKE = -u.DelU
	}

	p1, p2 := store.Get(u.P1), store.Get(u.P2)
	rij := boundary.ApplyBC(p1.Position.Sub(p2.Position))
	evType, dKE1, dKE2 := liouville.RunSphereWellEvent(u.Props, p1, p2, rij, deltaKE)
	if evType != liouville.WellBounce {
		u.level = newLevel
	}

	u.recalculate(store, boundary)
	return dKE1 + dKE2
}
