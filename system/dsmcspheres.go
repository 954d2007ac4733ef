package system

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// DSMCSpheres fires at a fixed time step and, each time, stochastically
// tests a batch of random pairs drawn from Range for a Direct
// Simulation Monte Carlo collision: a random separation direction
// scaled to Diameter, accepted with probability proportional to the
// approach speed along it, and resolved as a smooth hard-sphere
// collision when accepted. Grounded on dynamo's CSDSMCSpheres
// (original_source/.../dynamics/systems/DSMCspheres.cpp).
type DSMCSpheres struct {
	Range      Range
	Diameter   float64
	TStep      float64
	Chi        float64
	Elasticity float64
	Volume     float64
	Flow       liouville.Flow
	Props      particle.Properties
	RNG        liouville.RNG

	maxProb float64
	factor  float64
	dt      float64
}

// NewDSMCSpheres returns a DSMCSpheres system. maxProb may be supplied
// as 0, in which case Calibrate should be called once before the
// scheduler starts (mirroring CSDSMCSpheres::initialise's 1000-draw
// self-calibration when MaxProbability is unset in the XML).
func NewDSMCSpheres(r Range, diameter, tstep, chi, elasticity, volume float64, flow liouville.Flow, props particle.Properties, rng liouville.RNG, maxProb float64) *DSMCSpheres {
	d := &DSMCSpheres{
		Range: r, Diameter: diameter, TStep: tstep, Chi: chi,
		Elasticity: elasticity, Volume: volume,
		Flow: flow, Props: props, RNG: rng,
		maxProb: maxProb, dt: tstep,
	}
	d.factor = 4 * float64(len(r.Members())) * diameter * math.Pi * chi * tstep / volume
	return d
}

// Calibrate runs 1000 trial pair draws to estimate maxProb, the way
// CSDSMCSpheres::initialise does when MaxProbability isn't already
// fixed. Should be called once before the first Stream/RunEvent.
func (d *DSMCSpheres) Calibrate(store *particle.Store, boundary bc.BC) {
	for n := 0; n < 1000; n++ {
		i, j := d.samplePair()
		rij := d.sampleDirection()
		vij := store.Get(i).Velocity.Sub(store.Get(j).Velocity)
		liouville.DSMCTest(rij, vij, &d.maxProb, d.factor, d.RNG.Uniform())
	}
}

func (d *DSMCSpheres) samplePair() (int, int) {
	ids := d.Range.Members()
	i := pick(d.Range, d.RNG.Uniform())
	j := i
	for j == i {
		j = ids[int(d.RNG.Uniform()*float64(len(ids)))%len(ids)]
	}
	return i, j
}

func (d *DSMCSpheres) sampleDirection() vec3.Vec {
	v := vec3.New(d.RNG.Normal(), d.RNG.Normal(), d.RNG.Normal())
	return v.Scale(d.Diameter / v.Nrm())
}

// Stream implements System.
func (d *DSMCSpheres) Stream(dt float64) { d.dt -= dt }

// NextDT implements System.
func (d *DSMCSpheres) NextDT() float64 { return d.dt }

// RunEvent implements System. Grounded on CSDSMCSpheres::runEvent: the
// number of candidate pairs tested is 0.5*maxProb*|range|, rounded
// stochastically on its fractional part, and each accepted pair is
// resolved as a smooth-sphere collision.
func (d *DSMCSpheres) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	n := len(d.Range.Members())
	exact := 0.5 * d.maxProb * float64(n)
	nmax := int(exact)
	frac := exact - float64(nmax)
	if d.RNG.Uniform() < frac {
		nmax++
	}

	totalDKE := 0.0
	for k := 0; k < nmax; k++ {
		i, j := d.samplePair()
		rij := d.sampleDirection()
		pi, pj := store.Get(i), store.Get(j)
		vij := pi.Velocity.Sub(pj.Velocity)
		if liouville.DSMCTest(rij, vij, &d.maxProb, d.factor, d.RNG.Uniform()) {
			dKE1, dKE2 := liouville.RunDSMCCollision(d.Props, pi, pj, rij, d.Elasticity)
			totalDKE += dKE1 + dKE2
		}
	}

	d.dt = d.TStep
	return totalDKE
}
