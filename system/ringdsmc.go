package system

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// RingDSMC is DSMCSpheres specialised to a ring topology: Range holds
// an even number of ids organised as consecutive bonded pairs
// (members 2k, 2k+1), and each firing resamples a random bonded pair
// rather than an arbitrary random pair from the whole range. Grounded
// on dynamo's CSRingDSMC
// (original_source/.../dynamics/systems/RingDSMC.cpp); the original's
// T(1,3) MaxProbability13 field is declared but never exercised by its
// own runEvent, so only the T(1,2) bonded-pair path is carried over.
type RingDSMC struct {
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

// NewRingDSMC returns a RingDSMC system over an even-length range of
// bonded pairs.
func NewRingDSMC(r Range, diameter, tstep, chi, elasticity, volume float64, flow liouville.Flow, props particle.Properties, rng liouville.RNG, maxProb float64) *RingDSMC {
	n := len(r.Members())
	d := &RingDSMC{
		Range: r, Diameter: diameter, TStep: tstep, Chi: chi,
		Elasticity: elasticity, Volume: volume,
		Flow: flow, Props: props, RNG: rng,
		maxProb: maxProb, dt: tstep,
	}
	d.factor = 4 * float64(n) * diameter * math.Pi * chi * tstep / volume
	return d
}

func (d *RingDSMC) pairCount() int { return len(d.Range.Members()) / 2 }

func (d *RingDSMC) samplePair() (int, int) {
	ids := d.Range.Members()
	pairID := int(d.RNG.Uniform() * float64(d.pairCount()))
	if pairID >= d.pairCount() {
		pairID = d.pairCount() - 1
	}
	return ids[2*pairID], ids[2*pairID+1]
}

func (d *RingDSMC) sampleDirection() vec3.Vec {
	v := vec3.New(d.RNG.Normal(), d.RNG.Normal(), d.RNG.Normal())
	return v.Scale(d.Diameter / v.Nrm())
}

// Calibrate runs 1000 trial bonded-pair draws to estimate maxProb, as
// CSRingDSMC::initialise does when MaxProbability12 is unset.
func (d *RingDSMC) Calibrate(store *particle.Store, boundary bc.BC) {
	for n := 0; n < 1000; n++ {
		i, j := d.samplePair()
		rij := d.sampleDirection()
		vij := store.Get(i).Velocity.Sub(store.Get(j).Velocity)
		liouville.DSMCTest(rij, vij, &d.maxProb, d.factor, d.RNG.Uniform())
	}
}

// Stream implements System.
func (d *RingDSMC) Stream(dt float64) { d.dt -= dt }

// NextDT implements System.
func (d *RingDSMC) NextDT() float64 { return d.dt }

// RunEvent implements System. Grounded on CSRingDSMC::runEvent.
func (d *RingDSMC) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	exact := d.maxProb * float64(d.pairCount())
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
