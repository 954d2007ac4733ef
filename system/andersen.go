package system

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// Andersen is the Andersen/"ghost" thermostat: at exponentially
// distributed intervals it resamples one random particle's full
// velocity from a Maxwell-Boltzmann distribution at SqrtT, optionally
// tuning MeanFreeTime every SetFrequency firings to steer the range's
// average kinetic temperature toward SetPoint. Grounded on dynamo's
// CSysGhost (original_source/.../dynamics/systems/ghost.cpp).
type Andersen struct {
	Range        Range
	Flow         liouville.Flow
	Props        particle.Properties
	RNG          liouville.RNG
	SqrtT        float64
	MeanFreeTime float64

	// Tune enables dynamic adjustment of MeanFreeTime toward SetPoint,
	// checked every SetFrequency firings. Grounded on CSysGhost's
	// setTemperature/tune logic.
	Tune         bool
	SetPoint     float64
	SetFrequency int

	dt      float64
	firings int
	keSum   float64
	massSum float64
}

// NewAndersen returns an Andersen thermostat and draws its first fire
// time.
func NewAndersen(r Range, flow liouville.Flow, props particle.Properties, rng liouville.RNG, sqrtT, meanFreeTime float64) *Andersen {
	a := &Andersen{Range: r, Flow: flow, Props: props, RNG: rng, SqrtT: sqrtT, MeanFreeTime: meanFreeTime}
	a.dt = a.ghostt()
	return a
}

// ghostt draws the next exponentially-distributed fire interval.
// Grounded on CSysGhost::getGhostt: -meanFreeTime*log(1-uniform).
func (a *Andersen) ghostt() float64 {
	return -a.MeanFreeTime * math.Log(1-a.RNG.Uniform())
}

// Stream implements System.
func (a *Andersen) Stream(dt float64) { a.dt -= dt }

// NextDT implements System.
func (a *Andersen) NextDT() float64 { return a.dt }

// RunEvent implements System: resamples one random member's velocity,
// tunes MeanFreeTime if due, and redraws the next fire time.
func (a *Andersen) RunEvent(store *particle.Store, boundary bc.BC) float64 {
	id := pick(a.Range, a.RNG.Uniform())
	p := store.Get(id)
	dKE := a.Flow.RandomGaussianEvent(p, a.SqrtT, a.RNG)

	a.firings++
	if a.Tune {
		a.keSum += 0.5 * a.Props.Mass(id) * p.Velocity.Nrm2()
		a.massSum += a.Props.Mass(id)
		if a.SetFrequency > 0 && a.firings%a.SetFrequency == 0 {
			a.retune()
		}
	}

	a.dt = a.ghostt()
	return dKE
}

// retune nudges MeanFreeTime toward SetPoint using the measured mean
// kinetic temperature of the particles the thermostat has actually
// touched since the last tune. Grounded on CSysGhost's periodic
// setPoint comparison.
func (a *Andersen) retune() {
	if a.massSum == 0 {
		return
	}
	measured := 2 * a.keSum / (3 * a.massSum)
	if measured > 0 {
		a.MeanFreeTime *= math.Sqrt(measured / a.SetPoint)
	}
	a.keSum, a.massSum = 0, 0
}
