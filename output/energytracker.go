package output

import "github.com/sarchlab/dynamica/vec3"

// EnergyTracker accumulates the running totals spec.md §8's
// energy-conservation and momentum-conservation properties are
// checked against: cumulative ΔKE, cumulative Δinternal energy, and
// total momentum drift. Do not check energy conservation with these
// totals under bc.PeriodicExceptX or bc.PeriodicXOnly: both are
// diagnostic boundaries, and particles leaking through their
// unwrapped walls break those checks.
type EnergyTracker struct {
	TotalDeltaKE float64
	TotalDeltaU  float64
	MomentumDrift vec3.Vec

	EventCount map[EventKind]int64
}

// NewEnergyTracker returns a zeroed EnergyTracker.
func NewEnergyTracker() *EnergyTracker {
	return &EnergyTracker{EventCount: make(map[EventKind]int64)}
}

// OnEvent implements Observer.
func (e *EnergyTracker) OnEvent(kind EventKind, data EventData) {
	e.EventCount[kind]++
	e.accumulate(data.Singles)
	e.accumulate(data.Pairs)
}

func (e *EnergyTracker) accumulate(deltas []ParticleDelta) {
	for _, d := range deltas {
		e.TotalDeltaKE += d.DeltaKE
		e.TotalDeltaU += d.DeltaU
		dv := d.PostVelocity.Sub(d.PreVelocity)
		e.MomentumDrift = e.MomentumDrift.AddScaled(d.Mass, dv)
	}
}

// TotalEnergyDrift returns the cumulative change in total energy
// (kinetic plus internal) since the tracker was created. For a fully
// elastic, unthermostatted run this should stay within O(events*eps)
// of zero (spec.md §8 property 2).
func (e *EnergyTracker) TotalEnergyDrift() float64 {
	return e.TotalDeltaKE + e.TotalDeltaU
}
