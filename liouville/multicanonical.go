package liouville

import (
	"github.com/sarchlab/dynamica/particle"
)

// Multicanonical is the Newtonian flow with a weight-function bias
// applied to well-event resolution, used for umbrella/multicanonical
// sampling over total potential energy. A piecewise-constant
// correction (EnergyPotentialStep-wide bins, each with a Shift) is
// subtracted from a well event's raw deltaKE before it is resolved,
// biasing the random walk in energy space. Grounded on dynamo's
// LNewtonianMC (original_source/.../dynamics/liouvillean/NewtonMCL.cpp).
type Multicanonical struct {
	*Newtonian
	// EnergyPotentialStep is the bin width of the deformation map.
	EnergyPotentialStep float64
	// Deformation maps a binned energy key to its additive shift.
	Deformation map[int]float64
	// CurrentTotalEnergy is the simulation's current total potential
	// energy, refreshed by the owning system/output layer before
	// each well event is resolved (NewtonMCL.cpp reads
	// OPUEnergy::getSimU() directly).
	CurrentTotalEnergy float64
}

// NewMulticanonical returns a Multicanonical flow with the given bin
// width and an empty deformation map.
func NewMulticanonical(props particle.Properties, step float64) *Multicanonical {
	return &Multicanonical{
		Newtonian:           NewNewtonian(props),
		EnergyPotentialStep: step,
		Deformation:         make(map[int]float64),
	}
}

func energyBin(e, step float64) int {
	k := e / step
	if k < 0 {
		return int(k - 0.5)
	}
	return int(k + 0.5)
}

// BiasedDeltaKE applies the multicanonical correction to a raw well
// event deltaKE, subtracting the deformation shift at both the
// pre-event and post-event energy bins. Grounded on
// LNewtonianMC::SphereWellEvent's Key1/Key2 lookup and MCDeltaKE
// accumulation.
func (m *Multicanonical) BiasedDeltaKE(rawDeltaKE float64) float64 {
	biased := rawDeltaKE
	k1 := energyBin(m.CurrentTotalEnergy, m.EnergyPotentialStep)
	if shift, ok := m.Deformation[k1]; ok {
		biased -= shift
	}
	k2 := energyBin(m.CurrentTotalEnergy-rawDeltaKE, m.EnergyPotentialStep)
	if shift, ok := m.Deformation[k2]; ok {
		biased -= shift
	}
	return biased
}

// SetShift records the deformation shift for the bin containing
// energy e.
func (m *Multicanonical) SetShift(e, shift float64) {
	m.Deformation[energyBin(e, m.EnergyPotentialStep)] = shift
}
