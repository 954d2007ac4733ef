package interaction

import (
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
)

// InfiniteMass is a hard-core interaction between pairs where at
// least one participant has Properties.Mass returning 0 (infinite
// mass, e.g. a fixed pinning particle). It shares HardSphere's
// predictor/resolver exactly: the mass-policy impulse in
// liouville.CollideSpheres already special-cases a zero mass as
// infinite, so no separate resolver logic is needed. Grounded on
// dynamo's IInfiniteMass
// (original_source/.../interactions/infiniteMass.cpp), which itself
// is CIHardSphere plus SmoothSpheresCollInfMassSafe — the
// infinite-mass-safe variant of the same collision routine dynamica
// always uses.
type InfiniteMass = HardSphere

// NewInfiniteMass returns an InfiniteMass interaction; kept as a
// distinct constructor purely for call-site clarity about intent,
// since the underlying type is identical to HardSphere.
func NewInfiniteMass(r Range, diameter, elasticity float64, flow liouville.Flow, props particle.Properties) *InfiniteMass {
	return NewHardSphere(r, diameter, elasticity, flow, props)
}
