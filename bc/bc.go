// Package bc implements the boundary conditions (spec.md §4.7): the
// minimum-image periodic wrap and its Lees-Edwards shearing variant,
// grounded on dynamo's BCPeriodic/BCLeesEdwards
// (dynamics/BC/PBC.cpp, dynamics/BC/LEBC.hpp).
package bc

import (
	"math"

	"github.com/sarchlab/dynamica/vec3"
)

// BC is the boundary condition contract the cell list, scheduler, and
// liouvillean predictors all apply against. Implementations must be
// safe to call with a pos that already lies inside the primary image
// (a no-op in that case).
type BC interface {
	// ApplyBC wraps pos into the primary image in place and returns it.
	ApplyBC(pos vec3.Vec) vec3.Vec
	// ApplyBCVel wraps pos the same way ApplyBC does, and additionally
	// corrects vel for any boundary velocity jump the wrap crossed
	// (only non-trivial for LeesEdwards). Non-shearing boundaries
	// return vel unchanged.
	ApplyBCVel(pos, vel vec3.Vec) (vec3.Vec, vec3.Vec)
}

// rint rounds to the nearest integer, ties to even — matching C's
// rint() under the default rounding mode, which dynamo's applyBC
// relies on for the minimum-image wrap.
func rint(x float64) float64 {
	floor := math.Floor(x)
	diff := x - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}
