package local

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// AndersenWall is a fixed infinite plane that thermostats whatever
// touches it: the tangential velocity is preserved, the normal
// component resampled from the inbound half of a Maxwell-Boltzmann
// flux at temperature SqrtT². Grounded on dynamo's CGAndersenWall
// (original_source/.../dynamics/globals/AndersenWall.cpp).
type AndersenWall struct {
	Range    Range
	Position vec3.Vec
	Normal   vec3.Vec
	SqrtT    float64
	RNG      liouville.RNG
	Flow     liouville.Flow
}

// NewAndersenWall returns an AndersenWall Local at position with unit
// normal normal, thermostatting to temperature sqrtT².
func NewAndersenWall(r Range, position, normal vec3.Vec, sqrtT float64, rng liouville.RNG, flow liouville.Flow) *AndersenWall {
	return &AndersenWall{Range: r, Position: position, Normal: normal.Unit(), SqrtT: sqrtT, RNG: rng, Flow: flow}
}

// AppliesTo implements Local.
func (w *AndersenWall) AppliesTo(i int) bool { return w.Range.Applies(i) }

// IsInCell implements Local.
func (w *AndersenWall) IsInCell(origin, width vec3.Vec) bool {
	return slabOverlapsPlane(origin, width, w.Position, w.Normal)
}

// GetEvent implements Local. Grounded on CGAndersenWall::getEvent,
// which (like CGWall) defers to LNewtonian::getWallCollision — the
// thermostatting only changes runEvent's resolution, not the
// predicted collision time.
func (w *AndersenWall) GetEvent(i int, store *particle.Store, boundary bc.BC) Event {
	p := store.Get(i)
	rel, vel := boundary.ApplyBCVel(p.Position.Sub(w.Position), p.Velocity)
	wrapped := *p
	wrapped.Position = rel.Add(w.Position)
	wrapped.Velocity = vel
	dt := w.Flow.GetWallCollision(&wrapped, w.Position, w.Normal)
	if math.IsInf(dt, 1) {
		return Event{P: i, DT: math.Inf(1), Type: NoEvent}
	}
	return Event{P: i, DT: dt, Type: WallCollision}
}

// RunEvent implements Local. Grounded on
// CGAndersenWall::runEvent, which defers to
// LNewtonian::runAndersenWallCollision.
func (w *AndersenWall) RunEvent(ev Event, store *particle.Store, boundary bc.BC) float64 {
	p := store.Get(ev.P)
	return w.Flow.RunAndersenWallCollision(p, w.Normal, w.SqrtT, w.RNG)
}
