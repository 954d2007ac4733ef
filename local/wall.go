package local

import (
	"math"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// Wall is a fixed infinite plane, elastic reflection with restitution
// Elasticity. Grounded on dynamo's CGWall
// (original_source/.../dynamics/globals/wall.cpp).
type Wall struct {
	Range      Range
	Position   vec3.Vec
	Normal     vec3.Vec
	Elasticity float64
	Flow       liouville.Flow
}

// NewWall returns a Wall Local at position with unit normal normal.
func NewWall(r Range, position, normal vec3.Vec, elasticity float64, flow liouville.Flow) *Wall {
	return &Wall{Range: r, Position: position, Normal: normal.Unit(), Elasticity: elasticity, Flow: flow}
}

// AppliesTo implements Local.
func (w *Wall) AppliesTo(i int) bool { return w.Range.Applies(i) }

// IsInCell implements Local.
func (w *Wall) IsInCell(origin, width vec3.Vec) bool {
	return slabOverlapsPlane(origin, width, w.Position, w.Normal)
}

// GetEvent implements Local. Grounded on CGWall::getEvent, which
// defers entirely to LNewtonian::getWallCollision.
func (w *Wall) GetEvent(i int, store *particle.Store, boundary bc.BC) Event {
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

// RunEvent implements Local. Grounded on CGWall::runEvent, which
// defers to LNewtonian::runWallCollision.
func (w *Wall) RunEvent(ev Event, store *particle.Store, boundary bc.BC) float64 {
	p := store.Get(ev.P)
	return w.Flow.RunWallCollision(p, w.Normal, w.Elasticity)
}
