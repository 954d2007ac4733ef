package liouville_test

import (
	"math"
	"testing"

	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

func props() *particle.MapProperties {
	p := particle.NewMapProperties(2)
	p.SetMass(0, 1)
	p.SetMass(1, 1)
	return p
}

func TestNewtonianStream(t *testing.T) {
	n := liouville.NewNewtonian(props())
	p := &particle.Particle{Velocity: vec3.New(1, 2, 3)}
	n.Stream(p, 2)
	if p.Position != vec3.New(2, 4, 6) {
		t.Fatalf("got %v", p.Position)
	}
}

func TestSphereSphereInRootApproaching(t *testing.T) {
	n := liouville.NewNewtonian(props())
	pd := liouville.NewPairData(vec3.New(5, 0, 0), vec3.New(-1, 0, 0))
	dt, ok := n.SphereSphereInRoot(pd, 1) // d2=1, approach closes 4 units at speed 1
	if !ok {
		t.Fatalf("expected a root")
	}
	if math.Abs(dt-4) > 1e-9 {
		t.Fatalf("dt got %v want 4", dt)
	}
}

func TestSphereSphereInRootRecedingNoRoot(t *testing.T) {
	n := liouville.NewNewtonian(props())
	pd := liouville.NewPairData(vec3.New(5, 0, 0), vec3.New(1, 0, 0))
	_, ok := n.SphereSphereInRoot(pd, 1)
	if ok {
		t.Fatalf("receding pair should not produce a root")
	}
}

func TestSphereOverlap(t *testing.T) {
	n := liouville.NewNewtonian(props())
	pd := liouville.NewPairData(vec3.New(0.5, 0, 0), vec3.Zero)
	if !n.SphereOverlap(pd, 1) {
		t.Fatalf("expected overlap")
	}
}

func TestRunSmoothSpheresCollisionConservesMomentum(t *testing.T) {
	pr := props()
	p1 := &particle.Particle{ID: 0, Position: vec3.New(-0.5, 0, 0), Velocity: vec3.New(1, 0, 0)}
	p2 := &particle.Particle{ID: 1, Position: vec3.New(0.5, 0, 0), Velocity: vec3.New(-1, 0, 0)}
	rij := p1.Position.Sub(p2.Position)

	before := p1.Velocity.Scale(pr.Mass(0)).Add(p2.Velocity.Scale(pr.Mass(1)))
	liouville.RunSmoothSpheresCollision(pr, p1, p2, rij, 1)
	after := p1.Velocity.Scale(pr.Mass(0)).Add(p2.Velocity.Scale(pr.Mass(1)))

	if math.Abs(before.Sub(after).Nrm()) > 1e-9 {
		t.Fatalf("momentum not conserved: before %v after %v", before, after)
	}
	// Elastic (e=1) head-on collision of equal masses swaps velocities.
	if p1.Velocity != vec3.New(-1, 0, 0) || p2.Velocity != vec3.New(1, 0, 0) {
		t.Fatalf("expected velocity swap, got %v %v", p1.Velocity, p2.Velocity)
	}
}

func TestRunSmoothSpheresCollisionInfiniteMass(t *testing.T) {
	pr := particle.NewMapProperties(2)
	pr.SetMass(0, 0) // infinite mass
	pr.SetMass(1, 2)

	p1 := &particle.Particle{ID: 0, Position: vec3.New(-0.5, 0, 0), Velocity: vec3.Zero}
	p2 := &particle.Particle{ID: 1, Position: vec3.New(0.5, 0, 0), Velocity: vec3.New(-1, 0, 0)}
	rij := p1.Position.Sub(p2.Position)

	liouville.RunSmoothSpheresCollision(pr, p1, p2, rij, 1)

	if p1.Velocity != vec3.Zero {
		t.Fatalf("infinite mass particle must not move: got %v", p1.Velocity)
	}
	if p2.Velocity.Component(0) <= 0 {
		t.Fatalf("finite particle should reflect away: got %v", p2.Velocity)
	}
}

func TestDSMCTestAcceptReject(t *testing.T) {
	maxProb := 0.0
	rij := vec3.New(1, 0, 0)
	vij := vec3.New(-1, 0, 0) // rvdot = -1 < 0
	if !liouville.DSMCTest(rij, vij, &maxProb, 1, 0) {
		t.Fatalf("uniform=0 should always accept")
	}
	if maxProb != 1 {
		t.Fatalf("maxProb got %v want 1", maxProb)
	}
}

func TestCompressionGrowsDiameter(t *testing.T) {
	c := liouville.NewCompression(props(), 0.1)
	c.Now = 2
	d2 := c.CurrentDiameterSquared(1)
	want := 1 * (1 + 2*2*0.1 + (2*0.1)*(2*0.1))
	if math.Abs(d2-want) > 1e-9 {
		t.Fatalf("got %v want %v", d2, want)
	}
}

func TestSLLODShearStream(t *testing.T) {
	s := liouville.NewSLLOD(props())
	p := &particle.Particle{Velocity: vec3.New(1, 2, 0), Flags: particle.DYNAMIC}
	s.Stream(p, 3)
	if p.Velocity.Component(0) != 1+2*3 {
		t.Fatalf("vx got %v want 7", p.Velocity.Component(0))
	}
}

func TestNewtonianGravityStream(t *testing.T) {
	g := liouville.NewNewtonianGravity(props(), vec3.New(0, -1, 0))
	p := &particle.Particle{Position: vec3.Zero, Velocity: vec3.New(1, 0, 0), Flags: particle.DYNAMIC}
	g.Stream(p, 1)
	if p.Velocity.Component(1) != -1 {
		t.Fatalf("vy got %v want -1", p.Velocity.Component(1))
	}
	if p.Position.Component(1) != -0.5 {
		t.Fatalf("y got %v want -0.5", p.Position.Component(1))
	}
}

func TestGravityAsymmetricRootFallsBackWhenSymmetric(t *testing.T) {
	g := liouville.NewNewtonianGravity(props(), vec3.New(0, -1, 0))
	pd := liouville.NewPairData(vec3.New(5, 0, 0), vec3.New(-1, 0, 0))
	dt, ok := g.SphereSphereInRootAsymmetric(pd, 1, true, true)
	if !ok || math.Abs(dt-4) > 1e-9 {
		t.Fatalf("got %v,%v want 4,true", dt, ok)
	}
}

func TestGravityAsymmetricRootFindsFreefallCollision(t *testing.T) {
	g := liouville.NewNewtonianGravity(props(), vec3.New(0, -1, 0))
	// p1 dynamic (falls), p2 fixed, directly below p1, separated by 2,
	// starting at rest: it must fall into contact (d2=1).
	pd := liouville.NewPairData(vec3.New(0, 2, 0), vec3.Zero)
	dt, ok := g.SphereSphereInRootAsymmetric(pd, 1, true, false)
	if !ok {
		t.Fatalf("expected a freefall collision root")
	}
	if dt <= 0 {
		t.Fatalf("dt got %v want >0", dt)
	}
}
