package interaction

import (
	"math"
	"testing"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

func newTestStore(props *particle.MapProperties) (*particle.Store, bc.BC) {
	store := particle.NewStore(2)
	boundary := bc.NewPeriodic(vec3.New(100, 100, 100))
	for i := 0; i < 2; i++ {
		props.SetMass(i, 1)
		props.SetDiameter(i, 1)
		props.SetElasticity(i, 1)
	}
	return store, boundary
}

func TestHardSphereApproachingCollides(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	flow := liouville.NewNewtonian(props)
	h := NewHardSphere(AllPairs{}, 1.0, 1.0, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(2, 0, 0)
	p1.Velocity = vec3.New(1, 0, 0)
	p2.Velocity = vec3.New(-1, 0, 0)

	ev := h.GetEvent(0, 1, store, boundary)
	if ev.Type != Core {
		t.Fatalf("expected Core event, got %v", ev.Type)
	}
	if ev.DT <= 0 || math.IsInf(ev.DT, 1) {
		t.Fatalf("expected finite positive DT, got %v", ev.DT)
	}

	dKE1, dKE2 := h.RunEvent(ev, store, boundary)
	if math.Abs(dKE1+dKE2) > 1e-9 {
		t.Fatalf("expected energy conservation, got dKE1=%v dKE2=%v", dKE1, dKE2)
	}
	if p1.Velocity.X >= 0 || p2.Velocity.X <= 0 {
		t.Fatalf("expected velocities to reverse after elastic collision, got v1=%v v2=%v", p1.Velocity, p2.Velocity)
	}
}

func TestSquareWellCapturesOnWellIn(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	flow := liouville.NewNewtonian(props)
	sw := NewSquareWell(AllPairs{}, 1.0, 1.5, 2.0, 1.0, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1.6, 0, 0)
	p1.Velocity = vec3.New(0.1, 0, 0)
	p2.Velocity = vec3.New(-0.1, 0, 0)
	sw.SeedCaptureMap(store, boundary)
	if sw.Captured.IsCaptured(0, 1) {
		t.Fatalf("pair should not start captured outside the well radius")
	}

	ev := sw.GetEvent(0, 1, store, boundary)
	if ev.Type != WellIn {
		t.Fatalf("expected WellIn, got %v", ev.Type)
	}
	sw.RunEvent(ev, store, boundary)
	if !sw.Captured.IsCaptured(0, 1) {
		t.Fatalf("pair should be captured after a non-bounce WellIn event")
	}
}

func TestSteppedAdvancesDepth(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	flow := liouville.NewNewtonian(props)
	steps := []Step{{Radius: 2.0, Energy: -1.0}, {Radius: 1.5, Energy: -2.0}}
	st := NewStepped(AllPairs{}, 1.0, steps, 1.0, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(2.5, 0, 0)
	p1.Velocity = vec3.New(0.1, 0, 0)
	p2.Velocity = vec3.New(-0.1, 0, 0)
	st.SeedCaptureMap(store, boundary)
	if _, captured := st.Captured.Step(0, 1); captured {
		t.Fatalf("pair should not start captured outside the outer step")
	}

	ev := st.GetEvent(0, 1, store, boundary)
	if ev.Type != WellIn {
		t.Fatalf("expected WellIn entering the outer step, got %v", ev.Type)
	}
	st.RunEvent(ev, store, boundary)
	depth, captured := st.Captured.Step(0, 1)
	if !captured || depth != 1 {
		t.Fatalf("expected depth 1 after entering outer step, got depth=%d captured=%v", depth, captured)
	}
}

func TestSquareBondBouncesAtOuterWall(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	flow := liouville.NewNewtonian(props)
	sb := NewSquareBond(AllPairs{}, 1.0, 1.5, 1.0, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1.0, 0, 0)
	p1.Velocity = vec3.New(-0.1, 0, 0)
	p2.Velocity = vec3.New(0.1, 0, 0)

	ev := sb.GetEvent(0, 1, store, boundary)
	if ev.Type != Bounce {
		t.Fatalf("expected Bounce off the outer wall when receding, got %v", ev.Type)
	}
	dKE1, dKE2 := sb.RunEvent(ev, store, boundary)
	if math.Abs(dKE1+dKE2) > 1e-9 {
		t.Fatalf("expected energy conservation, got dKE1=%v dKE2=%v", dKE1, dKE2)
	}
}

func TestInfiniteMassPinsParticle(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	props.SetMass(0, 0) // particle 0 is infinite mass
	flow := liouville.NewNewtonian(props)
	im := NewInfiniteMass(AllPairs{}, 1.0, 1.0, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(2, 0, 0)
	p1.Velocity = vec3.Zero
	p2.Velocity = vec3.New(-1, 0, 0)

	ev := im.GetEvent(0, 1, store, boundary)
	im.RunEvent(ev, store, boundary)
	if p1.Velocity != vec3.Zero {
		t.Fatalf("infinite mass particle should not move, got %v", p1.Velocity)
	}
	if p2.Velocity.X <= 0 {
		t.Fatalf("expected particle 2 to bounce back, got %v", p2.Velocity)
	}
}

func TestSWSequenceUsesAlphabetDepth(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	flow := liouville.NewNewtonian(props)
	alphabet := [][]float64{{0, 3}, {3, 0}}
	sws := NewSWSequence(AllPairs{}, 1.0, 1.5, 1.0, flow, props, []int{0, 1}, alphabet)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1.6, 0, 0)
	p1.Velocity = vec3.New(0.1, 0, 0)
	p2.Velocity = vec3.New(-0.1, 0, 0)
	sws.SeedCaptureMap(store, boundary)

	ev := sws.GetEvent(0, 1, store, boundary)
	if ev.Type != WellIn {
		t.Fatalf("expected WellIn, got %v", ev.Type)
	}
	dKE1, dKE2 := sws.RunEvent(ev, store, boundary)
	if dKE1 == 0 && dKE2 == 0 {
		t.Fatalf("expected nonzero kinetic energy change from a nonzero well depth")
	}
}

func TestRoughHardSphereExchangesSpin(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	props.SetMomentOfInertia(0, 0.4)
	props.SetMomentOfInertia(1, 0.4)
	flow := liouville.NewNewtonian(props)
	r := NewRoughHardSphere(AllPairs{}, 1.0, 1.0, 0.5, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1, 0, 0)
	p1.Velocity = vec3.New(0.1, 1, 0)
	p2.Velocity = vec3.New(-0.1, 0, 0)
	o1 := store.Orientation(0)
	o1.AngularVelocity = vec3.New(0, 0, 1)

	ev := r.GetEvent(0, 1, store, boundary)
	if ev.Type != Core {
		t.Fatalf("expected Core, got %v", ev.Type)
	}
	r.RunEvent(ev, store, boundary)
	o2 := store.Orientation(1)
	if o2.AngularVelocity == vec3.Zero {
		t.Fatalf("expected particle 2 to pick up spin from friction")
	}
}

func TestSoftCoreHasNoHardCore(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	props.SetWellDepth(0, 1.0)
	props.SetWellDepth(1, 1.0)
	flow := liouville.NewNewtonian(props)
	sc := NewSoftCore(AllPairs{}, flow, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(2, 0, 0)
	p1.Velocity = vec3.New(0.1, 0, 0)
	p2.Velocity = vec3.New(-0.1, 0, 0)
	sc.SeedCaptureMap(store, boundary)

	ev := sc.GetEvent(0, 1, store, boundary)
	if ev.Type != WellIn {
		t.Fatalf("expected WellIn, got %v", ev.Type)
	}
	dKE1, dKE2 := sc.RunEvent(ev, store, boundary)
	if dKE1 == 0 && dKE2 == 0 {
		t.Fatalf("expected nonzero KE change entering an attractive well")
	}
}

func TestLinesCaptureTestUsesBoundingSphere(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	l := NewLines(AllPairs{}, 2.0, 1.0, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1.5, 0, 0)
	l.SeedCaptureMap(store, boundary)
	if !l.Captured.IsCaptured(0, 1) {
		t.Fatalf("expected pair within the bounding sphere to be captured")
	}
}

func TestDumbbellsOverlapIsImmediateCore(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	d := NewDumbbells(AllPairs{}, 1.0, 0.5, 1.0, props)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(0.1, 0, 0)
	o1, o2 := store.Orientation(0), store.Orientation(1)
	o1.Axis = vec3.New(1, 0, 0)
	o2.Axis = vec3.New(1, 0, 0)

	ev := d.GetEvent(0, 1, store, boundary)
	if ev.Type != Core || ev.DT != 0 {
		t.Fatalf("expected an immediate Core event for already-overlapping end spheres, got %v dt=%v", ev.Type, ev.DT)
	}
}

func TestRotatedParallelCubesIdentityRotationMatchesAxisAligned(t *testing.T) {
	props := particle.NewMapProperties(2)
	store, boundary := newTestStore(props)
	rot := RotationBasis{EX: vec3.New(1, 0, 0), EY: vec3.New(0, 1, 0), EZ: vec3.New(0, 0, 1)}
	c := NewRotatedParallelCubes(AllPairs{}, rot, props, 1.0)

	p1, p2 := store.Get(0), store.Get(1)
	p1.Position = vec3.New(0, 0, 0)
	p2.Position = vec3.New(1.5, 0, 0)
	p1.Velocity = vec3.New(0.5, 0, 0)
	p2.Velocity = vec3.New(-0.5, 0, 0)

	ev := c.GetEvent(0, 1, store, boundary)
	if ev.Type != Core {
		t.Fatalf("expected Core, got %v", ev.Type)
	}
	dKE1, dKE2 := c.RunEvent(ev, store, boundary)
	if math.Abs(dKE1+dKE2) > 1e-9 {
		t.Fatalf("expected energy conservation, got dKE1=%v dKE2=%v", dKE1, dKE2)
	}
}

func TestPairListAndSingleRanges(t *testing.T) {
	pl := NewPairList([2]int{0, 1})
	if !pl.Applies(0, 1) || !pl.Applies(1, 0) {
		t.Fatalf("PairList should apply to both orderings of a listed pair")
	}
	if pl.Applies(0, 2) {
		t.Fatalf("PairList should not apply to an unlisted pair")
	}

	s := NewSingle(0)
	if !s.Applies(0, 1) || s.Applies(0, 0) {
		t.Fatalf("Single should apply iff exactly one member is in the set")
	}
}
